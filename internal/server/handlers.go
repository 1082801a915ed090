package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"weathercast/internal/config"
	"weathercast/internal/logger"
	"weathercast/internal/storage"
)

// initialPageFallback is shown when the archive is empty and the template
// file is not on disk.
const initialPageFallback = `<!DOCTYPE html>
<html>
<head><title>weathercast</title></head>
<body>
	<h1>🌤️ weathercast</h1>
	<p>No reports yet. POST to /generate to create the first one.</p>
</body>
</html>`

// handleRoot redirects to the newest report page, or shows the initial page
// while the archive is still empty.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	latest, err := s.store.GetLatestReport(r.Context())
	if err != nil {
		s.serveInitialPage(w)
		return
	}
	http.Redirect(w, r, "/files/"+latest, http.StatusFound)
}

func (s *Server) serveInitialPage(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	page, err := os.ReadFile(filepath.Join("internal", "templates", "initial_page.html"))
	if err != nil {
		fmt.Fprint(w, initialPageFallback)
		return
	}
	w.Write(page)
}

// handleHealth reports liveness plus the running version.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"version":   config.GetVersion(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleListReports lists recent report pages, newest first.
func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 100 {
		limit = 100
	}

	paths, err := s.store.ListReports(r.Context(), limit)
	if err != nil {
		logger.Warnf("Failed to list reports: %v", err)
		http.Error(w, "Failed to list reports", http.StatusInternalServerError)
		return
	}
	if paths == nil {
		paths = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reports":   paths,
		"count":     len(paths),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleFiles proxies stored report artifacts by their relative path.
func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filePath := strings.TrimPrefix(r.URL.Path, "/files/")
	if filePath == "" {
		http.Error(w, "File path required", http.StatusBadRequest)
		return
	}
	if strings.Contains(filePath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	data, err := s.store.GetFile(r.Context(), filePath)
	if err != nil {
		logger.Debug("Artifact not found", map[string]interface{}{
			"path":  filePath,
			"error": err.Error(),
		})
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	w.Write(data)
}

// handleGenerate produces a fresh report. Generation is single-flight; a
// request while one runs gets 409.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.generate == nil {
		http.Error(w, "Report generation not configured", http.StatusNotImplemented)
		return
	}

	if !s.generateMu.TryLock() {
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":  "Report generation already in progress",
			"status": "conflict",
		})
		return
	}
	defer s.generateMu.Unlock()

	result, err := s.generate(r.Context())
	if err != nil {
		logger.Warnf("Report generation failed: %v", err)
		http.Error(w, "Report generation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warnf("Failed to encode response: %v", err)
	}
}
