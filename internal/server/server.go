// Package server exposes the report archive over HTTP: a landing redirect to
// the newest report, a report listing, an artifact proxy, and on-demand
// generation. Artifacts are read through the ReportStore, so a local directory
// and a GCS bucket serve identically.
package server

import (
	"context"
	"net/http"
	"sync"

	"weathercast/internal/reports"
	"weathercast/internal/storage"
)

// GenerateFunc produces and stores one full report.
type GenerateFunc func(ctx context.Context) (*reports.ReportResult, error)

// Server serves the report archive backed by a ReportStore.
type Server struct {
	store    storage.ReportStore
	generate GenerateFunc

	// generateMu keeps report generation single-flight; a second request
	// while one runs gets 409 instead of a queue.
	generateMu sync.Mutex
}

// New creates a server over the store. A nil generate disables the /generate
// endpoint.
func New(store storage.ReportStore, generate GenerateFunc) *Server {
	return &Server{store: store, generate: generate}
}

// Routes builds the HTTP mux. Specific routes are registered before the root
// catch-all.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/generate", s.handleGenerate)
	mux.HandleFunc("/reports", s.handleListReports)
	mux.HandleFunc("/files/", s.handleFiles)
	mux.HandleFunc("/", s.handleRoot)
	return mux
}
