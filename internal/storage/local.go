package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"weathercast/internal/logger"
)

// LocalReportStore writes report artifacts under a directory on disk, laid
// out the same way as the GCS backend so reports stay browsable either way.
type LocalReportStore struct {
	baseDir string
}

// NewLocalReportStore creates the store rooted at baseDir.
func NewLocalReportStore(baseDir string) (*LocalReportStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create reports directory %s: %w", baseDir, err)
	}
	return &LocalReportStore{baseDir: baseDir}, nil
}

// Close is a no-op for local storage.
func (l *LocalReportStore) Close() error {
	return nil
}

// StoreFile writes one artifact into the report folder for the timestamp.
func (l *LocalReportStore) StoreFile(ctx context.Context, fileData []byte, filename string, timestamp time.Time) error {
	filePath := filepath.Join(l.baseDir, GenerateReportFolderPath(timestamp), filename)

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(filePath), err)
	}
	if err := os.WriteFile(filePath, fileData, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filePath, err)
	}

	logger.Debug("Stored report artifact", map[string]interface{}{
		"path": filePath,
		"size": len(fileData),
	})
	return nil
}

// GetFile retrieves an artifact by the relative path ListReports returned.
func (l *LocalReportStore) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.baseDir, filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return data, nil
}

// ListReports lists report pages newest first, up to limit. Paths are
// relative to the store's base directory.
func (l *LocalReportStore) ListReports(ctx context.Context, limit int) ([]string, error) {
	var reportPaths []string

	err := filepath.Walk(l.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if info.Name() == ReportPageName {
			relPath, err := filepath.Rel(l.baseDir, path)
			if err != nil {
				return nil
			}
			reportPaths = append(reportPaths, filepath.ToSlash(relPath))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk reports directory: %w", err)
	}

	// Folder names embed the timestamp, so lexical order is chronological.
	sort.Strings(reportPaths)
	for i, j := 0, len(reportPaths)-1; i < j; i, j = i+1, j-1 {
		reportPaths[i], reportPaths[j] = reportPaths[j], reportPaths[i]
	}

	if limit > 0 && limit < len(reportPaths) {
		reportPaths = reportPaths[:limit]
	}
	return reportPaths, nil
}

// GetLatestReport returns the path of the most recent report page.
func (l *LocalReportStore) GetLatestReport(ctx context.Context) (string, error) {
	reports, err := l.ListReports(ctx, 1)
	if err != nil {
		return "", err
	}
	if len(reports) == 0 {
		return "", fmt.Errorf("no reports found")
	}
	return reports[0], nil
}

var _ ReportStore = (*LocalReportStore)(nil)
