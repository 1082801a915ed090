package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"weathercast/internal/config"
)

// DeploymentMode selects where published reports go.
type DeploymentMode string

const (
	DeploymentLocal DeploymentMode = "local"
	DeploymentGCS   DeploymentMode = "gcs"
)

// SQLiteFileName is the database file created under the data directory when
// the sqlite backend is selected.
const SQLiteFileName = "weathercast.db"

// NewReadingStore creates the reading store selected by the configuration.
func NewReadingStore(cfg *config.Config) (ReadingStore, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	switch cfg.StorageBackend {
	case "json":
		store, err := NewJSONStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JSON store: %w", err)
		}
		return store, nil

	case "sqlite":
		store, err := NewSQLiteStore(filepath.Join(cfg.DataDir, SQLiteFileName))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sqlite store: %w", err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}
}

// NewReportStore creates a report store based on deployment mode and
// configuration.
func NewReportStore(ctx context.Context, deploymentMode DeploymentMode, cfg *config.Config) (ReportStore, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	switch deploymentMode {
	case DeploymentLocal:
		reportsDir := cfg.LocalReportsDir
		if reportsDir == "" {
			reportsDir = "reports"
		}

		localStore, err := NewLocalReportStore(reportsDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local report store: %w", err)
		}
		return localStore, nil

	case DeploymentGCS:
		gcsStore, err := NewGCSReportStore(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS report store: %w", err)
		}
		return gcsStore, nil

	default:
		return nil, fmt.Errorf("unsupported deployment mode: %s", deploymentMode)
	}
}
