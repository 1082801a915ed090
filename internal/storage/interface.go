package storage

import (
	"context"
	"errors"
	"time"

	"weathercast/internal/models"
)

// ErrNotFound reports that a series, snapshot set, or baseline has not been
// stored yet. Both backends return it so callers can distinguish "no data"
// from a broken store.
var ErrNotFound = errors.New("not found")

// ReadingStore persists per-location weather data: the rolling time series the
// history engine analyzes, point-in-time snapshots, and computed baselines.
type ReadingStore interface {
	// AppendReading adds a reading to the location's series, creating the
	// series on first write. Series are capped at MaxSeriesReadings; the
	// oldest readings fall off.
	AppendReading(loc models.Location, reading models.Reading, recordedAt time.Time) error

	// LoadSeries returns the stored series for a location, or ErrNotFound.
	LoadSeries(location string) (*models.SeriesDocument, error)

	// Locations lists every location with a stored series, sorted by name.
	Locations() ([]string, error)

	// SaveSnapshot stores one point-in-time snapshot. The snapshot archive is
	// pruned to the newest MaxSnapshotFiles entries.
	SaveSnapshot(snap models.Snapshot) error

	// LoadSnapshots returns stored snapshots for a location in save order.
	LoadSnapshots(location string) ([]models.Snapshot, error)

	// SaveBaseline stores the statistical baseline for a location,
	// replacing any previous one.
	SaveBaseline(baseline models.Baseline) error

	// LoadBaseline returns the stored baseline for a location, or ErrNotFound.
	LoadBaseline(location string) (*models.Baseline, error)

	// Close releases any resources held by the store.
	Close() error
}

// Series and snapshot retention limits, shared by both backends.
const (
	MaxSeriesReadings = 1000
	MaxSnapshotFiles  = 100
)

// ReportPageName is the HTML page every report folder ends with; listing a
// report means finding this file.
const ReportPageName = "04_report.html"

// ReportStore is the archive report artifacts are written to.
type ReportStore interface {
	// Close closes the report store
	Close() error

	// StoreFile stores one artifact in the report folder for the timestamp
	StoreFile(ctx context.Context, fileData []byte, filename string, timestamp time.Time) error

	// GetFile retrieves an artifact by its full path
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// ListReports lists report paths, newest first
	ListReports(ctx context.Context, limit int) ([]string, error)

	// GetLatestReport returns the newest report path
	GetLatestReport(ctx context.Context) (string, error)
}
