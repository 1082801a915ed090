package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"weathercast/internal/logger"
	"weathercast/internal/models"
)

// SQLiteStore implements ReadingStore on a single database file using the
// pure Go driver, so it needs no cgo and no system sqlite install.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS readings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    location_key TEXT NOT NULL,
    location TEXT NOT NULL,
    lat REAL NOT NULL,
    lon REAL NOT NULL,
    recorded_at TEXT NOT NULL,
    reading TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_readings_location ON readings(location_key, recorded_at);
CREATE TABLE IF NOT EXISTS snapshots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    location_key TEXT NOT NULL,
    saved_at TEXT NOT NULL,
    snapshot TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS baselines (
    location_key TEXT PRIMARY KEY,
    baseline TEXT NOT NULL
);`

// NewSQLiteStore opens (or creates) the database at path and applies the
// schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	// WAL gives better concurrency for the small frequent writes the
	// collect command produces.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		logger.Warnf("Could not set WAL mode: %v", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// AppendReading inserts one reading row and trims the location's series to
// the cap. The reading itself is stored as a JSON document so optional
// metrics keep their absent/present distinction.
func (s *SQLiteStore) AppendReading(loc models.Location, reading models.Reading, recordedAt time.Time) error {
	data, err := json.Marshal(reading)
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}

	key := SanitizeLocationName(loc.Name)
	_, err = s.db.Exec(`INSERT INTO readings(location_key, location, lat, lon, recorded_at, reading) VALUES(?,?,?,?,?,?)`,
		key, loc.Name, loc.Lat, loc.Lon, recordedAt.UTC().Format(time.RFC3339), string(data))
	if err != nil {
		return fmt.Errorf("failed to insert reading: %w", err)
	}

	_, err = s.db.Exec(`DELETE FROM readings WHERE location_key = ? AND id NOT IN (
        SELECT id FROM readings WHERE location_key = ? ORDER BY id DESC LIMIT ?)`,
		key, key, MaxSeriesReadings)
	if err != nil {
		return fmt.Errorf("failed to trim series: %w", err)
	}
	return nil
}

// LoadSeries rebuilds the series document from the location's rows, oldest
// first. Metadata timestamps derive from the stored rows.
func (s *SQLiteStore) LoadSeries(location string) (*models.SeriesDocument, error) {
	key := SanitizeLocationName(location)
	rows, err := s.db.Query(`SELECT location, lat, lon, recorded_at, reading FROM readings WHERE location_key = ? ORDER BY id`, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query series: %w", err)
	}
	defer rows.Close()

	doc := &models.SeriesDocument{}
	for rows.Next() {
		var (
			name, recordedAt, readingJSON string
			lat, lon                      float64
		)
		if err := rows.Scan(&name, &lat, &lon, &recordedAt, &readingJSON); err != nil {
			return nil, fmt.Errorf("failed to scan reading row: %w", err)
		}

		entry := models.SeriesEntry{}
		if t, err := time.Parse(time.RFC3339, recordedAt); err == nil {
			entry.RecordedAt = t
		}
		if err := json.Unmarshal([]byte(readingJSON), &entry.Reading); err != nil {
			logger.Warnf("Skipping corrupt reading row for %s: %v", location, err)
			continue
		}
		doc.Readings = append(doc.Readings, entry)

		// latest row wins for the location fields
		doc.Metadata.Location = name
		doc.Metadata.Lat = lat
		doc.Metadata.Lon = lon
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read series rows: %w", err)
	}
	if len(doc.Readings) == 0 {
		return nil, fmt.Errorf("no series for %q: %w", location, ErrNotFound)
	}

	doc.Metadata.CreatedAt = doc.Readings[0].RecordedAt
	doc.Metadata.UpdatedAt = doc.Readings[len(doc.Readings)-1].RecordedAt
	doc.Metadata.Count = len(doc.Readings)
	return doc, nil
}

// Locations lists the distinct display names with stored readings, sorted.
func (s *SQLiteStore) Locations() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT location FROM readings ORDER BY location`)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan location row: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// SaveSnapshot stores the snapshot as a JSON document and trims the archive
// to the cap, oldest rows first.
func (s *SQLiteStore) SaveSnapshot(snap models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	_, err = s.db.Exec(`INSERT INTO snapshots(location_key, saved_at, snapshot) VALUES(?,?,?)`,
		SanitizeLocationName(snap.Location.Name), snap.SavedAt.UTC().Format(time.RFC3339), string(data))
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	_, err = s.db.Exec(`DELETE FROM snapshots WHERE id NOT IN (
        SELECT id FROM snapshots ORDER BY id DESC LIMIT ?)`, MaxSnapshotFiles)
	if err != nil {
		return fmt.Errorf("failed to trim snapshots: %w", err)
	}
	return nil
}

// LoadSnapshots returns stored snapshots oldest first. An empty location
// loads the whole archive.
func (s *SQLiteStore) LoadSnapshots(location string) ([]models.Snapshot, error) {
	query := `SELECT snapshot FROM snapshots ORDER BY saved_at`
	args := []interface{}{}
	if location != "" {
		query = `SELECT snapshot FROM snapshots WHERE location_key = ? ORDER BY saved_at`
		args = append(args, SanitizeLocationName(location))
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []models.Snapshot
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		var snap models.Snapshot
		if err := json.Unmarshal([]byte(data), &snap); err != nil {
			logger.Warnf("Skipping corrupt snapshot row: %v", err)
			continue
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

// SaveBaseline upserts the location's baseline.
func (s *SQLiteStore) SaveBaseline(baseline models.Baseline) error {
	data, err := json.Marshal(baseline)
	if err != nil {
		return fmt.Errorf("failed to marshal baseline: %w", err)
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO baselines(location_key, baseline) VALUES(?,?)`,
		SanitizeLocationName(baseline.Location), string(data))
	if err != nil {
		return fmt.Errorf("failed to store baseline: %w", err)
	}
	return nil
}

// LoadBaseline returns the stored baseline for a location, or ErrNotFound.
func (s *SQLiteStore) LoadBaseline(location string) (*models.Baseline, error) {
	var data string
	err := s.db.QueryRow(`SELECT baseline FROM baselines WHERE location_key = ?`,
		SanitizeLocationName(location)).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no baseline for %q: %w", location, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query baseline: %w", err)
	}

	var baseline models.Baseline
	if err := json.Unmarshal([]byte(data), &baseline); err != nil {
		return nil, fmt.Errorf("corrupt baseline for %q: %w", location, err)
	}
	return &baseline, nil
}

var _ ReadingStore = (*SQLiteStore)(nil)
