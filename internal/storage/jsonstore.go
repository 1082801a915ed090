package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"weathercast/internal/logger"
	"weathercast/internal/models"
)

// JSONStore is the file-backed ReadingStore: one JSON document per series,
// one file per snapshot, one baseline file per location, all under a data
// directory.
//
//	data/
//	  timeseries/{location}.json
//	  historical/{location}_{timestamp}.json
//	  baselines/{location}_baseline.json
type JSONStore struct {
	baseDir string
}

// NewJSONStore creates the store and its directory layout.
func NewJSONStore(baseDir string) (*JSONStore, error) {
	for _, dir := range []string{"timeseries", "historical", "baselines"} {
		if err := os.MkdirAll(filepath.Join(baseDir, dir), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
		}
	}
	return &JSONStore{baseDir: baseDir}, nil
}

// Close is a no-op for the JSON backend.
func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) seriesPath(location string) string {
	return filepath.Join(s.baseDir, "timeseries", SanitizeLocationName(location)+".json")
}

func (s *JSONStore) baselinePath(location string) string {
	return filepath.Join(s.baseDir, "baselines", SanitizeLocationName(location)+"_baseline.json")
}

// AppendReading loads or creates the location's series document, appends the
// reading, refreshes the metadata stamps, and enforces the series cap.
func (s *JSONStore) AppendReading(loc models.Location, reading models.Reading, recordedAt time.Time) error {
	path := s.seriesPath(loc.Name)
	now := time.Now().UTC()

	doc, err := s.readSeries(path)
	if err != nil {
		doc = &models.SeriesDocument{
			Metadata: models.SeriesMetadata{
				Location:  loc.Name,
				Lat:       loc.Lat,
				Lon:       loc.Lon,
				CreatedAt: now,
			},
		}
	}

	doc.Readings = append(doc.Readings, models.SeriesEntry{
		RecordedAt: recordedAt,
		Reading:    reading,
	})
	if len(doc.Readings) > MaxSeriesReadings {
		doc.Readings = doc.Readings[len(doc.Readings)-MaxSeriesReadings:]
	}
	doc.Metadata.UpdatedAt = now
	doc.Metadata.Count = len(doc.Readings)

	return writeJSONFile(path, doc)
}

// LoadSeries returns the stored series for a location, or ErrNotFound.
func (s *JSONStore) LoadSeries(location string) (*models.SeriesDocument, error) {
	doc, err := s.readSeries(s.seriesPath(location))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no series for %q: %w", location, ErrNotFound)
		}
		return nil, err
	}
	return doc, nil
}

func (s *JSONStore) readSeries(path string) (*models.SeriesDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc models.SeriesDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("corrupt series file %s: %w", path, err)
	}
	return &doc, nil
}

// Locations lists the display names stored in the series metadata, sorted.
func (s *JSONStore) Locations() ([]string, error) {
	pattern := filepath.Join(s.baseDir, "timeseries", "*.json")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list series files: %w", err)
	}

	var names []string
	for _, file := range files {
		doc, err := s.readSeries(file)
		if err != nil {
			logger.Warnf("Skipping unreadable series file %s: %v", file, err)
			continue
		}
		names = append(names, doc.Metadata.Location)
	}
	sort.Strings(names)
	return names, nil
}

// SaveSnapshot writes one snapshot file and prunes the archive.
func (s *JSONStore) SaveSnapshot(snap models.Snapshot) error {
	filename := fmt.Sprintf("%s_%s.json",
		SanitizeLocationName(snap.Location.Name), SnapshotTimestamp(snap.SavedAt))
	path := filepath.Join(s.baseDir, "historical", filename)

	if err := writeJSONFile(path, snap); err != nil {
		return err
	}
	return s.pruneSnapshots()
}

// LoadSnapshots returns snapshots for a location, oldest first. An empty
// location loads the whole archive.
func (s *JSONStore) LoadSnapshots(location string) ([]models.Snapshot, error) {
	pattern := filepath.Join(s.baseDir, "historical", "*.json")
	if location != "" {
		pattern = filepath.Join(s.baseDir, "historical", SanitizeLocationName(location)+"_*.json")
	}

	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshot files: %w", err)
	}
	sort.Strings(files)

	var snapshots []models.Snapshot
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			logger.Warnf("Skipping unreadable snapshot %s: %v", file, err)
			continue
		}
		var snap models.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			logger.Warnf("Skipping corrupt snapshot %s: %v", file, err)
			continue
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}

// pruneSnapshots keeps the newest MaxSnapshotFiles snapshot files across all
// locations, oldest removed first.
func (s *JSONStore) pruneSnapshots() error {
	files, err := filepath.Glob(filepath.Join(s.baseDir, "historical", "*.json"))
	if err != nil {
		return fmt.Errorf("failed to list snapshot files: %w", err)
	}
	if len(files) <= MaxSnapshotFiles {
		return nil
	}

	type fileAge struct {
		path string
		mod  time.Time
	}
	aged := make([]fileAge, 0, len(files))
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		aged = append(aged, fileAge{path: file, mod: info.ModTime()})
	}
	sort.Slice(aged, func(i, j int) bool {
		if aged[i].mod.Equal(aged[j].mod) {
			return aged[i].path < aged[j].path
		}
		return aged[i].mod.Before(aged[j].mod)
	})

	removed := 0
	for _, f := range aged[:len(aged)-MaxSnapshotFiles] {
		if err := os.Remove(f.path); err == nil {
			removed++
		}
	}
	if removed > 0 {
		logger.Debug("Pruned old snapshots", map[string]interface{}{"removed": removed})
	}
	return nil
}

// SaveBaseline stores the location's baseline, replacing any previous one.
func (s *JSONStore) SaveBaseline(baseline models.Baseline) error {
	return writeJSONFile(s.baselinePath(baseline.Location), baseline)
}

// LoadBaseline returns the stored baseline for a location, or ErrNotFound.
func (s *JSONStore) LoadBaseline(location string) (*models.Baseline, error) {
	data, err := os.ReadFile(s.baselinePath(location))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no baseline for %q: %w", location, ErrNotFound)
		}
		return nil, err
	}

	var baseline models.Baseline
	if err := json.Unmarshal(data, &baseline); err != nil {
		return nil, fmt.Errorf("corrupt baseline for %q: %w", location, err)
	}
	return &baseline, nil
}

func writeJSONFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

var _ ReadingStore = (*JSONStore)(nil)
