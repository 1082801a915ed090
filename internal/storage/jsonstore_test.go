package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"weathercast/internal/models"
)

func testReading(temp float64) models.Reading {
	return models.Reading{
		Timestamp:       time.Date(2025, 9, 17, 12, 0, 0, 0, time.UTC).Format(time.RFC3339),
		Temperature:     models.Float(temp),
		Pressure:        models.Float(1015.2),
		Humidity:        models.Float(72),
		WindSpeed:       models.Float(4.5),
		PrecipitationMm: 0.2,
		SymbolCode:      "partlycloudy_day",
	}
}

func testStoreLocation() models.Location {
	return models.Location{Name: "London, UK", Lat: 51.5074, Lon: -0.1278, Country: "United Kingdom"}
}

func TestJSONStore_AppendAndLoadSeries(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	defer store.Close()

	loc := testStoreLocation()
	base := time.Date(2025, 9, 17, 12, 0, 0, 0, time.UTC)
	if err := store.AppendReading(loc, testReading(14.5), base); err != nil {
		t.Fatalf("AppendReading: %v", err)
	}
	if err := store.AppendReading(loc, testReading(15.1), base.Add(time.Hour)); err != nil {
		t.Fatalf("AppendReading: %v", err)
	}

	doc, err := store.LoadSeries("London, UK")
	if err != nil {
		t.Fatalf("LoadSeries: %v", err)
	}

	if doc.Metadata.Location != "London, UK" {
		t.Errorf("Expected location 'London, UK', got %q", doc.Metadata.Location)
	}
	if doc.Metadata.Lat != 51.5074 || doc.Metadata.Lon != -0.1278 {
		t.Errorf("Unexpected coordinates: %f, %f", doc.Metadata.Lat, doc.Metadata.Lon)
	}
	if doc.Metadata.Count != 2 || len(doc.Readings) != 2 {
		t.Fatalf("Expected 2 readings, got count=%d len=%d", doc.Metadata.Count, len(doc.Readings))
	}
	if doc.Metadata.CreatedAt.IsZero() || doc.Metadata.UpdatedAt.IsZero() {
		t.Error("Expected metadata timestamps to be set")
	}

	first := doc.Readings[0]
	if !first.RecordedAt.Equal(base) {
		t.Errorf("Expected first recorded_at %v, got %v", base, first.RecordedAt)
	}
	if first.Reading.Temperature == nil || *first.Reading.Temperature != 14.5 {
		t.Errorf("Unexpected first temperature: %v", first.Reading.Temperature)
	}
	if first.Reading.CloudCover != nil {
		t.Error("Expected absent cloud cover to stay nil through the round trip")
	}
}

func TestJSONStore_LoadSeriesNotFound(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	defer store.Close()

	_, err = store.LoadSeries("Nowhere")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestJSONStore_SeriesCap(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	defer store.Close()

	loc := testStoreLocation()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// Seed a full series directly, then append one more through the API.
	doc := &models.SeriesDocument{
		Metadata: models.SeriesMetadata{Location: loc.Name, Lat: loc.Lat, Lon: loc.Lon, CreatedAt: base},
	}
	for i := 0; i < MaxSeriesReadings; i++ {
		doc.Readings = append(doc.Readings, models.SeriesEntry{
			RecordedAt: base.Add(time.Duration(i) * time.Hour),
			Reading:    testReading(float64(i)),
		})
	}
	if err := writeJSONFile(store.seriesPath(loc.Name), doc); err != nil {
		t.Fatalf("Seeding series: %v", err)
	}

	if err := store.AppendReading(loc, testReading(9999), base.Add(time.Duration(MaxSeriesReadings)*time.Hour)); err != nil {
		t.Fatalf("AppendReading: %v", err)
	}

	loaded, err := store.LoadSeries(loc.Name)
	if err != nil {
		t.Fatalf("LoadSeries: %v", err)
	}
	if len(loaded.Readings) != MaxSeriesReadings {
		t.Fatalf("Expected series capped at %d, got %d", MaxSeriesReadings, len(loaded.Readings))
	}
	if loaded.Metadata.Count != MaxSeriesReadings {
		t.Errorf("Expected count %d, got %d", MaxSeriesReadings, loaded.Metadata.Count)
	}

	// Oldest reading fell off, newest survived.
	if *loaded.Readings[0].Reading.Temperature != 1 {
		t.Errorf("Expected oldest surviving temperature 1, got %v", *loaded.Readings[0].Reading.Temperature)
	}
	if *loaded.Readings[len(loaded.Readings)-1].Reading.Temperature != 9999 {
		t.Errorf("Expected newest temperature 9999, got %v", *loaded.Readings[len(loaded.Readings)-1].Reading.Temperature)
	}
}

func TestJSONStore_Locations(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	defer store.Close()

	now := time.Now().UTC()
	locations := []models.Location{
		{Name: "Oslo", Lat: 59.91, Lon: 10.75},
		{Name: "Bergen", Lat: 60.39, Lon: 5.32},
	}
	for _, loc := range locations {
		if err := store.AppendReading(loc, testReading(10), now); err != nil {
			t.Fatalf("AppendReading(%s): %v", loc.Name, err)
		}
	}

	names, err := store.Locations()
	if err != nil {
		t.Fatalf("Locations: %v", err)
	}
	if len(names) != 2 || names[0] != "Bergen" || names[1] != "Oslo" {
		t.Errorf("Expected sorted [Bergen Oslo], got %v", names)
	}
}

func TestJSONStore_SnapshotRoundTrip(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	defer store.Close()

	base := time.Date(2025, 9, 17, 8, 0, 0, 0, time.UTC)
	london := testStoreLocation()
	oslo := models.Location{Name: "Oslo", Lat: 59.91, Lon: 10.75}

	for i, snap := range []models.Snapshot{
		{Location: london, Reading: testReading(14), SavedAt: base},
		{Location: oslo, Reading: testReading(9), SavedAt: base.Add(time.Hour)},
		{Location: london, Reading: testReading(16), SavedAt: base.Add(2 * time.Hour)},
	} {
		if err := store.SaveSnapshot(snap); err != nil {
			t.Fatalf("SaveSnapshot %d: %v", i, err)
		}
	}

	londonSnaps, err := store.LoadSnapshots("London, UK")
	if err != nil {
		t.Fatalf("LoadSnapshots: %v", err)
	}
	if len(londonSnaps) != 2 {
		t.Fatalf("Expected 2 London snapshots, got %d", len(londonSnaps))
	}
	if !londonSnaps[0].SavedAt.Equal(base) || !londonSnaps[1].SavedAt.Equal(base.Add(2*time.Hour)) {
		t.Errorf("Expected snapshots oldest first, got %v then %v", londonSnaps[0].SavedAt, londonSnaps[1].SavedAt)
	}
	if *londonSnaps[1].Reading.Temperature != 16 {
		t.Errorf("Unexpected snapshot temperature: %v", *londonSnaps[1].Reading.Temperature)
	}

	all, err := store.LoadSnapshots("")
	if err != nil {
		t.Fatalf("LoadSnapshots all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 snapshots total, got %d", len(all))
	}
}

func TestJSONStore_SnapshotPrune(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	defer store.Close()

	loc := testStoreLocation()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	extra := 5

	for i := 0; i < MaxSnapshotFiles+extra; i++ {
		snap := models.Snapshot{Location: loc, Reading: testReading(float64(i)), SavedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := store.SaveSnapshot(snap); err != nil {
			t.Fatalf("SaveSnapshot %d: %v", i, err)
		}
	}

	snaps, err := store.LoadSnapshots("")
	if err != nil {
		t.Fatalf("LoadSnapshots: %v", err)
	}
	if len(snaps) != MaxSnapshotFiles {
		t.Fatalf("Expected archive pruned to %d, got %d", MaxSnapshotFiles, len(snaps))
	}

	// The oldest files were removed.
	if *snaps[0].Reading.Temperature != float64(extra) {
		t.Errorf("Expected oldest surviving snapshot to be #%d, got temperature %v", extra, *snaps[0].Reading.Temperature)
	}
}

func TestJSONStore_BaselineRoundTrip(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	defer store.Close()

	baseline := models.Baseline{
		Location:     "London, UK",
		Days:         7,
		ReadingCount: 42,
		ComputedAt:   time.Date(2025, 9, 17, 12, 0, 0, 0, time.UTC),
		Metrics: map[string]models.MetricStats{
			"temperature": {Metric: "temperature", Mean: 14.2, Median: 14.0, StdDev: 2.1, Min: 9.5, Max: 19.8, Count: 42},
		},
	}
	if err := store.SaveBaseline(baseline); err != nil {
		t.Fatalf("SaveBaseline: %v", err)
	}

	loaded, err := store.LoadBaseline("London, UK")
	if err != nil {
		t.Fatalf("LoadBaseline: %v", err)
	}
	if loaded.ReadingCount != 42 || loaded.Days != 7 {
		t.Errorf("Unexpected baseline: %+v", loaded)
	}
	temp, ok := loaded.Metrics["temperature"]
	if !ok || temp.Mean != 14.2 {
		t.Errorf("Expected temperature metric preserved, got %+v", loaded.Metrics)
	}

	_, err = store.LoadBaseline("Nowhere")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing baseline, got %v", err)
	}
}

func TestJSONStore_SkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewJSONStore(dir)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	defer store.Close()

	loc := testStoreLocation()
	now := time.Now().UTC()
	if err := store.AppendReading(loc, testReading(12), now); err != nil {
		t.Fatalf("AppendReading: %v", err)
	}
	if err := store.SaveSnapshot(models.Snapshot{Location: loc, Reading: testReading(12), SavedAt: now}); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	// Drop corrupt files next to the real ones.
	if err := os.WriteFile(store.seriesPath("Broken"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing corrupt series: %v", err)
	}
	corruptSnap := filepath.Join(dir, "historical", "broken_"+SnapshotTimestamp(now)+".json")
	if err := os.WriteFile(corruptSnap, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing corrupt snapshot: %v", err)
	}

	names, err := store.Locations()
	if err != nil {
		t.Fatalf("Locations: %v", err)
	}
	if len(names) != 1 || names[0] != "London, UK" {
		t.Errorf("Expected corrupt series skipped, got %v", names)
	}

	snaps, err := store.LoadSnapshots("")
	if err != nil {
		t.Fatalf("LoadSnapshots: %v", err)
	}
	if len(snaps) != 1 {
		t.Errorf("Expected corrupt snapshot skipped, got %d", len(snaps))
	}

	if _, err := store.LoadSeries("Broken"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Expected parse error for corrupt series, got %v", err)
	}
}
