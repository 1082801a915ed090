package models

import "time"

// SeriesDocument is the stored per-location reading series consumed by the
// history engine.
type SeriesDocument struct {
	Metadata SeriesMetadata `json:"metadata"`
	Readings []SeriesEntry  `json:"readings"`
}

// SeriesMetadata describes a stored series.
type SeriesMetadata struct {
	Location  string    `json:"location"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Count     int       `json:"count"`
}

// SeriesEntry is one reading with the moment it was recorded.
type SeriesEntry struct {
	RecordedAt time.Time `json:"recorded_at"`
	Reading    Reading   `json:"reading"`
}

// Trend describes the linear fit of one metric over a series window.
type Trend struct {
	Metric     string  `json:"metric"`
	Direction  string  `json:"direction"`  // rising, falling, stable
	Slope      float64 `json:"slope"`      // units per hour
	Change     float64 `json:"change"`     // slope * window hours
	Confidence float64 `json:"confidence"` // |Pearson r|, 0..1
	Hours      float64 `json:"hours"`
}

// Anomaly is a reading that deviates from the series norm.
type Anomaly struct {
	Metric     string    `json:"metric"`
	Value      float64   `json:"value"`
	Expected   float64   `json:"expected"`
	Deviation  float64   `json:"deviation"` // z-score, or hPa delta for pressure swings
	Severity   string    `json:"severity"`  // low, moderate, high
	Kind       string    `json:"kind"`      // statistical, rapid_pressure_change
	RecordedAt time.Time `json:"recorded_at"`
}

// Pattern is a recognized multi-reading weather regime.
type Pattern struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// MetricStats summarizes one metric across a series.
type MetricStats struct {
	Metric string  `json:"metric"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// Baseline is the per-location statistical norm over a recent window, stored
// alongside the series and shown by the history command.
type Baseline struct {
	Location     string                 `json:"location"`
	Days         int                    `json:"days"`
	ReadingCount int                    `json:"reading_count"`
	ComputedAt   time.Time              `json:"computed_at"`
	Metrics      map[string]MetricStats `json:"metrics"`
}

// HistoryReport bundles everything the patterns command reports for a location.
type HistoryReport struct {
	Location  string        `json:"location"`
	Window    string        `json:"window"`
	Trends    []Trend       `json:"trends"`
	Anomalies []Anomaly     `json:"anomalies"`
	Patterns  []Pattern     `json:"patterns"`
	Stats     []MetricStats `json:"stats"`
}

// RangeStat is a min/max/avg triple for snapshot summaries.
type RangeStat struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// SnapshotSummary aggregates stored snapshots for one location.
type SnapshotSummary struct {
	Location    string     `json:"location"`
	DataPoints  int        `json:"data_points"`
	Temperature *RangeStat `json:"temperature,omitempty"`
	Humidity    *RangeStat `json:"humidity,omitempty"`
	Pressure    *RangeStat `json:"pressure,omitempty"`
	FirstAt     string     `json:"first_reading,omitempty"`
	LastAt      string     `json:"last_reading,omitempty"`
}
