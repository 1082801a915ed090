// Package history runs statistical analysis over stored reading series:
// linear trends, anomaly detection, pattern recognition, and baselines.
package history

import (
	"fmt"
	"sort"
	"time"

	"weathercast/internal/models"
)

// Domain thresholds shared by the detectors.
const (
	highSeverityZ        = 3.0 // z-score that upgrades an anomaly to high
	minMetricStdDev      = 0.1 // below this the metric is flat, no z-scores
	swingThresholdHPa    = 3.0
	swingHighHPa         = 5.0
	trendStepC           = 0.5 // temperature step that counts toward warming/cooling
	trendStepShare       = 0.6
	pressureSystemShare  = 0.7
	highPressureHPa      = 1020.0
	lowPressureHPa       = 1000.0
	wetReadingShare      = 0.5
	stableTempStdDev     = 2.0
	stablePressureStdDev = 3.0
)

// Engine analyzes a stored series. The zero value is not usable; create one
// with NewEngine.
type Engine struct {
	StableSlope        float64       // |slope| at or below this reads as stable
	AnomalyZ           float64       // z-score that flags a reading
	MinAnomalyReadings int           // readings needed before anomaly detection runs
	MinAnomalySpan     time.Duration // series span needed before anomaly detection runs
	SwingWindow        time.Duration // lookback for rapid pressure changes
}

// NewEngine creates an engine with the default thresholds.
func NewEngine() *Engine {
	return &Engine{
		StableSlope:        0.01,
		AnomalyZ:           2.0,
		MinAnomalyReadings: 5,
		MinAnomalySpan:     2 * time.Hour,
		SwingWindow:        4 * time.Hour,
	}
}

// Analyze runs every detector over the series and bundles the results.
func (e *Engine) Analyze(location string, entries []models.SeriesEntry) models.HistoryReport {
	ordered := sortedEntries(entries)
	return models.HistoryReport{
		Location:  location,
		Window:    windowLabel(ordered),
		Trends:    e.AnalyzeTrends(ordered),
		Anomalies: e.DetectAnomalies(ordered),
		Patterns:  e.RecognizePatterns(ordered),
		Stats:     SeriesStats(ordered),
	}
}

// sortedEntries returns a chronological copy so callers' slices stay untouched.
func sortedEntries(entries []models.SeriesEntry) []models.SeriesEntry {
	ordered := make([]models.SeriesEntry, len(entries))
	copy(ordered, entries)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].RecordedAt.Before(ordered[j].RecordedAt)
	})
	return ordered
}

// windowLabel renders the series span as "36h" or "4d".
func windowLabel(entries []models.SeriesEntry) string {
	if len(entries) < 2 {
		return "0h"
	}
	hours := int(entries[len(entries)-1].RecordedAt.Sub(entries[0].RecordedAt).Hours())
	if hours >= 24 {
		return fmt.Sprintf("%dd", hours/24)
	}
	return fmt.Sprintf("%dh", hours)
}
