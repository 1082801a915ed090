package history

import (
	"fmt"
	"math"
	"sort"
	"time"

	"weathercast/internal/models"
)

// baselineMetrics are the metrics baselines and series statistics cover, in
// report order.
var baselineMetrics = []string{"temperature", "pressure", "humidity", "wind_speed", "precipitation_mm"}

// sample is one metric value with the moment it was recorded.
type sample struct {
	at time.Time
	v  float64
}

// metricSamples extracts one metric from the series, skipping readings where
// an optional metric is absent.
func metricSamples(entries []models.SeriesEntry, metric string) []sample {
	var samples []sample
	for _, entry := range entries {
		switch metric {
		case "temperature":
			if entry.Reading.Temperature != nil {
				samples = append(samples, sample{at: entry.RecordedAt, v: *entry.Reading.Temperature})
			}
		case "pressure":
			if entry.Reading.Pressure != nil {
				samples = append(samples, sample{at: entry.RecordedAt, v: *entry.Reading.Pressure})
			}
		case "humidity":
			if entry.Reading.Humidity != nil {
				samples = append(samples, sample{at: entry.RecordedAt, v: *entry.Reading.Humidity})
			}
		case "wind_speed":
			if entry.Reading.WindSpeed != nil {
				samples = append(samples, sample{at: entry.RecordedAt, v: *entry.Reading.WindSpeed})
			}
		case "precipitation_mm":
			samples = append(samples, sample{at: entry.RecordedAt, v: entry.Reading.PrecipitationMm})
		}
	}
	return samples
}

func sampleValues(samples []sample) []float64 {
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.v
	}
	return values
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// stdDev is the sample standard deviation (n-1 denominator).
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sumSquares float64
	for _, v := range values {
		diff := v - m
		sumSquares += diff * diff
	}
	return math.Sqrt(sumSquares / float64(len(values)-1))
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeStats summarizes one metric. Needs at least 2 values.
func ComputeStats(metric string, values []float64) *models.MetricStats {
	if len(values) < 2 {
		return nil
	}
	lo, hi := minMax(values)
	return &models.MetricStats{
		Metric: metric,
		Mean:   round2(mean(values)),
		Median: round2(median(values)),
		StdDev: round2(stdDev(values)),
		Min:    lo,
		Max:    hi,
		Count:  len(values),
	}
}

// SeriesStats computes per-metric statistics over the series.
func SeriesStats(entries []models.SeriesEntry) []models.MetricStats {
	var stats []models.MetricStats
	for _, metric := range baselineMetrics {
		if s := ComputeStats(metric, sampleValues(metricSamples(entries, metric))); s != nil {
			stats = append(stats, *s)
		}
	}
	return stats
}

// CalculateBaseline computes the statistical norm over the last days of the
// series. It needs at least 3 readings inside the window.
func CalculateBaseline(doc *models.SeriesDocument, days int) (*models.Baseline, error) {
	if doc == nil || len(doc.Readings) == 0 {
		return nil, fmt.Errorf("no readings stored")
	}

	now := time.Now().UTC()
	cutoff := now.AddDate(0, 0, -days)
	var recent []models.SeriesEntry
	for _, entry := range doc.Readings {
		if !entry.RecordedAt.Before(cutoff) {
			recent = append(recent, entry)
		}
	}
	if len(recent) < 3 {
		return nil, fmt.Errorf("need at least 3 readings in the last %d days, have %d", days, len(recent))
	}

	baseline := &models.Baseline{
		Location:     doc.Metadata.Location,
		Days:         days,
		ReadingCount: len(recent),
		ComputedAt:   now,
		Metrics:      make(map[string]models.MetricStats),
	}
	for _, metric := range baselineMetrics {
		if s := ComputeStats(metric, sampleValues(metricSamples(recent, metric))); s != nil {
			baseline.Metrics[metric] = *s
		}
	}
	return baseline, nil
}

// SummarizeSnapshots aggregates stored snapshots into min/max/avg ranges.
func SummarizeSnapshots(location string, snaps []models.Snapshot) models.SnapshotSummary {
	summary := models.SnapshotSummary{
		Location:   location,
		DataPoints: len(snaps),
	}
	if len(snaps) == 0 {
		return summary
	}

	summary.FirstAt = snaps[0].SavedAt.Format(time.RFC3339)
	summary.LastAt = snaps[len(snaps)-1].SavedAt.Format(time.RFC3339)

	var temps, humidities, pressures []float64
	for _, snap := range snaps {
		if snap.Reading.Temperature != nil {
			temps = append(temps, *snap.Reading.Temperature)
		}
		if snap.Reading.Humidity != nil {
			humidities = append(humidities, *snap.Reading.Humidity)
		}
		if snap.Reading.Pressure != nil {
			pressures = append(pressures, *snap.Reading.Pressure)
		}
	}
	summary.Temperature = rangeStat(temps)
	summary.Humidity = rangeStat(humidities)
	summary.Pressure = rangeStat(pressures)
	return summary
}

func rangeStat(values []float64) *models.RangeStat {
	if len(values) == 0 {
		return nil
	}
	lo, hi := minMax(values)
	return &models.RangeStat{
		Min: lo,
		Max: hi,
		Avg: round1(mean(values)),
	}
}
