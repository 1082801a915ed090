package history

import (
	"math"

	"weathercast/internal/models"
)

// anomalyMetrics are the metrics z-score detection covers.
var anomalyMetrics = []string{"temperature", "pressure", "humidity", "wind_speed"}

// DetectAnomalies flags readings that deviate from the series norm, plus
// rapid pressure changes. It needs MinAnomalyReadings readings spanning at
// least MinAnomalySpan.
func (e *Engine) DetectAnomalies(entries []models.SeriesEntry) []models.Anomaly {
	if len(entries) < e.MinAnomalyReadings {
		return nil
	}
	ordered := sortedEntries(entries)
	span := ordered[len(ordered)-1].RecordedAt.Sub(ordered[0].RecordedAt)
	if span < e.MinAnomalySpan {
		return nil
	}

	var anomalies []models.Anomaly
	for _, metric := range anomalyMetrics {
		anomalies = append(anomalies, e.zScoreAnomalies(metric, metricSamples(ordered, metric))...)
	}
	anomalies = append(anomalies, e.pressureSwings(metricSamples(ordered, "pressure"))...)
	return anomalies
}

// zScoreAnomalies flags samples more than AnomalyZ standard deviations from
// the metric mean. Flat metrics (stddev below minMetricStdDev) are skipped.
func (e *Engine) zScoreAnomalies(metric string, samples []sample) []models.Anomaly {
	if len(samples) < e.MinAnomalyReadings {
		return nil
	}

	values := sampleValues(samples)
	m := mean(values)
	sd := stdDev(values)
	if sd < minMetricStdDev {
		return nil
	}

	var anomalies []models.Anomaly
	for _, s := range samples {
		z := (s.v - m) / sd
		if math.Abs(z) <= e.AnomalyZ {
			continue
		}
		severity := "moderate"
		if math.Abs(z) > highSeverityZ {
			severity = "high"
		}
		anomalies = append(anomalies, models.Anomaly{
			Metric:     metric,
			Value:      s.v,
			Expected:   round2(m),
			Deviation:  round2(z),
			Severity:   severity,
			Kind:       "statistical",
			RecordedAt: s.at,
		})
	}
	return anomalies
}

// pressureSwings flags pressure moving more than swingThresholdHPa across the
// engine's sliding window; such swings often precede weather fronts.
func (e *Engine) pressureSwings(samples []sample) []models.Anomaly {
	var anomalies []models.Anomaly
	for i, s := range samples {
		earliest := -1
		for j := 0; j < i; j++ {
			age := s.at.Sub(samples[j].at)
			if age > 0 && age <= e.SwingWindow {
				earliest = j
				break
			}
		}
		if earliest < 0 {
			continue
		}

		delta := s.v - samples[earliest].v
		if math.Abs(delta) <= swingThresholdHPa {
			continue
		}
		severity := "moderate"
		if math.Abs(delta) > swingHighHPa {
			severity = "high"
		}
		anomalies = append(anomalies, models.Anomaly{
			Metric:     "pressure",
			Value:      s.v,
			Expected:   samples[earliest].v,
			Deviation:  round2(delta),
			Severity:   severity,
			Kind:       "rapid_pressure_change",
			RecordedAt: s.at,
		})
	}
	return anomalies
}
