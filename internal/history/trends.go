package history

import (
	"math"

	"weathercast/internal/models"
)

// trendMetrics are the metrics trend analysis covers, in report order.
var trendMetrics = []string{"temperature", "pressure", "humidity", "wind_speed"}

// AnalyzeTrends fits a least-squares line per metric and reports direction,
// change over the window, and a Pearson-r confidence.
func (e *Engine) AnalyzeTrends(entries []models.SeriesEntry) []models.Trend {
	if len(entries) < 2 {
		return nil
	}
	ordered := sortedEntries(entries)

	var trends []models.Trend
	for _, metric := range trendMetrics {
		if trend := e.metricTrend(metric, metricSamples(ordered, metric)); trend != nil {
			trends = append(trends, *trend)
		}
	}
	return trends
}

func (e *Engine) metricTrend(metric string, samples []sample) *models.Trend {
	if len(samples) < 2 {
		return nil
	}

	slope, confidence, ok := linearFit(samples)
	if !ok {
		return nil
	}

	direction := "stable"
	if math.Abs(slope) > e.StableSlope {
		if slope > 0 {
			direction = "rising"
		} else {
			direction = "falling"
		}
	}

	hours := samples[len(samples)-1].at.Sub(samples[0].at).Hours()
	return &models.Trend{
		Metric:     metric,
		Direction:  direction,
		Slope:      slope,
		Change:     slope * hours,
		Confidence: confidence,
		Hours:      hours,
	}
}

// linearFit computes the least-squares slope in units per hour and the
// absolute Pearson correlation. ok is false when the samples share one
// timestamp and no line can be fitted.
func linearFit(samples []sample) (slope, confidence float64, ok bool) {
	n := len(samples)
	if n < 2 {
		return 0, 0, false
	}

	base := samples[0].at
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, s := range samples {
		xs[i] = s.at.Sub(base).Hours()
		ys[i] = s.v
	}

	meanX := mean(xs)
	meanY := mean(ys)

	var sumXY, sumXX, sumYY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		sumXY += dx * dy
		sumXX += dx * dx
		sumYY += dy * dy
	}
	if sumXX == 0 {
		return 0, 0, false
	}

	slope = sumXY / sumXX

	// Pearson r is undefined for a flat series; report zero confidence.
	if sumYY == 0 {
		return slope, 0, true
	}
	confidence = math.Abs(sumXY / math.Sqrt(sumXX*sumYY))
	return slope, confidence, true
}
