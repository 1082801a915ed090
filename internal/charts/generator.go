package charts

import (
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"weathercast/internal/logger"
	"weathercast/internal/models"
)

// ChartGenerator handles creation of static chart images
type ChartGenerator struct {
	outputDir string
}

// NewChartGenerator creates a new chart generator writing PNG files into outputDir
func NewChartGenerator(outputDir string) *ChartGenerator {
	return &ChartGenerator{
		outputDir: outputDir,
	}
}

// GenerateCharts creates all chart images for a report. A chart whose metric
// is missing from the forecast is skipped, never fatal.
func (cg *ChartGenerator) GenerateCharts(location string, forecast []models.Reading) ([]string, error) {
	var chartFiles []string

	if tempChart, err := cg.generateTemperatureTrendChart(location, forecast); err == nil {
		chartFiles = append(chartFiles, tempChart)
	} else {
		logger.Warn("Skipping temperature trend chart", map[string]interface{}{"error": err.Error()})
	}

	if pressureChart, err := cg.generatePressureTrendChart(location, forecast); err == nil {
		chartFiles = append(chartFiles, pressureChart)
	} else {
		logger.Warn("Skipping pressure trend chart", map[string]interface{}{"error": err.Error()})
	}

	return chartFiles, nil
}

// forecastPoints extracts the plottable (time, value) pairs for one metric.
// Readings missing the metric or carrying an unparsable timestamp are left out.
func forecastPoints(forecast []models.Reading, metric func(models.Reading) *float64) ([]time.Time, []float64) {
	var xValues []time.Time
	var yValues []float64

	for _, r := range forecast {
		v := metric(r)
		if v == nil {
			continue
		}
		at, err := time.Parse(time.RFC3339, r.Timestamp)
		if err != nil {
			continue
		}
		xValues = append(xValues, at)
		yValues = append(yValues, *v)
	}

	return xValues, yValues
}

// maxAxisTicks caps X axis labels so a week of hourly points stays readable
const maxAxisTicks = 8

// generateTimeTicks thins the X axis down to at most maxAxisTicks labeled ticks
func generateTimeTicks(xValues []time.Time) []chart.Tick {
	var ticks []chart.Tick

	if len(xValues) == 0 {
		return ticks
	}

	format := tickFormat(xValues)
	stride := (len(xValues) + maxAxisTicks - 1) / maxAxisTicks
	if stride < 1 {
		stride = 1
	}
	for i := 0; i < len(xValues); i += stride {
		ticks = append(ticks, chart.Tick{
			Value: chart.TimeToFloat64(xValues[i]),
			Label: xValues[i].Format(format),
		})
	}

	return ticks
}

// tickFormat picks hour labels for short windows and date labels once the
// series spans more than two days.
func tickFormat(xValues []time.Time) string {
	if xValues[len(xValues)-1].Sub(xValues[0]) > 48*time.Hour {
		return "Jan 02"
	}
	return "15:04"
}

// valueRange returns the smallest and largest of values
func valueRange(values []float64) (float64, float64) {
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
