package charts

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"weathercast/internal/models"
)

// standardPressureHPa is mean sea-level pressure; a forecast crossing it is
// moving between high and low pressure regimes.
const standardPressureHPa = 1013.25

// generatePressureTrendChart creates a time series chart of forecast pressure
// with a dashed guide line at standard sea-level pressure.
func (cg *ChartGenerator) generatePressureTrendChart(location string, forecast []models.Reading) (string, error) {
	filename := filepath.Join(cg.outputDir, "pressure_trend.png")

	xValues, yValues := forecastPoints(forecast, func(r models.Reading) *float64 { return r.Pressure })
	if len(xValues) < 2 {
		return "", fmt.Errorf("not enough pressure points to chart: have %d, need 2", len(xValues))
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("Pressure Trend: %s", location),
		TitleStyle: chart.Style{
			FontSize:  16,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   70,
				Right:  20,
				Bottom: 60,
			},
		},
		Height: 350,
		Width:  700,
		XAxis: chart.XAxis{
			Name: "Time (UTC)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 9,
			},
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(time.Time); ok {
					return t.Format("15:04")
				}
				return ""
			},
			Ticks: generateTimeTicks(xValues),
		},
		YAxis: chart.YAxis{
			Name: "Pressure (hPa)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 10,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Pressure",
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 51, G: 102, B: 204, A: 255}, // Blue
					StrokeWidth: 2,
				},
				XValues: xValues,
				YValues: yValues,
			},
			chart.TimeSeries{
				Name: "Standard (1013 hPa)",
				Style: chart.Style{
					StrokeColor:     drawing.Color{R: 128, G: 128, B: 128, A: 200}, // Gray
					StrokeWidth:     1,
					StrokeDashArray: []float64{5, 5},
				},
				XValues: []time.Time{xValues[0], xValues[len(xValues)-1]},
				YValues: []float64{standardPressureHPa, standardPressureHPa},
			},
		},
	}

	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create pressure chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("failed to render pressure chart: %w", err)
	}

	return filename, nil
}
