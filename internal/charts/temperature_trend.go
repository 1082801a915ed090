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

// freezingNearC keeps the 0°C guide line off charts where the forecast never
// gets close to freezing; a mild week should not stretch the Y axis to zero.
const freezingNearC = 3.0

// generateTemperatureTrendChart creates a time series chart of forecast
// temperatures with a dashed guide line at freezing.
func (cg *ChartGenerator) generateTemperatureTrendChart(location string, forecast []models.Reading) (string, error) {
	filename := filepath.Join(cg.outputDir, "temperature_trend.png")

	xValues, yValues := forecastPoints(forecast, func(r models.Reading) *float64 { return r.Temperature })
	if len(xValues) < 2 {
		return "", fmt.Errorf("not enough temperature points to chart: have %d, need 2", len(xValues))
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("Temperature Trend: %s", location),
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
			Name: "Temperature (°C)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 10,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Temperature",
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 230, G: 126, B: 34, A: 255}, // Orange
					StrokeWidth: 2,
				},
				XValues: xValues,
				YValues: yValues,
			},
		},
	}

	if minTemp, _ := valueRange(yValues); minTemp <= freezingNearC {
		graph.Series = append(graph.Series, chart.TimeSeries{
			Name: "Freezing (0°C)",
			Style: chart.Style{
				StrokeColor:     drawing.Color{R: 52, G: 152, B: 219, A: 220}, // Blue
				StrokeWidth:     1,
				StrokeDashArray: []float64{5, 5},
			},
			XValues: []time.Time{xValues[0], xValues[len(xValues)-1]},
			YValues: []float64{0, 0},
		})
	}

	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create temperature chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("failed to render temperature chart: %w", err)
	}

	return filename, nil
}
