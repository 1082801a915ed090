package charts

import (
	"bytes"
	"fmt"
	"time"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"weathercast/internal/logger"
	"weathercast/internal/models"
)

// ChartSnippet is an embeddable ECharts fragment for the HTML report.
// HTML holds the rendered chart document; the HTML builder drops it into a
// chart container as-is.
type ChartSnippet struct {
	ID    string
	Title string
	HTML  string
}

// GenerateSnippets builds the interactive charts embedded in the HTML report,
// under the same tolerance rule as the PNG charts: a snippet whose metric is
// missing from the forecast is skipped.
func (cg *ChartGenerator) GenerateSnippets(location string, forecast []models.Reading) ([]ChartSnippet, error) {
	var snippets []ChartSnippet

	if snippet, err := cg.generateTemperatureSnippet(location, forecast); err == nil {
		snippets = append(snippets, snippet)
	} else {
		logger.Warn("Skipping temperature snippet", map[string]interface{}{"error": err.Error()})
	}

	if snippet, err := cg.generatePressureSnippet(location, forecast); err == nil {
		snippets = append(snippets, snippet)
	} else {
		logger.Warn("Skipping pressure snippet", map[string]interface{}{"error": err.Error()})
	}

	if snippet, err := cg.generatePrecipitationSnippet(location, forecast); err == nil {
		snippets = append(snippets, snippet)
	} else {
		logger.Warn("Skipping precipitation snippet", map[string]interface{}{"error": err.Error()})
	}

	return snippets, nil
}

// generateTemperatureSnippet builds a smoothed line chart of forecast temperatures
func (cg *ChartGenerator) generateTemperatureSnippet(location string, forecast []models.Reading) (ChartSnippet, error) {
	xValues, yValues := forecastPoints(forecast, func(r models.Reading) *float64 { return r.Temperature })
	if len(xValues) < 2 {
		return ChartSnippet{}, fmt.Errorf("not enough temperature points to chart: have %d, need 2", len(xValues))
	}

	line := echarts.NewLine()
	line.SetGlobalOptions(
		echarts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "800px",
			Height: "400px",
		}),
		echarts.WithTitleOpts(opts.Title{
			Title:    "Temperature Forecast",
			Subtitle: location,
		}),
		echarts.WithXAxisOpts(opts.XAxis{
			Name: "Time",
		}),
		echarts.WithYAxisOpts(opts.YAxis{
			Name: "°C",
		}),
		echarts.WithLegendOpts(opts.Legend{
			Show: true,
		}),
	)

	line.SetXAxis(axisLabels(xValues)).
		AddSeries("Temperature (°C)", lineValues(yValues)).
		SetSeriesOptions(echarts.WithLineChartOpts(opts.LineChart{Smooth: true}))

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to render temperature snippet: %w", err)
	}

	return ChartSnippet{ID: "chart-temperature", Title: "Temperature Forecast", HTML: buf.String()}, nil
}

// generatePressureSnippet builds a smoothed line chart of forecast pressure
func (cg *ChartGenerator) generatePressureSnippet(location string, forecast []models.Reading) (ChartSnippet, error) {
	xValues, yValues := forecastPoints(forecast, func(r models.Reading) *float64 { return r.Pressure })
	if len(xValues) < 2 {
		return ChartSnippet{}, fmt.Errorf("not enough pressure points to chart: have %d, need 2", len(xValues))
	}

	line := echarts.NewLine()
	line.SetGlobalOptions(
		echarts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "800px",
			Height: "400px",
		}),
		echarts.WithTitleOpts(opts.Title{
			Title:    "Pressure Forecast",
			Subtitle: location,
		}),
		echarts.WithXAxisOpts(opts.XAxis{
			Name: "Time",
		}),
		echarts.WithYAxisOpts(opts.YAxis{
			Name: "hPa",
		}),
		echarts.WithLegendOpts(opts.Legend{
			Show: true,
		}),
	)

	line.SetXAxis(axisLabels(xValues)).
		AddSeries("Pressure (hPa)", lineValues(yValues)).
		SetSeriesOptions(echarts.WithLineChartOpts(opts.LineChart{Smooth: true}))

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to render pressure snippet: %w", err)
	}

	return ChartSnippet{ID: "chart-pressure", Title: "Pressure Forecast", HTML: buf.String()}, nil
}

// generatePrecipitationSnippet builds a bar chart of hourly precipitation.
// Zero-rain hours keep their bars so a dry stretch stays visible.
func (cg *ChartGenerator) generatePrecipitationSnippet(location string, forecast []models.Reading) (ChartSnippet, error) {
	xValues, yValues := forecastPoints(forecast, func(r models.Reading) *float64 {
		v := r.PrecipitationMm
		return &v
	})
	if len(xValues) < 2 {
		return ChartSnippet{}, fmt.Errorf("not enough precipitation points to chart: have %d, need 2", len(xValues))
	}

	bar := echarts.NewBar()
	bar.SetGlobalOptions(
		echarts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "800px",
			Height: "400px",
		}),
		echarts.WithTitleOpts(opts.Title{
			Title:    "Precipitation Forecast",
			Subtitle: location,
		}),
		echarts.WithXAxisOpts(opts.XAxis{
			Name: "Time",
		}),
		echarts.WithYAxisOpts(opts.YAxis{
			Name: "mm",
		}),
	)

	bar.SetXAxis(axisLabels(xValues)).
		AddSeries("Precipitation (mm)", barValues(yValues))

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to render precipitation snippet: %w", err)
	}

	return ChartSnippet{ID: "chart-precipitation", Title: "Precipitation Forecast", HTML: buf.String()}, nil
}

// axisLabels formats the snippet X axis; ECharts thins crowded category
// labels on its own.
func axisLabels(xValues []time.Time) []string {
	format := tickFormat(xValues)
	labels := make([]string, len(xValues))
	for i, t := range xValues {
		labels[i] = t.Format(format)
	}
	return labels
}

func lineValues(yValues []float64) []opts.LineData {
	data := make([]opts.LineData, len(yValues))
	for i, v := range yValues {
		data[i] = opts.LineData{Value: v}
	}
	return data
}

func barValues(yValues []float64) []opts.BarData {
	data := make([]opts.BarData, len(yValues))
	for i, v := range yValues {
		data[i] = opts.BarData{Value: v}
	}
	return data
}
