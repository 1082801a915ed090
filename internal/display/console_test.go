package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"weathercast/internal/models"
)

func TestCurrentRendersAllMetrics(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Current(
		models.Location{Name: "Oslo", Country: "Norway"},
		models.Reading{
			Temperature:     models.Float(12.5),
			Pressure:        models.Float(1013.25),
			Humidity:        models.Float(72),
			WindSpeed:       models.Float(4.5),
			PrecipitationMm: 0.3,
			SymbolCode:      "partlycloudy_day",
		},
	)

	out := buf.String()
	for _, want := range []string{
		"Current Weather for Oslo, Norway",
		"Temperature: 12.5°C",
		"Pressure: 1013.2 hPa",
		"Humidity: 72%",
		"Wind Speed: 4.5 m/s",
		"Precipitation: 0.3 mm",
		"Partly cloudy",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestCurrentMissingMetricsShowNA(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Current(models.Location{Name: "Oslo"}, models.Reading{})

	out := buf.String()
	if !strings.Contains(out, "Temperature: N/A") {
		t.Errorf("Missing temperature should render N/A:\n%s", out)
	}
	if !strings.Contains(out, "Wind Speed: N/A") {
		t.Errorf("Missing wind should render N/A:\n%s", out)
	}
	if strings.Contains(out, "Precipitation:") {
		t.Errorf("Zero precipitation should not be printed:\n%s", out)
	}
	if !strings.Contains(out, "Unknown") {
		t.Errorf("Empty symbol should render as unknown conditions:\n%s", out)
	}
}

func TestAnalysisRendering(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Analysis(&models.Analysis{
		Status:             "Weather data analyzed successfully",
		Trend:              "analyzing",
		DataPoints:         49,
		ConditionsDetected: []string{"comfortable_temperature", "made_up_tag"},
		ForecastHighlights: []string{"🌡️ Warming trend: +3.2°C expected"},
	})

	out := buf.String()
	for _, want := range []string{
		"Status: Weather data analyzed successfully",
		"Trend: analyzing",
		"Data points: 49",
		"Comfortable temperature",
		"Made Up Tag",
		"Warming trend: +3.2°C expected",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestAnalysisNilIsSilent(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).Analysis(nil)
	if buf.Len() != 0 {
		t.Errorf("Nil analysis should print nothing, got %q", buf.String())
	}
}

func TestAlerts(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Alerts(nil)
	if buf.Len() != 0 {
		t.Errorf("Empty alert list should print nothing, got %q", buf.String())
	}

	r.Alerts([]models.WeatherAlert{{
		Source:      "met.no",
		Event:       "Flood warning",
		Severity:    "High",
		Description: "Heavy rainfall expected across the region.",
		Issued:      time.Date(2025, 9, 17, 14, 0, 0, 0, time.UTC),
	}})

	out := buf.String()
	for _, want := range []string{"[High]", "Flood warning", "met.no", "Heavy rainfall expected"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestAlertsTruncatesLongDescriptions(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Alerts([]models.WeatherAlert{{
		Source:      "met.no",
		Event:       "Storm",
		Severity:    "Extreme",
		Description: strings.Repeat("very long description ", 30),
		Issued:      time.Date(2025, 9, 17, 14, 0, 0, 0, time.UTC),
	}})

	if !strings.Contains(buf.String(), "…") {
		t.Errorf("Long description should be truncated:\n%s", buf.String())
	}
}

func TestSnapshotsSummary(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Snapshots(models.SnapshotSummary{
		Location:    "Oslo",
		DataPoints:  3,
		Temperature: &models.RangeStat{Min: 8, Max: 21, Avg: 14.2},
		Pressure:    &models.RangeStat{Min: 1008, Max: 1021, Avg: 1014.5},
		FirstAt:     "2025-09-17T08:00:00Z",
		LastAt:      "2025-09-17T20:00:00Z",
	})

	out := buf.String()
	for _, want := range []string{
		"History for Oslo",
		"Readings: 3 (2025-09-17T08:00:00Z → 2025-09-17T20:00:00Z)",
		"Temperature: 8.0 .. 21.0°C (avg 14.2)",
		"Pressure: 1008.0 .. 1021.0 hPa (avg 1014.5)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Humidity") {
		t.Errorf("Absent humidity range should not be printed:\n%s", out)
	}
}

func TestSnapshotsEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).Snapshots(models.SnapshotSummary{Location: "Oslo"})
	if !strings.Contains(buf.String(), "No stored readings") {
		t.Errorf("Empty summary should say so:\n%s", buf.String())
	}
}

func TestBaselineRendering(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Baseline(models.Baseline{
		Location:     "Oslo",
		Days:         7,
		ReadingCount: 42,
		Metrics: map[string]models.MetricStats{
			"temperature": {Metric: "temperature", Mean: 14.25, Median: 14.1, StdDev: 2.1, Min: 8, Max: 21, Count: 42},
			"pressure":    {Metric: "pressure", Mean: 1013.5, Median: 1013, StdDev: 4.2, Min: 1001, Max: 1024, Count: 42},
		},
	})

	out := buf.String()
	if !strings.Contains(out, "Baseline for Oslo (last 7 days, 42 readings)") {
		t.Errorf("Missing header:\n%s", out)
	}
	if !strings.Contains(out, "temperature: mean 14.25 median 14.10 stddev 2.10 range 8.0 .. 21.0") {
		t.Errorf("Missing temperature line:\n%s", out)
	}
	tempIdx := strings.Index(out, "temperature:")
	pressIdx := strings.Index(out, "pressure:")
	if tempIdx < 0 || pressIdx < 0 || tempIdx > pressIdx {
		t.Errorf("Metrics should print in fixed order:\n%s", out)
	}
}

func TestReportRendering(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Report(models.HistoryReport{
		Location: "Oslo",
		Window:   "47h",
		Trends: []models.Trend{
			{Metric: "temperature", Direction: "rising", Slope: 0.4, Change: 18.8, Confidence: 0.92, Hours: 47},
		},
		Anomalies: []models.Anomaly{
			{Metric: "pressure", Value: 987, Expected: 1010, Deviation: -7, Severity: "high",
				Kind: "rapid_pressure_change", RecordedAt: time.Date(2025, 9, 17, 14, 0, 0, 0, time.UTC)},
		},
		Patterns: []models.Pattern{
			{Name: "warming_trend", Description: "Sustained temperature rise across readings", Confidence: 0.85},
		},
		Stats: []models.MetricStats{
			{Metric: "temperature", Mean: 14.25, StdDev: 2.1, Min: 8, Max: 21, Count: 12},
		},
	})

	out := buf.String()
	for _, want := range []string{
		"Patterns for Oslo (window 47h)",
		"temperature: rising +0.40/h over 47h (confidence 0.92)",
		"pressure 987.0 at Sep 17 14:00 (rapid_pressure_change, high)",
		"warming_trend: Sustained temperature rise across readings (confidence 0.85)",
		"temperature: mean 14.25 stddev 2.10 range 8.0 .. 21.0 (n=12)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).Report(models.HistoryReport{Location: "Oslo", Window: "0h"})
	if !strings.Contains(buf.String(), "Not enough stored readings") {
		t.Errorf("Empty report should say so:\n%s", buf.String())
	}
}

func TestLocationsListing(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).Locations([]models.Location{
		{Name: "Oslo", Country: "Norway", Lat: 59.9139, Lon: 10.7522},
		{Name: "London, UK", Lat: 51.5074, Lon: -0.1278},
	})

	out := buf.String()
	for _, want := range []string{
		"Configured locations (2):",
		"Oslo, Norway (59.9139, 10.7522)",
		"London, UK (51.5074, -0.1278)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestErrorHelpKnownKind(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).ErrorHelp(ErrKindNetwork, "dial tcp: connection refused")

	out := buf.String()
	for _, want := range []string{
		"Network Connection Problem",
		"Cannot connect to the weather service.",
		"Details: dial tcp: connection refused",
		"Troubleshooting Tips:",
		"• Check your internet connection",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestErrorHelpUnknownKind(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).ErrorHelp("exotic_failure", "")

	out := buf.String()
	if !strings.Contains(out, "Unknown Error") {
		t.Errorf("Unknown kind should get the generic block:\n%s", out)
	}
	if strings.Contains(out, "Details:") {
		t.Errorf("No details were given, none should print:\n%s", out)
	}
}
