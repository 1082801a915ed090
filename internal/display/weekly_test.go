package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"weathercast/internal/models"
)

func forecastReading(ts string, temp float64, symbol string, precip float64) models.Reading {
	return models.Reading{
		Timestamp:       ts,
		Temperature:     models.Float(temp),
		SymbolCode:      symbol,
		PrecipitationMm: precip,
	}
}

func TestWeeklyEmptyForecast(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).Weekly(nil, time.Now())
	if !strings.Contains(buf.String(), "No detailed forecast data available") {
		t.Errorf("Empty forecast should say so:\n%s", buf.String())
	}
}

func TestWeeklySevenDayView(t *testing.T) {
	now := time.Date(2025, 9, 17, 8, 30, 0, 0, time.UTC)
	forecast := []models.Reading{
		// Today: six entries across the day.
		forecastReading("2025-09-17T07:00:00Z", 10, "clearsky_day", 0),
		forecastReading("2025-09-17T09:00:00Z", 12, "partlycloudy_day", 0),
		forecastReading("2025-09-17T12:00:00Z", 15, "cloudy", 0.5),
		forecastReading("2025-09-17T15:00:00Z", 14, "rain", 1.2),
		forecastReading("2025-09-17T18:00:00Z", 12, "rain", 0.8),
		forecastReading("2025-09-17T22:00:00Z", 10, "clearsky_night", 0),
		// Tomorrow: cloudy dominates two to one.
		forecastReading("2025-09-18T06:00:00Z", 8, "cloudy", 0),
		forecastReading("2025-09-18T12:00:00Z", 13, "cloudy", 0),
		forecastReading("2025-09-18T18:00:00Z", 9, "rain", 2.0),
		// Friday: single dry entry.
		forecastReading("2025-09-19T12:00:00Z", 11, "clearsky_day", 0),
	}

	var buf bytes.Buffer
	NewRenderer(&buf).Weekly(forecast, now)
	out := buf.String()

	if !strings.Contains(out, "Today (Sep 17): 10° → 15° 🌧️2.5mm") {
		t.Errorf("Missing today header:\n%s", out)
	}
	// Hourly strip picks one entry per period.
	for _, want := range []string{"07h", "12h", "15h", "18h", "22h"} {
		if !strings.Contains(out, want) {
			t.Errorf("Hourly strip missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, " | ") != 4 {
		t.Errorf("Expected five hourly items joined by four separators:\n%s", out)
	}
	if strings.Contains(out, "09h") {
		t.Errorf("09h is in the same period as 07h and should not be picked:\n%s", out)
	}

	if !strings.Contains(out, "Tomorrow Sep 18: 13°/8°") {
		t.Errorf("Missing tomorrow line:\n%s", out)
	}
	if !strings.Contains(out, "(2.0mm)") {
		t.Errorf("Tomorrow should show total precipitation:\n%s", out)
	}
	if !strings.Contains(out, "Fri Sep 19: 11°/11°") {
		t.Errorf("Missing Friday line:\n%s", out)
	}
	for _, missing := range []string{"2025-09-20 (Day 4)", "2025-09-21 (Day 5)", "2025-09-22 (Day 6)", "2025-09-23 (Day 7)"} {
		if !strings.Contains(out, missing+": No forecast data available") {
			t.Errorf("Missing placeholder for %s:\n%s", missing, out)
		}
	}
}

func TestWeeklyRepresentativesStrideFallback(t *testing.T) {
	// All entries sit before 06:00, outside every pick period, so the strip
	// falls back to striding over the entries in time order.
	now := time.Date(2025, 9, 17, 1, 0, 0, 0, time.UTC)
	forecast := []models.Reading{
		forecastReading("2025-09-17T00:00:00Z", 5, "clearsky_night", 0),
		forecastReading("2025-09-17T01:00:00Z", 4, "clearsky_night", 0),
		forecastReading("2025-09-17T02:00:00Z", 3, "clearsky_night", 0),
	}

	var buf bytes.Buffer
	NewRenderer(&buf).Weekly(forecast, now)
	out := buf.String()

	for _, want := range []string{"00h", "01h", "02h"} {
		if !strings.Contains(out, want) {
			t.Errorf("Stride fallback missing %q:\n%s", want, out)
		}
	}
}

func TestWeeklySkipsUnparsableTimestamps(t *testing.T) {
	now := time.Date(2025, 9, 17, 8, 0, 0, 0, time.UTC)
	forecast := []models.Reading{
		forecastReading("not-a-time", 10, "cloudy", 0),
		{Temperature: models.Float(11), SymbolCode: "cloudy"},
	}

	var buf bytes.Buffer
	NewRenderer(&buf).Weekly(forecast, now)
	out := buf.String()

	if !strings.Contains(out, "2025-09-17 (Day 1): No forecast data available") {
		t.Errorf("Unparsable entries should leave the day empty:\n%s", out)
	}
}

func TestWeeklyDayWithoutTemperaturesIsSilent(t *testing.T) {
	now := time.Date(2025, 9, 17, 8, 0, 0, 0, time.UTC)
	forecast := []models.Reading{
		{Timestamp: "2025-09-17T12:00:00Z", SymbolCode: "cloudy", PrecipitationMm: 1.0},
	}

	var buf bytes.Buffer
	NewRenderer(&buf).Weekly(forecast, now)
	out := buf.String()

	if strings.Contains(out, "Today") {
		t.Errorf("A day with no temperatures should print no summary line:\n%s", out)
	}
}

func TestDominantSymbolTieBreaksOnFirstSeen(t *testing.T) {
	base := time.Date(2025, 9, 18, 6, 0, 0, 0, time.UTC)
	entries := []hourEntry{
		{at: base, r: models.Reading{SymbolCode: "rain"}},
		{at: base.Add(time.Hour), r: models.Reading{SymbolCode: "cloudy"}},
	}

	symbol, ok := dominantSymbol(entries)
	if !ok || symbol != "rain" {
		t.Errorf("Tie should keep the first seen symbol, got %q ok=%v", symbol, ok)
	}

	if _, ok := dominantSymbol([]hourEntry{{at: base, r: models.Reading{}}}); ok {
		t.Error("All-empty symbols should report no dominant symbol")
	}
}
