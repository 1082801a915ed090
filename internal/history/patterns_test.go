package history

import (
	"testing"
	"time"

	"weathercast/internal/models"
)

func patternNames(patterns []models.Pattern) map[string]models.Pattern {
	byName := make(map[string]models.Pattern, len(patterns))
	for _, p := range patterns {
		byName[p.Name] = p
	}
	return byName
}

func TestRecognizePatternsTooFewReadings(t *testing.T) {
	engine := NewEngine()
	base := time.Date(2025, 9, 17, 0, 0, 0, 0, time.UTC)

	if patterns := engine.RecognizePatterns(tempsOnly(base, 10, 15)); len(patterns) != 0 {
		t.Errorf("Expected no patterns for two readings, got %d", len(patterns))
	}
}

func TestRecognizePatternsWarming(t *testing.T) {
	engine := NewEngine()
	base := time.Date(2025, 9, 17, 0, 0, 0, 0, time.UTC)

	patterns := engine.RecognizePatterns(tempsOnly(base, 10, 11, 12, 13, 14))
	if len(patterns) != 1 {
		t.Fatalf("Expected exactly one pattern, got %d: %+v", len(patterns), patterns)
	}

	p := patterns[0]
	if p.Name != "warming_trend" {
		t.Errorf("Expected warming_trend, got %q", p.Name)
	}
	if !closeTo(p.Confidence, 1.0) {
		t.Errorf("Expected confidence 1.0 for every step warming, got %f", p.Confidence)
	}
	if p.Description == "" {
		t.Error("Expected a description")
	}
}

func TestRecognizePatternsCooling(t *testing.T) {
	engine := NewEngine()
	base := time.Date(2025, 9, 17, 0, 0, 0, 0, time.UTC)

	patterns := engine.RecognizePatterns(tempsOnly(base, 14, 13, 12, 11, 10))
	byName := patternNames(patterns)
	if _, ok := byName["cooling_trend"]; !ok {
		t.Errorf("Expected cooling_trend, got %+v", patterns)
	}
	if _, ok := byName["warming_trend"]; ok {
		t.Error("Cooling series must not read as warming")
	}
}

func TestRecognizePatternsShareAtThresholdIsNotEnough(t *testing.T) {
	engine := NewEngine()
	base := time.Date(2025, 9, 17, 0, 0, 0, 0, time.UTC)

	// 3 of 5 steps warm by more than half a degree: exactly 60%, not over it.
	patterns := engine.RecognizePatterns(tempsOnly(base, 10, 11, 12, 13, 12.8, 12.9))
	if len(patterns) != 0 {
		t.Errorf("Expected no patterns at exactly the share threshold, got %+v", patterns)
	}
}

func TestRecognizePatternsHighPressure(t *testing.T) {
	engine := NewEngine()
	base := time.Date(2025, 9, 17, 0, 0, 0, 0, time.UTC)

	patterns := engine.RecognizePatterns(pressuresOnly(base, 1025, 1026, 1027, 1028))
	byName := patternNames(patterns)

	p, ok := byName["high_pressure_system"]
	if !ok {
		t.Fatalf("Expected high_pressure_system, got %+v", patterns)
	}
	if !closeTo(p.Confidence, 1.0) {
		t.Errorf("Expected confidence 1.0, got %f", p.Confidence)
	}
}

func TestRecognizePatternsLowPressureMixed(t *testing.T) {
	engine := NewEngine()
	base := time.Date(2025, 9, 17, 0, 0, 0, 0, time.UTC)

	pressures := []float64{995, 995, 995, 995, 1005, 995, 995, 995, 995, 1005}
	patterns := engine.RecognizePatterns(pressuresOnly(base, pressures...))
	byName := patternNames(patterns)

	p, ok := byName["low_pressure_system"]
	if !ok {
		t.Fatalf("Expected low_pressure_system, got %+v", patterns)
	}
	if !closeTo(p.Confidence, 0.8) {
		t.Errorf("Expected confidence 0.8 with 8 of 10 readings low, got %f", p.Confidence)
	}
}

func TestRecognizePatternsPersistentPrecipitation(t *testing.T) {
	engine := NewEngine()
	base := time.Date(2025, 9, 17, 0, 0, 0, 0, time.UTC)

	entries := hourlyEntries(base,
		models.Reading{PrecipitationMm: 1.2},
		models.Reading{PrecipitationMm: 0.8},
		models.Reading{PrecipitationMm: 0},
		models.Reading{PrecipitationProbability: 80},
	)

	patterns := engine.RecognizePatterns(entries)
	byName := patternNames(patterns)

	p, ok := byName["persistent_precipitation"]
	if !ok {
		t.Fatalf("Expected persistent_precipitation, got %+v", patterns)
	}
	if !closeTo(p.Confidence, 0.75) {
		t.Errorf("Expected confidence 0.75 with 3 of 4 wet readings, got %f", p.Confidence)
	}
}

func TestRecognizePatternsDrySeriesHasNoPrecipitationPattern(t *testing.T) {
	engine := NewEngine()
	base := time.Date(2025, 9, 17, 0, 0, 0, 0, time.UTC)

	entries := hourlyEntries(base,
		models.Reading{PrecipitationMm: 0},
		models.Reading{PrecipitationMm: 0.05},
		models.Reading{PrecipitationMm: 0},
		models.Reading{PrecipitationMm: 0},
	)

	patterns := engine.RecognizePatterns(entries)
	if _, ok := patternNames(patterns)["persistent_precipitation"]; ok {
		t.Errorf("Expected no precipitation pattern for a dry series, got %+v", patterns)
	}
}

func TestRecognizePatternsStableConditions(t *testing.T) {
	engine := NewEngine()
	base := time.Date(2025, 9, 17, 0, 0, 0, 0, time.UTC)

	entries := hourlyEntries(base,
		models.Reading{Temperature: models.Float(20), Pressure: models.Float(1015)},
		models.Reading{Temperature: models.Float(20.5), Pressure: models.Float(1016)},
		models.Reading{Temperature: models.Float(20), Pressure: models.Float(1015)},
		models.Reading{Temperature: models.Float(20.5), Pressure: models.Float(1016)},
		models.Reading{Temperature: models.Float(20), Pressure: models.Float(1015)},
	)

	patterns := engine.RecognizePatterns(entries)
	if len(patterns) != 1 {
		t.Fatalf("Expected exactly one pattern, got %d: %+v", len(patterns), patterns)
	}

	p := patterns[0]
	if p.Name != "stable_conditions" {
		t.Errorf("Expected stable_conditions, got %q", p.Name)
	}
	if !closeTo(p.Confidence, 0.84) {
		t.Errorf("Expected confidence near 0.84, got %f", p.Confidence)
	}
}

func TestRecognizePatternsVolatileSeriesIsNotStable(t *testing.T) {
	engine := NewEngine()
	base := time.Date(2025, 9, 17, 0, 0, 0, 0, time.UTC)

	entries := hourlyEntries(base,
		models.Reading{Temperature: models.Float(10), Pressure: models.Float(1010)},
		models.Reading{Temperature: models.Float(16), Pressure: models.Float(1018)},
		models.Reading{Temperature: models.Float(9), Pressure: models.Float(1005)},
		models.Reading{Temperature: models.Float(17), Pressure: models.Float(1020)},
	)

	patterns := engine.RecognizePatterns(entries)
	if _, ok := patternNames(patterns)["stable_conditions"]; ok {
		t.Errorf("Expected no stable pattern for a volatile series, got %+v", patterns)
	}
}
