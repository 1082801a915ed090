package history

import (
	"math"

	"weathercast/internal/models"
)

// RecognizePatterns looks for multi-reading weather regimes in the series.
func (e *Engine) RecognizePatterns(entries []models.SeriesEntry) []models.Pattern {
	if len(entries) < 3 {
		return nil
	}
	ordered := sortedEntries(entries)

	var patterns []models.Pattern
	if p := e.temperatureRunPattern(ordered, 1); p != nil {
		patterns = append(patterns, *p)
	}
	if p := e.temperatureRunPattern(ordered, -1); p != nil {
		patterns = append(patterns, *p)
	}
	if p := e.pressureSystemPattern(ordered, 1); p != nil {
		patterns = append(patterns, *p)
	}
	if p := e.pressureSystemPattern(ordered, -1); p != nil {
		patterns = append(patterns, *p)
	}
	if p := e.precipitationPattern(ordered); p != nil {
		patterns = append(patterns, *p)
	}
	if p := e.stablePattern(ordered); p != nil {
		patterns = append(patterns, *p)
	}
	return patterns
}

// temperatureRunPattern detects sustained warming (sign +1) or cooling
// (sign -1): more than trendStepShare of consecutive steps moving more than
// trendStepC the same way.
func (e *Engine) temperatureRunPattern(entries []models.SeriesEntry, sign float64) *models.Pattern {
	samples := metricSamples(entries, "temperature")
	if len(samples) < 4 {
		return nil
	}

	steps := len(samples) - 1
	moving := 0
	for i := 1; i < len(samples); i++ {
		if sign*(samples[i].v-samples[i-1].v) > trendStepC {
			moving++
		}
	}

	share := float64(moving) / float64(steps)
	if share <= trendStepShare {
		return nil
	}

	name := "warming_trend"
	description := "Temperature is climbing steadily across the stored readings"
	if sign < 0 {
		name = "cooling_trend"
		description = "Temperature is dropping steadily across the stored readings"
	}
	return &models.Pattern{
		Name:        name,
		Description: description,
		Confidence:  round2(trendStepShare + share*(1-trendStepShare)),
	}
}

// pressureSystemPattern detects a dominant high (sign +1) or low (sign -1)
// pressure system: more than pressureSystemShare of readings beyond the
// threshold.
func (e *Engine) pressureSystemPattern(entries []models.SeriesEntry, sign float64) *models.Pattern {
	samples := metricSamples(entries, "pressure")
	if len(samples) < 3 {
		return nil
	}

	beyond := 0
	for _, s := range samples {
		if sign > 0 && s.v > highPressureHPa {
			beyond++
		}
		if sign < 0 && s.v < lowPressureHPa {
			beyond++
		}
	}

	share := float64(beyond) / float64(len(samples))
	if share <= pressureSystemShare {
		return nil
	}

	name := "high_pressure_system"
	description := "A high pressure system is holding; expect settled weather"
	if sign < 0 {
		name = "low_pressure_system"
		description = "A low pressure system is holding; expect unsettled weather"
	}
	return &models.Pattern{
		Name:        name,
		Description: description,
		Confidence:  round2(share),
	}
}

// precipitationPattern detects persistent wet conditions: more than
// wetReadingShare of readings with measurable precipitation or a high
// precipitation probability.
func (e *Engine) precipitationPattern(entries []models.SeriesEntry) *models.Pattern {
	wet := 0
	for _, entry := range entries {
		if entry.Reading.PrecipitationMm > 0.1 || entry.Reading.PrecipitationProbability > 50 {
			wet++
		}
	}

	share := float64(wet) / float64(len(entries))
	if share <= wetReadingShare {
		return nil
	}
	return &models.Pattern{
		Name:        "persistent_precipitation",
		Description: "Precipitation keeps showing up across the stored readings",
		Confidence:  round2(share),
	}
}

// stablePattern detects settled conditions: low spread in both temperature
// and pressure across the series.
func (e *Engine) stablePattern(entries []models.SeriesEntry) *models.Pattern {
	temps := sampleValues(metricSamples(entries, "temperature"))
	pressures := sampleValues(metricSamples(entries, "pressure"))
	if len(temps) < 4 || len(pressures) < 4 {
		return nil
	}

	tempSD := stdDev(temps)
	pressureSD := stdDev(pressures)
	if tempSD >= stableTempStdDev || pressureSD >= stablePressureStdDev {
		return nil
	}

	confidence := 1 - (tempSD/stableTempStdDev+pressureSD/stablePressureStdDev)/2
	return &models.Pattern{
		Name:        "stable_conditions",
		Description: "Temperature and pressure are holding steady",
		Confidence:  round2(math.Max(0, confidence)),
	}
}
