// Package analyzer classifies a current weather reading against fixed
// thresholds and scans the hourly forecast for near-term and medium-term
// trends. It is a pure computation: no I/O, no shared state, safe for
// concurrent use.
package analyzer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"weathercast/internal/models"
)

// Input is the canonical analysis input, resolved once at the boundary.
// Current may be nil only when Forecast is also empty, which means there
// was nothing to analyze.
type Input struct {
	Current  *models.Reading
	Forecast []models.Reading
}

// Empty reports whether the input carries no data at all.
func (in Input) Empty() bool {
	return in.Current == nil && len(in.Forecast) == 0
}

// ResolveJSON turns a raw payload into an Input. Accepted shapes: a
// collection document with a "results" array (the first successful result
// is analyzed), a collection result with sibling "current_weather" and
// "forecast" keys, a bare reading object (optionally with an embedded
// "forecast" key), and a single-element array wrapping either. Empty,
// null and zero-length payloads resolve to an empty Input.
func ResolveJSON(data []byte) (Input, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Input{}, nil
	}

	switch trimmed[0] {
	case '{':
		return resolveObject(trimmed)
	case '[':
		return resolveArray(trimmed)
	default:
		return Input{}, fmt.Errorf("unsupported payload shape: expected object or array")
	}
}

func resolveObject(data []byte) (Input, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return Input{}, fmt.Errorf("failed to decode weather payload: %w", err)
	}
	if len(keys) == 0 {
		return Input{}, nil
	}

	if raw, ok := keys["results"]; ok {
		return resolveResults(raw)
	}

	_, hasCurrent := keys["current_weather"]
	_, hasForecast := keys["forecast"]
	if hasCurrent && hasForecast {
		var doc struct {
			Current  *models.Reading  `json:"current_weather"`
			Forecast []models.Reading `json:"forecast"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return Input{}, fmt.Errorf("failed to decode collection payload: %w", err)
		}
		if doc.Current == nil {
			doc.Current = &models.Reading{}
		}
		return Input{Current: doc.Current, Forecast: doc.Forecast}, nil
	}

	// Bare reading, possibly carrying its own forecast key.
	current := &models.Reading{}
	if err := json.Unmarshal(data, current); err != nil {
		return Input{}, fmt.Errorf("failed to decode weather reading: %w", err)
	}
	var embedded struct {
		Forecast []models.Reading `json:"forecast"`
	}
	if err := json.Unmarshal(data, &embedded); err != nil {
		return Input{}, fmt.Errorf("failed to decode embedded forecast: %w", err)
	}
	return Input{Current: current, Forecast: embedded.Forecast}, nil
}

// resolveResults picks the first successful entry out of a collection
// document's results array.
func resolveResults(raw json.RawMessage) (Input, error) {
	var results []models.CollectionResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return Input{}, fmt.Errorf("failed to decode collection results: %w", err)
	}

	for _, result := range results {
		if !result.Success {
			continue
		}
		current := result.Current
		return Input{Current: &current, Forecast: result.Forecast}, nil
	}
	return Input{}, nil
}

func resolveArray(data []byte) (Input, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return Input{}, fmt.Errorf("failed to decode weather payload: %w", err)
	}
	if len(elems) == 0 {
		return Input{}, nil
	}

	// Only the first element is analyzed.
	current := &models.Reading{}
	if err := json.Unmarshal(elems[0], current); err != nil {
		return Input{Current: &models.Reading{}}, nil
	}
	var embedded struct {
		Forecast []models.Reading `json:"forecast"`
	}
	if err := json.Unmarshal(elems[0], &embedded); err == nil {
		return Input{Current: current, Forecast: embedded.Forecast}, nil
	}
	return Input{Current: current}, nil
}

// Analyze produces the full analysis for one input. Absent metrics skip
// their classifiers, they never default to a triggering value. The
// top-level trend stays at "analyzing" even when trend tags are found;
// the richer signals live in conditions and highlights.
func Analyze(in Input) *models.Analysis {
	if in.Empty() {
		return &models.Analysis{
			Status:             "No data to analyze",
			Trend:              "unknown",
			ConditionsDetected: []string{},
			ForecastInsights:   emptyInsights(),
		}
	}

	current := in.Current
	if current == nil {
		current = &models.Reading{}
	}

	dataPoints := 1 + len(in.Forecast)
	timestamp := current.Timestamp
	if timestamp == "" {
		timestamp = "unknown"
	}
	trend := "analyzing"
	if dataPoints < 2 {
		trend = "insufficient_data"
	}

	conditions := classifyCurrent(current)

	insights := emptyInsights()
	if len(in.Forecast) > 0 {
		insights = analyzeForecastTrends(in.Forecast, current)
		conditions = append(conditions, insights.Conditions...)
	}

	analysis := &models.Analysis{
		Status:             "Analysis complete",
		DataPoints:         dataPoints,
		Timestamp:          timestamp,
		PatternsDetected:   len(conditions),
		Trend:              trend,
		ForecastHours:      len(in.Forecast),
		ConditionsDetected: conditions,
		ForecastInsights:   insights,
	}

	if len(conditions) == 0 {
		analysis.Summary = "Normal weather conditions"
	} else {
		analysis.Summary = fmt.Sprintf("Detected %d notable conditions: %s", len(conditions), strings.Join(conditions, ", "))
	}
	if len(in.Forecast) > 0 {
		analysis.ForecastHighlights = insights.Highlights
	}

	return analysis
}

// AnalyzeJSON resolves a raw payload and analyzes it in one step.
func AnalyzeJSON(data []byte) (*models.Analysis, error) {
	in, err := ResolveJSON(data)
	if err != nil {
		return nil, err
	}
	return Analyze(in), nil
}

func emptyInsights() models.ForecastInsights {
	return models.ForecastInsights{Conditions: []string{}, Highlights: []string{}}
}
