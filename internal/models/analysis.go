package models

// Analysis is the analyzer output for one (current, forecast) input.
//
// PatternsDetected always equals len(ConditionsDetected). Trend is a data-volume
// classification ("unknown", "insufficient_data", "analyzing"), not a summary of
// the forecast trend tags. For empty input only Status, Trend, DataPoints and
// PatternsDetected are meaningful; the remaining fields stay at their zero
// values.
type Analysis struct {
	Status             string           `json:"status"`
	DataPoints         int              `json:"data_points"`
	Timestamp          string           `json:"timestamp,omitempty"`
	PatternsDetected   int              `json:"patterns_detected"`
	Trend              string           `json:"trend"`
	ForecastHours      int              `json:"forecast_hours"`
	ConditionsDetected []string         `json:"conditions_detected"`
	ForecastInsights   ForecastInsights `json:"forecast_insights"`
	Summary            string           `json:"summary,omitempty"`
	ForecastHighlights []string         `json:"forecast_highlights,omitempty"`
}

// ForecastInsights holds the forecast-trend findings: Conditions are tag strings
// folded into ConditionsDetected, Highlights are display-ready text kept in
// detector evaluation order with no deduplication.
type ForecastInsights struct {
	Conditions []string `json:"conditions"`
	Highlights []string `json:"highlights"`
}

// Empty reports whether forecast analysis produced nothing.
func (fi ForecastInsights) Empty() bool {
	return len(fi.Conditions) == 0 && len(fi.Highlights) == 0
}
