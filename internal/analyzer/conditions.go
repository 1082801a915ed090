package analyzer

import (
	"strings"

	"weathercast/internal/models"
)

// rule pairs a threshold predicate with the tag it emits. Each chain is
// evaluated top to bottom and stops at the first match, so chain order is
// the priority order.
type rule struct {
	match func(v float64) bool
	tag   string
}

var temperatureRules = []rule{
	{func(v float64) bool { return v < 0 }, "freezing_temperature"},
	{func(v float64) bool { return v > 30 }, "hot_temperature"},
	{func(v float64) bool { return v >= 20 && v <= 25 }, "comfortable_temperature"},
	{func(v float64) bool { return v < 5 }, "very_cold_temperature"},
	{func(v float64) bool { return v > 25 }, "warm_temperature"},
}

var humidityRules = []rule{
	{func(v float64) bool { return v > 80 }, "high_humidity"},
	{func(v float64) bool { return v > 60 }, "moderate_humidity"},
	{func(v float64) bool { return v < 30 }, "low_humidity"},
}

var pressureRules = []rule{
	{func(v float64) bool { return v < 1000 }, "low_pressure"},
	{func(v float64) bool { return v > 1030 }, "high_pressure"},
	{func(v float64) bool { return v < 1013 }, "below_average_pressure"},
	{func(v float64) bool { return v > 1020 }, "above_average_pressure"},
}

var windRules = []rule{
	{func(v float64) bool { return v > 15 }, "high_wind_warning"},
	{func(v float64) bool { return v > 8 }, "moderate_wind_warning"},
	{func(v float64) bool { return v > 3 }, "light_wind_condition"},
}

var cloudCoverRules = []rule{
	{func(v float64) bool { return v > 90 }, "overcast_conditions"},
	{func(v float64) bool { return v > 70 }, "mostly_cloudy"},
	{func(v float64) bool { return v > 40 }, "partly_cloudy"},
	{func(v float64) bool { return v < 20 }, "clear_sky_conditions"},
}

var probabilityRules = []rule{
	{func(v float64) bool { return v > 70 }, "very_high_precipitation_probability"},
	{func(v float64) bool { return v > 40 }, "high_precipitation_probability"},
	{func(v float64) bool { return v > 20 }, "moderate_precipitation_probability"},
}

// classify returns the first matching tag in the chain.
func classify(v float64, rules []rule) (string, bool) {
	for _, r := range rules {
		if r.match(v) {
			return r.tag, true
		}
	}
	return "", false
}

// classifyOptional skips absent metrics entirely.
func classifyOptional(v *float64, rules []rule) (string, bool) {
	if v == nil {
		return "", false
	}
	return classify(*v, rules)
}

// classifyCurrent tags the current reading. Evaluation order is fixed:
// temperature, humidity, pressure, precipitation, wind, cloud cover,
// temperature/precipitation interaction, precipitation probability,
// heat/humidity compound. Tag order in the result is this order.
func classifyCurrent(r *models.Reading) []string {
	conditions := []string{}

	if tag, ok := classifyOptional(r.Temperature, temperatureRules); ok {
		conditions = append(conditions, tag)
	}
	if tag, ok := classifyOptional(r.Humidity, humidityRules); ok {
		conditions = append(conditions, tag)
	}
	if tag, ok := classifyOptional(r.Pressure, pressureRules); ok {
		conditions = append(conditions, tag)
	}
	conditions = appendPrecipitationTag(conditions, r)
	if tag, ok := classifyOptional(r.WindSpeed, windRules); ok {
		conditions = append(conditions, tag)
	}
	if tag, ok := classifyOptional(r.CloudCover, cloudCoverRules); ok {
		conditions = append(conditions, tag)
	}
	conditions = appendInteractionTag(conditions, r)
	if tag, ok := classify(r.PrecipitationProbability, probabilityRules); ok {
		conditions = append(conditions, tag)
	}
	if r.Temperature != nil && r.Humidity != nil && *r.Temperature > 20 && *r.Humidity > 60 {
		conditions = append(conditions, "humid_and_warm_condition")
	}

	return conditions
}

func appendPrecipitationTag(conditions []string, r *models.Reading) []string {
	p := r.PrecipitationMm
	switch {
	case p > 0 && p < 0.5:
		return append(conditions, "light_precipitation")
	case p > 5:
		return append(conditions, "heavy_precipitation")
	case p > 0:
		return append(conditions, "moderate_precipitation")
	case p == 0 && strings.HasPrefix(r.SymbolCode, "rain"):
		// The symbol can report rain while the gauge still reads zero.
		return append(conditions, "potential_precipitation")
	}
	return conditions
}

// appendInteractionTag warns about ice and sleet when precipitation meets
// temperatures around or below freezing.
func appendInteractionTag(conditions []string, r *models.Reading) []string {
	if r.PrecipitationMm <= 0 || r.Temperature == nil {
		return conditions
	}
	if *r.Temperature < 0 {
		return append(conditions, "freezing_precipitation_warning")
	}
	if *r.Temperature < 4 && r.PrecipitationMm > 0.5 {
		return append(conditions, "snow_rain_mix_warning")
	}
	return conditions
}
