// Package display renders readings, analyses, forecasts, and stored history as
// console text. Translation tables map met.no symbol codes and analyzer
// condition tags to short emoji-prefixed phrases.
package display

import "strings"

// symbolText maps met.no symbol codes to display text. Codes missing here fall
// through to a substring match in TranslateSymbol.
var symbolText = map[string]string{
	"clearsky_day":       "☀️ Clear sky",
	"clearsky_night":     "🌙 Clear night",
	"fair_day":           "🌤️ Fair weather",
	"fair_night":         "🌙 Fair night",
	"partlycloudy_day":   "⛅ Partly cloudy",
	"partlycloudy_night": "☁️ Partly cloudy night",
	"cloudy":             "☁️ Cloudy",
	"rainshowers_day":    "🌦️ Rain showers",
	"rainshowers_night":  "🌧️ Night showers",
	"rain":               "🌧️ Rain",
	"lightrain":          "🌦️ Light rain",
	"heavyrain":          "⛈️ Heavy rain",
	"drizzle":            "🌦️ Drizzle",
	"snow":               "❄️ Snow",
	"lightsnow":          "🌨️ Light snow",
	"heavysnow":          "❄️ Heavy snow",
	"sleet":              "🌨️ Sleet",
	"snowshowers_day":    "🌨️ Snow showers",
	"thunderstorm":       "⛈️ Thunderstorm",
	"fog":                "🌫️ Fog",
	"mist":               "🌫️ Mist",
}

// conditionText maps analyzer condition tags to display text. It covers every
// tag the analyzer emits plus a few historical ones kept for stored documents.
var conditionText = map[string]string{
	"freezing_temperature":                "🧊 Freezing conditions",
	"hot_temperature":                     "🔥 Hot weather",
	"comfortable_temperature":             "😌 Comfortable temperature",
	"very_cold_temperature":               "🧊 Very cold conditions",
	"warm_temperature":                    "🌡️ Warm conditions",
	"high_humidity":                       "💧 Very humid",
	"moderate_humidity":                   "💧 Moderately humid",
	"low_humidity":                        "🏜️ Very dry",
	"low_pressure":                        "📉 Low pressure (storm possible)",
	"high_pressure":                       "📈 High pressure (stable weather)",
	"below_average_pressure":              "📉 Below average pressure",
	"above_average_pressure":              "📈 Above average pressure",
	"light_precipitation":                 "🌦️ Light rain/snow",
	"moderate_precipitation":              "🌧️ Moderate rain/snow",
	"heavy_precipitation":                 "⛈️ Heavy rain/snow",
	"potential_precipitation":             "🌦️ Potential precipitation",
	"high_wind_warning":                   "💨 High wind warning",
	"moderate_wind_warning":               "💨 Moderate wind warning",
	"light_wind_condition":                "🍃 Light wind condition",
	"freezing_precipitation_warning":      "🧊 Freezing precipitation (ice) warning",
	"snow_rain_mix_warning":               "🌨️ Snow/rain mix (sleet) warning",
	"very_high_precipitation_probability": "⛈️ Very high chance of precipitation",
	"high_precipitation_probability":      "🌧️ High chance of precipitation",
	"moderate_precipitation_probability":  "🌦️ Moderate chance of precipitation",
	"overcast_conditions":                 "☁️ Overcast conditions",
	"mostly_cloudy":                       "⛅ Mostly cloudy",
	"partly_cloudy":                       "⛅ Partly cloudy",
	"clear_sky_conditions":                "☀️ Clear sky conditions",
	"humid_and_warm_condition":            "🌡️ Humid and warm conditions",
	"snow_precipitation_expected":         "❄️ Snow expected",
	"mix_precipitation_expected":          "🌨️ Mixed rain/snow expected",
	"high_wind_warning_forecast":          "💨 High wind warning forecast",
	"increasing_wind_forecast":            "💨 Increasing wind forecast",
	"storm_warning":                       "⛈️ Storm warning",
	"storm_prediction":                    "⚠️ Storm prediction",
	"clearing_trend":                      "🌤️ Clearing trend",
	"warming_trend":                       "🌡️ Temperature rising",
	"cooling_trend":                       "❄️ Temperature dropping",
	"pressure_rising":                     "🌪️ Pressure increasing",
	"pressure_dropping":                   "⚠️ Pressure dropping",
	"precipitation_expected":              "🌧️ Rain/snow expected",
	"precipitation_soon":                  "☔ Precipitation coming soon",
	"light_precipitation_trend":           "🌦️ Light precipitation expected",
}

// TranslateSymbol turns a met.no symbol code into display text. Unknown codes
// fall back to a substring guess (clear, cloud, rain, snow, storm, fog) and
// finally to the raw code behind a question mark.
func TranslateSymbol(code string) string {
	if code == "" {
		return "🌤️ Unknown"
	}
	if text, ok := symbolText[code]; ok {
		return text
	}
	lower := strings.ToLower(code)
	switch {
	case strings.Contains(lower, "clear"):
		return "☀️ Clear"
	case strings.Contains(lower, "cloud"):
		return "☁️ Cloudy"
	case strings.Contains(lower, "rain"):
		return "🌧️ Rain"
	case strings.Contains(lower, "snow"):
		return "❄️ Snow"
	case strings.Contains(lower, "storm"):
		return "⛈️ Storm"
	case strings.Contains(lower, "fog"), strings.Contains(lower, "mist"):
		return "🌫️ Fog"
	}
	return "❓ " + code
}

// TranslateCondition turns an analyzer tag into display text. Tags missing
// from the table are title-cased so new analyzer output stays readable without
// a table update.
func TranslateCondition(tag string) string {
	if tag == "" {
		return "🌤️ Unknown"
	}
	if text, ok := conditionText[tag]; ok {
		return text
	}
	return titleWords(tag)
}

// SymbolEmoji returns only the emoji part of a symbol translation, for compact
// layouts like the weekly forecast grid.
func SymbolEmoji(code string) string {
	text := TranslateSymbol(code)
	if emoji, _, ok := strings.Cut(text, " "); ok {
		return emoji
	}
	return text
}

func titleWords(tag string) string {
	words := strings.Split(tag, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
