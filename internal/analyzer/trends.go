package analyzer

import (
	"fmt"

	"weathercast/internal/models"
)

// analyzeForecastTrends scans the near-term window (first 12 entries) and,
// once more than 24 entries exist, the medium-term window (first 48).
// Comparisons against the current reading fall back to 0°C and 1013 hPa
// when the current metric is absent.
func analyzeForecastTrends(forecast []models.Reading, current *models.Reading) models.ForecastInsights {
	insights := emptyInsights()
	if len(forecast) == 0 {
		return insights
	}

	currentTemp := orFloat(current.Temperature, 0)
	currentPressure := orFloat(current.Pressure, 1013)

	nearTerm := forecast
	if len(nearTerm) > 12 {
		nearTerm = nearTerm[:12]
	}
	nearTermTrends(&insights, nearTerm, current, currentTemp, currentPressure)

	mediumTerm := forecast
	if len(mediumTerm) > 48 {
		mediumTerm = mediumTerm[:48]
	}
	if len(mediumTerm) > 24 {
		mediumTermTrends(&insights, mediumTerm, nearTerm)
	}

	return insights
}

func nearTermTrends(insights *models.ForecastInsights, nearTerm []models.Reading, current *models.Reading, currentTemp, currentPressure float64) {
	hours := len(nearTerm)

	if temps := presentValues(nearTerm, temperatureOf); len(temps) > 0 {
		change := temps[len(temps)-1] - currentTemp
		switch {
		case change > 1.5:
			insights.Conditions = append(insights.Conditions, "warming_trend")
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("🌡️ Temperature rising by %.1f°C in next %d hours", change, hours))
		case change < -1.5:
			insights.Conditions = append(insights.Conditions, "cooling_trend")
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("❄️ Temperature dropping by %.1f°C in next %d hours", -change, hours))
		case change > 0.5:
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("🌡️ Slight temperature rise of %.1f°C expected", change))
		case change < -0.5:
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("❄️ Slight temperature drop of %.1f°C expected", -change))
		}
	}

	if pressures := presentValues(nearTerm, pressureOf); len(pressures) > 0 {
		change := pressures[len(pressures)-1] - currentPressure
		switch {
		case change > 2:
			insights.Conditions = append(insights.Conditions, "pressure_rising")
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("🌪️ Pressure increasing by %.1f hPa - improving weather expected", change))
		case change < -2:
			insights.Conditions = append(insights.Conditions, "pressure_dropping")
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("⚠️ Pressure dropping by %.1f hPa - potential weather changes", -change))
		case change > 0.5:
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("📈 Slight pressure rise of %.1f hPa", change))
		case change < -0.5:
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("📉 Slight pressure drop of %.1f hPa", -change))
		}
	}

	first3 := nearTerm
	if len(first3) > 3 {
		first3 = first3[:3]
	}
	switch {
	case anyWet(nearTerm):
		var total float64
		for _, e := range nearTerm {
			total += e.PrecipitationMm
		}
		maxProb := nearTerm[0].PrecipitationProbability
		for _, e := range nearTerm[1:] {
			if e.PrecipitationProbability > maxProb {
				maxProb = e.PrecipitationProbability
			}
		}

		cold, mix, warm := countPrecipHours(nearTerm, currentTemp)
		tag := "precipitation_expected"
		switch {
		case cold > warm && cold > mix:
			tag = "snow_precipitation_expected"
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("❄️ %.1fmm of snow expected in next %d hours", total, hours))
		case mix > 0:
			tag = "mix_precipitation_expected"
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("🌨️ %.1fmm of mixed rain/snow expected in next %d hours", total, hours))
		default:
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("🌧️ %.1fmm of rain expected in next %d hours", total, hours))
		}
		insights.Conditions = append(insights.Conditions, tag)

		if maxProb > 50 {
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("⚠️ High confidence (%.0f%%) in precipitation forecast", maxProb))
		} else if maxProb > 20 {
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("📊 %.0f%% chance of precipitation", maxProb))
		}
	case anyWet(first3):
		// Unreachable: a wet hour in the first three is a wet hour in the
		// window. Kept so the branch order stays visible.
		insights.Conditions = append(insights.Conditions, "precipitation_soon")
		insights.Highlights = append(insights.Highlights, "☔ Precipitation expected in next 3 hours")
	case current.PrecipitationMm > 0 && allDry(nearTerm):
		insights.Highlights = append(insights.Highlights, "🌤️ Precipitation clearing - weather improving")
		insights.Conditions = append(insights.Conditions, "clearing_trend")
	}

	if winds := presentValues(nearTerm, windSpeedOf); len(winds) > 0 {
		maxWind := maxOf(winds)
		windChange := 0.0
		if current.WindSpeed != nil {
			windChange = maxWind - *current.WindSpeed
		}

		switch {
		case maxWind > 12:
			insights.Conditions = append(insights.Conditions, "high_wind_warning_forecast")
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("💨 Strong winds up to %.1f m/s expected in next %d hours", maxWind, hours))
		case windChange > 3:
			insights.Conditions = append(insights.Conditions, "increasing_wind_forecast")
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("💨 Wind speeds increasing to %.1f m/s in next %d hours", maxWind, hours))
		case windChange > 1.5:
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("💨 Wind speeds increasing to %.1f m/s", maxWind))
		}

		minWind := minOf(winds)
		minChange := 0.0
		if current.WindSpeed != nil {
			minChange = minWind - *current.WindSpeed
		}
		if minChange < -1.5 {
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("💨 Wind speeds decreasing to %.1f m/s", minWind))
		}
	}

	if humidities := presentValues(nearTerm, humidityOf); len(humidities) > 0 {
		change := 0.0
		if current.Humidity != nil {
			change = avgOf(humidities) - *current.Humidity
		}
		if change > 10 {
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("💧 Humidity increasing significantly (Δ%.1f%%) - possible rain", change))
		} else if change < -10 {
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("🏜️ Humidity decreasing significantly (Δ%.1f%%) - drier conditions", change))
		}
	}
}

func mediumTermTrends(insights *models.ForecastInsights, mediumTerm, nearTerm []models.Reading) {
	if temps := presentValues(mediumTerm, temperatureOf); len(temps) > 0 {
		maxTemp := maxOf(temps)
		minTemp := minOf(temps)

		tempRange := maxTemp - minTemp
		if tempRange > 8 {
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("🌡️ Large temperature swing of %.1f°C expected", tempRange))
		} else if tempRange > 5 {
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("🌡️ Moderate temperature swing of %.1f°C expected", tempRange))
		}
		if maxTemp > 25 {
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("🔥 High of %.1f°C expected in next 48 hours", maxTemp))
		}
		if minTemp < 5 {
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("🧊 Low of %.1f°C expected in next 48 hours", minTemp))
		}
		if minTemp < 0 {
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("🧊 Freezing temperatures down to %.1f°C expected in next 48 hours", minTemp))
		}
	}

	var total float64
	for _, e := range mediumTerm {
		total += e.PrecipitationMm
	}
	// Entries without a temperature count as mild 10°C here, unlike the
	// near-term window which falls back to the current temperature.
	cold, mix, warm := countPrecipHours(mediumTerm, 10)
	if total > 0 {
		switch {
		case cold > warm && cold > mix:
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("❄️ Snow (%.1fmm) expected in next 48 hours", total))
		case mix > 0:
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("🌨️ Mixed precipitation (%.1fmm) expected in next 48 hours", total))
		case total > 10:
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("💦 Heavy rain (%.1fmm) expected in next 48 hours", total))
		default:
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("🌧️ Rain (%.1fmm) expected in next 48 hours", total))
		}
	} else if total == 0 && anyWet(nearTerm) {
		insights.Highlights = append(insights.Highlights, "🌤️ Precipitation clearing in next 48 hours")
	}

	if winds := presentValues(mediumTerm, windSpeedOf); len(winds) > 0 {
		maxWind := maxOf(winds)
		if maxWind > 18 {
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("💨 Strong winds up to %.1f m/s expected in next 48 hours", maxWind))
			insights.Conditions = append(insights.Conditions, "high_wind_warning")
		} else if maxWind > 12 {
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("💨 Moderate winds up to %.1f m/s expected in next 48 hours", maxWind))
		} else if avg := avgOf(winds); avg > 8 {
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("💨 Sustained moderate winds (avg %.1f m/s) expected", avg))
		}
	}

	if pressures := presentValues(mediumTerm, pressureOf); len(pressures) > 1 {
		trend := pressures[len(pressures)-1] - pressures[0]
		switch {
		case trend < -5:
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("⚠️ Pressure drop (%.1f hPa) - changing weather expected in next 48 hours", trend))
			if trend < -10 {
				insights.Conditions = append(insights.Conditions, "storm_prediction")
			}
		case trend > 5:
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("🌪️ Pressure rise (%.1f hPa) - improving weather expected in next 48 hours", trend))
		case trend > 1:
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("📊 Small rise in pressure (%.1f hPa) expected", trend))
		case trend < -1:
			insights.Highlights = append(insights.Highlights, fmt.Sprintf("📊 Small drop in pressure (%.1f hPa) expected", trend))
		}
	}
}

// countPrecipHours buckets wet hours by temperature band: below 2°C snow,
// 2°C to 4°C mix, above 4°C rain. Entries without a temperature fall back
// to defaultTemp.
func countPrecipHours(entries []models.Reading, defaultTemp float64) (cold, mix, warm int) {
	for _, e := range entries {
		if e.PrecipitationMm <= 0 {
			continue
		}
		t := orFloat(e.Temperature, defaultTemp)
		switch {
		case t < 2:
			cold++
		case t > 4:
			warm++
		default:
			mix++
		}
	}
	return cold, mix, warm
}

func temperatureOf(r models.Reading) *float64 { return r.Temperature }
func pressureOf(r models.Reading) *float64    { return r.Pressure }
func windSpeedOf(r models.Reading) *float64   { return r.WindSpeed }
func humidityOf(r models.Reading) *float64    { return r.Humidity }

// presentValues collects one metric across entries, skipping absent values.
func presentValues(entries []models.Reading, field func(models.Reading) *float64) []float64 {
	vals := make([]float64, 0, len(entries))
	for _, e := range entries {
		if v := field(e); v != nil {
			vals = append(vals, *v)
		}
	}
	return vals
}

func anyWet(entries []models.Reading) bool {
	for _, e := range entries {
		if e.PrecipitationMm > 0 {
			return true
		}
	}
	return false
}

func allDry(entries []models.Reading) bool {
	for _, e := range entries {
		if e.PrecipitationMm != 0 {
			return false
		}
	}
	return true
}

func orFloat(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func maxOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func avgOf(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
