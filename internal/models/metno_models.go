package models

// MetNoResponse mirrors the met.no locationforecast/2.0 compact document.
type MetNoResponse struct {
	Type     string `json:"type"`
	Geometry struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties struct {
		Meta struct {
			UpdatedAt string `json:"updated_at"`
		} `json:"meta"`
		Timeseries []MetNoTimestep `json:"timeseries"`
	} `json:"properties"`
}

// MetNoTimestep is one entry of the forecast timeseries. Hourly entries carry
// next_1_hours; the 6-hourly tail of the series only carries next_6_hours.
type MetNoTimestep struct {
	Time string `json:"time"`
	Data struct {
		Instant struct {
			Details MetNoInstantDetails `json:"details"`
		} `json:"instant"`
		Next1Hours *MetNoNextHours `json:"next_1_hours,omitempty"`
		Next6Hours *MetNoNextHours `json:"next_6_hours,omitempty"`
	} `json:"data"`
}

// MetNoInstantDetails holds the instantaneous metrics. Pointers, because met.no
// omits metrics it has no value for and absence must survive normalization.
type MetNoInstantDetails struct {
	AirTemperature        *float64 `json:"air_temperature,omitempty"`
	AirPressureAtSeaLevel *float64 `json:"air_pressure_at_sea_level,omitempty"`
	RelativeHumidity      *float64 `json:"relative_humidity,omitempty"`
	WindSpeed             *float64 `json:"wind_speed,omitempty"`
	WindFromDirection     *float64 `json:"wind_from_direction,omitempty"`
	CloudAreaFraction     *float64 `json:"cloud_area_fraction,omitempty"`
}

// MetNoNextHours carries the precipitation summary for the upcoming period.
type MetNoNextHours struct {
	Summary struct {
		SymbolCode string `json:"symbol_code"`
	} `json:"summary"`
	Details struct {
		PrecipitationAmount        float64 `json:"precipitation_amount"`
		ProbabilityOfPrecipitation float64 `json:"probability_of_precipitation"`
	} `json:"details"`
}
