package analyzer

import (
	"reflect"
	"testing"

	"weathercast/internal/models"
)

func TestTemperatureClassification(t *testing.T) {
	tests := []struct {
		temp float64
		want string
	}{
		{-10.0, "freezing_temperature"},
		{-0.1, "freezing_temperature"},
		{0.0, "very_cold_temperature"},
		{4.9, "very_cold_temperature"},
		{5.0, ""},
		{19.9, ""},
		{20.0, "comfortable_temperature"},
		{22.5, "comfortable_temperature"},
		{25.0, "comfortable_temperature"},
		{25.1, "warm_temperature"},
		{30.0, "warm_temperature"},
		{30.1, "hot_temperature"},
		{40.0, "hot_temperature"},
	}

	for _, tt := range tests {
		tag, ok := classify(tt.temp, temperatureRules)
		if tt.want == "" {
			if ok {
				t.Errorf("temp %.1f: expected no tag, got '%s'", tt.temp, tag)
			}
			continue
		}
		if !ok || tag != tt.want {
			t.Errorf("temp %.1f: expected '%s', got '%s'", tt.temp, tt.want, tag)
		}
	}
}

func TestTemperatureTagsAreMutuallyExclusive(t *testing.T) {
	temperatureTags := map[string]bool{
		"freezing_temperature":    true,
		"hot_temperature":         true,
		"comfortable_temperature": true,
		"very_cold_temperature":   true,
		"warm_temperature":        true,
	}

	// Sweep -20..40 in 0.1 steps. No value may yield more than one
	// temperature tag even though the rule predicates overlap.
	for i := -200; i <= 400; i++ {
		v := float64(i) / 10.0
		conditions := classifyCurrent(&models.Reading{Temperature: models.Float(v)})

		count := 0
		for _, c := range conditions {
			if temperatureTags[c] {
				count++
			}
		}
		if count > 1 {
			t.Fatalf("temp %.1f: expected at most one temperature tag, got %v", v, conditions)
		}
	}
}

func TestHumidityClassification(t *testing.T) {
	tests := []struct {
		humidity float64
		want     string
	}{
		{95.0, "high_humidity"},
		{80.1, "high_humidity"},
		{80.0, "moderate_humidity"},
		{60.1, "moderate_humidity"},
		{60.0, ""},
		{30.0, ""},
		{29.9, "low_humidity"},
		{5.0, "low_humidity"},
	}

	for _, tt := range tests {
		tag, _ := classify(tt.humidity, humidityRules)
		if tag != tt.want {
			t.Errorf("humidity %.1f: expected '%s', got '%s'", tt.humidity, tt.want, tag)
		}
	}
}

func TestPressureClassification(t *testing.T) {
	tests := []struct {
		pressure float64
		want     string
	}{
		{990.0, "low_pressure"},
		{999.9, "low_pressure"},
		{1000.0, "below_average_pressure"},
		{1012.9, "below_average_pressure"},
		{1013.0, ""},
		{1020.0, ""},
		{1020.1, "above_average_pressure"},
		{1030.0, "above_average_pressure"},
		{1030.1, "high_pressure"},
		{1045.0, "high_pressure"},
	}

	for _, tt := range tests {
		tag, _ := classify(tt.pressure, pressureRules)
		if tag != tt.want {
			t.Errorf("pressure %.1f: expected '%s', got '%s'", tt.pressure, tt.want, tag)
		}
	}
}

func TestWindClassification(t *testing.T) {
	tests := []struct {
		wind float64
		want string
	}{
		{20.0, "high_wind_warning"},
		{15.1, "high_wind_warning"},
		{15.0, "moderate_wind_warning"},
		{8.1, "moderate_wind_warning"},
		{8.0, "light_wind_condition"},
		{3.1, "light_wind_condition"},
		{3.0, ""},
		{0.0, ""},
	}

	for _, tt := range tests {
		tag, _ := classify(tt.wind, windRules)
		if tag != tt.want {
			t.Errorf("wind %.1f: expected '%s', got '%s'", tt.wind, tt.want, tag)
		}
	}
}

func TestCloudCoverClassification(t *testing.T) {
	tests := []struct {
		cover float64
		want  string
	}{
		{100.0, "overcast_conditions"},
		{90.1, "overcast_conditions"},
		{90.0, "mostly_cloudy"},
		{70.1, "mostly_cloudy"},
		{70.0, "partly_cloudy"},
		{40.1, "partly_cloudy"},
		{40.0, ""},
		{20.0, ""},
		{19.9, "clear_sky_conditions"},
		{0.0, "clear_sky_conditions"},
	}

	for _, tt := range tests {
		tag, _ := classify(tt.cover, cloudCoverRules)
		if tag != tt.want {
			t.Errorf("cloud cover %.1f: expected '%s', got '%s'", tt.cover, tt.want, tag)
		}
	}
}

func TestProbabilityClassification(t *testing.T) {
	tests := []struct {
		prob float64
		want string
	}{
		{90.0, "very_high_precipitation_probability"},
		{70.1, "very_high_precipitation_probability"},
		{70.0, "high_precipitation_probability"},
		{40.1, "high_precipitation_probability"},
		{40.0, "moderate_precipitation_probability"},
		{20.1, "moderate_precipitation_probability"},
		{20.0, ""},
		{0.0, ""},
	}

	for _, tt := range tests {
		tag, _ := classify(tt.prob, probabilityRules)
		if tag != tt.want {
			t.Errorf("probability %.1f: expected '%s', got '%s'", tt.prob, tt.want, tag)
		}
	}
}

func TestPrecipitationClassification(t *testing.T) {
	tests := []struct {
		name   string
		precip float64
		symbol string
		want   []string
	}{
		{"dry", 0.0, "", nil},
		{"dry clear symbol", 0.0, "clearsky_day", nil},
		{"trace", 0.1, "", []string{"light_precipitation"}},
		{"just under light cutoff", 0.4, "", []string{"light_precipitation"}},
		{"moderate lower bound", 0.5, "", []string{"moderate_precipitation"}},
		{"moderate upper bound", 5.0, "", []string{"moderate_precipitation"}},
		{"heavy", 5.1, "", []string{"heavy_precipitation"}},
		{"downpour", 12.0, "", []string{"heavy_precipitation"}},
		{"symbol says rain gauge says dry", 0.0, "rain", []string{"potential_precipitation"}},
		{"rain showers symbol", 0.0, "rainshowers_day", []string{"potential_precipitation"}},
		{"rain suffix does not count", 0.0, "lightrain", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &models.Reading{PrecipitationMm: tt.precip, SymbolCode: tt.symbol}
			got := appendPrecipitationTag([]string{}, r)
			want := tt.want
			if want == nil {
				want = []string{}
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Expected %v, got %v", want, got)
			}
		})
	}
}

func TestInteractionWarnings(t *testing.T) {
	tests := []struct {
		name   string
		temp   *float64
		precip float64
		want   []string
	}{
		{"freezing rain", models.Float(-1.0), 1.0, []string{"freezing_precipitation_warning"}},
		{"light freezing drizzle", models.Float(-5.0), 0.1, []string{"freezing_precipitation_warning"}},
		{"sleet range", models.Float(3.0), 0.6, []string{"snow_rain_mix_warning"}},
		{"sleet range but too light", models.Float(3.0), 0.4, nil},
		{"cold rain above mix band", models.Float(4.0), 2.0, nil},
		{"warm rain", models.Float(15.0), 2.0, nil},
		{"freezing but dry", models.Float(-5.0), 0.0, nil},
		{"no temperature", nil, 5.0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &models.Reading{Temperature: tt.temp, PrecipitationMm: tt.precip}
			got := appendInteractionTag([]string{}, r)
			want := tt.want
			if want == nil {
				want = []string{}
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Expected %v, got %v", want, got)
			}
		})
	}
}

func TestCompoundHeatHumidity(t *testing.T) {
	tests := []struct {
		name     string
		temp     *float64
		humidity *float64
		expect   bool
	}{
		{"warm and humid", models.Float(21.0), models.Float(61.0), true},
		{"hot and humid", models.Float(30.0), models.Float(90.0), true},
		{"boundary temp excluded", models.Float(20.0), models.Float(70.0), false},
		{"boundary humidity excluded", models.Float(25.0), models.Float(60.0), false},
		{"missing humidity", models.Float(25.0), nil, false},
		{"missing temperature", nil, models.Float(90.0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &models.Reading{Temperature: tt.temp, Humidity: tt.humidity}
			conditions := classifyCurrent(r)

			found := false
			for _, c := range conditions {
				if c == "humid_and_warm_condition" {
					found = true
				}
			}
			if found != tt.expect {
				t.Errorf("Expected humid_and_warm_condition=%v, got conditions %v", tt.expect, conditions)
			}
		})
	}
}

func TestAbsentMetricsSkipClassifiers(t *testing.T) {
	conditions := classifyCurrent(&models.Reading{})

	if len(conditions) != 0 {
		t.Errorf("Expected no conditions for a blank reading, got %v", conditions)
	}
}

func TestClassifierEvaluationOrder(t *testing.T) {
	// Every classifier firing at once, in the fixed evaluation order.
	r := &models.Reading{
		Temperature:              models.Float(22.0),
		Humidity:                 models.Float(85.0),
		Pressure:                 models.Float(995.0),
		PrecipitationMm:          2.0,
		PrecipitationProbability: 80.0,
		WindSpeed:                models.Float(16.0),
		CloudCover:               models.Float(95.0),
	}

	want := []string{
		"comfortable_temperature",
		"high_humidity",
		"low_pressure",
		"moderate_precipitation",
		"high_wind_warning",
		"overcast_conditions",
		"very_high_precipitation_probability",
		"humid_and_warm_condition",
	}
	got := classifyCurrent(r)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Evaluation order mismatch:\nexpected %v\ngot      %v", want, got)
	}
}
