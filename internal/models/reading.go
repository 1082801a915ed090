package models

import "time"

// Reading represents one normalized weather snapshot.
//
// The optional metrics (temperature, pressure, humidity, wind speed, wind
// direction, cloud cover) are pointers: nil means the source did not report the
// metric, and any analysis needing it is skipped rather than fed a zero.
// PrecipitationMm and PrecipitationProbability default to 0 when absent, and
// SymbolCode to the empty string. That per-field policy holds everywhere a
// Reading is consumed.
type Reading struct {
	Timestamp                string   `json:"timestamp,omitempty"` // ISO-8601 when present
	Temperature              *float64 `json:"temperature,omitempty"`               // °C
	Pressure                 *float64 `json:"pressure,omitempty"`                  // hPa
	Humidity                 *float64 `json:"humidity,omitempty"`                  // %
	WindSpeed                *float64 `json:"wind_speed,omitempty"`                // m/s
	WindDirection            *float64 `json:"wind_direction,omitempty"`            // degrees
	CloudCover               *float64 `json:"cloud_cover,omitempty"`               // %
	PrecipitationMm          float64  `json:"precipitation_mm"`                    // mm
	PrecipitationProbability float64  `json:"precipitation_probability,omitempty"` // %
	SymbolCode               string   `json:"symbol_code,omitempty"`
}

// Float wraps a literal for the optional metric fields of a Reading.
func Float(v float64) *float64 {
	return &v
}

// Location represents a geographic location weather is collected for.
type Location struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`  // -90 to 90
	Lon     float64 `json:"lon"`  // -180 to 180
	Country string  `json:"country,omitempty"`
}

// CollectionResult is the collected weather for a single location. Failures are
// carried as data (Success=false plus Error) so one bad location never aborts a
// batch run.
type CollectionResult struct {
	Location Location  `json:"location"`
	Current  Reading   `json:"current_weather"`
	Forecast []Reading `json:"forecast,omitempty"`
	Success  bool      `json:"success"`
	Error    string    `json:"error,omitempty"`
}

// CollectionDocument is the file written by the collect command and accepted
// back by the analyze command.
type CollectionDocument struct {
	RequestID   string             `json:"request_id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Results     []CollectionResult `json:"results"`
}

// Snapshot is one persisted point-in-time reading for a location.
type Snapshot struct {
	Location Location  `json:"location"`
	Reading  Reading   `json:"weather"`
	SavedAt  time.Time `json:"saved_at"`
}

// WeatherAlert represents a notable event from an alert feed.
type WeatherAlert struct {
	Source      string    `json:"source"`
	Event       string    `json:"event"`
	Severity    string    `json:"severity"` // Low/Moderate/High/Extreme
	Description string    `json:"description"`
	Issued      time.Time `json:"issued"`
	Link        string    `json:"link,omitempty"`
}
