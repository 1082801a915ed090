package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Coordinates is a saved lat/lon pair for a named location.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone,omitempty"`
}

// Settings holds per-user preferences stored with the locations.
type Settings struct {
	SaveHistoricalData bool `json:"save_historical_data"`
}

// LocationsFile is the on-disk registry of saved locations.
type LocationsFile struct {
	DefaultLocation string                 `json:"default_location"`
	Locations       map[string]Coordinates `json:"locations"`
	Settings        Settings               `json:"settings"`
}

// DefaultLocations returns the registry used when no file exists yet.
func DefaultLocations() *LocationsFile {
	return &LocationsFile{
		DefaultLocation: "London, UK",
		Locations: map[string]Coordinates{
			"London, UK": {Latitude: 51.5074, Longitude: -0.1278},
		},
		Settings: Settings{SaveHistoricalData: true},
	}
}

// LoadLocations reads the registry from path. A missing file yields the
// defaults without error; a corrupt file is an error.
func LoadLocations(path string) (*LocationsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultLocations(), nil
		}
		return nil, fmt.Errorf("failed to read locations file: %w", err)
	}

	var lf LocationsFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to parse locations file %s: %w", path, err)
	}
	if lf.Locations == nil {
		lf.Locations = map[string]Coordinates{}
	}
	if lf.DefaultLocation == "" {
		lf.DefaultLocation = "London, UK"
	}
	return &lf, nil
}

// Save writes the registry to path, creating parent directories as needed.
func (lf *LocationsFile) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(lf, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode locations: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write locations file: %w", err)
	}
	return nil
}

// Add validates and stores a named location.
func (lf *LocationsFile) Add(name string, lat, lon float64, timezone string) error {
	if name == "" {
		return fmt.Errorf("location name cannot be empty")
	}
	if err := ValidateCoordinates(lat, lon); err != nil {
		return err
	}

	if lf.Locations == nil {
		lf.Locations = map[string]Coordinates{}
	}
	lf.Locations[name] = Coordinates{Latitude: lat, Longitude: lon, Timezone: timezone}
	return nil
}

// Remove deletes a named location and reports whether it existed.
func (lf *LocationsFile) Remove(name string) bool {
	if _, ok := lf.Locations[name]; !ok {
		return false
	}
	delete(lf.Locations, name)
	if lf.DefaultLocation == name {
		lf.DefaultLocation = ""
	}
	return true
}

// Coordinates looks up a saved location by name.
func (lf *LocationsFile) Coordinates(name string) (Coordinates, bool) {
	c, ok := lf.Locations[name]
	return c, ok
}

// Names returns the saved location names in sorted order.
func (lf *LocationsFile) Names() []string {
	names := make([]string, 0, len(lf.Locations))
	for name := range lf.Locations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateCoordinates rejects out-of-range latitude or longitude.
func ValidateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %.4f out of range: must be -90 to 90", lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %.4f out of range: must be -180 to 180", lon)
	}
	return nil
}
