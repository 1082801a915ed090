// Package cli wires the weathercast commands over the fetchers, storage,
// analyzer, and report layers.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"weathercast/internal/config"
	"weathercast/internal/display"
	"weathercast/internal/fetchers"
	"weathercast/internal/logger"
	"weathercast/internal/models"
	"weathercast/internal/storage"
)

// App carries the collaborators every command shares. They are built once in
// the root command's PersistentPreRunE, after flags are parsed.
type App struct {
	cfg       *config.Config
	locations *config.LocationsFile
	fetcher   *fetchers.DataFetcher
	geocoder  *fetchers.Geocoder
	renderer  *display.Renderer
	out       io.Writer

	jsonOutput bool
	noSave     bool
}

// NewApp creates an app writing to stdout.
func NewApp() *App {
	return &App{out: os.Stdout}
}

func (a *App) setup(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	locations, err := config.LoadLocations(cfg.LocationsPath)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.locations = locations
	a.fetcher = fetchers.NewDataFetcher(cfg.UserAgent)
	a.geocoder = fetchers.NewGeocoder(a.fetcher.Client(), cfg.NominatimURL,
		filepath.Join(cfg.DataDir, "geocode_cache.json"))
	if a.out == nil {
		a.out = os.Stdout
	}
	a.renderer = display.NewRenderer(a.out)
	return nil
}

// resolveLocation picks the target location: IP detection with --auto, an
// explicit city (saved locations first, then Nominatim), or the configured
// default.
func (a *App) resolveLocation(ctx context.Context, city string, auto bool) (*models.Location, error) {
	if auto {
		loc, err := a.fetcher.LocateByIP(ctx, a.cfg.IPAPIURL, a.cfg.IPFallbackURL)
		if err != nil {
			return nil, fmt.Errorf("IP location detection failed: %w", err)
		}
		return loc, nil
	}

	if city == "" {
		city = a.locations.DefaultLocation
	}

	if coords, ok := a.locations.Coordinates(city); ok {
		return &models.Location{Name: city, Lat: coords.Latitude, Lon: coords.Longitude}, nil
	}

	entry, err := a.geocoder.Resolve(ctx, city)
	if err != nil {
		a.printSuggestions(ctx, city)
		return nil, fmt.Errorf("could not find %q: %w", city, err)
	}

	return &models.Location{
		Name:    shortPlaceName(entry.DisplayName),
		Lat:     entry.Lat,
		Lon:     entry.Lon,
		Country: entry.Country,
	}, nil
}

// printSuggestions offers alternative spellings after a failed lookup.
func (a *App) printSuggestions(ctx context.Context, city string) {
	suggestions, err := a.geocoder.Suggest(ctx, city)
	if err != nil || len(suggestions) == 0 {
		return
	}
	fmt.Fprintln(a.out, "Did you mean:")
	for _, s := range suggestions {
		fmt.Fprintf(a.out, "  %s\n", s.DisplayName)
	}
}

// saveReading persists the reading as a series entry plus a snapshot, unless
// saving is turned off. Storage trouble is logged, never fatal; showing the
// weather is the point.
func (a *App) saveReading(loc models.Location, reading models.Reading) {
	if a.noSave || !a.locations.Settings.SaveHistoricalData {
		return
	}

	store, err := storage.NewReadingStore(a.cfg)
	if err != nil {
		logger.Warn("Storage unavailable, reading not saved", map[string]interface{}{"error": err.Error()})
		return
	}
	defer store.Close()

	now := time.Now().UTC()
	if err := store.AppendReading(loc, reading, now); err != nil {
		logger.Warn("Failed to append reading", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := store.SaveSnapshot(models.Snapshot{Location: loc, Reading: reading, SavedAt: now}); err != nil {
		logger.Warn("Failed to save snapshot", map[string]interface{}{"error": err.Error()})
	}
}

// locationName is the stored-data key for a command's city argument.
func (a *App) locationName(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return a.locations.DefaultLocation
}

// fail prints the troubleshooting block for a failure and passes the error on.
func (a *App) fail(kind string, err error) error {
	a.renderer.ErrorHelp(kind, err.Error())
	return err
}

func (a *App) printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Fprintln(a.out, string(data))
	return nil
}

// classifyError maps a failure onto one of display's error-help kinds.
func classifyError(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline"):
		return display.ErrKindTimeout
	case strings.Contains(msg, "no such host"), strings.Contains(msg, "connection"),
		strings.Contains(msg, "dial"), strings.Contains(msg, "network"):
		return display.ErrKindNetwork
	case strings.Contains(msg, "no weather data"):
		return display.ErrKindIncompleteData
	case strings.Contains(msg, "locations file"), strings.Contains(msg, "config"):
		return display.ErrKindConfig
	case strings.Contains(msg, "parse"), strings.Contains(msg, "unmarshal"),
		strings.Contains(msg, "decode"), strings.Contains(msg, "json"):
		return display.ErrKindParsing
	default:
		return display.ErrKindAPI
	}
}

// shortPlaceName trims a Nominatim display name ("Oslo, 0026, Oslo, Norway")
// down to its leading segment.
func shortPlaceName(displayName string) string {
	if name, _, ok := strings.Cut(displayName, ","); ok {
		return strings.TrimSpace(name)
	}
	return displayName
}
