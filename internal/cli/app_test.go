package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"weathercast/internal/config"
	"weathercast/internal/display"
	"weathercast/internal/fetchers"
)

// testApp builds an App over a temp directory with a buffered output, no
// network collaborators wired to real endpoints.
func testApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	buf := &bytes.Buffer{}

	cfg := &config.Config{
		MetAPIURL:        "http://127.0.0.1:0",
		NominatimURL:     "http://127.0.0.1:0",
		IPAPIURL:         "http://127.0.0.1:0",
		IPFallbackURL:    "http://127.0.0.1:0",
		AlertsFeedURL:    "http://127.0.0.1:0",
		UserAgent:        "weathercast-test/1.0",
		DataDir:          filepath.Join(dir, "data"),
		StorageBackend:   "json",
		LocationsPath:    filepath.Join(dir, "locations.json"),
		DeploymentMode:   "local",
		LocalReportsDir:  filepath.Join(dir, "reports"),
		MaxWorkers:       2,
		MaxForecastHours: 48,
	}

	app := &App{
		cfg:       cfg,
		locations: config.DefaultLocations(),
		fetcher:   fetchers.NewDataFetcher(cfg.UserAgent),
		out:       buf,
		renderer:  display.NewRenderer(buf),
	}
	app.geocoder = fetchers.NewGeocoder(app.fetcher.Client(), cfg.NominatimURL,
		filepath.Join(dir, "geocode_cache.json"))

	return app, buf
}

func TestResolveLocationSavedCity(t *testing.T) {
	app, _ := testApp(t)

	loc, err := app.resolveLocation(context.Background(), "London, UK", false)
	if err != nil {
		t.Fatalf("resolveLocation() error = %v", err)
	}
	if loc.Name != "London, UK" || loc.Lat != 51.5074 {
		t.Errorf("unexpected location %+v", loc)
	}
}

func TestResolveLocationDefault(t *testing.T) {
	app, _ := testApp(t)

	loc, err := app.resolveLocation(context.Background(), "", false)
	if err != nil {
		t.Fatalf("resolveLocation() error = %v", err)
	}
	if loc.Name != "London, UK" {
		t.Errorf("expected the default location, got %+v", loc)
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"deadline", context.DeadlineExceeded, display.ErrKindTimeout},
		{"timeout text", fmt.Errorf("request timeout after 30s"), display.ErrKindTimeout},
		{"no such host", fmt.Errorf("dial tcp: lookup api.met.no: no such host"), display.ErrKindNetwork},
		{"connection refused", fmt.Errorf("connection refused"), display.ErrKindNetwork},
		{"empty timeseries", fmt.Errorf("no weather data in API response for Oslo"), display.ErrKindIncompleteData},
		{"parse failure", fmt.Errorf("failed to parse weather response: unexpected end of JSON input"), display.ErrKindParsing},
		{"locations file", fmt.Errorf("failed to parse locations file x.json: bad"), display.ErrKindConfig},
		{"api status", fmt.Errorf("weather API returned status 503 for Oslo"), display.ErrKindAPI},
		{"wrapped deadline", fmt.Errorf("fetch: %w", context.DeadlineExceeded), display.ErrKindTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyError(tt.err); got != tt.want {
				t.Errorf("classifyError(%v) = %s, want %s", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassifyErrorWrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", errors.New("connection reset by peer"))
	if got := classifyError(err); got != display.ErrKindNetwork {
		t.Errorf("classifyError() = %s, want %s", got, display.ErrKindNetwork)
	}
}

func TestShortPlaceName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Oslo, 0026, Oslo, Norway", "Oslo"},
		{"Berlin", "Berlin"},
		{" Paris , France", "Paris"},
	}
	for _, tt := range tests {
		if got := shortPlaceName(tt.in); got != tt.want {
			t.Errorf("shortPlaceName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFailPrintsHelp(t *testing.T) {
	app, buf := testApp(t)

	err := app.fail(display.ErrKindNetwork, fmt.Errorf("boom"))
	if err == nil {
		t.Fatal("fail() should pass the error through")
	}
	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("Network Connection Problem")) {
		t.Errorf("missing help block:\n%s", out)
	}
	if !bytes.Contains([]byte(out), []byte("boom")) {
		t.Errorf("missing error details:\n%s", out)
	}
}
