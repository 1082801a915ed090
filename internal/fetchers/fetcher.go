// Package fetchers holds the HTTP clients for every external weather source:
// the met.no forecast API, the Nominatim geocoder, the IP location services,
// and the MET alerts feed. All of them share one resty client so timeouts,
// retries, and the User-Agent header are configured in a single place.
package fetchers

import (
	"context"
	"time"

	"weathercast/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
)

// DataFetcher bundles the per-source fetchers behind a shared HTTP client.
type DataFetcher struct {
	client  *resty.Client
	weather *WeatherFetcher
	locator *IPLocator
	alerts  *AlertsFetcher
}

// NewDataFetcher creates a fetcher with the shared client configured the way
// every source expects it. met.no and Nominatim both require an identifying
// User-Agent, so it is set client-wide.
func NewDataFetcher(userAgent string) *DataFetcher {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(2 * time.Second)
	client.SetHeader("User-Agent", userAgent)

	return &DataFetcher{
		client:  client,
		weather: NewWeatherFetcher(client),
		locator: NewIPLocator(client),
		alerts:  NewAlertsFetcher(client, gofeed.NewParser()),
	}
}

// Client exposes the shared resty client so callers can hang additional
// fetchers (the geocoder and its cache) off the same configuration.
func (f *DataFetcher) Client() *resty.Client {
	return f.client
}

// FetchWeather fetches and normalizes the forecast for one location.
func (f *DataFetcher) FetchWeather(ctx context.Context, apiURL string, loc models.Location, maxHours int) (*models.Reading, []models.Reading, error) {
	return f.weather.Fetch(ctx, apiURL, loc, maxHours)
}

// LocateByIP resolves the caller's approximate location from their IP.
func (f *DataFetcher) LocateByIP(ctx context.Context, primaryURL, fallbackURL string) (*models.Location, error) {
	return f.locator.Locate(ctx, primaryURL, fallbackURL)
}

// FetchAlerts pulls active weather alerts from an RSS/CAP feed.
func (f *DataFetcher) FetchAlerts(ctx context.Context, feedURL string) ([]models.WeatherAlert, error) {
	return f.alerts.Fetch(ctx, feedURL)
}
