package fetchers

import (
	"context"
	"encoding/json"
	"fmt"

	"weathercast/internal/logger"
	"weathercast/internal/models"

	"github.com/go-resty/resty/v2"
)

// IPLocator detects the caller's approximate location from their IP address.
// Accuracy is city level at best, which is plenty for a weather lookup.
type IPLocator struct {
	client *resty.Client
}

// NewIPLocator creates a new IP locator instance
func NewIPLocator(client *resty.Client) *IPLocator {
	return &IPLocator{
		client: client,
	}
}

// Locate tries the primary service first and falls back to the second when
// the primary errors, rate-limits, or returns an unusable document. An error
// comes back only when both services fail.
func (l *IPLocator) Locate(ctx context.Context, primaryURL, fallbackURL string) (*models.Location, error) {
	loc, primaryErr := l.locatePrimary(ctx, primaryURL)
	if primaryErr == nil {
		return loc, nil
	}
	logger.Debug("Primary IP service failed, trying fallback", map[string]interface{}{
		"error": primaryErr.Error(),
	})

	loc, fallbackErr := l.locateFallback(ctx, fallbackURL)
	if fallbackErr == nil {
		return loc, nil
	}

	return nil, fmt.Errorf("IP location failed: %v; fallback: %v", primaryErr, fallbackErr)
}

// locatePrimary queries ipapi.co, which signals errors in-band via an "error"
// field rather than a status code.
func (l *IPLocator) locatePrimary(ctx context.Context, url string) (*models.Location, error) {
	resp, err := l.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)

	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("service returned status %d", resp.StatusCode())
	}

	var data models.IPAPIResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if data.Error {
		return nil, fmt.Errorf("service error: %s", data.Reason)
	}
	if data.City == "" || data.CountryName == "" {
		return nil, fmt.Errorf("incomplete location in response")
	}

	return &models.Location{
		Name:    fmt.Sprintf("%s, %s", data.City, data.CountryName),
		Lat:     data.Latitude,
		Lon:     data.Longitude,
		Country: data.CountryName,
	}, nil
}

// locateFallback queries ip-api.com, which reports success via a "status"
// field.
func (l *IPLocator) locateFallback(ctx context.Context, url string) (*models.Location, error) {
	resp, err := l.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)

	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("service returned status %d", resp.StatusCode())
	}

	var data models.IPFallbackResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if data.Status != "success" || data.City == "" {
		return nil, fmt.Errorf("service reported %q: %s", data.Status, data.Message)
	}

	return &models.Location{
		Name:    fmt.Sprintf("%s, %s", data.City, data.Country),
		Lat:     data.Lat,
		Lon:     data.Lon,
		Country: data.Country,
	}, nil
}
