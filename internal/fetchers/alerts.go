package fetchers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"weathercast/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
)

// AlertRetentionHours is how far back feed items still count as active.
const AlertRetentionHours = 24

// AlertsFetcher handles fetching weather alerts from an RSS/CAP feed
type AlertsFetcher struct {
	client *resty.Client
	parser *gofeed.Parser
}

// NewAlertsFetcher creates a new alerts fetcher instance
func NewAlertsFetcher(client *resty.Client, parser *gofeed.Parser) *AlertsFetcher {
	return &AlertsFetcher{
		client: client,
		parser: parser,
	}
}

// Fetch pulls the alert feed, keeps items published within the last 24 hours,
// and classifies their severity from the title.
func (f *AlertsFetcher) Fetch(ctx context.Context, feedURL string) ([]models.WeatherAlert, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(feedURL)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch alerts feed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("alerts feed returned status %d", resp.StatusCode())
	}

	feed, err := f.parser.ParseString(string(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse alerts feed: %w", err)
	}

	cutoff := time.Now().Add(-AlertRetentionHours * time.Hour)

	var alerts []models.WeatherAlert
	for _, item := range feed.Items {
		if item.PublishedParsed == nil || !item.PublishedParsed.After(cutoff) {
			continue
		}

		alerts = append(alerts, models.WeatherAlert{
			Source:      feed.Title,
			Event:       item.Title,
			Severity:    classifySeverity(item.Title),
			Description: item.Description,
			Issued:      *item.PublishedParsed,
			Link:        item.Link,
		})
	}

	return alerts, nil
}

// classifySeverity maps title keywords to a severity level. Feeds that carry
// proper CAP severity levels usually repeat them in the title, so keyword
// matching covers both styles.
func classifySeverity(title string) string {
	title = strings.ToLower(title)
	switch {
	case strings.Contains(title, "extreme") || strings.Contains(title, "red"):
		return "Extreme"
	case strings.Contains(title, "severe") || strings.Contains(title, "orange"):
		return "High"
	case strings.Contains(title, "moderate") || strings.Contains(title, "yellow"):
		return "Moderate"
	default:
		return "Low"
	}
}
