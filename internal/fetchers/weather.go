package fetchers

import (
	"context"
	"encoding/json"
	"fmt"

	"weathercast/internal/logger"
	"weathercast/internal/models"

	"github.com/go-resty/resty/v2"
)

// WeatherFetcher handles fetching forecasts from the met.no locationforecast API
type WeatherFetcher struct {
	client *resty.Client
}

// NewWeatherFetcher creates a new weather fetcher instance
func NewWeatherFetcher(client *resty.Client) *WeatherFetcher {
	return &WeatherFetcher{
		client: client,
	}
}

// Fetch retrieves the compact forecast for a location and normalizes it into
// a current reading plus up to maxHours forecast readings. Entry 0 of the
// timeseries is "now" as far as met.no is concerned; everything after it is
// forecast.
func (f *WeatherFetcher) Fetch(ctx context.Context, apiURL string, loc models.Location, maxHours int) (*models.Reading, []models.Reading, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"lat": fmt.Sprintf("%.4f", loc.Lat),
			"lon": fmt.Sprintf("%.4f", loc.Lon),
		}).
		Get(apiURL)

	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch weather for %s: %w", loc.Name, err)
	}

	if resp.StatusCode() != 200 {
		return nil, nil, fmt.Errorf("weather API returned status %d for %s", resp.StatusCode(), loc.Name)
	}

	var doc models.MetNoResponse
	if err := json.Unmarshal(resp.Body(), &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse weather response for %s: %w", loc.Name, err)
	}

	series := doc.Properties.Timeseries
	if len(series) == 0 {
		return nil, nil, fmt.Errorf("no weather data in API response for %s", loc.Name)
	}

	current := normalizeTimestep(series[0])
	forecast := make([]models.Reading, 0, len(series)-1)
	for _, step := range series[1:] {
		if len(forecast) >= maxHours {
			break
		}
		forecast = append(forecast, normalizeTimestep(step))
	}

	logger.Debug("Normalized weather response", map[string]interface{}{
		"location":       loc.Name,
		"forecast_hours": len(forecast),
	})
	return &current, forecast, nil
}

// normalizeTimestep flattens one timeseries entry into a Reading. Instant
// metrics stay pointers so an absent metric survives as nil instead of a fake
// zero. Precipitation comes from next_1_hours, or next_6_hours for the
// 6-hourly tail of the series where met.no stops publishing hourly summaries.
func normalizeTimestep(step models.MetNoTimestep) models.Reading {
	details := step.Data.Instant.Details
	reading := models.Reading{
		Timestamp:     step.Time,
		Temperature:   details.AirTemperature,
		Pressure:      details.AirPressureAtSeaLevel,
		Humidity:      details.RelativeHumidity,
		WindSpeed:     details.WindSpeed,
		WindDirection: details.WindFromDirection,
		CloudCover:    details.CloudAreaFraction,
	}

	next := step.Data.Next1Hours
	if next == nil {
		next = step.Data.Next6Hours
	}
	if next != nil {
		reading.PrecipitationMm = next.Details.PrecipitationAmount
		reading.PrecipitationProbability = next.Details.ProbabilityOfPrecipitation
		reading.SymbolCode = next.Summary.SymbolCode
	}

	return reading
}
