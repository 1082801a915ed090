package fetchers

import (
	"context"
	"sync"
	"time"

	"weathercast/internal/logger"
	"weathercast/internal/models"

	"github.com/oklog/ulid/v2"
)

// CollectAll fetches weather for every location concurrently, bounded by
// maxWorkers in-flight requests. One failing location never aborts the batch;
// its result carries Success=false and the error text instead. Results come
// back in the same order the locations went in.
func (f *DataFetcher) CollectAll(ctx context.Context, apiURL string, locations []models.Location, maxHours, maxWorkers int) []models.CollectionResult {
	logger.Info("Starting weather collection", map[string]interface{}{
		"locations": len(locations),
		"workers":   maxWorkers,
	})

	if maxWorkers < 1 {
		maxWorkers = 1
	}

	results := make([]models.CollectionResult, len(locations))
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i, loc := range locations {
		wg.Add(1)
		go func(i int, loc models.Location) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[i] = failedResult(loc, ctx.Err().Error())
				return
			}

			current, forecast, err := f.weather.Fetch(ctx, apiURL, loc, maxHours)
			if err != nil {
				logger.Warnf("Collection failed for %s: %v", loc.Name, err)
				results[i] = failedResult(loc, err.Error())
				return
			}

			results[i] = models.CollectionResult{
				Location: loc,
				Current:  *current,
				Forecast: forecast,
				Success:  true,
			}
		}(i, loc)
	}

	wg.Wait()

	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}
	logger.Info("Weather collection completed", map[string]interface{}{
		"succeeded": succeeded,
		"failed":    len(results) - succeeded,
	})
	return results
}

func failedResult(loc models.Location, errText string) models.CollectionResult {
	return models.CollectionResult{
		Location: loc,
		Success:  false,
		Error:    errText,
	}
}

// BuildCollectionDocument stamps a batch of results with a request id and
// generation time, ready to be written to disk and analyzed later.
func BuildCollectionDocument(results []models.CollectionResult) models.CollectionDocument {
	return models.CollectionDocument{
		RequestID:   ulid.Make().String(),
		GeneratedAt: time.Now().UTC(),
		Results:     results,
	}
}
