package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"weathercast/internal/logger"
	"weathercast/internal/models"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// geocodeCacheTTL is how long a cached place stays valid. Cities do not move,
// but Nominatim data improves, so entries are refreshed eventually.
const geocodeCacheTTL = 30 * 24 * time.Hour

// Geocoder resolves city names to coordinates via Nominatim. Lookups go
// through a 1 req/s rate limiter (Nominatim usage policy) and a JSON file
// cache so repeated queries never hit the network.
type Geocoder struct {
	client    *resty.Client
	baseURL   string
	limiter   *rate.Limiter
	cachePath string

	mu    sync.Mutex
	cache map[string]models.GeocodeEntry
}

// NewGeocoder creates a geocoder backed by a cache file. A missing or corrupt
// cache file is not an error; it just means every query starts cold.
func NewGeocoder(client *resty.Client, baseURL, cachePath string) *Geocoder {
	g := &Geocoder{
		client:    client,
		baseURL:   baseURL,
		limiter:   rate.NewLimiter(rate.Limit(1), 1),
		cachePath: cachePath,
		cache:     make(map[string]models.GeocodeEntry),
	}
	g.loadCache()
	return g
}

// Resolve converts a city name to coordinates. Cache hits are served without
// touching the network or the rate limiter.
func (g *Geocoder) Resolve(ctx context.Context, query string) (*models.GeocodeEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty location query")
	}

	if entry, ok := g.cachedEntry(query); ok {
		logger.Debug("Geocode cache hit", map[string]interface{}{"query": query})
		return &entry, nil
	}

	places, err := g.search(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, fmt.Errorf("no results found for %q", query)
	}

	entry, err := placeToEntry(query, places[0])
	if err != nil {
		return nil, err
	}

	g.storeEntry(query, entry)
	return &entry, nil
}

// Suggest returns up to five distinct places matching an ambiguous query, for
// "did you mean" style help. Results are not cached, they are transient by
// nature.
func (g *Geocoder) Suggest(ctx context.Context, query string) ([]models.GeocodeEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty location query")
	}

	places, err := g.search(ctx, query, 5)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var suggestions []models.GeocodeEntry
	for _, place := range places {
		if seen[place.DisplayName] {
			continue
		}
		seen[place.DisplayName] = true

		entry, err := placeToEntry(query, place)
		if err != nil {
			continue
		}
		suggestions = append(suggestions, entry)
	}
	return suggestions, nil
}

func (g *Geocoder) search(ctx context.Context, query string, limit int) ([]models.NominatimPlace, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":              query,
			"format":         "json",
			"limit":          strconv.Itoa(limit),
			"addressdetails": "1",
		}).
		Get(g.baseURL)

	if err != nil {
		return nil, fmt.Errorf("failed to geocode %q: %w", query, err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("geocoding API returned status %d", resp.StatusCode())
	}

	var places []models.NominatimPlace
	if err := json.Unmarshal(resp.Body(), &places); err != nil {
		return nil, fmt.Errorf("failed to parse geocoding response: %w", err)
	}
	return places, nil
}

// placeToEntry parses the string coordinates Nominatim returns.
func placeToEntry(query string, place models.NominatimPlace) (models.GeocodeEntry, error) {
	lat, err := strconv.ParseFloat(place.Lat, 64)
	if err != nil {
		return models.GeocodeEntry{}, fmt.Errorf("invalid latitude %q in geocoding response", place.Lat)
	}
	lon, err := strconv.ParseFloat(place.Lon, 64)
	if err != nil {
		return models.GeocodeEntry{}, fmt.Errorf("invalid longitude %q in geocoding response", place.Lon)
	}

	return models.GeocodeEntry{
		Query:       query,
		DisplayName: place.DisplayName,
		Lat:         lat,
		Lon:         lon,
		Country:     place.Address.Country,
	}, nil
}

func cacheKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func (g *Geocoder) cachedEntry(query string) (models.GeocodeEntry, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry, ok := g.cache[cacheKey(query)]
	if !ok {
		return models.GeocodeEntry{}, false
	}

	cachedAt, err := time.Parse(time.RFC3339, entry.CachedAt)
	if err != nil || time.Since(cachedAt) > geocodeCacheTTL {
		delete(g.cache, cacheKey(query))
		return models.GeocodeEntry{}, false
	}
	return entry, true
}

func (g *Geocoder) storeEntry(query string, entry models.GeocodeEntry) {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry.CachedAt = time.Now().UTC().Format(time.RFC3339)
	g.cache[cacheKey(query)] = entry
	g.saveCacheLocked()
}

func (g *Geocoder) loadCache() {
	data, err := os.ReadFile(g.cachePath)
	if err != nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := json.Unmarshal(data, &g.cache); err != nil {
		logger.Warnf("Ignoring corrupt geocode cache %s: %v", g.cachePath, err)
		g.cache = make(map[string]models.GeocodeEntry)
		return
	}
	logger.Debug("Loaded geocode cache", map[string]interface{}{
		"path":    g.cachePath,
		"entries": len(g.cache),
	})
}

func (g *Geocoder) saveCacheLocked() {
	if err := os.MkdirAll(filepath.Dir(g.cachePath), 0o755); err != nil {
		logger.Warnf("Could not create geocode cache directory: %v", err)
		return
	}

	data, err := json.MarshalIndent(g.cache, "", "  ")
	if err != nil {
		return
	}
	if err := os.WriteFile(g.cachePath, data, 0o644); err != nil {
		logger.Warnf("Could not save geocode cache: %v", err)
	}
}
