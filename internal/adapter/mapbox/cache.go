package mapbox

import (
	"context"
	"fmt"
	"math"

	lru "github.com/hashicorp/golang-lru"

	"github.com/couchcryptid/road-hazard-api/internal/domain"
	"github.com/couchcryptid/road-hazard-api/internal/observability"
)

// CachedGeocoder wraps a ReverseGeocoder with an in-memory LRU cache.
// Coordinates are rounded to 4 decimal places (about 11 m) so reports from
// the same spot share an entry.
type CachedGeocoder struct {
	inner   domain.ReverseGeocoder
	cache   *lru.Cache
	metrics *observability.Metrics
}

// NewCachedGeocoder creates a cache decorator around a geocoder.
func NewCachedGeocoder(inner domain.ReverseGeocoder, maxEntries int, metrics *observability.Metrics) (*CachedGeocoder, error) {
	cache, err := lru.New(maxEntries)
	if err != nil {
		return nil, fmt.Errorf("create geocode cache: %w", err)
	}
	return &CachedGeocoder{inner: inner, cache: cache, metrics: metrics}, nil
}

// ReverseGeocode serves from the cache when possible.
func (c *CachedGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.GeocodingResult, error) {
	key := cacheKey(lat, lon)
	if v, ok := c.cache.Get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return v.(domain.GeocodingResult), nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	result, err := c.inner.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		return result, err
	}
	// Empty results are not cached so a later report can retry.
	if result.FormattedAddress != "" {
		c.cache.Add(key, result)
	}
	return result, nil
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", round4(lat), round4(lon))
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
