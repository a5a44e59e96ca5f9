// Package marketdata provides OHLCV retrieval with caching.
package marketdata

import (
	"context"
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/signal-desk/internal/models"
)

// CacheKey identifies one cached series
type CacheKey struct {
	Symbol   string
	Interval string
	Limit    int
}

// String returns string representation of cache key
func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%s:%d", k.Symbol, k.Interval, k.Limit)
}

// SeriesCache provides in-memory caching for price series
type SeriesCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewSeriesCache creates a new series cache
func NewSeriesCache(ttl time.Duration) *SeriesCache {
	return &SeriesCache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Get retrieves a cached series
func (sc *SeriesCache) Get(key CacheKey) (models.PriceSeries, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if result, found := sc.cache.Get(key.String()); found {
		if series, ok := result.(models.PriceSeries); ok {
			sc.hitCount++
			return series, true
		}
	}

	sc.missCount++
	return nil, false
}

// Set stores a series in cache
func (sc *SeriesCache) Set(key CacheKey, series models.PriceSeries) {
	sc.cache.Set(key.String(), series, sc.ttl)
}

// Invalidate removes all cache entries for a symbol
func (sc *SeriesCache) Invalidate(symbol string) {
	prefix := symbol + ":"
	for k := range sc.cache.Items() {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			sc.cache.Delete(k)
		}
	}
}

// Clear flushes the entire cache
func (sc *SeriesCache) Clear() {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.cache.Flush()
	sc.hitCount = 0
	sc.missCount = 0
}

// Stats returns cache statistics
func (sc *SeriesCache) Stats() (hits, misses uint64, ratio float64) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	hits = sc.hitCount
	misses = sc.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in cache
func (sc *SeriesCache) ItemCount() int {
	return sc.cache.ItemCount()
}

// CachedSource wraps a Source with a read-through series cache
type CachedSource struct {
	source Source
	cache  *SeriesCache
}

// NewCachedSource creates a caching wrapper around a source
func NewCachedSource(source Source, seriesCache *SeriesCache) *CachedSource {
	return &CachedSource{
		source: source,
		cache:  seriesCache,
	}
}

// FetchBars returns the cached series when fresh, fetching otherwise
func (c *CachedSource) FetchBars(ctx context.Context, symbol, interval string, limit int) (models.PriceSeries, error) {
	key := CacheKey{Symbol: symbol, Interval: interval, Limit: limit}

	if series, found := c.cache.Get(key); found {
		return series, nil
	}

	series, err := c.source.FetchBars(ctx, symbol, interval, limit)
	if err != nil {
		return nil, err
	}

	c.cache.Set(key, series)
	return series, nil
}

// Name returns the underlying source name
func (c *CachedSource) Name() string {
	return c.source.Name()
}

// IsEnabled returns whether the underlying source is enabled
func (c *CachedSource) IsEnabled() bool {
	return c.source.IsEnabled()
}
