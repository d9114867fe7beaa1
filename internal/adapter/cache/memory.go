package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	"exchange-map-service/internal/domain/model"
	"exchange-map-service/internal/metrics"
	"exchange-map-service/pkg/logger"
)

// DefaultTTL is how long a fetched source stays fresh.
const DefaultTTL = 10 * time.Minute

type entry struct {
	timestamp time.Time
	value     []model.RateQuote
}

// MemoryCache holds one entry per source. Stale entries are never evicted,
// they are simply reported absent until the next Set replaces them.
type MemoryCache struct {
	cacheMap map[model.SourceID]entry
	mutex    sync.RWMutex
	cacheTTL time.Duration
	now      func() time.Time
	log      *logger.Logger
	metrics  *metrics.Metrics
}

type Option func(*MemoryCache)

func WithClock(now func() time.Time) Option {
	return func(c *MemoryCache) {
		c.now = now
	}
}

func NewMemoryCache(cacheTTL time.Duration, log *logger.Logger, m *metrics.Metrics, opts ...Option) *MemoryCache {
	c := &MemoryCache{
		cacheMap: make(map[model.SourceID]entry),
		cacheTTL: cacheTTL,
		now:      time.Now,
		log:      log,
		metrics:  m,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *MemoryCache) Get(ctx context.Context, key model.SourceID) ([]model.RateQuote, bool) {
	c.mutex.RLock()
	e, found := c.cacheMap[key]
	c.mutex.RUnlock()

	if !found {
		c.log.Debug("Cache miss", "key", key)
		c.observe(key, "miss")
		return nil, false
	}

	if c.now().Sub(e.timestamp) >= c.cacheTTL {
		c.log.Debug("Cache entry expired", "key", key, "stored_at", e.timestamp)
		c.observe(key, "expired")
		return nil, false
	}

	c.log.Debug("Cache hit", "key", key)
	c.observe(key, "hit")
	return slices.Clone(e.value), true
}

func (c *MemoryCache) Set(ctx context.Context, key model.SourceID, rates []model.RateQuote) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cacheMap[key] = entry{
		timestamp: c.now(),
		value:     slices.Clone(rates),
	}
	c.log.Debug("Cache set", "key", key, "count", len(rates))
}

func (c *MemoryCache) observe(key model.SourceID, result string) {
	if c.metrics == nil {
		return
	}
	c.metrics.CacheLookupsTotal.WithLabelValues(key.String(), result).Inc()
}
