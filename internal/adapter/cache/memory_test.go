package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exchange-map-service/internal/domain/model"
	"exchange-map-service/internal/metrics"
	"exchange-map-service/pkg/logger"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(clock *fakeClock) (*MemoryCache, *metrics.Metrics) {
	m := metrics.NewMetrics(prometheus.NewRegistry())
	return NewMemoryCache(DefaultTTL, logger.Nop(), m, WithClock(clock.Now)), m
}

var usd = []model.RateQuote{{Currency: "USD", Buy: "4.1234", Sell: "4.2345"}}

func TestMemoryCache_GetMissing(t *testing.T) {
	c, m := newTestCache(&fakeClock{now: time.Unix(0, 0)})

	rates, found := c.Get(context.Background(), model.SourceKantor1913)

	assert.False(t, found)
	assert.Nil(t, rates)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("kantor1913", "miss")))
}

func TestMemoryCache_TTL(t *testing.T) {
	testCases := []struct {
		name    string
		elapsed time.Duration
		found   bool
	}{
		{name: "fresh", elapsed: 0, found: true},
		{name: "just before expiry", elapsed: DefaultTTL - time.Second, found: true},
		{name: "at expiry", elapsed: DefaultTTL, found: false},
		{name: "long expired", elapsed: time.Hour, found: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
			c, _ := newTestCache(clock)

			c.Set(context.Background(), model.SourceKantor1913, usd)
			clock.Advance(tc.elapsed)

			rates, found := c.Get(context.Background(), model.SourceKantor1913)
			assert.Equal(t, tc.found, found)
			if tc.found {
				assert.Equal(t, usd, rates)
			}
		})
	}
}

func TestMemoryCache_SetSupersedesStaleEntry(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c, m := newTestCache(clock)
	ctx := context.Background()

	c.Set(ctx, model.SourceShitcoins, usd)
	clock.Advance(DefaultTTL + time.Minute)

	_, found := c.Get(ctx, model.SourceShitcoins)
	require.False(t, found)

	fresh := []model.RateQuote{{Currency: "BTC", Buy: "99000.0000", Sell: "100000.5000"}}
	c.Set(ctx, model.SourceShitcoins, fresh)

	rates, found := c.Get(ctx, model.SourceShitcoins)
	require.True(t, found)
	assert.Equal(t, fresh, rates)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("shitcoins", "expired")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookupsTotal.WithLabelValues("shitcoins", "hit")))
}

func TestMemoryCache_KeysAreIndependent(t *testing.T) {
	c, _ := newTestCache(&fakeClock{now: time.Unix(0, 0)})
	ctx := context.Background()

	c.Set(ctx, model.SourceKantor1913, usd)

	_, found := c.Get(ctx, model.SourceShitcoins)
	assert.False(t, found)
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	c, _ := newTestCache(&fakeClock{now: time.Unix(0, 0)})
	ctx := context.Background()

	input := []model.RateQuote{{Currency: "EUR", Buy: "4.30", Sell: "4.35"}}
	c.Set(ctx, model.SourceKantor1913, input)
	input[0].Buy = "0"

	got, _ := c.Get(ctx, model.SourceKantor1913)
	got[0].Sell = "0"

	again, _ := c.Get(ctx, model.SourceKantor1913)
	assert.Equal(t, "4.30", again[0].Buy)
	assert.Equal(t, "4.35", again[0].Sell)
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c := NewMemoryCache(DefaultTTL, logger.Nop(), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Set(ctx, model.SourceKantor1913, usd)
		}()
		go func() {
			defer wg.Done()
			c.Get(ctx, model.SourceKantor1913)
		}()
	}
	wg.Wait()

	rates, found := c.Get(ctx, model.SourceKantor1913)
	require.True(t, found)
	assert.Equal(t, usd, rates)
}
