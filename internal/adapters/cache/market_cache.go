package cache

import (
	"fmt"
	"time"

	"github.com/wpo70/RateEdge/internal/domain"

	"github.com/dgraph-io/ristretto"
)

const statisticsKey = "statistics"

// RistrettoMarketCache holds the statistics summary and per-currency
// latest curves with a TTL. Writes to the rate store invalidate it
// wholesale; entries are small so a full clear is fine.
type RistrettoMarketCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewMarketCache(maxItems int64, ttl time.Duration) (*RistrettoMarketCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create market cache failed: %w", err)
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RistrettoMarketCache{cache: c, ttl: ttl}, nil
}

func (c *RistrettoMarketCache) GetStatistics() (domain.StatisticsSummary, bool) {
	if v, ok := c.cache.Get(statisticsKey); ok {
		summary, ok := v.(domain.StatisticsSummary)
		return summary, ok
	}
	return domain.StatisticsSummary{}, false
}

func (c *RistrettoMarketCache) SetStatistics(summary domain.StatisticsSummary) {
	c.cache.SetWithTTL(statisticsKey, summary, 1, c.ttl)
}

func (c *RistrettoMarketCache) GetLatest(currency string) ([]domain.SwapRate, bool) {
	if v, ok := c.cache.Get(latestKey(currency)); ok {
		rates, ok := v.([]domain.SwapRate)
		return rates, ok
	}
	return nil, false
}

func (c *RistrettoMarketCache) SetLatest(currency string, rates []domain.SwapRate) {
	c.cache.SetWithTTL(latestKey(currency), rates, 1, c.ttl)
}

func (c *RistrettoMarketCache) Invalidate() { c.cache.Clear() }

func (c *RistrettoMarketCache) Close() { c.cache.Close() }

func latestKey(currency string) string { return "latest:" + currency }
