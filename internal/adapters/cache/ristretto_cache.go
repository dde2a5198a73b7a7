package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// RistrettoRateCache is the in-process cache backend. Entries carry the TTL
// given at Put time; ristretto evicts under memory pressure, which is fine
// for a purely advisory layer.
type RistrettoRateCache struct {
	cache *ristretto.Cache
}

func NewRistrettoRateCache(maxItems int64) (*RistrettoRateCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create rate cache failed: %w", err)
	}
	return &RistrettoRateCache{cache: c}, nil
}

func (c *RistrettoRateCache) Get(_ context.Context, key string) (string, bool) {
	if v, ok := c.cache.Get(key); ok {
		s, ok := v.(string)
		return s, ok
	}
	return "", false
}

func (c *RistrettoRateCache) Put(_ context.Context, key, value string, ttl time.Duration) {
	c.cache.SetWithTTL(key, value, 1, ttl)
}

func (c *RistrettoRateCache) Del(_ context.Context, key string) {
	c.cache.Del(key)
}

// Wait blocks until buffered writes are applied. Only needed by tests.
func (c *RistrettoRateCache) Wait() { c.cache.Wait() }

func (c *RistrettoRateCache) Close() { c.cache.Close() }
