package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/kirana-ledger/models"
)

const rateCacheKeyPrefix = "fx:rates:"

func rateCacheKey(base string) string {
	return rateCacheKeyPrefix + strings.ToUpper(base)
}

// ── redis ───────────────────────────────────────────────────────────────────

// RedisRateCache stores rate tables as JSON strings with a key expiry.
type RedisRateCache struct {
	client redis.UniversalClient
}

// NewRedisRateCache wraps an existing client; the caller owns its lifecycle.
func NewRedisRateCache(client redis.UniversalClient) *RedisRateCache {
	return &RedisRateCache{client: client}
}

func (c *RedisRateCache) GetRates(ctx context.Context, base string) (models.ExchangeRates, bool, error) {
	raw, err := c.client.Get(ctx, rateCacheKey(base)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.ExchangeRates{}, false, nil
	}
	if err != nil {
		return models.ExchangeRates{}, false, fmt.Errorf("rate cache get: %w", err)
	}

	var rates models.ExchangeRates
	if err = json.Unmarshal(raw, &rates); err != nil {
		return models.ExchangeRates{}, false, fmt.Errorf("rate cache decode: %w", err)
	}
	return rates, true, nil
}

func (c *RedisRateCache) SetRates(ctx context.Context, rates models.ExchangeRates, ttl time.Duration) error {
	raw, err := json.Marshal(rates)
	if err != nil {
		return fmt.Errorf("rate cache encode: %w", err)
	}
	if err = c.client.Set(ctx, rateCacheKey(rates.Base), raw, ttl).Err(); err != nil {
		return fmt.Errorf("rate cache set: %w", err)
	}
	return nil
}

// ── memory ──────────────────────────────────────────────────────────────────

type cachedRates struct {
	rates     models.ExchangeRates
	expiresAt time.Time
}

// MemoryRateCache is the single-process [RateCache].
type MemoryRateCache struct {
	mu      sync.RWMutex
	entries map[string]cachedRates
	now     func() time.Time
}

// NewMemoryRateCache returns an empty cache. A nil clock means time.Now.
func NewMemoryRateCache(now func() time.Time) *MemoryRateCache {
	if now == nil {
		now = time.Now
	}
	return &MemoryRateCache{
		entries: make(map[string]cachedRates),
		now:     now,
	}
}

func (c *MemoryRateCache) GetRates(_ context.Context, base string) (models.ExchangeRates, bool, error) {
	key := rateCacheKey(base)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return models.ExchangeRates{}, false, nil
	}
	if !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		// re-check under the write lock, a concurrent SetRates may have refreshed it
		if current, ok := c.entries[key]; ok && !c.now().Before(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return models.ExchangeRates{}, false, nil
	}
	return entry.rates, true, nil
}

func (c *MemoryRateCache) SetRates(_ context.Context, rates models.ExchangeRates, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	c.mu.Lock()
	c.entries[rateCacheKey(rates.Base)] = cachedRates{
		rates:     rates,
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}
