package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/scamwatch/blacklist-service/internal/persistence"
)

const (
	statsCacheKey       = "blacklist:report_stats"
	openAppealsCacheKey = "blacklist:open_appeals"
	counterCacheTTL     = 30 * time.Second
)

// CounterCache caches admin dashboard counters in Redis. Every operation is
// best-effort: a missing or unreachable Redis only costs a recount. Stale
// windows are bounded by the TTL and by write invalidation.
type CounterCache struct {
	redis *persistence.Redis
}

// NewCounterCache wraps the redis handle; a nil handle disables caching.
func NewCounterCache(redis *persistence.Redis) *CounterCache {
	return &CounterCache{redis: redis}
}

// Get unmarshals the cached value into dest, reporting whether it was found.
func (c *CounterCache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return false
	}
	raw, err := c.redis.Client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Set stores value under key with the counter TTL.
func (c *CounterCache) Set(ctx context.Context, key string, value any) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.redis.Client.Set(ctx, key, raw, counterCacheTTL).Err()
}

// Invalidate drops the given keys after a write.
func (c *CounterCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.redis == nil || c.redis.Client == nil || len(keys) == 0 {
		return
	}
	_ = c.redis.Client.Del(ctx, keys...).Err()
}
