package redis

import (
	"context"
	"errors"
	"time"

	"communityportal/internal/listing"
	"communityportal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const (
	settingsKeyPrefix  = "portal:settings:"
	DefaultSettingsTTL = 30 * time.Second

	// absentMarker caches a known-missing key so misses are not re-read.
	absentMarker = "\x00absent"
)

// KV is the subset of Redis commands the settings cache needs.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedSettings serves settings from Redis for a short TTL before falling
// through to the backing store. Redis failures are ignored and the backing
// store is read directly.
type CachedSettings struct {
	kv      KV
	backing listing.Settings
	ttl     time.Duration
	log     *logger.Logger
}

// NewCachedSettings wraps backing with a Redis read-through cache.
func NewCachedSettings(kv KV, backing listing.Settings, ttl time.Duration, log *logger.Logger) *CachedSettings {
	if ttl <= 0 {
		ttl = DefaultSettingsTTL
	}
	return &CachedSettings{kv: kv, backing: backing, ttl: ttl, log: log}
}

func (c *CachedSettings) Get(ctx context.Context, key string) (string, bool, error) {
	cacheKey := settingsKeyPrefix + key

	if c.kv != nil {
		val, err := c.kv.Get(ctx, cacheKey).Result()
		if err == nil {
			if val == absentMarker {
				return "", false, nil
			}
			return val, true, nil
		}
		if !errors.Is(err, redis.Nil) && ctx.Err() != nil {
			return "", false, ctx.Err()
		}
	}

	val, ok, err := c.backing.Get(ctx, key)
	if err != nil {
		return "", false, err
	}

	if c.kv != nil {
		stored := val
		if !ok {
			stored = absentMarker
		}
		if err := c.kv.Set(ctx, cacheKey, stored, c.ttl).Err(); err != nil {
			c.log.Debug("settings cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}
	return val, ok, nil
}
