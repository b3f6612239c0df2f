package redis

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
)

// RedisInternal wraps the shared Redis client.
type RedisInternal struct {
	Redis *redis.Client
}

// NewRedisInternal connects to REDIS_ADDR, falling back to the compose
// hostname and then localhost.
func NewRedisInternal() (*RedisInternal, error) {
	addrs := []string{"redis:6379", "localhost:6379"}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		addrs = []string{addr}
	}

	var lastErr error
	for _, addr := range addrs {
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			lastErr = err
			_ = rdb.Close()
			continue
		}
		return &RedisInternal{Redis: rdb}, nil
	}
	return nil, fmt.Errorf("connecting to Redis: %w", lastErr)
}
