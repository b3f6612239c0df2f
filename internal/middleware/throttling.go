package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"communityportal/internal/models/dto"
	"communityportal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/semaphore"
)

const (
	defaultMaxRequests = 120
	rateLimitWindow    = 60 * time.Second
	rateLimitPrefix    = "portal:ratelimit:"
)

// RateStore is the subset of Redis the limiter uses.
type RateStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// RateLimiter is a fixed-window per-IP limiter backed by Redis counters.
type RateLimiter struct {
	store       RateStore
	maxRequests int
	window      time.Duration
	log         *logger.Logger
}

// NewRateLimiter builds a limiter allowing maxRequests per window.
func NewRateLimiter(store RateStore, maxRequests int, window time.Duration, log *logger.Logger) *RateLimiter {
	return &RateLimiter{
		store:       store,
		maxRequests: maxRequests,
		window:      window,
		log:         log,
	}
}

func setupRateLimiter(engine *gin.Engine, store RateStore, log *logger.Logger) {
	maxRequests := int(getEnvAsInt64("MAX_REQUEST_COUNT_BY_IP", defaultMaxRequests))
	engine.Use(NewRateLimiter(store, maxRequests, rateLimitWindow, log).Middleware())
}

// Middleware rejects requests over the limit with 429. Redis failures let
// the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter, remaining, err := rl.checkRateLimit(c.Request.Context(), c.ClientIP())
		if err != nil {
			rl.log.Warn("rate limiter unavailable", map[string]interface{}{"error": err.Error()})
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewRateLimitErrorResponse(
				c, retryAfter.String(), rl.maxRequests, 0, time.Now().Add(retryAfter).UTC()))
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) checkRateLimit(ctx context.Context, ip string) (allowed bool, retryAfter time.Duration, remaining int, err error) {
	key := rateLimitPrefix + ip

	count, err := rl.store.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, 0, err
	}
	if count == 1 {
		if err := rl.store.Expire(ctx, key, rl.window).Err(); err != nil {
			return false, 0, 0, err
		}
	}

	if count > int64(rl.maxRequests) {
		ttl, err := rl.store.TTL(ctx, key).Result()
		if err != nil {
			return false, 0, 0, err
		}
		if ttl < 0 {
			ttl = rl.window
		}
		return false, ttl, 0, nil
	}

	return true, 0, rl.maxRequests - int(count), nil
}

func setupSemaphore(engine *gin.Engine) {
	max := getEnvAsInt64("MAX_REQUEST_COUNT_GLOBAL", int64(64))
	sema := semaphore.NewWeighted(max)
	engine.Use(func(c *gin.Context) {
		if err := sema.Acquire(c.Request.Context(), 1); err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				dto.NewErrorResponse(c, http.StatusServiceUnavailable, "server_busy", "Too many concurrent requests", nil))
			return
		}
		defer sema.Release(1)
		c.Next()
	})
}
