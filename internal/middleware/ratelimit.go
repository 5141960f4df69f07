package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Varshith2802/ip-reputation-checker/internal/service"
	appErrors "github.com/Varshith2802/ip-reputation-checker/pkg/errors"
	"github.com/Varshith2802/ip-reputation-checker/pkg/response"
)

const rateLimitKeyPrefix = "ratelimit:"

// LimiterStore is the subset of redis commands the rate limiter needs.
// *redis.Client satisfies it.
type LimiterStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RateLimitConfig caps requests per client address within a fixed window.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// RateLimit returns middleware enforcing a fixed-window counter keyed by
// client IP. A store failure fails open.
func RateLimit(store LimiterStore, cfg RateLimitConfig, logger *zap.Logger, metrics *service.MetricsService) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := cfg.Requests
	if limit <= 0 {
		limit = 10
	}
	window := cfg.Window
	if window <= 0 {
		window = time.Minute
	}

	return func(c *gin.Context) {
		key := rateLimitKeyPrefix + c.ClientIP()
		ctx := c.Request.Context()

		count, err := store.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			if err := store.Expire(ctx, key, window).Err(); err != nil {
				logger.Warn("failed to set rate limit window", zap.Error(err))
			}
		}

		if count > int64(limit) {
			metrics.RecordRateLimited()
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			response.Error(c, appErrors.ErrRateLimited)
			c.Abort()
			return
		}

		c.Next()
	}
}
