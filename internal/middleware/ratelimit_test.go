package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeLimiterStore struct {
	count   int64
	incrErr error
	expires int
	window  time.Duration
	lastKey string
}

func (f *fakeLimiterStore) Incr(ctx context.Context, key string) *redis.IntCmd {
	f.lastKey = key
	if f.incrErr != nil {
		return redis.NewIntResult(0, f.incrErr)
	}
	f.count++
	return redis.NewIntResult(f.count, nil)
}

func (f *fakeLimiterStore) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	f.expires++
	f.window = expiration
	return redis.NewBoolResult(true, nil)
}

func newLimitedRouter(store LimiterStore, cfg RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/lookup", RateLimit(store, cfg, zap.NewNop(), nil), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func hitLookup(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/lookup", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitAllowsUpToLimit(t *testing.T) {
	store := &fakeLimiterStore{}
	r := newLimitedRouter(store, RateLimitConfig{Requests: 10, Window: time.Minute})

	for i := 0; i < 10; i++ {
		w := hitLookup(r)
		assert.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
	}
	assert.Equal(t, 1, store.expires, "window should be set once, on the first hit")
	assert.Equal(t, time.Minute, store.window)
	assert.Equal(t, "ratelimit:203.0.113.7", store.lastKey)
}

func TestRateLimitRejectsEleventh(t *testing.T) {
	store := &fakeLimiterStore{}
	r := newLimitedRouter(store, RateLimitConfig{Requests: 10, Window: time.Minute})

	for i := 0; i < 10; i++ {
		hitLookup(r)
	}
	w := hitLookup(r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestRateLimitFailsOpenOnStoreError(t *testing.T) {
	store := &fakeLimiterStore{incrErr: errors.New("redis down")}
	r := newLimitedRouter(store, RateLimitConfig{Requests: 1, Window: time.Minute})

	for i := 0; i < 3; i++ {
		w := hitLookup(r)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitDefaults(t *testing.T) {
	store := &fakeLimiterStore{}
	r := newLimitedRouter(store, RateLimitConfig{})

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, hitLookup(r).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, hitLookup(r).Code)
}
