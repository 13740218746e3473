package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_PerUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         2,
		CleanupInterval:   time.Hour,
		EntryTTL:          time.Hour,
	})
	defer rl.Stop()

	alice, bob := uuid.New(), uuid.New()
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if c.GetHeader("X-User") == "alice" {
			c.Set(ContextUserID, alice)
		} else {
			c.Set(ContextUserID, bob)
		}
	}, rl.Middleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	call := func(user string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User", user)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, call("alice"))
	assert.Equal(t, http.StatusNoContent, call("alice"))
	assert.Equal(t, http.StatusTooManyRequests, call("alice"))
	assert.Equal(t, http.StatusNoContent, call("bob"))
}

func TestRateLimiter_CleanupDropsStaleEntries(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, BurstSize: 1, CleanupInterval: time.Hour, EntryTTL: time.Minute})
	defer rl.Stop()

	now := time.Date(2024, 5, 14, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	rl.getLimiter("user:a")

	now = now.Add(2 * time.Minute)
	rl.cleanup()
	assert.Empty(t, rl.limiters)
}

func TestRateLimiterConfigFromWindow(t *testing.T) {
	cfg := RateLimiterConfigFromWindow(120, 60)
	assert.InDelta(t, 2.0, cfg.RequestsPerSecond, 1e-9)
	assert.Equal(t, 120, cfg.BurstSize)

	assert.Equal(t, DefaultRateLimiterConfig(), RateLimiterConfigFromWindow(0, 60))
}

func TestRateLimiter_StopEndsCleanupLoop(t *testing.T) {
	rl := NewRateLimiter(DefaultRateLimiterConfig())
	rl.Stop()
	rl.Stop()

	select {
	case <-rl.Done():
	default:
		t.Fatal("cleanup loop still running after Stop")
	}
}
