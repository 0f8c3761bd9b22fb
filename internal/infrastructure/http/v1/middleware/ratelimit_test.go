package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestClientRateLimiter_RejectsWhenExhausted(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := DefaultRateLimiterConfig()
	cfg.RequestsPerSecond = 0.001
	cfg.BurstSize = 1
	rl := NewClientRateLimiter(cfg)
	defer rl.Stop()

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
}

func TestClientRateLimiter_EvictsIdleClients(t *testing.T) {
	rl := NewClientRateLimiter(DefaultRateLimiterConfig())
	defer rl.Stop()

	rl.getLimiter("10.0.0.1")

	rl.mu.Lock()
	rl.limiters["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)
	rl.mu.Unlock()

	rl.cleanup()

	rl.mu.Lock()
	_, kept := rl.limiters["10.0.0.1"]
	rl.mu.Unlock()
	assert.False(t, kept)
}

func TestClientRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewClientRateLimiter(DefaultRateLimiterConfig())
	rl.Stop()
	rl.Stop()
}
