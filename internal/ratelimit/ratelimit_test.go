package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAllowRequest(t *testing.T) {
	t.Run("disabled limiter always allows", func(t *testing.T) {
		rl := NewRateLimiter(1, 1, false)
		for i := 0; i < 10; i++ {
			assert.True(t, rl.AllowRequest())
		}
	})

	t.Run("minute limit is enforced", func(t *testing.T) {
		rl := NewRateLimiter(3, 100, true)
		for i := 0; i < 3; i++ {
			assert.True(t, rl.AllowRequest(), "request %d", i)
		}
		assert.False(t, rl.AllowRequest())
	})

	t.Run("hour limit is enforced", func(t *testing.T) {
		rl := NewRateLimiter(100, 2, true)
		assert.True(t, rl.AllowRequest())
		assert.True(t, rl.AllowRequest())
		assert.False(t, rl.AllowRequest())
	})

	t.Run("reset clears the windows", func(t *testing.T) {
		rl := NewRateLimiter(1, 1, true)
		assert.True(t, rl.AllowRequest())
		assert.False(t, rl.AllowRequest())
		rl.Reset()
		assert.True(t, rl.AllowRequest())
	})
}

func TestGetStats(t *testing.T) {
	rl := NewRateLimiter(5, 50, true)
	rl.AllowRequest()
	rl.AllowRequest()

	stats := rl.GetStats()
	assert.True(t, stats.Enabled)
	assert.Equal(t, 2, stats.RequestsLastMinute)
	assert.Equal(t, 2, stats.RequestsLastHour)
	assert.Equal(t, 3, stats.RemainingThisMinute)
	assert.Equal(t, 48, stats.RemainingThisHour)

	disabled := NewRateLimiter(5, 50, false)
	assert.False(t, disabled.GetStats().Enabled)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(1, 100, true)
	r := gin.New()
	r.POST("/pay", rl.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/pay", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}
