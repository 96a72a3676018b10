package ratelimit

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Middleware returns a Gin middleware that enforces the rate limiter
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.AllowRequest() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded",
				"stats": rl.GetStats(),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
