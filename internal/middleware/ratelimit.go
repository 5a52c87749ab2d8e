package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/silverstage/silverstage-api/internal/errors"
	"github.com/silverstage/silverstage-api/internal/ratelimit"
)

// RateLimit rejects requests once a client IP exceeds limit calls within
// the window. Keys include the route path so limits on different endpoints
// do not share a counter.
func RateLimit(limiter *ratelimit.Limiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + " " + c.FullPath()
		if !limiter.Allow(key, limit, window) {
			apierrors.TooManyRequests(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}
