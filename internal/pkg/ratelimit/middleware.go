package ratelimit

import (
	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/kubertodo/internal/pkg/metrics"
	"github.com/xyz-asif/kubertodo/internal/pkg/response"
)

// Middleware creates a rate limiting middleware for Gin keyed by client IP.
// Paths in skip bypass the limiter.
func Middleware(limiter *RateLimiter, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skipped[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		key := c.ClientIP()
		if key == "" {
			key = "unknown"
		}

		if !limiter.Allow(key) {
			metrics.RateLimitRejected.WithLabelValues("memory").Inc()
			c.Header("Retry-After", "1")
			response.TooManyRequests(c, "Rate limit exceeded. Try again later.", "RATE_LIMITED")
			c.Abort()
			return
		}

		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		c.Next()
	}
}
