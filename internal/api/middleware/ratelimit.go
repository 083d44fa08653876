package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/stitts-dev/catdraft/pkg/utils"
)

// RateLimit shares one token bucket across all requests. Evaluations are CPU
// bound, so a per-client limit would not protect the server. rps <= 0 disables it.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			utils.SendTooManyRequests(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
