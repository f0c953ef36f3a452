package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sevenstarlining/sevenstar-api/internal/api/dto/common"
	"golang.org/x/time/rate"
)

// ThrottleConfig defines configuration for the process-wide throttle
type ThrottleConfig struct {
	// Requests per second
	RPS float64
	// Burst size (number of requests that can be made in a single burst)
	Burst int
}

// Throttle caps total request throughput regardless of client.
// A non-positive RPS disables it.
func Throttle(config ThrottleConfig) gin.HandlerFunc {
	if config.RPS <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if config.Burst <= 0 {
		config.Burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(config.RPS), config.Burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.NewErrorResponse(common.MsgThrottled))
			return
		}
		c.Next()
	}
}
