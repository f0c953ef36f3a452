package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sevenstarlining/sevenstar-api/internal/logging"
	"github.com/sevenstarlining/sevenstar-api/internal/ratelimit"
	"github.com/sevenstarlining/sevenstar-api/internal/utils"
)

// ResetLayout is the X-RateLimit-Reset format, always rendered in UTC
const ResetLayout = "2006-01-02T15:04:05.000Z07:00"

// GatekeeperConfig scopes the edge rate limit to a set of paths
type GatekeeperConfig struct {
	Limiter *ratelimit.Limiter
	Policy  ratelimit.Policy
	// Paths are matched with their subpaths: "/api/contact" covers
	// "/api/contact/anything" but not "/api/contacts".
	Paths []string
	Stats   ratelimit.StatsStore
}

// Gatekeeper applies the edge rate limit before the request reaches its handler.
// Requests on other paths pass through untouched.
func Gatekeeper(config GatekeeperConfig) gin.HandlerFunc {
	if config.Limiter == nil {
		config.Limiter = ratelimit.NewLimiter()
	}
	paths := make([]string, 0, len(config.Paths))
	for _, p := range config.Paths {
		paths = append(paths, strings.TrimSuffix(p, "/"))
	}
	logger := logging.GetLogger()

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !coversPath(paths, path) {
			c.Next()
			return
		}

		clientID := utils.ClientIdentifier(c)
		res := config.Limiter.Check(clientID, config.Policy)

		if config.Stats != nil {
			err := config.Stats.Record(c.Request.Context(), ratelimit.StatsEvent{
				Layer:   "edge",
				Key:     clientID,
				Allowed: res.Success,
				Path:    path,
				At:      config.Limiter.Now(),
			})
			if err != nil {
				logger.Debug("[GATEKEEPER] failed to record rate limit stats: %v", err)
			}
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Policy.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("X-RateLimit-Reset", res.ResetTime.UTC().Format(ResetLayout))

		if !res.Success {
			retryAfter := res.RetryAfter(config.Limiter.Now())
			logger.Warn("[GATEKEEPER] %s exceeded %d requests per %s on %s", clientID, config.Policy.Limit, config.Policy.Window, path)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			utils.HandleRateLimited(c, retryAfter)
			c.Abort()
			return
		}

		c.Next()
	}
}

func coversPath(prefixes []string, path string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
