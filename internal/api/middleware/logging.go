package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sevenstarlining/sevenstar-api/internal/api/constants"
	"github.com/sevenstarlining/sevenstar-api/internal/logging"
	"github.com/sevenstarlining/sevenstar-api/internal/utils"
)

// RequestLogger logs one line per request. The logger decides whether request
// logging is enabled (LOG_REQUESTS).
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.LogHTTPRequest(
			c.Request.Method,
			path,
			utils.ClientIdentifier(c),
			c.GetString(constants.ContextKeyRequestID),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).String(),
		)
	}
}
