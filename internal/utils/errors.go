package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/sevenstarlining/sevenstar-api/internal/api/dto/common"
	"github.com/sevenstarlining/sevenstar-api/internal/logging"
)

// HandleAPIError logs err with request context and sends a generic message.
// Error details go to the log only, never to the client.
func HandleAPIError(c *gin.Context, err error, status int, message string) {
	logger := logging.GetLogger()
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		ClientIdentifier(c),
		status,
		message,
		err,
	)

	c.JSON(status, common.NewErrorResponse(message))
}
