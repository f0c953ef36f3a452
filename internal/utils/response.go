package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sevenstarlining/sevenstar-api/internal/api/dto/common"
)

// HandleSuccess sends a success response with a message and data
func HandleSuccess(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(message, data))
}

// HandleValidationError sends a 400 with per-field messages
func HandleValidationError(c *gin.Context, errs common.FieldErrors) {
	c.JSON(http.StatusBadRequest, common.NewValidationResponse(errs))
}

// HandleRateLimited sends a 429. A negative retryAfter omits the field.
func HandleRateLimited(c *gin.Context, retryAfter int) {
	if retryAfter < 0 {
		c.JSON(http.StatusTooManyRequests, common.NewErrorResponse(common.MsgTooManyRequests))
		return
	}
	c.JSON(http.StatusTooManyRequests, common.NewRateLimitResponse(retryAfter))
}
