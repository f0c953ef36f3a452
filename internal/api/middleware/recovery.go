package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sevenstarlining/sevenstar-api/internal/api/constants"
	"github.com/sevenstarlining/sevenstar-api/internal/api/dto/common"
	"github.com/sevenstarlining/sevenstar-api/internal/logging"
	"github.com/sevenstarlining/sevenstar-api/internal/utils"
)

// Recovery turns a panic anywhere below it into the generic 500 envelope
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logging.GetLogger().Error("[PANIC] %s %s | %s | %s | %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					utils.ClientIdentifier(c),
					c.GetString(constants.ContextKeyRequestID),
					err,
					debug.Stack(),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, common.NewErrorResponse(common.MsgInternal))
			}
		}()

		c.Next()
	}
}
