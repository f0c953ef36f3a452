package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sevenstarlining/sevenstar-api/internal/api/middleware"
	"github.com/sevenstarlining/sevenstar-api/internal/logging"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// GlobalOptions configures middleware applied to every route
type GlobalOptions struct {
	ServiceName    string
	AllowedOrigins []string
	Development    bool
	Throttle       middleware.ThrottleConfig
}

// Setup configures all routes
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	logger := logging.GetLogger()

	if m != nil && m.Gatekeeper != nil {
		router.Use(m.Gatekeeper)
	}

	SetupHealthRoutes(router, h.Health)
	SetupContactRoutes(router, h.Contact)

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, logger *logging.Logger, opts GlobalOptions) {
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(otelgin.Middleware(opts.ServiceName))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: opts.AllowedOrigins,
		Development:    opts.Development,
	}))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Throttle(opts.Throttle))
}
