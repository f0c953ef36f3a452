package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sevenstarlining/sevenstar-api/internal/api/handlers"
	"github.com/sevenstarlining/sevenstar-api/internal/api/middleware"
	"github.com/sevenstarlining/sevenstar-api/internal/api/validation"
	"github.com/sevenstarlining/sevenstar-api/internal/business"
	"github.com/sevenstarlining/sevenstar-api/internal/config"
	"github.com/sevenstarlining/sevenstar-api/internal/logging"
	"github.com/sevenstarlining/sevenstar-api/internal/ratelimit"
	"github.com/sevenstarlining/sevenstar-api/internal/server/routes"
	"github.com/sevenstarlining/sevenstar-api/internal/service"
	"github.com/sevenstarlining/sevenstar-api/internal/tasks"
	"github.com/sevenstarlining/sevenstar-api/internal/telemetry"
)

// Options carries the collaborators built outside the server
type Options struct {
	Business business.Info
	// Mailer is nil when email is not configured
	Mailer service.Mailer
	// Stats defaults to an in-memory store whose totals are reported on /health
	Stats ratelimit.StatsStore
	// Clock overrides time for both rate limiters
	Clock func() time.Time
}

// Server represents the HTTP server
type Server struct {
	router          *gin.Engine
	httpServer      *http.Server
	sweep           *tasks.RateLimitSweep
	emailConfigured bool
	logger          *logging.Logger
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, opts Options) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	logger := logging.GetLogger()

	if opts.Stats == nil {
		opts.Stats = ratelimit.NewMemoryStatsStore()
	}
	var limiterOpts []ratelimit.Option
	if opts.Clock != nil {
		limiterOpts = append(limiterOpts, ratelimit.WithClock(opts.Clock))
	}

	// The two layers keep separate state so one request is never counted twice
	// against the same window.
	edgeLimiter := ratelimit.NewLimiter(limiterOpts...)
	contactLimiter := ratelimit.NewLimiter(limiterOpts...)

	contactService := service.NewContactService(service.ContactDeps{
		Limiter:   contactLimiter,
		Policy:    cfg.ContactPolicy(),
		Stats:     opts.Stats,
		Validator: validation.New(),
		Mailer:    opts.Mailer,
		Business:  opts.Business,
		From:      cfg.EmailFrom,
		To:        cfg.ContactEmail,
	})

	// Remote stores are read elsewhere; only local totals are reported on /health.
	snapshots, _ := opts.Stats.(ratelimit.Snapshotter)

	h := &routes.Handlers{
		Contact: handlers.NewContactHandler(contactService),
		Health:  handlers.NewHealthHandler(contactService.EmailConfigured(), snapshots),
	}
	m := &routes.Middleware{
		Gatekeeper: middleware.Gatekeeper(middleware.GatekeeperConfig{
			Limiter: edgeLimiter,
			Policy:  cfg.EdgePolicy(),
			Paths:   []string{routes.ContactPath},
			Stats:   opts.Stats,
		}),
	}

	router := gin.New()
	routes.SetupGlobalMiddleware(router, logger, routes.GlobalOptions{
		ServiceName:    telemetry.ServiceName,
		AllowedOrigins: cfg.AllowedOrigins,
		Development:    !cfg.IsProduction(),
		Throttle: middleware.ThrottleConfig{
			RPS:   cfg.ThrottleRPS,
			Burst: cfg.ThrottleBurst,
		},
	})
	routes.Setup(router, h, m)

	return &Server{
		router:          router,
		emailConfigured: contactService.EmailConfigured(),
		logger:          logger,
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		sweep: tasks.NewRateLimitSweep(cfg.SweepInterval, map[string]tasks.Sweeper{
			"edge":    edgeLimiter,
			"contact": contactLimiter,
		}),
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the sweep task and serves HTTP until Shutdown is called or
// the listener fails. The sweep stops when ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.sweep.Start(ctx)

	s.logger.Info("Server listening on %s (email configured: %v)", s.httpServer.Addr, s.emailConfigured)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.httpServer.Shutdown(ctx)
}
