package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sevenstarlining/sevenstar-api/internal/business"
	"github.com/sevenstarlining/sevenstar-api/internal/config"
	"github.com/sevenstarlining/sevenstar-api/internal/logging"
	"github.com/sevenstarlining/sevenstar-api/internal/ratelimit"
	"github.com/sevenstarlining/sevenstar-api/internal/server"
	"github.com/sevenstarlining/sevenstar-api/internal/service"
	"github.com/sevenstarlining/sevenstar-api/internal/telemetry"
	"github.com/spf13/cobra"

	_ "time/tzdata"
)

var rootCmd = &cobra.Command{
	Use:   "sevenstar-api",
	Short: "Seven Star Lining Works contact API",
	Long: `Backend for the Seven Star Lining Works website. It accepts contact form
submissions, rate limits them per client and forwards them to the shop by email.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, info, logger := bootstrap()
		defer logger.Close()

		logger.Info("Starting server in %s mode", cfg.Environment)

		// Set up context and signal handling
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, cfg.OTLPInsecure)
		if err != nil {
			logger.Error("Failed to initialize tracing: %v", err)
			os.Exit(1)
		}

		mailer, err := service.NewMailer(cfg)
		if err != nil {
			logger.Warn("Email delivery disabled: %v", err)
		} else {
			logger.Info("Email delivery via %s to %s", mailer.Name(), cfg.ContactEmail)
		}

		opts := server.Options{Business: info, Mailer: mailer}
		if cfg.RedisURL != "" {
			stats, err := ratelimit.NewRedisStatsStoreFromURL(ctx, cfg.RedisURL)
			if err != nil {
				logger.Warn("Redis unavailable, keeping rate limit stats in memory: %v", err)
			} else {
				defer stats.Close()
				opts.Stats = stats
			}
		}

		srv := server.NewServer(cfg, opts)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start(ctx)
		}()

		select {
		case sig := <-sigChan:
			logger.Info("Received signal %v, initiating shutdown...", sig)
		case err := <-errCh:
			if err != nil {
				logger.Error("Server error: %v", err)
			}
		}
		cancel()

		shutdownCtx, done := context.WithTimeout(context.Background(), 15*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed: %v", err)
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("Tracer shutdown failed: %v", err)
		}
		logger.Info("Server stopped")
	},
}

// bootstrap loads configuration, the logger and the business profile, exiting on failure
func bootstrap() (*config.Config, business.Info, *logging.Logger) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logConfig := cfg.LogConfig()
	if err := logConfig.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid logging config: %v\n", err)
		os.Exit(1)
	}
	logging.Configure(logConfig)
	logger := logging.GetLogger()

	info, err := business.Load(cfg.BusinessInfoFile)
	if err != nil {
		logger.Error("Failed to load business info: %v", err)
		os.Exit(1)
	}
	return cfg, info, logger
}

func init() {
	// running without a subcommand serves
	rootCmd.Run = serveCmd.Run
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(testEmailCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
