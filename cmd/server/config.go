package main

import (
	"fmt"
	"os"

	"github.com/sevenstarlining/sevenstar-api/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration with secrets masked",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}

		out, err := yaml.Marshal(configView(cfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render config: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(out))
	},
}

// configView flattens the redacted config into display keys
func configView(cfg *config.Config) map[string]interface{} {
	r := cfg.Redacted()
	return map[string]interface{}{
		"environment":     r.Environment,
		"port":            r.Port,
		"allowed_origins": r.AllowedOrigins,
		"log": map[string]interface{}{
			"level":    r.LogLevel,
			"file":     r.LogFile,
			"requests": r.LogRequests,
		},
		"email": map[string]interface{}{
			"provider":   r.EmailProvider,
			"configured": cfg.EmailConfigured(),
			"resend_key": r.ResendAPIKey,
			"smtp_host":  r.SMTPHost,
			"smtp_port":  r.SMTPPort,
			"smtp_user":  r.SMTPUser,
			"smtp_pass":  r.SMTPPass,
			"to":         r.ContactEmail,
			"from":       r.EmailFrom,
		},
		"rate_limit": map[string]interface{}{
			"edge":           cfg.EdgePolicy().String(),
			"contact":        cfg.ContactPolicy().String(),
			"sweep_interval": r.SweepInterval.String(),
			"throttle_rps":   r.ThrottleRPS,
			"throttle_burst": r.ThrottleBurst,
			"redis_url":      r.RedisURL,
		},
		"business_info_file": r.BusinessInfoFile,
		"otlp_endpoint":      r.OTLPEndpoint,
	}
}
