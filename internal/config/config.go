package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	dotenv "github.com/sevenstarlining/sevenstar-api/internal/config/env"
	"github.com/sevenstarlining/sevenstar-api/internal/logging"
	"github.com/sevenstarlining/sevenstar-api/internal/ratelimit"
)

// Email providers
const (
	ProviderResend = "resend"
	ProviderSMTP   = "smtp"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment    string   `env:"ENV" envDefault:"development"`
	Port           string   `env:"API_PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// Logging Configuration
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"LOG_FILE"`
	LogRequests   bool   `env:"LOG_REQUESTS" envDefault:"false"`
	LogMaxSize    int    `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAge     int    `env:"LOG_MAX_AGE_DAYS" envDefault:"7"`

	// Email Configuration
	EmailProvider string `env:"EMAIL_PROVIDER" envDefault:"resend"`
	ResendAPIKey  string `env:"RESEND_API_KEY"`
	SMTPHost      string `env:"SMTP_HOST"`
	SMTPPort      int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser      string `env:"SMTP_USER"`
	SMTPPass      string `env:"SMTP_PASS"`
	SMTPSSL       bool   `env:"SMTP_SSL" envDefault:"false"`
	ContactEmail  string `env:"CONTACT_EMAIL" envDefault:"info@sevenstarliningworks.com"`
	EmailFrom     string `env:"EMAIL_FROM" envDefault:"Seven Star Lining Works <onboarding@resend.dev>"`

	// Business profile override
	BusinessInfoFile string `env:"BUSINESS_INFO_FILE"`

	// Rate limiting. The edge limit guards bursts at the gatekeeper, the contact
	// limit caps sustained submissions inside the handler; both must admit.
	EdgeLimit     int           `env:"RATE_LIMIT_EDGE_LIMIT" envDefault:"3"`
	EdgeWindow    time.Duration `env:"RATE_LIMIT_EDGE_WINDOW" envDefault:"15m"`
	ContactLimit  int           `env:"RATE_LIMIT_CONTACT_LIMIT" envDefault:"3"`
	ContactWindow time.Duration `env:"RATE_LIMIT_CONTACT_WINDOW" envDefault:"1h"`
	SweepInterval time.Duration `env:"RATE_LIMIT_SWEEP_INTERVAL" envDefault:"30m"`
	ThrottleRPS   float64       `env:"THROTTLE_RPS" envDefault:"10"`
	ThrottleBurst int           `env:"THROTTLE_BURST" envDefault:"20"`
	RedisURL      string        `env:"REDIS_URL"`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	if _, err := dotenv.LoadEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.LogFile == "" {
		if cfg.IsProduction() {
			cfg.LogFile = "/app/logs/api.log"
		} else {
			cfg.LogFile = "./logs/api.log"
		}
	}

	cfg.EmailProvider = strings.ToLower(strings.TrimSpace(cfg.EmailProvider))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return cfg, nil
}

// Validate rejects settings the service cannot run with. A missing email
// credential is not an error: submissions then receive the unconfigured response.
func (c *Config) Validate() error {
	switch c.EmailProvider {
	case ProviderResend, ProviderSMTP:
	default:
		return fmt.Errorf("unsupported EMAIL_PROVIDER %q", c.EmailProvider)
	}
	if c.EdgeLimit <= 0 || c.ContactLimit <= 0 {
		return fmt.Errorf("rate limits must be positive")
	}
	if c.EdgeWindow <= 0 || c.ContactWindow <= 0 {
		return fmt.Errorf("rate limit windows must be positive")
	}
	if c.ContactEmail == "" {
		return fmt.Errorf("CONTACT_EMAIL must not be empty")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// EmailConfigured reports whether the selected provider has its credential
func (c *Config) EmailConfigured() bool {
	switch c.EmailProvider {
	case ProviderSMTP:
		return c.SMTPHost != ""
	default:
		return c.ResendAPIKey != ""
	}
}

func (c *Config) EdgePolicy() ratelimit.Policy {
	return ratelimit.Policy{Limit: c.EdgeLimit, Window: c.EdgeWindow}
}

func (c *Config) ContactPolicy() ratelimit.Policy {
	return ratelimit.Policy{Limit: c.ContactLimit, Window: c.ContactWindow}
}

func (c *Config) LogConfig() *logging.Config {
	return &logging.Config{
		Level:       c.LogLevel,
		File:        c.LogFile,
		MaxSize:     c.LogMaxSize,
		MaxBackups:  c.LogMaxBackups,
		MaxAge:      c.LogMaxAge,
		LogRequests: c.LogRequests,
	}
}

// Redacted returns a copy safe to print
func (c *Config) Redacted() Config {
	out := *c
	out.ResendAPIKey = mask(out.ResendAPIKey)
	out.SMTPPass = mask(out.SMTPPass)
	out.RedisURL = mask(out.RedisURL)
	return out
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}
