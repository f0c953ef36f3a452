package service

import (
	"context"
	"fmt"

	"github.com/sevenstarlining/sevenstar-api/internal/config"
)

// Email is a provider-neutral outbound message
type Email struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// SendResult is what a provider reports back on success
type SendResult struct {
	ID string `json:"id"`
}

// Mailer delivers one email. Implementations do not retry.
type Mailer interface {
	Name() string
	Send(ctx context.Context, msg *Email) (*SendResult, error)
}

// NewMailer builds the mailer selected by cfg. It returns ErrEmailNotConfigured when
// the provider's credential is missing, which callers treat as a degraded mode.
func NewMailer(cfg *config.Config) (Mailer, error) {
	if !cfg.EmailConfigured() {
		return nil, ErrEmailNotConfigured
	}

	switch cfg.EmailProvider {
	case config.ProviderResend:
		return NewResendMailer(cfg.ResendAPIKey), nil
	case config.ProviderSMTP:
		return NewSMTPMailer(SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			SSL:  cfg.SMTPSSL,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported email provider %q", cfg.EmailProvider)
	}
}
