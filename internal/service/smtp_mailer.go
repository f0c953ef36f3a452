package service

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	"github.com/google/uuid"
	"github.com/jordan-wright/email"
)

// SMTPConfig holds the relay settings
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	SSL  bool
}

// SMTPMailer sends through a plain SMTP relay
type SMTPMailer struct {
	cfg  SMTPConfig
	send func(addr string, auth smtp.Auth, tlsConfig *tls.Config, e *email.Email) error
}

// NewSMTPMailer creates a mailer for the given relay
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, send: sendSMTP}
}

func sendSMTP(addr string, auth smtp.Auth, tlsConfig *tls.Config, e *email.Email) error {
	if tlsConfig != nil {
		return e.SendWithTLS(addr, auth, tlsConfig)
	}
	return e.Send(addr, auth)
}

func (m *SMTPMailer) Name() string {
	return "smtp"
}

// Send delivers msg. The relay call itself cannot be interrupted, so a cancelled
// ctx only stops the wait; the goroutine finishes in the background.
func (m *SMTPMailer) Send(ctx context.Context, msg *Email) (*SendResult, error) {
	id := uuid.NewString()

	e := email.NewEmail()
	e.From = msg.From
	e.To = msg.To
	if msg.ReplyTo != "" {
		e.ReplyTo = []string{msg.ReplyTo}
	}
	e.Subject = msg.Subject
	e.HTML = []byte(msg.HTML)
	e.Text = []byte(msg.Text)
	e.Headers.Set("Message-Id", fmt.Sprintf("<%s@%s>", id, m.cfg.Host))

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}

	var tlsConfig *tls.Config
	if m.cfg.SSL {
		tlsConfig = &tls.Config{ServerName: m.cfg.Host}
	}

	done := make(chan error, 1)
	go func() {
		done <- m.send(addr, auth, tlsConfig, e)
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: smtp: %v", ErrDeliveryFailed, ctx.Err())
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("%w: smtp: %v", ErrDeliveryFailed, err)
		}
	}

	return &SendResult{ID: id}, nil
}
