package service

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendMailer sends through the Resend transactional email API
type ResendMailer struct {
	client *resend.Client
}

// NewResendMailer creates a mailer authenticated with apiKey
func NewResendMailer(apiKey string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey)}
}

func (m *ResendMailer) Name() string {
	return "resend"
}

func (m *ResendMailer) Send(ctx context.Context, msg *Email) (*SendResult, error) {
	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: resend: %v", ErrDeliveryFailed, err)
	}

	return &SendResult{ID: sent.Id}, nil
}
