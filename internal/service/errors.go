package service

import "errors"

// Sentinel errors for service layer
var (
	ErrMalformedBody      = errors.New("malformed request body")
	ErrEmailNotConfigured = errors.New("email service not configured")
	ErrDeliveryFailed     = errors.New("email delivery failed")
	ErrRender             = errors.New("failed to render notification")
)
