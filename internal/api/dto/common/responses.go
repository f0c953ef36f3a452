package common

// APIResponse is the standard wrapper for all API responses
type APIResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
	RetryAfter *int        `json:"retryAfter,omitempty"`
}

// FieldErrors maps a JSON field name to its validation messages
type FieldErrors map[string][]string

// Standard messages
const (
	MsgSent            = "Message sent successfully"
	MsgTooManyRequests = "Too many requests. Please try again later."
	MsgThrottled       = "Rate limit exceeded. Please try again later."
	MsgValidation      = "Validation error"
	MsgDeliveryFailed  = "Failed to send email"
	MsgInternal        = "Internal server error"
	MsgUnconfigured    = "Email service not configured. Please contact us directly at "
)

// NewSuccessResponse creates a new successful API response
func NewSuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse creates a new error API response
func NewErrorResponse(message string) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
	}
}

// NewValidationResponse creates an error response carrying field errors
func NewValidationResponse(errs FieldErrors) APIResponse {
	return APIResponse{
		Success: false,
		Message: MsgValidation,
		Errors:  errs,
	}
}

// NewRateLimitResponse creates a 429 body with the seconds until the window resets
func NewRateLimitResponse(retryAfter int) APIResponse {
	return APIResponse{
		Success:    false,
		Message:    MsgTooManyRequests,
		RetryAfter: &retryAfter,
	}
}
