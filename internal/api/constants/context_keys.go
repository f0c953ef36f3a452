package constants

// Context keys set by middleware
const (
	ContextKeyRequestID = "RequestID"
)
