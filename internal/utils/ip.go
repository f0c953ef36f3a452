package utils

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UnknownClient is the identifier used when no forwarding header is present
const UnknownClient = "unknown"

// ClientIdentifier returns the rate limit key for the request.
// The headers are client controlled; the value is only trustworthy behind a proxy
// that overwrites them.
func ClientIdentifier(c *gin.Context) string {
	return ClientIdentifierFromRequest(c.Request)
}

// ClientIdentifierFromRequest takes the leftmost X-Forwarded-For entry, then
// X-Real-IP, then falls back to UnknownClient.
func ClientIdentifierFromRequest(r *http.Request) string {
	if forwardedFor := r.Header.Get("X-Forwarded-For"); forwardedFor != "" {
		// Format: client, proxy1, proxy2, ...
		first, _, _ := strings.Cut(forwardedFor, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	return UnknownClient
}
