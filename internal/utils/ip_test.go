package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIdentifierFromRequest(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		expected string
	}{
		{
			name:     "no headers",
			expected: "unknown",
		},
		{
			name:     "single forwarded address",
			headers:  map[string]string{"X-Forwarded-For": "203.0.113.7"},
			expected: "203.0.113.7",
		},
		{
			name:     "forwarded chain takes leftmost",
			headers:  map[string]string{"X-Forwarded-For": " 203.0.113.7 , 10.0.0.1, 10.0.0.2"},
			expected: "203.0.113.7",
		},
		{
			name:     "forwarded wins over real ip",
			headers:  map[string]string{"X-Forwarded-For": "203.0.113.7", "X-Real-IP": "198.51.100.2"},
			expected: "203.0.113.7",
		},
		{
			name:     "real ip fallback",
			headers:  map[string]string{"X-Real-IP": "198.51.100.2"},
			expected: "198.51.100.2",
		},
		{
			name:     "empty leading entry falls through",
			headers:  map[string]string{"X-Forwarded-For": " , 10.0.0.1", "X-Real-IP": "198.51.100.2"},
			expected: "198.51.100.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/contact", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			assert.Equal(t, tt.expected, ClientIdentifierFromRequest(req))
		})
	}
}
