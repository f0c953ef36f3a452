package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() map[string]interface{} {
	return map[string]interface{}{
		"name":    "Al",
		"phone":   "9790912314",
		"message": "1234567890",
	}
}

func with(overrides map[string]interface{}) map[string]interface{} {
	raw := validSubmission()
	for k, v := range overrides {
		if v == nil {
			delete(raw, k)
			continue
		}
		raw[k] = v
	}
	return raw
}

func TestValidateContactMinimumLengthsPass(t *testing.T) {
	req, errs := New().ValidateContact(validSubmission())
	require.Empty(t, errs)
	require.NotNil(t, req)

	assert.Equal(t, "Al", req.Name)
	assert.Equal(t, "9790912314", req.Phone)
	assert.Equal(t, "1234567890", req.Message)
	assert.False(t, req.HasEmail())
	assert.False(t, req.HasService())
}

func TestValidateContactFields(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]interface{}
		field     string
		message   string
	}{
		{"one char name", map[string]interface{}{"name": "A"}, "name", "Name must be at least 2 characters"},
		{"missing name", map[string]interface{}{"name": nil}, "name", "Name is required"},
		{"long name", map[string]interface{}{"name": strings.Repeat("a", 101)}, "name", "Name is too long"},
		{"short phone", map[string]interface{}{"phone": "979091231"}, "phone", "Phone number must be at least 10 digits"},
		{"long phone", map[string]interface{}{"phone": "+91 97909 123145"}, "phone", "Phone number is too long"},
		{"letters in phone", map[string]interface{}{"phone": "97909abcde"}, "phone", "Invalid phone number format"},
		{"missing phone", map[string]interface{}{"phone": nil}, "phone", "Phone number is required"},
		{"nine char message", map[string]interface{}{"message": "123456789"}, "message", "Message must be at least 10 characters"},
		{"long message", map[string]interface{}{"message": strings.Repeat("m", 1001)}, "message", "Message is too long"},
		{"bad email", map[string]interface{}{"email": "not-an-email"}, "email", "Invalid email address"},
		{"numeric name", map[string]interface{}{"name": 42.0}, "name", "Name must be a string"},
		{"object message", map[string]interface{}{"message": map[string]interface{}{}}, "message", "Message must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, errs := New().ValidateContact(with(tt.overrides))
			assert.Nil(t, req)
			require.Contains(t, errs, tt.field)
			assert.Equal(t, []string{tt.message}, errs[tt.field])
			assert.Len(t, errs, 1, "only %s should fail: %v", tt.field, errs)
		})
	}
}

func TestValidateContactOptionalFields(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]interface{}
	}{
		{"empty email", map[string]interface{}{"email": ""}},
		{"absent email", map[string]interface{}{"email": nil}},
		{"valid email", map[string]interface{}{"email": "rider@example.com"}},
		{"phone with symbols", map[string]interface{}{"phone": "(979) 091-2314"}},
		{"service", map[string]interface{}{"service": "Seat Covers"}},
		{"long service", map[string]interface{}{"service": strings.Repeat("s", 150)}},
		{"honeypot filled", map[string]interface{}{"website": "http://spam.example"}},
		{"unknown keys ignored", map[string]interface{}{"recaptcha": "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, errs := New().ValidateContact(with(tt.overrides))
			assert.Empty(t, errs)
			assert.NotNil(t, req)
		})
	}
}

func TestValidateContactReportsEveryFailingField(t *testing.T) {
	_, errs := New().ValidateContact(map[string]interface{}{
		"name":    "A",
		"phone":   "123",
		"email":   "nope",
		"message": "short",
	})

	assert.Len(t, errs, 4)
	for _, field := range []string{"name", "phone", "email", "message"} {
		assert.Contains(t, errs, field)
	}
}

func TestValidateContactEmptyObject(t *testing.T) {
	_, errs := New().ValidateContact(map[string]interface{}{})

	assert.Equal(t, []string{"Name is required"}, errs["name"])
	assert.Equal(t, []string{"Phone number is required"}, errs["phone"])
	assert.Equal(t, []string{"Message is required"}, errs["message"])
	assert.NotContains(t, errs, "email")
}

func TestValidateContactNullValuesAreAbsent(t *testing.T) {
	raw := validSubmission()
	raw["email"] = nil
	raw["service"] = nil

	req, errs := New().ValidateContact(raw)
	require.Empty(t, errs)
	assert.False(t, req.HasEmail())
}

func TestHoneypotIsCaptured(t *testing.T) {
	req, errs := New().ValidateContact(with(map[string]interface{}{"website": "bot"}))
	require.Empty(t, errs)
	assert.True(t, req.IsLikelyBot())
}
