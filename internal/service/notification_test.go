package service

import (
	"strings"
	"testing"
	"time"

	_ "time/tzdata"

	"github.com/sevenstarlining/sevenstar-api/internal/api/dto/v1/contact"
	"github.com/sevenstarlining/sevenstar-api/internal/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderNotification(t *testing.T) {
	req := &contact.ContactRequest{
		Name:    "Arun <Kumar>",
		Phone:   "+91 97909 12314",
		Email:   "arun@example.com",
		Service: "Tank covers",
		Message: "Line one\nLine two",
	}
	at := time.Date(2026, 10, 19, 6, 30, 0, 0, time.UTC)

	msg, err := RenderNotification(req, business.Default(), "from@example.com", "to@example.com", at)
	require.NoError(t, err)

	assert.Equal(t, "from@example.com", msg.From)
	assert.Equal(t, []string{"to@example.com"}, msg.To)
	assert.Equal(t, "New Contact Form Submission from Arun <Kumar>", msg.Subject)
	assert.Equal(t, "arun@example.com", msg.ReplyTo)

	assert.Contains(t, msg.HTML, "Arun &lt;Kumar&gt;")
	assert.Contains(t, msg.HTML, "Line one<br>Line two")
	assert.Contains(t, msg.HTML, "mailto:arun@example.com")
	assert.Contains(t, msg.HTML, "Tank covers")
	assert.Contains(t, msg.HTML, "Received: Monday, 19 October 2026 at 12:00 pm")
	assert.Contains(t, msg.HTML, "No 72, 139, Eldams Rd, Subbarayan Nagar, Teynampet")
	assert.Contains(t, msg.HTML, "Chennai, Tamil Nadu 600018")

	assert.Contains(t, msg.Text, "Name: Arun <Kumar>")
	assert.Contains(t, msg.Text, "Email: arun@example.com")
	assert.Contains(t, msg.Text, "Line one\nLine two")
	assert.Contains(t, msg.Text, "Received: Monday, 19 October 2026 at 12:00 pm")
}

func TestRenderNotification_HeaderCarriesBusinessName(t *testing.T) {
	req := &contact.ContactRequest{Name: "Al", Phone: "9790912314", Message: "1234567890"}
	info := business.Default()
	info.Name = "Test Works"

	msg, err := RenderNotification(req, info, "from@example.com", "to@example.com", time.Now())
	require.NoError(t, err)

	header := msg.HTML[:strings.Index(msg.HTML, "<table")]
	assert.Contains(t, header, "New Contact Form Submission")
	assert.Contains(t, header, "Test Works")
	assert.True(t, strings.HasPrefix(msg.Text, "New Contact Form Submission\nTest Works\n"))
}

func TestNotificationSubject_SingleLine(t *testing.T) {
	assert.Equal(t, "New Contact Form Submission from Arun Bcc: x@example.com",
		NotificationSubject("Arun\r\nBcc: x@example.com"))
}

func TestRenderNotification_OmitsOptionalFields(t *testing.T) {
	req := &contact.ContactRequest{
		Name:    "Al",
		Phone:   "9790912314",
		Message: "1234567890",
	}

	msg, err := RenderNotification(req, business.Default(), "from@example.com", "to@example.com", time.Now())
	require.NoError(t, err)

	assert.Empty(t, msg.ReplyTo)
	assert.NotContains(t, msg.HTML, "mailto:")
	assert.NotContains(t, msg.HTML, ">Service<")
	assert.NotContains(t, msg.Text, "Email:")
	assert.NotContains(t, msg.Text, "Service:")
}
