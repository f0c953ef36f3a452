package service

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/sevenstarlining/sevenstar-api/internal/api/dto/v1/contact"
	"github.com/sevenstarlining/sevenstar-api/internal/api/sanitization"
	"github.com/sevenstarlining/sevenstar-api/internal/business"
)

//go:embed templates/contact_email.html templates/contact_email.txt
var templateFS embed.FS

// ReceivedLayout is how the submission time is shown to the shop
const ReceivedLayout = "Monday, 2 January 2006 at 3:04 pm"

var (
	htmlTemplate = htmltemplate.Must(htmltemplate.New("contact_email.html").
			Funcs(htmltemplate.FuncMap{"lines": htmlLines}).
			ParseFS(templateFS, "templates/contact_email.html"))
	textTemplate = texttemplate.Must(texttemplate.New("contact_email.txt").
			ParseFS(templateFS, "templates/contact_email.txt"))
)

// htmlLines escapes s and turns its line breaks into <br>
func htmlLines(s string) htmltemplate.HTML {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	parts := strings.Split(s, "\n")
	for i, p := range parts {
		parts[i] = htmltemplate.HTMLEscapeString(p)
	}
	return htmltemplate.HTML(strings.Join(parts, "<br>"))
}

type notificationData struct {
	Subject      string
	Name         string
	Phone        string
	Email        string
	Service      string
	Message      string
	ReceivedAt   string
	Business     business.Info
	AddressLines []string
}

// NotificationSubject is the subject line for a submission from name
func NotificationSubject(name string) string {
	return "New Contact Form Submission from " + sanitization.SingleLine(name)
}

// RenderNotification builds the email sent to the shop for one submission
func RenderNotification(req *contact.ContactRequest, info business.Info, from, to string, receivedAt time.Time) (*Email, error) {
	line1, line2 := info.AddressLines()
	data := notificationData{
		Subject:      NotificationSubject(req.Name),
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Service:      req.Service,
		Message:      req.Message,
		ReceivedAt:   receivedAt.In(info.Location()).Format(ReceivedLayout),
		Business:     info,
		AddressLines: []string{line1, line2},
	}

	var html, text bytes.Buffer
	if err := htmlTemplate.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	if err := textTemplate.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	msg := &Email{
		From:    from,
		To:      []string{to},
		Subject: data.Subject,
		HTML:    html.String(),
		Text:    text.String(),
	}
	if req.HasEmail() {
		msg.ReplyTo = sanitization.SingleLine(req.Email)
	}
	return msg, nil
}
