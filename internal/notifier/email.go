package notifier

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"
)

// sendMailHook allows tests to override SMTP sending behavior.
var sendMailHook = smtp.SendMail

// EmailChannel delivers notifications over SMTP as an HTML email.
type EmailChannel struct {
	from     string
	to       []string
	host     string
	port     int
	password string
	logger   zerolog.Logger
}

// NewEmailChannel creates an SMTP email channel.
func NewEmailChannel(from string, to []string, host string, port int, password string, logger zerolog.Logger) *EmailChannel {
	return &EmailChannel{
		from:     from,
		to:       to,
		host:     host,
		port:     port,
		password: password,
		logger:   logger.With().Str("component", "EmailChannel").Logger(),
	}
}

// Name implements Channel.
func (c *EmailChannel) Name() string {
	return "email"
}

// Send implements Channel.
func (c *EmailChannel) Send(ctx context.Context, title, body string) error {
	_ = ctx // net/smtp has no context support; the caller bounds the cycle

	addr := fmt.Sprintf("%s:%d", c.host, c.port)
	auth := smtp.PlainAuth("", c.from, c.password, c.host)

	msg := buildEmailMessage(c.from, c.to, title, body)
	if err := sendMailHook(addr, auth, c.from, c.to, msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

// buildEmailMessage assembles an HTML MIME message. The subject is Q-encoded
// so titles with unit glyphs survive transport.
func buildEmailMessage(from string, to []string, title, body string) []byte {
	// Self-closing breaks for strict HTML renderers
	htmlBody := strings.ReplaceAll(body, "<br>", "<br/>")

	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", title) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(`<html><head></head><body><div style="font-family: Arial, sans-serif; padding: 20px;">`)
	b.WriteString(`<h2 style="color: #2c3e50;">` + title + `</h2>`)
	b.WriteString(`<div style="margin-top: 20px;">` + htmlBody + `</div>`)
	b.WriteString(`</div></body></html>`)
	return []byte(b.String())
}
