package notifier

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailSendBuildsHTMLMessage(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	orig := sendMailHook
	sendMailHook = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}
	defer func() { sendMailHook = orig }()

	ch := NewEmailChannel("monitor@example.com", []string{"a@example.com", "b@example.com"},
		"smtp.example.com", 587, "secret", zerolog.Nop())

	err := ch.Send(context.Background(), "Apartment Update", "line one<br>line two")

	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "monitor@example.com", gotFrom)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, gotTo)

	msg := string(gotMsg)
	assert.Contains(t, msg, "To: a@example.com, b@example.com")
	assert.Contains(t, msg, "Content-Type: text/html")
	assert.Contains(t, msg, "line one<br/>line two", "breaks are self-closed for strict renderers")
	assert.True(t, strings.Contains(msg, "\r\n\r\n"), "headers and body must be separated")
}

func TestEmailSendPropagatesSMTPError(t *testing.T) {
	orig := sendMailHook
	sendMailHook = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		return errors.New("535 authentication failed")
	}
	defer func() { sendMailHook = orig }()

	ch := NewEmailChannel("monitor@example.com", []string{"a@example.com"},
		"smtp.example.com", 587, "wrong", zerolog.Nop())

	err := ch.Send(context.Background(), "title", "body")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp send failed")
}
