package notifier

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
)

const serverChanEndpointFormat = "https://sctapi.ftqq.com/%s.send"

// ServerChanChannel delivers WeChat notifications through Server酱
// (ServerChan). The desp field takes markdown-ish plain text, so the body's
// markup is stripped first.
type ServerChanChannel struct {
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewServerChanChannel creates a ServerChan channel for the given token.
func NewServerChanChannel(token string, httpClient *http.Client, logger zerolog.Logger) *ServerChanChannel {
	return &ServerChanChannel{
		endpoint:   fmt.Sprintf(serverChanEndpointFormat, token),
		httpClient: httpClient,
		logger:     logger.With().Str("component", "ServerChanChannel").Logger(),
	}
}

// Name implements Channel.
func (c *ServerChanChannel) Name() string {
	return "serverchan"
}

// Send implements Channel.
func (c *ServerChanChannel) Send(ctx context.Context, title, body string) error {
	values := url.Values{
		"title": {title},
		"desp":  {htmlToPlain(body)},
	}

	var result struct {
		Code int `json:"code"`
	}
	if err := postForm(ctx, c.httpClient, c.endpoint, values, &result); err != nil {
		return fmt.Errorf("serverchan request failed: %w", err)
	}
	if result.Code != 0 {
		return fmt.Errorf("serverchan rejected notification: code=%d", result.Code)
	}
	return nil
}
