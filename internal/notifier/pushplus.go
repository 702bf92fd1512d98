package notifier

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

const pushPlusEndpoint = "http://www.pushplus.plus/send"

// PushPlusChannel delivers WeChat notifications through the PushPlus relay.
// The body is sent as-is with the html template.
type PushPlusChannel struct {
	token      string
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewPushPlusChannel creates a PushPlus channel for the given token.
func NewPushPlusChannel(token string, httpClient *http.Client, logger zerolog.Logger) *PushPlusChannel {
	return &PushPlusChannel{
		token:      token,
		endpoint:   pushPlusEndpoint,
		httpClient: httpClient,
		logger:     logger.With().Str("component", "PushPlusChannel").Logger(),
	}
}

// Name implements Channel.
func (c *PushPlusChannel) Name() string {
	return "pushplus"
}

// Send implements Channel.
func (c *PushPlusChannel) Send(ctx context.Context, title, body string) error {
	payload := map[string]string{
		"token":    c.token,
		"title":    title,
		"content":  body,
		"template": "html",
	}

	var result struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	if err := postJSON(ctx, c.httpClient, c.endpoint, payload, &result); err != nil {
		return fmt.Errorf("pushplus request failed: %w", err)
	}
	if result.Code != 200 {
		return fmt.Errorf("pushplus rejected notification: code=%d msg=%s", result.Code, result.Msg)
	}
	return nil
}
