package notifier

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

const weChatWorkEndpointFormat = "https://qyapi.weixin.qq.com/cgi-bin/webhook/send?key=%s"

// WeChatWorkChannel delivers notifications through a WeChat Work (企业微信)
// group webhook. The webhook only accepts plain text, so the title and the
// stripped body are joined into a single text message.
type WeChatWorkChannel struct {
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewWeChatWorkChannel creates a WeChat Work channel for the given webhook
// key.
func NewWeChatWorkChannel(key string, httpClient *http.Client, logger zerolog.Logger) *WeChatWorkChannel {
	return &WeChatWorkChannel{
		endpoint:   fmt.Sprintf(weChatWorkEndpointFormat, key),
		httpClient: httpClient,
		logger:     logger.With().Str("component", "WeChatWorkChannel").Logger(),
	}
}

// Name implements Channel.
func (c *WeChatWorkChannel) Name() string {
	return "wechat-work"
}

// Send implements Channel.
func (c *WeChatWorkChannel) Send(ctx context.Context, title, body string) error {
	payload := map[string]interface{}{
		"msgtype": "text",
		"text": map[string]string{
			"content": title + "\n\n" + htmlToPlain(body),
		},
	}

	var result struct {
		ErrCode int    `json:"errcode"`
		ErrMsg  string `json:"errmsg"`
	}
	if err := postJSON(ctx, c.httpClient, c.endpoint, payload, &result); err != nil {
		return fmt.Errorf("wechat work request failed: %w", err)
	}
	if result.ErrCode != 0 {
		return fmt.Errorf("wechat work rejected notification: errcode=%d errmsg=%s", result.ErrCode, result.ErrMsg)
	}
	return nil
}
