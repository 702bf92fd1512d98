package notifier

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/aptwatch/internal/config"
)

func TestBuildChannelsNoCredentials(t *testing.T) {
	cfg := config.NewDefaultNotificationConfig()

	channels := BuildChannels(cfg, nil, zerolog.Nop())

	assert.Empty(t, channels, "missing credentials disable all channels without error")
}

func TestBuildChannelsWeChatMethods(t *testing.T) {
	cases := map[string]string{
		config.WeChatMethodPushPlus:   "pushplus",
		config.WeChatMethodServerChan: "serverchan",
		config.WeChatMethodWork:       "wechat-work",
	}
	for method, wantName := range cases {
		cfg := config.NewDefaultNotificationConfig()
		cfg.WeChatToken = "tok"
		cfg.WeChatMethod = method

		channels := BuildChannels(cfg, nil, zerolog.Nop())

		require.Len(t, channels, 1, "method %s", method)
		assert.Equal(t, wantName, channels[0].Name())
	}
}

func TestBuildChannelsUnknownWeChatMethodSkipped(t *testing.T) {
	cfg := config.NewDefaultNotificationConfig()
	cfg.WeChatToken = "tok"
	cfg.WeChatMethod = "carrier-pigeon"

	channels := BuildChannels(cfg, nil, zerolog.Nop())

	assert.Empty(t, channels)
}

func TestBuildChannelsEmailRequiresFullCredentials(t *testing.T) {
	cfg := config.NewDefaultNotificationConfig()
	cfg.EmailFrom = "monitor@example.com"
	cfg.EmailTo = []string{"a@example.com"}
	cfg.SMTPHost = "smtp.example.com"

	// Password still missing
	assert.Empty(t, BuildChannels(cfg, nil, zerolog.Nop()))

	cfg.SMTPPassword = "secret"
	channels := BuildChannels(cfg, nil, zerolog.Nop())
	require.Len(t, channels, 1)
	assert.Equal(t, "email", channels[0].Name())
}

func TestBuildChannelsWeChatAndEmailTogether(t *testing.T) {
	cfg := config.NewDefaultNotificationConfig()
	cfg.WeChatToken = "tok"
	cfg.EmailFrom = "monitor@example.com"
	cfg.EmailTo = []string{"a@example.com"}
	cfg.SMTPHost = "smtp.example.com"
	cfg.SMTPPassword = "secret"

	channels := BuildChannels(cfg, nil, zerolog.Nop())

	require.Len(t, channels, 2)
	assert.Equal(t, "pushplus", channels[0].Name())
	assert.Equal(t, "email", channels[1].Name())
}
