package notifier

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aleister1102/aptwatch/internal/config"
)

// BuildChannels constructs the notification channels the configuration
// enables. A channel with missing credentials is skipped silently; an unknown
// WeChat method is logged and skipped.
func BuildChannels(cfg config.NotificationConfig, httpClient *http.Client, logger zerolog.Logger) []Channel {
	var channels []Channel

	if cfg.WeChatEnabled() {
		switch cfg.WeChatMethod {
		case config.WeChatMethodPushPlus, "":
			channels = append(channels, NewPushPlusChannel(cfg.WeChatToken, httpClient, logger))
		case config.WeChatMethodServerChan:
			channels = append(channels, NewServerChanChannel(cfg.WeChatToken, httpClient, logger))
		case config.WeChatMethodWork:
			channels = append(channels, NewWeChatWorkChannel(cfg.WeChatToken, httpClient, logger))
		default:
			logger.Warn().Str("method", cfg.WeChatMethod).Msg("Unknown WeChat method, channel disabled")
		}
	}

	if cfg.EmailEnabled() {
		channels = append(channels, NewEmailChannel(cfg.EmailFrom, cfg.EmailTo, cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPPassword, logger))
	}

	return channels
}
