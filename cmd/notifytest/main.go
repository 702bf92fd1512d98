// notifytest sends a test notification through every configured channel so
// credentials can be verified without waiting for an availability change.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aleister1102/aptwatch/internal/config"
	"github.com/aleister1102/aptwatch/internal/logger"
	"github.com/aleister1102/aptwatch/internal/notifier"
)

func main() {
	globalConfigFile := flag.String("globalconfig", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := flag.String("gc", "", "Alias for --globalconfig")
	wechatMethodFlag := flag.String("wechat-method", "", "WeChat notification method: pushplus, serverchan or work (overrides config file if set)")
	flag.Parse()

	if *globalConfigFile == "" && *globalConfigFileAlias != "" {
		*globalConfigFile = *globalConfigFileAlias
	}

	gCfg, err := config.LoadGlobalConfig(*globalConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Could not load global config: %v", err)
	}
	if *wechatMethodFlag != "" {
		gCfg.NotificationConfig.WeChatMethod = *wechatMethodFlag
	}
	if err := config.ApplySecretsOverlay(gCfg); err != nil {
		log.Fatalf("[FATAL] Could not apply secrets overlay: %v", err)
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}
	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Fatal().Err(err).Msg("Configuration validation failed")
	}

	channels := notifier.BuildChannels(gCfg.NotificationConfig, &http.Client{Timeout: 10 * time.Second}, zLogger)
	if len(channels) == 0 {
		zLogger.Fatal().Msg("No notification channels configured; add a WeChat token or email credentials first")
	}

	dispatcher := notifier.NewDispatcher(channels, zLogger)

	title := "🧪 Apartment Monitor - Test"
	body := strings.Join([]string{
		"<b>✅ Notifications are working!</b>",
		"",
		"The apartment monitor is ready to alert you when:",
		"• New apartments become available",
		"• Apartments are removed/rented",
		"• The monitor starts up",
		"",
		"🕐 Test sent at: " + time.Now().Format("2006-01-02 15:04:05"),
	}, "<br>")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	summary := dispatcher.Dispatch(ctx, title, body)
	for _, result := range summary.Results {
		if result.Succeeded() {
			zLogger.Info().Str("channel", result.Channel).Msg("Test notification delivered")
		} else {
			zLogger.Error().Err(result.Err).Str("channel", result.Channel).Msg("Test notification failed")
		}
	}

	if !summary.Delivered() {
		os.Exit(1)
	}
}
