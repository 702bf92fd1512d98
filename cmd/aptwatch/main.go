package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aleister1102/aptwatch/internal/config"
	"github.com/aleister1102/aptwatch/internal/datastore"
	"github.com/aleister1102/aptwatch/internal/logger"
	"github.com/aleister1102/aptwatch/internal/monitor"
	"github.com/aleister1102/aptwatch/internal/notifier"
	"github.com/aleister1102/aptwatch/internal/scraper"
)

func main() {
	fmt.Println("aptwatch apartment monitor starting...")

	// Flags
	globalConfigFile := flag.String("globalconfig", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := flag.String("gc", "", "Alias for --globalconfig")

	intervalFlag := flag.Int("interval", 0, "Check interval in seconds (overrides config file if set)")
	urlFlag := flag.String("url", "", "Listing page URL to monitor (overrides config file if set)")
	wechatMethodFlag := flag.String("wechat-method", "", "WeChat notification method: pushplus, serverchan or work (overrides config file if set)")
	noHeadlessFlag := flag.Bool("no-headless", false, "Show the browser window instead of running headless")
	flag.Parse()

	// Consolidate alias flags
	if *globalConfigFile == "" && *globalConfigFileAlias != "" {
		*globalConfigFile = *globalConfigFileAlias
	}

	// Load Global Configuration
	gCfg, err := config.LoadGlobalConfig(*globalConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not load global config using path '%s': %v", *globalConfigFile, err)
	}

	// Command line flags take precedence over the config file
	if *intervalFlag > 0 {
		gCfg.MonitorConfig.CheckIntervalSeconds = *intervalFlag
	}
	if *urlFlag != "" {
		gCfg.MonitorConfig.TargetURL = *urlFlag
	}
	if *wechatMethodFlag != "" {
		gCfg.NotificationConfig.WeChatMethod = *wechatMethodFlag
	}
	if *noHeadlessFlag {
		gCfg.ScraperConfig.Headless = false
	}

	// Overlay credentials from the secrets dir and environment
	if err := config.ApplySecretsOverlay(gCfg); err != nil {
		log.Fatalf("[FATAL] Main: Could not apply secrets overlay: %v", err)
	}

	// Initialize zerolog logger
	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not initialize logger: %v", err)
	}

	// Validate the loaded configuration
	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Fatal().Err(err).Msg("Configuration validation failed")
	}
	zLogger.Info().
		Str("url", gCfg.MonitorConfig.TargetURL).
		Int("interval_seconds", gCfg.MonitorConfig.CheckIntervalSeconds).
		Msg("Configuration loaded and validated")

	// Notification channels; absent credentials silently disable a channel
	channels := notifier.BuildChannels(gCfg.NotificationConfig, &http.Client{Timeout: 10 * time.Second}, zLogger)
	if len(channels) == 0 {
		zLogger.Info().Msg("No notification channels configured; changes will only be logged and persisted")
	} else {
		names := make([]string, len(channels))
		for i, ch := range channels {
			names[i] = ch.Name()
		}
		zLogger.Info().Strs("channels", names).Strs("notify_floor_plans", gCfg.MonitorConfig.NotifyFloorPlans).Msg("Notifications enabled")
	}
	dispatcher := notifier.NewDispatcher(channels, zLogger)

	// State store
	store := datastore.NewSnapshotStore(gCfg.StorageConfig, zLogger)

	// Poll cycle history (optional)
	var history *monitor.HistoryDB
	if gCfg.StorageConfig.HistoryDBPath != "" {
		history, err = monitor.NewHistoryDB(gCfg.StorageConfig.HistoryDBPath, zLogger)
		if err != nil {
			zLogger.Warn().Err(err).Msg("Poll history unavailable, continuing without it")
			history = nil
		}
	}

	// Scraper (headless browser)
	unitScraper := scraper.NewUnitScraper(gCfg.ScraperConfig, gCfg.MonitorConfig, zLogger)
	if err := unitScraper.Start(); err != nil {
		zLogger.Fatal().Err(err).Msg("Could not start the browser")
	}

	service := monitor.NewMonitorService(gCfg.MonitorConfig, unitScraper, store, dispatcher, history, zLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := service.Run(ctx)

	unitScraper.Stop()
	if err := history.Close(); err != nil {
		zLogger.Warn().Err(err).Msg("Failed to close poll history database")
	}

	if runErr != nil {
		zLogger.Error().Err(runErr).Msg("Monitor terminated with a fatal error")
		os.Exit(1)
	}
	zLogger.Info().Msg("Monitor stopped")
}
