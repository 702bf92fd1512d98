// Package scraper renders the apartment listing page in a headless browser
// and extracts the available units from it.
package scraper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"

	"github.com/aleister1102/aptwatch/internal/config"
)

// BrowserManager owns the single Chromium instance used for scraping. The
// poll loop runs one cycle at a time, so one browser is enough.
type BrowserManager struct {
	config    config.ScraperConfig
	logger    zerolog.Logger
	launcher  *launcher.Launcher
	browser   *rod.Browser
	mutex     sync.Mutex
	isRunning bool
}

// NewBrowserManager creates a new browser manager.
func NewBrowserManager(cfg config.ScraperConfig, logger zerolog.Logger) *BrowserManager {
	return &BrowserManager{
		config: cfg,
		logger: logger.With().Str("component", "BrowserManager").Logger(),
	}
}

// Start launches the browser and connects to it.
func (bm *BrowserManager) Start() error {
	bm.mutex.Lock()
	defer bm.mutex.Unlock()

	if bm.isRunning {
		return nil
	}

	l := launcher.New().Headless(bm.config.Headless)

	if bm.config.ChromePath != "" {
		l = l.Bin(bm.config.ChromePath)
	}

	userDataDir := bm.config.UserDataDir
	if userDataDir == "" {
		// Isolated profile dir to avoid conflicts in shared environments
		userDataDir = filepath.Join(os.TempDir(), fmt.Sprintf("aptwatch-profile-%d", os.Getpid()))
	}
	l = l.UserDataDir(userDataDir)

	l = l.
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("no-first-run").
		Set("disable-default-apps").
		Set("disable-sync").
		Set("window-size", fmt.Sprintf("%d,%d", bm.config.WindowWidth, bm.config.WindowHeight))

	if bm.config.DisableImages {
		l = l.Set("blink-settings", "imagesEnabled=false")
	}

	launcherURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}
	bm.launcher = l

	browser := rod.New().ControlURL(launcherURL)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("failed to connect to browser: %w", err)
	}
	bm.browser = browser

	bm.isRunning = true
	bm.logger.Info().Bool("headless", bm.config.Headless).Msg("Browser started")
	return nil
}

// Stop closes the browser and cleans up the launcher.
func (bm *BrowserManager) Stop() {
	bm.mutex.Lock()
	defer bm.mutex.Unlock()

	if !bm.isRunning {
		return
	}

	if bm.browser != nil {
		if err := bm.browser.Close(); err != nil {
			bm.logger.Warn().Err(err).Msg("Failed to close browser")
		}
		bm.browser = nil
	}
	if bm.launcher != nil {
		bm.launcher.Cleanup()
		bm.launcher = nil
	}

	bm.isRunning = false
	bm.logger.Info().Msg("Browser stopped")
}

// FetchRenderedHTML navigates to the URL, waits for the given selector to be
// present, and returns the rendered page HTML.
func (bm *BrowserManager) FetchRenderedHTML(ctx context.Context, url, waitSelector string) (string, error) {
	bm.mutex.Lock()
	browser := bm.browser
	running := bm.isRunning
	bm.mutex.Unlock()

	if !running || browser == nil {
		return "", fmt.Errorf("browser manager is not running")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(bm.config.PageTimeoutSeconds)*time.Second)
	defer cancel()

	page, err := browser.Context(timeoutCtx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("failed to create page: %w", err)
	}
	defer page.Close()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  bm.config.WindowWidth,
		Height: bm.config.WindowHeight,
	}); err != nil {
		bm.logger.Warn().Err(err).Msg("Failed to set viewport")
	}

	if bm.config.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent: bm.config.UserAgent,
		}); err != nil {
			bm.logger.Warn().Err(err).Msg("Failed to set user agent")
		}
	}

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("failed to navigate to %s: %w", url, err)
	}

	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("page load timeout for %s: %w", url, err)
	}

	if waitSelector != "" {
		if _, err := page.Element(waitSelector); err != nil {
			return "", fmt.Errorf("selector '%s' did not appear on %s: %w", waitSelector, url, err)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get HTML for %s: %w", url, err)
	}
	return html, nil
}
