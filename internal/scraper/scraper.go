package scraper

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aleister1102/aptwatch/internal/config"
	"github.com/aleister1102/aptwatch/internal/models"
)

// UnitScraper fetches the rendered floorplans page and builds an availability
// snapshot from it.
type UnitScraper struct {
	targetURL   string
	minBedrooms int
	browser     *BrowserManager
	logger      zerolog.Logger
}

// NewUnitScraper creates a new UnitScraper. The browser manager must be
// started before the first fetch.
func NewUnitScraper(scraperCfg config.ScraperConfig, monitorCfg config.MonitorConfig, logger zerolog.Logger) *UnitScraper {
	return &UnitScraper{
		targetURL:   monitorCfg.TargetURL,
		minBedrooms: monitorCfg.NotifyMinBedrooms,
		browser:     NewBrowserManager(scraperCfg, logger),
		logger:      logger.With().Str("component", "UnitScraper").Logger(),
	}
}

// Start launches the underlying browser.
func (us *UnitScraper) Start() error {
	return us.browser.Start()
}

// Stop shuts down the underlying browser.
func (us *UnitScraper) Stop() {
	us.browser.Stop()
}

// FetchSnapshot loads the floorplans page and returns the current
// availability snapshot.
func (us *UnitScraper) FetchSnapshot(ctx context.Context) (models.Snapshot, error) {
	url := unitsTabURL(us.targetURL)

	html, err := us.browser.FetchRenderedHTML(ctx, url, unitCardSelector)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch floorplans page: %w", err)
	}

	units, err := ParseUnits(html)
	if err != nil {
		return nil, fmt.Errorf("failed to extract units: %w", err)
	}

	snapshot := BuildSnapshot(units, us.minBedrooms)
	us.logger.Debug().
		Int("cards", len(units)).
		Int("units", snapshot.TotalUnits()).
		Msg("Availability snapshot built")
	return snapshot, nil
}

// unitsTabURL forces the page onto the Units tab so the per-unit cards are
// rendered.
func unitsTabURL(base string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "spaces_tab=unit"
}
