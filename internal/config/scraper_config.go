package config

// ScraperConfig defines configuration for the headless browser scraper.
type ScraperConfig struct {
	Headless           bool   `json:"headless" yaml:"headless"`
	ChromePath         string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`
	UserDataDir        string `json:"user_data_dir,omitempty" yaml:"user_data_dir,omitempty"`
	UserAgent          string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	PageTimeoutSeconds int    `json:"page_timeout_seconds,omitempty" yaml:"page_timeout_seconds,omitempty" validate:"omitempty,min=1"`
	DisableImages      bool   `json:"disable_images" yaml:"disable_images"`
	WindowWidth        int    `json:"window_width,omitempty" yaml:"window_width,omitempty" validate:"omitempty,min=1"`
	WindowHeight       int    `json:"window_height,omitempty" yaml:"window_height,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultScraperConfig creates default scraper configuration.
func NewDefaultScraperConfig() ScraperConfig {
	return ScraperConfig{
		Headless:           DefaultScraperHeadless,
		UserAgent:          DefaultScraperUserAgent,
		PageTimeoutSeconds: DefaultScraperTimeoutSeconds,
		DisableImages:      true,
		WindowWidth:        DefaultScraperWindowWidth,
		WindowHeight:       DefaultScraperWindowHeight,
	}
}
