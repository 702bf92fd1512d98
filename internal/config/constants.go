package config

const (
	// Monitor Defaults
	DefaultTargetURL            = "https://www.windsorcommunities.com/properties/windsor-winchester/floorplans/"
	DefaultCheckIntervalSeconds = 20
	DefaultNotifyMinBedrooms    = 2

	// Scraper Defaults
	DefaultScraperUserAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultScraperTimeoutSeconds = 15
	DefaultScraperHeadless       = true
	DefaultScraperWindowWidth    = 1920
	DefaultScraperWindowHeight   = 1080

	// Notification Defaults
	DefaultWeChatMethod = WeChatMethodPushPlus
	DefaultSMTPPort     = 587
	DefaultSecretsDir   = "secrets"

	// Storage Defaults
	DefaultSnapshotFile  = "data/available_apartments.json"
	DefaultListingFile   = "data/available_apartments.txt"
	DefaultHistoryDBPath = "data/poll_history.db"

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3
)

// Supported WeChat push methods.
const (
	WeChatMethodPushPlus   = "pushplus"
	WeChatMethodServerChan = "serverchan"
	WeChatMethodWork       = "work"
)

// DefaultNotifyFloorPlans is the default notification filter: the
// multi-bedroom floor plans on the monitored property.
var DefaultNotifyFloorPlans = []string{"N", "O", "P", "Q", "R", "S", "T", "U", "V"}
