package config

// StorageConfig defines configuration for persisted state.
type StorageConfig struct {
	SnapshotFile  string `json:"snapshot_file,omitempty" yaml:"snapshot_file,omitempty"`
	ListingFile   string `json:"listing_file,omitempty" yaml:"listing_file,omitempty"`
	HistoryDBPath string `json:"history_db_path,omitempty" yaml:"history_db_path,omitempty"`
}

// NewDefaultStorageConfig creates default storage configuration.
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		SnapshotFile:  DefaultSnapshotFile,
		ListingFile:   DefaultListingFile,
		HistoryDBPath: DefaultHistoryDBPath,
	}
}
