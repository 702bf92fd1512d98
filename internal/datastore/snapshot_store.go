// Package datastore persists the last-known availability snapshot across
// process restarts.
package datastore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aleister1102/aptwatch/internal/config"
	"github.com/aleister1102/aptwatch/internal/models"
)

// SnapshotStore reads and writes the persisted availability snapshot. The
// JSON snapshot file is the source of truth; a human-readable listing file is
// mirrored next to it on every save.
type SnapshotStore struct {
	snapshotPath string
	listingPath  string
	logger       zerolog.Logger
}

// snapshotFile is the on-disk layout of the snapshot.
type snapshotFile struct {
	UpdatedAt  time.Time                                `json:"updated_at"`
	FloorPlans map[models.FloorPlanCode][]models.UnitID `json:"floor_plans"`
}

// NewSnapshotStore creates a new SnapshotStore.
func NewSnapshotStore(cfg config.StorageConfig, logger zerolog.Logger) *SnapshotStore {
	return &SnapshotStore{
		snapshotPath: cfg.SnapshotFile,
		listingPath:  cfg.ListingFile,
		logger:       logger.With().Str("component", "SnapshotStore").Logger(),
	}
}

// Load reads the persisted snapshot. A missing file is a first run and
// returns (nil, nil). A present but empty or unparseable file returns
// ErrCorruptSnapshotFile so the caller can distinguish a store failure from
// "all units removed".
func (ss *SnapshotStore) Load() (models.Snapshot, error) {
	data, err := os.ReadFile(ss.snapshotPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot file '%s': %w", ss.snapshotPath, err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("'%s': %w", ss.snapshotPath, ErrCorruptSnapshotFile)
	}

	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("'%s': %w: %v", ss.snapshotPath, ErrCorruptSnapshotFile, err)
	}

	// Re-normalize through Add so per-plan unit lists are sorted and
	// deduplicated regardless of how the file was produced.
	snapshot := models.NewSnapshot()
	for plan, units := range file.FloorPlans {
		for _, unit := range units {
			snapshot.Add(plan, unit)
		}
	}

	ss.logger.Debug().
		Int("total_units", snapshot.TotalUnits()).
		Time("updated_at", file.UpdatedAt).
		Msg("Snapshot loaded from disk")
	return snapshot, nil
}

// Save overwrites the persisted snapshot atomically (temp file + rename) and
// rewrites the human-readable listing mirror. A mirror write failure is
// logged but does not fail the save.
func (ss *SnapshotStore) Save(snapshot models.Snapshot, now time.Time) error {
	file := snapshotFile{
		UpdatedAt:  now,
		FloorPlans: snapshot,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	dir := filepath.Dir(ss.snapshotPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory '%s': %w", dir, err)
	}

	tmpPath := ss.snapshotPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot temp file: %w", err)
	}
	if err := os.Rename(tmpPath, ss.snapshotPath); err != nil {
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}

	if ss.listingPath != "" {
		if err := ss.writeListing(snapshot, now); err != nil {
			ss.logger.Error().Err(err).Str("path", ss.listingPath).Msg("Failed to write listing mirror")
		}
	}
	return nil
}

// writeListing renders the snapshot as a plain-text availability listing.
func (ss *SnapshotStore) writeListing(snapshot models.Snapshot, now time.Time) error {
	var b strings.Builder
	rule := strings.Repeat("=", 80)

	b.WriteString(rule + "\n")
	b.WriteString("AVAILABLE APARTMENTS\n")
	b.WriteString(fmt.Sprintf("Last Updated: %s\n", now.Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("Total Units: %d\n", snapshot.TotalUnits()))
	b.WriteString(rule + "\n\n")

	if snapshot.IsEmpty() {
		b.WriteString("No units currently available.\n")
	} else {
		for _, plan := range snapshot.Plans() {
			units := snapshot[plan]
			b.WriteString(fmt.Sprintf("Floor Plan %s (%d units):\n", plan, len(units)))
			for _, unit := range units {
				b.WriteString(fmt.Sprintf("  %s\n", unit))
			}
			b.WriteString("\n")
		}
	}

	if err := os.MkdirAll(filepath.Dir(ss.listingPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(ss.listingPath, []byte(b.String()), 0644)
}
