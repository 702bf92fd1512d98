// Package differ computes unit-level changes between two availability
// snapshots.
package differ

import (
	"github.com/rs/zerolog"

	"github.com/aleister1102/aptwatch/internal/models"
)

// SnapshotDiffer compares two availability snapshots and reports which units
// were added and which disappeared, per floor plan.
type SnapshotDiffer struct {
	logger zerolog.Logger
}

// NewSnapshotDiffer creates a new SnapshotDiffer.
func NewSnapshotDiffer(logger zerolog.Logger) *SnapshotDiffer {
	return &SnapshotDiffer{
		logger: logger.With().Str("component", "SnapshotDiffer").Logger(),
	}
}

// Diff returns the per-plan set differences between previous and current.
// Added holds current-minus-previous, Removed holds previous-minus-current.
// Plans with no changes are omitted from both maps. The inputs are not
// modified.
func (sd *SnapshotDiffer) Diff(previous, current models.Snapshot) models.SnapshotDiff {
	diff := Diff(previous, current)
	sd.logger.Debug().
		Int("added", diff.Added.TotalUnits()).
		Int("removed", diff.Removed.TotalUnits()).
		Msg("Snapshot diff computed")
	return diff
}

// Diff is the pure form of SnapshotDiffer.Diff.
func Diff(previous, current models.Snapshot) models.SnapshotDiff {
	diff := models.SnapshotDiff{
		Added:   models.NewSnapshot(),
		Removed: models.NewSnapshot(),
	}

	for plan, units := range current {
		for _, unit := range units {
			if !previous.Has(plan, unit) {
				diff.Added.Add(plan, unit)
			}
		}
	}

	for plan, units := range previous {
		for _, unit := range units {
			if !current.Has(plan, unit) {
				diff.Removed.Add(plan, unit)
			}
		}
	}

	return diff
}
