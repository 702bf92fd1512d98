package models

// SnapshotDiff holds the per-plan unit additions and removals between two
// snapshots. It is derived data and never persisted. Plans whose added or
// removed set would be empty are omitted from the respective map entirely.
type SnapshotDiff struct {
	Added   Snapshot
	Removed Snapshot
}

// IsEmpty reports whether the diff carries no additions and no removals.
func (d SnapshotDiff) IsEmpty() bool {
	return d.Added.IsEmpty() && d.Removed.IsEmpty()
}

// RestrictTo returns a copy of the diff containing only plans matched by the
// filter. An empty filter matches everything.
func (d SnapshotDiff) RestrictTo(filter PlanFilter) SnapshotDiff {
	return SnapshotDiff{
		Added:   restrictOmitEmpty(d.Added, filter),
		Removed: restrictOmitEmpty(d.Removed, filter),
	}
}

// AddedUnits returns every added unit across all plans, ordered by plan then
// unit.
func (d SnapshotDiff) AddedUnits() []UnitID {
	return flattenUnits(d.Added)
}

// RemovedUnits returns every removed unit across all plans, ordered by plan
// then unit.
func (d SnapshotDiff) RemovedUnits() []UnitID {
	return flattenUnits(d.Removed)
}

func restrictOmitEmpty(s Snapshot, filter PlanFilter) Snapshot {
	restricted := s.RestrictTo(filter)
	for plan, units := range restricted {
		if len(units) == 0 {
			delete(restricted, plan)
		}
	}
	return restricted
}

func flattenUnits(s Snapshot) []UnitID {
	var units []UnitID
	for _, plan := range s.Plans() {
		units = append(units, s[plan]...)
	}
	return units
}
