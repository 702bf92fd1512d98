package models

import (
	"sort"
)

// FloorPlanCode identifies a floor plan layout, a single upper-case letter in
// the observed domain (A-V).
type FloorPlanCode string

// UnitID identifies a physical apartment unit, normalized to a leading '#'
// (e.g. "#758").
type UnitID string

// Unit is one available unit as extracted from the listing page.
type Unit struct {
	ID       UnitID        `json:"unit"`
	Plan     FloorPlanCode `json:"floor_plan"`
	Bedrooms int           `json:"bedrooms"` // -1 when the page does not expose a bedroom count
}

// Snapshot maps a floor plan code to the sorted set of units currently
// available under it. A unit appears under at most one plan per snapshot.
type Snapshot map[FloorPlanCode][]UnitID

// NewSnapshot creates an empty snapshot.
func NewSnapshot() Snapshot {
	return make(Snapshot)
}

// Add inserts a unit under the given plan, keeping the per-plan unit list
// sorted and free of duplicates.
func (s Snapshot) Add(plan FloorPlanCode, unit UnitID) {
	units := s[plan]
	idx := sort.Search(len(units), func(i int) bool { return units[i] >= unit })
	if idx < len(units) && units[idx] == unit {
		return
	}
	units = append(units, "")
	copy(units[idx+1:], units[idx:])
	units[idx] = unit
	s[plan] = units
}

// Has reports whether the unit is listed under the given plan.
func (s Snapshot) Has(plan FloorPlanCode, unit UnitID) bool {
	for _, u := range s[plan] {
		if u == unit {
			return true
		}
	}
	return false
}

// Plans returns all floor plan codes in ascending order.
func (s Snapshot) Plans() []FloorPlanCode {
	plans := make([]FloorPlanCode, 0, len(s))
	for plan := range s {
		plans = append(plans, plan)
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i] < plans[j] })
	return plans
}

// TotalUnits returns the number of units across all plans.
func (s Snapshot) TotalUnits() int {
	total := 0
	for _, units := range s {
		total += len(units)
	}
	return total
}

// IsEmpty reports whether the snapshot holds no units at all.
func (s Snapshot) IsEmpty() bool {
	return s.TotalUnits() == 0
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for plan, units := range s {
		cp := make([]UnitID, len(units))
		copy(cp, units)
		out[plan] = cp
	}
	return out
}

// Equal reports whether two snapshots list exactly the same units under the
// same plans. Plans with zero units are ignored on both sides.
func (s Snapshot) Equal(other Snapshot) bool {
	if s.TotalUnits() != other.TotalUnits() {
		return false
	}
	for plan, units := range s {
		otherUnits := other[plan]
		if len(units) != len(otherUnits) {
			return false
		}
		for i, u := range units {
			if otherUnits[i] != u {
				return false
			}
		}
	}
	return true
}

// RestrictTo returns a copy of the snapshot containing only plans matched by
// the filter. An empty filter matches everything.
func (s Snapshot) RestrictTo(filter PlanFilter) Snapshot {
	if filter.IsZero() {
		return s.Clone()
	}
	out := make(Snapshot)
	for plan, units := range s {
		if !filter.Contains(plan) {
			continue
		}
		cp := make([]UnitID, len(units))
		copy(cp, units)
		out[plan] = cp
	}
	return out
}

// PlanFilter is an immutable set of floor plan codes used to gate update
// notifications. A zero-length filter means "no filtering".
type PlanFilter map[FloorPlanCode]struct{}

// NewPlanFilter builds a filter from plan code strings, upper-casing each.
func NewPlanFilter(codes []string) PlanFilter {
	filter := make(PlanFilter, len(codes))
	for _, code := range codes {
		filter[FloorPlanCode(upperASCII(code))] = struct{}{}
	}
	return filter
}

// Contains reports whether the plan is part of the filter.
func (f PlanFilter) Contains(plan FloorPlanCode) bool {
	_, ok := f[plan]
	return ok
}

// IsZero reports whether the filter is empty and therefore matches all plans.
func (f PlanFilter) IsZero() bool {
	return len(f) == 0
}

// Codes returns the filter's plan codes in ascending order.
func (f PlanFilter) Codes() []FloorPlanCode {
	codes := make([]FloorPlanCode, 0, len(f))
	for code := range f {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
