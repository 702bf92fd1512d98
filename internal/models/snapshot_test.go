package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotAddKeepsUnitsSortedAndUnique(t *testing.T) {
	snapshot := NewSnapshot()
	snapshot.Add("A", "#760")
	snapshot.Add("A", "#758")
	snapshot.Add("A", "#760")
	snapshot.Add("A", "#759")

	assert.Equal(t, []UnitID{"#758", "#759", "#760"}, snapshot["A"])
	assert.Equal(t, 3, snapshot.TotalUnits())
}

func TestSnapshotPlansSorted(t *testing.T) {
	snapshot := NewSnapshot()
	snapshot.Add("V", "#1")
	snapshot.Add("A", "#2")
	snapshot.Add("N", "#3")

	assert.Equal(t, []FloorPlanCode{"A", "N", "V"}, snapshot.Plans())
}

func TestSnapshotEqual(t *testing.T) {
	a := NewSnapshot()
	a.Add("A", "#758")
	a.Add("B", "#695")

	b := NewSnapshot()
	b.Add("B", "#695")
	b.Add("A", "#758")

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))

	b.Add("A", "#760")
	assert.False(t, a.Equal(b))
}

func TestSnapshotEqualIgnoresEmptyPlans(t *testing.T) {
	a := Snapshot{"A": {"#758"}, "B": {}}
	b := Snapshot{"A": {"#758"}}

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
}

func TestSnapshotRestrictTo(t *testing.T) {
	snapshot := NewSnapshot()
	snapshot.Add("A", "#758")
	snapshot.Add("N", "#322")

	restricted := snapshot.RestrictTo(NewPlanFilter([]string{"n"}))
	assert.Equal(t, 1, restricted.TotalUnits())
	assert.True(t, restricted.Has("N", "#322"))
	assert.False(t, restricted.Has("A", "#758"))

	// Zero filter matches everything
	all := snapshot.RestrictTo(nil)
	assert.True(t, all.Equal(snapshot))
}

func TestSnapshotCloneIsIndependent(t *testing.T) {
	original := NewSnapshot()
	original.Add("A", "#758")

	clone := original.Clone()
	clone.Add("A", "#760")

	assert.Equal(t, 1, original.TotalUnits())
	assert.Equal(t, 2, clone.TotalUnits())
}

func TestPlanFilterUpperCasesCodes(t *testing.T) {
	filter := NewPlanFilter([]string{"a", "B"})

	assert.True(t, filter.Contains("A"))
	assert.True(t, filter.Contains("B"))
	assert.False(t, filter.Contains("a"))
	assert.Equal(t, []FloorPlanCode{"A", "B"}, filter.Codes())
}

func TestSnapshotDiffRestrictToOmitsEmptyPlans(t *testing.T) {
	diff := SnapshotDiff{
		Added:   Snapshot{"A": {"#758"}, "N": {"#322"}},
		Removed: Snapshot{"B": {"#695"}},
	}

	filtered := diff.RestrictTo(NewPlanFilter([]string{"N"}))
	assert.Equal(t, []UnitID{"#322"}, filtered.AddedUnits())
	assert.Empty(t, filtered.RemovedUnits())
	assert.NotContains(t, filtered.Added, FloorPlanCode("A"))
	assert.NotContains(t, filtered.Removed, FloorPlanCode("B"))
}
