package notifier

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/aptwatch/internal/models"
)

var testTime = time.Date(2025, 10, 7, 14, 0, 0, 0, time.UTC)

func snapshotOf(plans map[models.FloorPlanCode][]models.UnitID) models.Snapshot {
	snapshot := models.NewSnapshot()
	for plan, units := range plans {
		for _, unit := range units {
			snapshot.Add(plan, unit)
		}
	}
	return snapshot
}

func TestFormatUpdateFilterSuppression(t *testing.T) {
	diff := models.SnapshotDiff{
		Added: snapshotOf(map[models.FloorPlanCode][]models.UnitID{"A": {"#758"}}),
	}
	current := snapshotOf(map[models.FloorPlanCode][]models.UnitID{"A": {"#758"}})
	filter := models.NewPlanFilter([]string{"N", "O"})

	_, _, ok := FormatUpdate(diff, current, filter, testTime)

	assert.False(t, ok, "a diff entirely outside the filter must signal nothing to send")
}

func TestFormatUpdateEmptyDiffSignalsNothingToSend(t *testing.T) {
	current := snapshotOf(map[models.FloorPlanCode][]models.UnitID{"A": {"#758"}})

	_, _, ok := FormatUpdate(models.SnapshotDiff{}, current, nil, testTime)

	assert.False(t, ok)
}

func TestFormatUpdateTitleListsAddedAndRemoved(t *testing.T) {
	diff := models.SnapshotDiff{
		Added:   snapshotOf(map[models.FloorPlanCode][]models.UnitID{"U": {"#499"}}),
		Removed: snapshotOf(map[models.FloorPlanCode][]models.UnitID{"O": {"#328"}}),
	}
	current := snapshotOf(map[models.FloorPlanCode][]models.UnitID{
		"N": {"#322"},
		"U": {"#499"},
	})
	filter := models.NewPlanFilter([]string{"N", "O", "P", "Q", "R", "S", "T", "U", "V"})

	title, body, ok := FormatUpdate(diff, current, filter, testTime)

	require.True(t, ok)
	assert.Contains(t, title, "#499")
	assert.Contains(t, title, "#328")
	assert.Contains(t, title, "NEW:")
	assert.Contains(t, title, "GONE:")

	// Body is the full current availability, grouped by plan.
	assert.Contains(t, body, "ALL AVAILABLE UNITS (2 total)")
	assert.Contains(t, body, "Floor Plan N: #322")
	assert.Contains(t, body, "Floor Plan U: #499")
	assert.NotContains(t, body, "#328", "removed units do not appear in the availability body")
	assert.Contains(t, body, "2025-10-07 14:00:00")
}

func TestFormatUpdateBodyIsUnfiltered(t *testing.T) {
	diff := models.SnapshotDiff{
		Added: snapshotOf(map[models.FloorPlanCode][]models.UnitID{"N": {"#322"}}),
	}
	current := snapshotOf(map[models.FloorPlanCode][]models.UnitID{
		"A": {"#758"},
		"N": {"#322"},
	})
	filter := models.NewPlanFilter([]string{"N"})

	_, body, ok := FormatUpdate(diff, current, filter, testTime)

	require.True(t, ok)
	assert.Contains(t, body, "Floor Plan A: #758", "the body lists plans outside the filter")
}

func TestFormatUpdateTitleCapsUnitList(t *testing.T) {
	diff := models.SnapshotDiff{
		Added: snapshotOf(map[models.FloorPlanCode][]models.UnitID{
			"A": {"#1", "#2", "#3", "#4", "#5"},
		}),
	}
	current := diff.Added

	title, _, ok := FormatUpdate(diff, current, nil, testTime)

	require.True(t, ok)
	assert.Contains(t, title, "#1, #2, #3")
	assert.Contains(t, title, "+2 more")
	assert.NotContains(t, title, "#4")
}

func TestFormatUpdateBodyPlansInAscendingOrder(t *testing.T) {
	diff := models.SnapshotDiff{
		Added: snapshotOf(map[models.FloorPlanCode][]models.UnitID{"B": {"#2"}}),
	}
	current := snapshotOf(map[models.FloorPlanCode][]models.UnitID{
		"V": {"#5"},
		"A": {"#1"},
		"B": {"#2"},
	})

	_, body, ok := FormatUpdate(diff, current, nil, testTime)

	require.True(t, ok)
	posA := strings.Index(body, "Floor Plan A:")
	posB := strings.Index(body, "Floor Plan B:")
	posV := strings.Index(body, "Floor Plan V:")
	require.True(t, posA >= 0 && posB >= 0 && posV >= 0)
	assert.Less(t, posA, posB)
	assert.Less(t, posB, posV)
}

func TestFormatStartupIsDistinctFromUpdate(t *testing.T) {
	current := snapshotOf(map[models.FloorPlanCode][]models.UnitID{
		"A": {"#758"},
		"B": {"#695"},
	})

	title, body := FormatStartup(current, testTime)

	assert.Equal(t, "🏠 Apartment Monitor Started", title)
	assert.NotContains(t, title, "NEW:")
	assert.NotContains(t, title, "GONE:")
	assert.Contains(t, body, "Found 2 available units")
	assert.Contains(t, body, "#758")
	assert.Contains(t, body, "#695")
	assert.Contains(t, body, "2025-10-07 14:00:00")
}

func TestHTMLToPlain(t *testing.T) {
	in := "<b>📊 ALL AVAILABLE UNITS (2 total)</b>:<br><br>Floor Plan N: #322<br/>done"

	out := htmlToPlain(in)

	assert.Equal(t, "📊 ALL AVAILABLE UNITS (2 total):\n\nFloor Plan N: #322\ndone", out)
	assert.NotContains(t, out, "<")
}
