package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/aleister1102/aptwatch/internal/models"
)

const (
	// maxTitleUnits caps how many unit numbers are spelled out per title
	// segment before collapsing into "+N more".
	maxTitleUnits = 3

	timestampLayout = "2006-01-02 15:04:05"

	startupTitle = "🏠 Apartment Monitor Started"
	updateTitle  = "🏠 Apartment Update"
)

// FormatUpdate renders an update notification for a diff. The title carries
// the filtered changes (the at-a-glance alert); the body always lists the
// full, unfiltered current availability (the complete reference). When the
// filter removes every change, ok is false and nothing must be dispatched.
func FormatUpdate(diff models.SnapshotDiff, current models.Snapshot, filter models.PlanFilter, now time.Time) (title, body string, ok bool) {
	filtered := diff.RestrictTo(filter)
	if filtered.IsEmpty() {
		return "", "", false
	}

	var parts []string
	if added := filtered.AddedUnits(); len(added) > 0 {
		parts = append(parts, "✨ NEW: "+joinUnitsCapped(added))
	}
	if removed := filtered.RemovedUnits(); len(removed) > 0 {
		parts = append(parts, "❌ GONE: "+joinUnitsCapped(removed))
	}

	title = strings.Join(parts, " | ")
	if title == "" {
		title = updateTitle
	}

	return title, buildAvailabilityBody(current, now), true
}

// FormatStartup renders the "monitor started" notification. It is sent on the
// first successful scrape regardless of the notification filter and always
// lists the full unit list.
func FormatStartup(current models.Snapshot, now time.Time) (title, body string) {
	lines := []string{
		fmt.Sprintf("✨ <b>Found %d available units</b>:", current.TotalUnits()),
		"",
	}
	for _, plan := range current.Plans() {
		lines = append(lines, fmt.Sprintf("  Floor Plan %s: %s", plan, joinUnits(current[plan])))
	}
	lines = append(lines, "", "🕐 "+now.Format(timestampLayout))

	return startupTitle, strings.Join(lines, "<br>")
}

// buildAvailabilityBody lists the complete current availability grouped by
// floor plan in ascending code order, with a total and timestamp.
func buildAvailabilityBody(current models.Snapshot, now time.Time) string {
	lines := []string{
		fmt.Sprintf("<b>📊 ALL AVAILABLE UNITS (%d total)</b>:", current.TotalUnits()),
		"",
	}
	for _, plan := range current.Plans() {
		lines = append(lines, fmt.Sprintf("Floor Plan %s: %s", plan, joinUnits(current[plan])))
	}
	lines = append(lines, "", "🕐 "+now.Format(timestampLayout))

	return strings.Join(lines, "<br>")
}

func joinUnits(units []models.UnitID) string {
	strs := make([]string, len(units))
	for i, u := range units {
		strs[i] = string(u)
	}
	return strings.Join(strs, ", ")
}

func joinUnitsCapped(units []models.UnitID) string {
	if len(units) <= maxTitleUnits {
		return joinUnits(units)
	}
	return fmt.Sprintf("%s +%d more", joinUnits(units[:maxTitleUnits]), len(units)-maxTitleUnits)
}
