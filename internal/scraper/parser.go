package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/aleister1102/aptwatch/internal/models"
)

// Unit cards on the floorplans page come from the Spaces plugin markup:
// article.spaces-unit elements carrying data-spaces-* attributes.
const (
	// unitCardSelector matches every unit card, available or not. The page is
	// considered rendered once any card is present; when all units are taken
	// the unavailable cards still render, so absence means a broken load.
	unitCardSelector = "article.spaces-unit"

	availableUnitSelector = `article.spaces-unit[data-spaces-available="true"]`

	attrUnit     = "data-spaces-unit"
	attrPlanName = "data-spaces-sort-plan-name"
	attrBedrooms = "data-spaces-sort-bed"
)

var ariaUnitPattern = regexp.MustCompile(`Unit\s*(\w+)`)

// ParseUnits extracts the available units from the rendered floorplans page
// HTML. Unit numbers are normalized to a leading '#'; the plan code is
// upper-cased, falling back to "UNKNOWN" when the card does not carry one.
func ParseUnits(html string) ([]models.Unit, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}

	var units []models.Unit
	doc.Find(availableUnitSelector).Each(func(_ int, card *goquery.Selection) {
		unitNum := strings.TrimSpace(card.AttrOr(attrUnit, ""))
		if unitNum == "" {
			// Fallback from aria-label like "Unit 758"
			if m := ariaUnitPattern.FindStringSubmatch(card.AttrOr("aria-label", "")); m != nil {
				unitNum = m[1]
			}
		}
		if unitNum == "" {
			return
		}
		if !strings.HasPrefix(unitNum, "#") {
			unitNum = "#" + unitNum
		}

		plan := strings.ToUpper(strings.TrimSpace(card.AttrOr(attrPlanName, "")))
		if plan == "" {
			plan = "UNKNOWN"
		}

		bedrooms := -1
		if bedsAttr, ok := card.Attr(attrBedrooms); ok {
			if beds, err := strconv.Atoi(strings.TrimSpace(bedsAttr)); err == nil {
				bedrooms = beds
			}
		}

		units = append(units, models.Unit{
			ID:       models.UnitID(unitNum),
			Plan:     models.FloorPlanCode(plan),
			Bedrooms: bedrooms,
		})
	})

	return units, nil
}

// BuildSnapshot groups units into a snapshot, dropping units below the
// minimum bedroom count. Units with an unknown bedroom count are dropped too
// when a minimum is set, matching the page's own filter semantics. A minimum
// of zero or less disables the filter.
func BuildSnapshot(units []models.Unit, minBedrooms int) models.Snapshot {
	snapshot := models.NewSnapshot()
	for _, unit := range units {
		if minBedrooms > 0 && unit.Bedrooms < minBedrooms {
			continue
		}
		snapshot.Add(unit.Plan, unit.ID)
	}
	return snapshot
}
