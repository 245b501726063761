package formatter

import (
	"fmt"
	"strconv"

	"github.com/localmate/localmate/internal/domain"
)

// Distance renders a leg distance badge, or a dim placeholder while the
// server has not computed it yet.
func Distance(km *float64) string {
	if km == nil {
		return StyleDim.Render("—")
	}
	return StyleBlue.Render(fmt.Sprintf("%.1f km", *km))
}

// PlanTable renders the plan items as an aligned table in visit order.
func PlanTable(items []domain.PlanItem) string {
	headers := []string{"#", "PLACE", "CATEGORY", "FROM PREV"}
	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			StyleFg.Render(it.Name),
			Category(it.Category),
			Distance(it.DistanceFromPrevKm),
		}
	}
	return RenderTable(headers, rows)
}

// PlanSummary renders the aggregate footer: item count, total distance and
// estimated travel time.
func PlanSummary(count int, totalKm float64, durationMin int) string {
	stops := "stops"
	if count == 1 {
		stops = "stop"
	}
	return fmt.Sprintf("%s  %s  %s",
		StyleBold.Render(fmt.Sprintf("%d %s", count, stops)),
		StyleBlue.Render(fmt.Sprintf("%.1f km", totalKm)),
		StyleDim.Render(fmt.Sprintf("~%dm travel", durationMin)),
	)
}

// PlacesTable renders search results or assistant suggestions with a
// selection index.
func PlacesTable(places []domain.Place, inPlan func(placeID string) bool) string {
	headers := []string{"#", "PLACE", "CATEGORY", ""}
	rows := make([][]string, len(places))
	for i, p := range places {
		mark := ""
		if inPlan != nil && inPlan(p.ID) {
			mark = StyleGreen.Render("in plan")
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			StyleFg.Render(p.Name),
			Category(p.Category),
			mark,
		}
	}
	return RenderTable(headers, rows)
}
