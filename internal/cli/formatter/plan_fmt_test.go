package formatter

import (
	"strings"
	"testing"

	"github.com/localmate/localmate/internal/domain"
	"github.com/stretchr/testify/assert"
)

func km(v float64) *float64 { return &v }

func TestPlanTable_RendersItemsInOrder(t *testing.T) {
	items := []domain.PlanItem{
		{ID: "item-2", Name: "Botanic Garden", Category: "park"},
		{ID: "item-1", Name: "Aquarium", Category: "museum", DistanceFromPrevKm: km(2.3)},
	}
	out := PlanTable(items)

	assert.Contains(t, out, "Botanic Garden")
	assert.Contains(t, out, "Aquarium")
	assert.Contains(t, out, "2.3 km")
	// Visit order follows slice order.
	assert.Less(t, strings.Index(out, "Botanic Garden"), strings.Index(out, "Aquarium"))
}

func TestDistance_PlaceholderWhenUnknown(t *testing.T) {
	assert.Contains(t, Distance(nil), "—")
	assert.Contains(t, Distance(km(1.25)), "1.2 km")
}

func TestPlanSummary(t *testing.T) {
	out := PlanSummary(3, 4.6, 14)
	assert.Contains(t, out, "3 stops")
	assert.Contains(t, out, "4.6 km")
	assert.Contains(t, out, "~14m travel")

	single := PlanSummary(1, 0, 0)
	assert.Contains(t, single, "1 stop")
}

func TestPlacesTable_MarksPlanMembership(t *testing.T) {
	places := []domain.Place{
		{ID: "p-1", Name: "Aquarium", Category: "museum"},
		{ID: "p-2", Name: "City Gallery", Category: "museum"},
	}
	out := PlacesTable(places, func(id string) bool { return id == "p-1" })

	lines := strings.Split(out, "\n")
	var aquariumLine string
	for _, l := range lines {
		if strings.Contains(l, "Aquarium") {
			aquariumLine = l
		}
	}
	assert.Contains(t, aquariumLine, "in plan")
	assert.NotContains(t, out[strings.Index(out, "City Gallery"):], "in plan")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "LONGHEADER"}, [][]string{{"x", "y"}, {"longcell", "z"}})
	assert.Contains(t, out, "LONGHEADER")
	assert.Contains(t, out, "longcell")
	assert.Contains(t, out, "─")
}
