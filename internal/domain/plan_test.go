package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func km(v float64) *float64 { return &v }

func TestPlan_TotalDistanceKm(t *testing.T) {
	p := &Plan{
		ID: "plan-1",
		Items: []PlanItem{
			{ID: "item-1", PlaceID: "p-1"},
			{ID: "item-2", PlaceID: "p-2", DistanceFromPrevKm: km(2.3)},
			{ID: "item-3", PlaceID: "p-3", DistanceFromPrevKm: km(1.2)},
		},
	}
	assert.InDelta(t, 3.5, p.TotalDistanceKm(), 0.001)
}

func TestPlan_TotalDistanceKm_Empty(t *testing.T) {
	p := &Plan{}
	assert.Zero(t, p.TotalDistanceKm())
}

func TestPlan_ItemIDs(t *testing.T) {
	p := &Plan{
		Items: []PlanItem{{ID: "item-2"}, {ID: "item-1"}},
	}
	assert.Equal(t, []string{"item-2", "item-1"}, p.ItemIDs())
}
