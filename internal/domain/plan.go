package domain

// PlanItem is one place entry within a plan. The ID is issued by the backend
// on add and never reused within the plan, even after removal.
type PlanItem struct {
	ID       string `json:"item_id"`
	PlaceID  string `json:"place_id"`
	Name     string `json:"name"`
	Category string `json:"category"`

	// DistanceFromPrevKm is recomputed server-side after any mutation that
	// changes order or membership. Nil until the server has filled it in,
	// and always nil for the first item.
	DistanceFromPrevKm *float64 `json:"distance_from_prev_km"`
}

// Plan is the user's ordered collection of places to visit. Sequence order
// of Items is the visit order.
type Plan struct {
	ID    string     `json:"plan_id"`
	Items []PlanItem `json:"items"`
}

// TotalDistanceKm sums the known leg distances. Legs the server has not
// computed yet contribute nothing.
func (p *Plan) TotalDistanceKm() float64 {
	var total float64
	for _, it := range p.Items {
		if it.DistanceFromPrevKm != nil {
			total += *it.DistanceFromPrevKm
		}
	}
	return total
}

// ItemIDs returns the item identifiers in sequence order.
func (p *Plan) ItemIDs() []string {
	ids := make([]string, len(p.Items))
	for i, it := range p.Items {
		ids[i] = it.ID
	}
	return ids
}
