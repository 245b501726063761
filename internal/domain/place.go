package domain

// Place is a point of interest returned by search or suggested by the
// assistant. Only ID, Name and Category are required to add it to a plan;
// the rest is display material.
type Place struct {
	ID          string  `json:"place_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Lat         float64 `json:"lat,omitempty"`
	Lon         float64 `json:"lon,omitempty"`
}
