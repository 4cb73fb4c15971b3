package model

// Asset is a DEG grid element with a geographic position. The asset set is
// replaced wholesale on each scenario run.
type Asset struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"` // "substation", "ev_hub", "solar_farm"
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	CapacityKW  float64 `json:"capacity_kw"`
	Criticality string  `json:"criticality"` // "low", "medium", "high"
	FloodZone   bool    `json:"flood_zone,omitempty"`
	Feeds       string  `json:"feeds,omitempty"`
}
