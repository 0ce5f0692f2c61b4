package models

// ParcelID identifies a cadastral parcel (gush = block, helka = plot).
type ParcelID struct {
	Gush  int `json:"gush" bson:"gush"`
	Helka int `json:"helka" bson:"helka"`
}

// ParcelGeoData is the attribute set resolved for a parcel by the GIS
// enrichment collaborator. Every field is absent-tolerant: empty strings and
// false flags mean "no data", never an error. Immutable once fetched.
type ParcelGeoData struct {
	ParcelID ParcelID `json:"parcel_id" bson:"parcel_id"`

	PlotArea     float64 `json:"plot_area" bson:"plot_area"` // m²
	Neighborhood string  `json:"neighborhood,omitempty" bson:"neighborhood,omitempty"`
	Quarter      string  `json:"quarter,omitempty" bson:"quarter,omitempty"`
	SubQuarter   string  `json:"sub_quarter,omitempty" bson:"sub_quarter,omitempty"`
	ZoningType   string  `json:"zoning_type,omitempty" bson:"zoning_type,omitempty"`
	StreetName   string  `json:"street_name,omitempty" bson:"street_name,omitempty"`

	IsConservationBuilding bool `json:"is_conservation_building" bson:"is_conservation_building"`
	IsInPreservationArea   bool `json:"is_in_preservation_area" bson:"is_in_preservation_area"`
	IsArchaeologicalSite   bool `json:"is_archaeological_site" bson:"is_archaeological_site"`
	IsUnescoCore           bool `json:"is_unesco_core" bson:"is_unesco_core"`
	IsUnescoBuffer         bool `json:"is_unesco_buffer" bson:"is_unesco_buffer"`
}
