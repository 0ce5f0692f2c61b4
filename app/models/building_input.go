package models

// BuildingType classifies the existing building.
type BuildingType string

const (
	BuildingMultiFamily  BuildingType = "multi_family"
	BuildingSingleFamily BuildingType = "single_family"
	BuildingDuplex       BuildingType = "duplex"
)

// BuildingInput carries the user-declared physical and legal attributes of
// the existing building. Optional numeric fields are pointers: nil means
// "not provided" and triggers the documented default, never zero.
type BuildingInput struct {
	ExistingContour       float64      `json:"existing_contour"`         // m², typical floor contour
	ExistingFloors        int          `json:"existing_floors"`
	ExistingUnitsPerFloor int          `json:"existing_units_per_floor"`
	TotalExistingUnits    int          `json:"total_existing_units"`
	TotalRightsHolders    *int         `json:"total_rights_holders,omitempty"` // defaults to TotalExistingUnits
	AdditionalFloors      float64      `json:"additional_floors"`
	PilotisArea           float64      `json:"pilotis_area"` // m², open ground floor
	BuildingType          BuildingType `json:"building_type"`
	HasExistingTama38     bool         `json:"has_existing_tama38"`
	MinApartmentSize      float64      `json:"min_apartment_size"`  // m², average apartment for unit derivation
	BuildingPercentage    float64      `json:"building_percentage"` // statutory base, e.g. 0.60
	ReturnPerUnit         float64      `json:"return_per_unit"`     // m² primary addition per returned unit
	MamadReturnPerUnit    float64      `json:"mamad_return_per_unit"`
	PlotArea              float64      `json:"plot_area"` // m²; 0 falls back to the GIS figure
	DensityPerDunam       *float64     `json:"density_per_dunam,omitempty"`
	MamadActualSize       *float64     `json:"mamad_actual_size,omitempty"` // m², declared protected-room size
	IsBuildingH           bool         `json:"is_building_h"`
	EstimatedValuePerSqm  *float64     `json:"estimated_value_per_sqm,omitempty"` // ₪/m², Shaked levy only
}

// RightsHolders resolves the number of rights holders, defaulting to the
// existing-unit count when not supplied.
func (b BuildingInput) RightsHolders() int {
	if b.TotalRightsHolders != nil {
		return *b.TotalRightsHolders
	}
	return b.TotalExistingUnits
}

// EffectivePlotArea resolves the plot area, preferring the user override and
// falling back to the GIS figure.
func (b BuildingInput) EffectivePlotArea(geo ParcelGeoData) float64 {
	if b.PlotArea > 0 {
		return b.PlotArea
	}
	return geo.PlotArea
}
