package models

// InclusiveHousingResult is the inclusive-housing overlay block shared by
// the tracks. When the parcel's neighborhood is not in a scored district (or
// the project is too small) Applies is false and MarketableUnits passes the
// developer count through unchanged.
type InclusiveHousingResult struct {
	Applies         bool    `json:"applies"`
	DistrictName    string  `json:"district_name,omitempty"`
	Rate            float64 `json:"rate"`
	MandatedUnits   int     `json:"mandated_units"`
	MarketableUnits int     `json:"marketable_units"`
}

// Tama38Result is the full TAMA 38 demolition-rebuild record.
// Every intermediate figure is exposed; nothing is recomputed by readers.
type Tama38Result struct {
	// Policy areas (חישוב שטחים בגין מדיניות הריסה ובנייה)
	ExistingContour       float64 `json:"existing_contour"`
	ExistingFloors        int     `json:"existing_floors"`
	AdditionalFloors      float64 `json:"additional_floors"`
	ExistingUnitsPerFloor int     `json:"existing_units_per_floor"`
	TotalExistingUnits    int     `json:"total_existing_units"`
	ExpandedFloorPerUnit  float64 `json:"expanded_floor_per_unit"` // 13 m²
	ExpandedTypicalFloor  float64 `json:"expanded_typical_floor"`
	ExpandedTotal         float64 `json:"expanded_total"`
	ExistingUnitBonus     float64 `json:"existing_unit_bonus"`
	PilotisArea           float64 `json:"pilotis_area"`
	TamaPolicyTotal       float64 `json:"tama_policy_total"`

	// Statutory base rights (חישוב שטחים בגין ת.ב.ע)
	PlotArea           float64 `json:"plot_area"`
	PlotAreaForCalc    float64 `json:"plot_area_for_calc"`
	BuildingPercentage float64 `json:"building_percentage"`
	TbeBaseArea        float64 `json:"tbe_base_area"`
	ReliefPercentage   float64 `json:"relief_percentage"`
	TbeRelief          float64 `json:"tbe_relief"`
	TbeBonusFloors     float64 `json:"tbe_bonus_floors"`
	TbeTotal           float64 `json:"tbe_total"`

	// Combined entitlement
	TotalPrimaryArea float64 `json:"total_primary_area"`

	// Unit derivation. Area-based and density-based methods are independent
	// lower bounds on potential; the final range is their elementwise max.
	MinApartmentSize   float64 `json:"min_apartment_size"`
	UnitsByAreaLow     int     `json:"units_by_area_low"`
	UnitsByAreaHigh    int     `json:"units_by_area_high"`
	UnitsByDensity     *int    `json:"units_by_density,omitempty"`
	PotentialUnitsLow  int     `json:"potential_units_low"`
	PotentialUnitsHigh int     `json:"potential_units_high"`

	// Rights holders and developer remainder. Developer counts may be
	// negative; that is a real signal, not an error.
	RightsHolders      int `json:"rights_holders"`
	DeveloperUnitsLow  int `json:"developer_units_low"`
	DeveloperUnitsHigh int `json:"developer_units_high"`

	// Service areas, computed off the high unit figure.
	TotalUnitsForCalc int     `json:"total_units_for_calc"`
	MamadPerUnit      float64 `json:"mamad_per_unit"`
	TotalMamad        float64 `json:"total_mamad"`
	BalconyPerUnit    float64 `json:"balcony_per_unit"`
	TotalBalcony      float64 `json:"total_balcony"`

	// Economic split (סיכום). Balconies are never returned to tenants.
	ReturnedPrimaryToTenants float64 `json:"returned_primary_to_tenants"`
	ReturnedMamadToTenants   float64 `json:"returned_mamad_to_tenants"`
	DeveloperPrimary         float64 `json:"developer_primary"`
	DeveloperService         float64 `json:"developer_service"`
	TotalPrimaryProject      float64 `json:"total_primary_project"`
	TotalServiceProject      float64 `json:"total_service_project"`

	// Paledelet accounting: primary + protected room, balconies excluded.
	TotalPaledelet     float64 `json:"total_paledelet"`
	DeveloperPaledelet float64 `json:"developer_paledelet"`

	// Protected-room size check. The deduction is reported separately so the
	// unadjusted split stays auditable.
	MamadOversizePerUnit   float64 `json:"mamad_oversize_per_unit"`
	MamadOversizeDeduction float64 `json:"mamad_oversize_deduction"`
	MamadOversizeWarning   bool    `json:"mamad_oversize_warning"`
	DeveloperPrimaryNet    float64 `json:"developer_primary_net"`

	InclusiveHousing InclusiveHousingResult `json:"inclusive_housing"`

	// Display figures.
	Density       float64 `json:"density"` // units per dunam, unrounded
	UnitsPerDunam float64 `json:"units_per_dunam"`
}

// ShakedComparison reports how the Shaked alternative compares with the
// plain TAMA 38 figures for the same input.
type ShakedComparison struct {
	AreaDifference  float64 `json:"area_difference"`
	UnitsDifference int     `json:"units_difference"`
}

// ShakedResult is the full Shaked (Amendment 139) record. Its embedded
// Tama38Result fields are recomputed against the Shaked entitlement, not
// copied from the plain TAMA 38 run.
type ShakedResult struct {
	Tama38Result

	ShakedMultiplier     float64          `json:"shaked_multiplier"`
	BettermentLevyRate   float64          `json:"betterment_levy_rate"`
	BettermentLevyAmount *float64         `json:"betterment_levy_amount"` // nil without a land-value estimate
	ComparisonVsTama     ShakedComparison `json:"comparison_vs_tama"`
}

// DistrictRef identifies the resolved HFP/2666 district in a result.
type DistrictRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SubAreaRef identifies the resolved sub-area and its effective figures
// after any small-building clamping.
type SubAreaRef struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Multiplier       float64 `json:"multiplier"`
	MaxFloors        int     `json:"max_floors"`
	MaxUnitsPerDunam float64 `json:"max_units_per_dunam"`
}

// Hfp2666Result is the full HFP/2666 record. Capped-area and unit fields are
// nil when the district cannot be resolved or when only the strengthening
// branch applies; tenant-return figures are always present.
type Hfp2666Result struct {
	District              *DistrictRef `json:"district,omitempty"`
	SubArea               *SubAreaRef  `json:"sub_area,omitempty"`
	DistrictDataAvailable bool         `json:"district_data_available"`

	StrengthenOnly       bool     `json:"strengthen_only"`
	StrengthenAddition   *float64 `json:"strengthen_addition,omitempty"` // m²
	SmallBuildingApplied bool     `json:"small_building_applied"`
	BuildingHApplied     bool     `json:"building_h_applied"`

	PlotArea   float64  `json:"plot_area"`
	Multiplier *float64 `json:"multiplier,omitempty"`

	RawPrimaryArea   *float64 `json:"raw_primary_area,omitempty"`
	MaxByFloors      *float64 `json:"max_by_floors,omitempty"`
	MaxByDensity     *float64 `json:"max_by_density,omitempty"`
	FinalPrimaryArea *float64 `json:"final_primary_area,omitempty"`

	MinApartmentSize   float64 `json:"min_apartment_size"`
	PotentialUnitsLow  *int    `json:"potential_units_low,omitempty"`
	PotentialUnitsHigh *int    `json:"potential_units_high,omitempty"`
	RightsHolders      int     `json:"rights_holders"`
	DeveloperUnitsLow  *int    `json:"developer_units_low,omitempty"`
	DeveloperUnitsHigh *int    `json:"developer_units_high,omitempty"`

	TotalMamad   *float64 `json:"total_mamad,omitempty"`
	TotalBalcony *float64 `json:"total_balcony,omitempty"`

	ReturnedPrimaryToTenants float64  `json:"returned_primary_to_tenants"`
	ReturnedMamadToTenants   float64  `json:"returned_mamad_to_tenants"`
	DeveloperPrimary         *float64 `json:"developer_primary,omitempty"`
	DeveloperService         *float64 `json:"developer_service,omitempty"`

	TotalPaledelet     *float64 `json:"total_paledelet,omitempty"`
	DeveloperPaledelet *float64 `json:"developer_paledelet,omitempty"`

	InclusiveHousing *InclusiveHousingResult `json:"inclusive_housing,omitempty"`
}
