// Package rules holds the static regulatory constants and lookup tables for
// the Haifa building-rights calculators. Values are sourced from the official
// municipal documents (חפ/מד/2500 מדיניות 2020, תיקון 139, חפ/2666 טבלה 5)
// and are versioned with the code; nothing here is runtime-mutable.
package rules

// TAMA 38 demolition-rebuild policy constants (חפ/מד/2500 - מדיניות 2020).
const (
	// ExpansionPerUnit is the m² added per existing dwelling unit.
	ExpansionPerUnit = 13.0

	// MamadPerUnit is the mandated protected-room area per unit (m²).
	MamadPerUnit = 12.0

	// MamadMaxNetSize is the maximum recognized net protected-room size (m²).
	// Declared rooms above this size reduce the developer's primary area.
	MamadMaxNetSize = 12.0

	// BalconyPerUnit is the cantilevered balcony area per unit (m²).
	BalconyPerUnit = 12.0

	// DefaultBuildingPct is the default statutory building percentage.
	DefaultBuildingPct = 0.60

	// ShevesRelief is the statutory relief, as a share of plot area.
	// Additive to the base rights, not compounding (חפ/מד/2500 §4.11).
	ShevesRelief = 0.06

	// DefaultPilotisArea is the default open ground-floor allowance (m²).
	DefaultPilotisArea = 70.0

	// DefaultAvgApartment is the default average apartment size (m²).
	DefaultAvgApartment = 85.0

	// DefaultReturnPerUnit is the default primary-area addition for each
	// returned apartment (m²).
	DefaultReturnPerUnit = 12.0

	// StrengthenAdditionPerUnit is the flat seismic-strengthening allowance
	// per existing unit (m²): 13 primary + 12 protected room.
	StrengthenAdditionPerUnit = 25.0

	// ExpiryDate is the TAMA 38 expiry date in Haifa.
	ExpiryDate = "2026-05-18"
)
