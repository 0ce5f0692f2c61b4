package engine

import (
	"math"

	"github.com/rights-calculator/app/models"
	"github.com/rights-calculator/internal/rules"
)

// policyBase carries the TAMA 38 area components that the Shaked path
// reuses unchanged: the demolition-rebuild policy bonus and the statutory
// base rights.
type policyBase struct {
	plotArea float64

	expandedTypicalFloor float64
	expandedTotal        float64
	existingUnitBonus    float64
	pilotis              float64
	tamaPolicyTotal      float64

	buildingPercentage float64
	tbeBaseArea        float64
	tbeRelief          float64
	tbeBonusFloors     float64
	tbeTotal           float64
}

func computePolicyBase(input models.BuildingInput, geo models.ParcelGeoData) policyBase {
	plotArea := input.EffectivePlotArea(geo)

	// Expanded typical floor: existing contour plus 13 m² per unit on the
	// floor, carried over every proposed floor.
	expandedTypicalFloor := input.ExistingContour + rules.ExpansionPerUnit*float64(input.ExistingUnitsPerFloor)
	expandedTotal := expandedTypicalFloor * input.AdditionalFloors

	// Flat bonus for the existing building uses the raw unit count, never
	// the rights-holder override.
	existingUnitBonus := float64(input.TotalExistingUnits) * rules.ExpansionPerUnit

	tamaPolicyTotal := expandedTotal + existingUnitBonus + input.PilotisArea

	pct := input.BuildingPercentage
	if pct == 0 {
		pct = rules.DefaultBuildingPct
	}
	tbeBaseArea := math.Round(plotArea * pct)
	// The relief is a share of the plot area, additive to the base rights
	// rather than compounding (חפ/מד/2500 §4.11).
	tbeRelief := math.Round(plotArea * rules.ShevesRelief)
	// Reserved for a future zoning-variance input; always zero today.
	tbeBonusFloors := 0.0

	return policyBase{
		plotArea:             plotArea,
		expandedTypicalFloor: expandedTypicalFloor,
		expandedTotal:        expandedTotal,
		existingUnitBonus:    existingUnitBonus,
		pilotis:              input.PilotisArea,
		tamaPolicyTotal:      tamaPolicyTotal,
		buildingPercentage:   pct,
		tbeBaseArea:          tbeBaseArea,
		tbeRelief:            tbeRelief,
		tbeBonusFloors:       tbeBonusFloors,
		tbeTotal:             tbeBaseArea + tbeRelief + tbeBonusFloors,
	}
}

// buildTrackRecord derives every downstream quantity of a TAMA 38 or Shaked
// record from the given entitlement. Both tracks share these formulas; the
// Shaked path calls this again with its larger entitlement because a larger
// area changes unit counts and therefore service areas and the
// protected-room check.
func buildTrackRecord(input models.BuildingInput, geo models.ParcelGeoData, base policyBase, entitlement float64) models.Tama38Result {
	avgSize := avgApartmentSize(input)
	units := deriveUnitRange(entitlement, base.plotArea, avgSize, input.DensityPerDunam)

	rightsHolders := input.RightsHolders()
	// Not clamped at zero: a negative developer count signals that the
	// existing units already exceed the entitlement, which the caller must
	// surface.
	developerLow := units.low - rightsHolders
	developerHigh := units.high - rightsHolders

	totalUnits := units.high
	totalMamad := float64(totalUnits) * rules.MamadPerUnit
	totalBalcony := float64(totalUnits) * rules.BalconyPerUnit

	returnedPrimary := returnedPrimaryToTenants(input)
	returnedMamad := returnedMamadToTenants(input)
	developerPrimary := entitlement - returnedPrimary
	developerService := (totalMamad + totalBalcony) - returnedMamad

	totalPaledelet := entitlement + totalMamad
	developerPaledelet := developerPrimary + (totalMamad - returnedMamad)

	oversize := mamadOversize(input)
	oversizeDeduction := 0.0
	if oversize > 0 && developerHigh > 0 {
		oversizeDeduction = oversize * float64(developerHigh)
	}

	density := 0.0
	if base.plotArea > 0 {
		density = float64(totalUnits) / (base.plotArea / 1000)
	}

	return models.Tama38Result{
		ExistingContour:       input.ExistingContour,
		ExistingFloors:        input.ExistingFloors,
		AdditionalFloors:      input.AdditionalFloors,
		ExistingUnitsPerFloor: input.ExistingUnitsPerFloor,
		TotalExistingUnits:    input.TotalExistingUnits,
		ExpandedFloorPerUnit:  rules.ExpansionPerUnit,
		ExpandedTypicalFloor:  base.expandedTypicalFloor,
		ExpandedTotal:         base.expandedTotal,
		ExistingUnitBonus:     base.existingUnitBonus,
		PilotisArea:           base.pilotis,
		TamaPolicyTotal:       base.tamaPolicyTotal,

		PlotArea:           base.plotArea,
		PlotAreaForCalc:    base.plotArea,
		BuildingPercentage: base.buildingPercentage,
		TbeBaseArea:        base.tbeBaseArea,
		ReliefPercentage:   rules.ShevesRelief,
		TbeRelief:          base.tbeRelief,
		TbeBonusFloors:     base.tbeBonusFloors,
		TbeTotal:           base.tbeTotal,

		TotalPrimaryArea: entitlement,

		MinApartmentSize:   avgSize,
		UnitsByAreaLow:     units.areaLow,
		UnitsByAreaHigh:    units.areaHigh,
		UnitsByDensity:     units.byDensity,
		PotentialUnitsLow:  units.low,
		PotentialUnitsHigh: units.high,

		RightsHolders:      rightsHolders,
		DeveloperUnitsLow:  developerLow,
		DeveloperUnitsHigh: developerHigh,

		TotalUnitsForCalc: totalUnits,
		MamadPerUnit:      rules.MamadPerUnit,
		TotalMamad:        totalMamad,
		BalconyPerUnit:    rules.BalconyPerUnit,
		TotalBalcony:      totalBalcony,

		ReturnedPrimaryToTenants: returnedPrimary,
		ReturnedMamadToTenants:   returnedMamad,
		DeveloperPrimary:         developerPrimary,
		DeveloperService:         developerService,
		TotalPrimaryProject:      entitlement,
		TotalServiceProject:      totalMamad + totalBalcony,

		TotalPaledelet:     totalPaledelet,
		DeveloperPaledelet: developerPaledelet,

		MamadOversizePerUnit:   oversize,
		MamadOversizeDeduction: oversizeDeduction,
		MamadOversizeWarning:   oversizeDeduction > 0,
		DeveloperPrimaryNet:    developerPrimary - oversizeDeduction,

		InclusiveHousing: ApplyInclusiveHousing(developerHigh, units.high, geo.Neighborhood),

		Density:       density,
		UnitsPerDunam: math.Round(density*10) / 10,
	}
}

// CalculateTama38 computes the baseline TAMA 38 demolition-rebuild
// entitlement: the policy bonus plus the statutory base rights, with units
// and the economic split derived from the combined figure.
func CalculateTama38(input models.BuildingInput, geo models.ParcelGeoData) models.Tama38Result {
	base := computePolicyBase(input, geo)
	return buildTrackRecord(input, geo, base, base.tamaPolicyTotal+base.tbeTotal)
}
