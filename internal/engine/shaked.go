package engine

import (
	"math"

	"github.com/rights-calculator/app/models"
	"github.com/rights-calculator/internal/rules"
)

// CalculateShaked computes the Shaked (Amendment 139) alternative.
// The Shaked entitlement is a floor, never a cut: four times the existing
// gross area, or the plain TAMA 38 figure when that is already higher. Every
// downstream quantity is recomputed against the chosen entitlement because
// unit counts, service areas and the protected-room deduction all depend on
// it.
//
// estimatedValuePerSqm enables the betterment-levy estimate; without it the
// levy amount is nil, never zero.
func CalculateShaked(input models.BuildingInput, geo models.ParcelGeoData, estimatedValuePerSqm *float64) models.ShakedResult {
	tama := CalculateTama38(input, geo)

	existingGross := input.ExistingContour * float64(input.ExistingFloors)
	ceiling := math.Round(existingGross * rules.ShakedDemolishRebuildMultiplier)

	entitlement := tama.TotalPrimaryArea
	if ceiling > entitlement {
		entitlement = ceiling
	}

	base := computePolicyBase(input, geo)
	rec := buildTrackRecord(input, geo, base, entitlement)

	// The levy base is the increment over the statutory base rights: the
	// policy bonus is part of the taxable betterment under Amendment 139.
	var levy *float64
	if estimatedValuePerSqm != nil && *estimatedValuePerSqm > 0 {
		amount := math.Round((entitlement - rec.TbeTotal) * *estimatedValuePerSqm * rules.BettermentLevyRate)
		levy = &amount
	}

	return models.ShakedResult{
		Tama38Result: rec,

		ShakedMultiplier:     rules.ShakedDemolishRebuildMultiplier,
		BettermentLevyRate:   rules.BettermentLevyRate,
		BettermentLevyAmount: levy,
		ComparisonVsTama: models.ShakedComparison{
			AreaDifference:  entitlement - tama.TotalPrimaryArea,
			UnitsDifference: rec.PotentialUnitsLow - tama.PotentialUnitsLow,
		},
	}
}
