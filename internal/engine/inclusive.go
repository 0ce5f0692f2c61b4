package engine

import (
	"math"

	"github.com/rights-calculator/app/models"
	"github.com/rights-calculator/internal/rules"
)

// ApplyInclusiveHousing deducts the mandated affordable-unit quota from the
// developer's marketable unit count in scored districts. A no-op (applies =
// false, marketable unchanged) outside scored districts or below the policy
// project size.
func ApplyInclusiveHousing(developerUnitsHigh, potentialUnitsHigh int, neighborhood string) models.InclusiveHousingResult {
	noop := models.InclusiveHousingResult{
		MarketableUnits: developerUnitsHigh,
	}

	district := findInclusiveDistrict(neighborhood)
	if district == nil {
		return noop
	}
	if potentialUnitsHigh < rules.InclusiveMinUnits || developerUnitsHigh <= 0 {
		return noop
	}

	mandated := int(math.Ceil(float64(developerUnitsHigh) * district.Rate))
	return models.InclusiveHousingResult{
		Applies:         true,
		DistrictName:    district.Name,
		Rate:            district.Rate,
		MandatedUnits:   mandated,
		MarketableUnits: developerUnitsHigh - mandated,
	}
}

func findInclusiveDistrict(neighborhood string) *rules.InclusiveDistrict {
	if neighborhood == "" {
		return nil
	}
	for i := range rules.InclusiveDistricts {
		for _, alias := range rules.InclusiveDistricts[i].Aliases {
			if containsName(neighborhood, alias) {
				return &rules.InclusiveDistricts[i]
			}
		}
	}
	return nil
}
