package engine

import (
	"math"
	"strings"

	"github.com/rights-calculator/app/models"
	"github.com/rights-calculator/internal/rules"
)

// unitRange is the result of the dual unit derivation: the area-based range,
// the optional density-based figure, and their elementwise maximum. Area and
// density are independent lower bounds on potential, so the combination rule
// is max, not min (HFP/2666 treats density as a ceiling instead; that
// asymmetry is deliberate and lives in the HFP/2666 path, not here).
type unitRange struct {
	areaLow   int
	areaHigh  int
	byDensity *int
	low       int
	high      int
}

func deriveUnitRange(totalPrimary, plotArea, avgSize float64, density *float64) unitRange {
	r := unitRange{
		areaLow:  int(math.Floor(totalPrimary / avgSize)),
		areaHigh: int(math.Ceil(totalPrimary / avgSize)),
	}
	r.low, r.high = r.areaLow, r.areaHigh

	if density != nil {
		d := int(math.Floor(plotArea / 1000 * *density))
		r.byDensity = &d
		if d > r.low {
			r.low = d
		}
		if d > r.high {
			r.high = d
		}
	}
	return r
}

// avgApartmentSize resolves the average apartment size used for unit
// derivation.
func avgApartmentSize(input models.BuildingInput) float64 {
	if input.MinApartmentSize > 0 {
		return input.MinApartmentSize
	}
	return rules.DefaultAvgApartment
}

func returnPerUnit(input models.BuildingInput) float64 {
	if input.ReturnPerUnit > 0 {
		return input.ReturnPerUnit
	}
	return rules.DefaultReturnPerUnit
}

func mamadReturnPerUnit(input models.BuildingInput) float64 {
	if input.MamadReturnPerUnit > 0 {
		return input.MamadReturnPerUnit
	}
	return rules.MamadPerUnit
}

// returnedPrimaryToTenants is the primary area handed back to the existing
// owners: their average current apartment plus the per-unit return
// addition, for every rights holder. Identical across all three tracks.
func returnedPrimaryToTenants(input models.BuildingInput) float64 {
	unitsPerFloor := input.ExistingUnitsPerFloor
	if unitsPerFloor == 0 {
		unitsPerFloor = 1
	}
	avgExistingUnit := input.ExistingContour / float64(unitsPerFloor)
	return math.Round((avgExistingUnit + returnPerUnit(input)) * float64(input.RightsHolders()))
}

// returnedMamadToTenants is the protected-room area handed back. Balconies
// are never returned.
func returnedMamadToTenants(input models.BuildingInput) float64 {
	return mamadReturnPerUnit(input) * float64(input.RightsHolders())
}

// mamadOversize reports the per-unit excess of a declared protected room
// over the recognized maximum, or 0 when within bounds or undeclared.
func mamadOversize(input models.BuildingInput) float64 {
	if input.MamadActualSize == nil {
		return 0
	}
	if excess := *input.MamadActualSize - rules.MamadMaxNetSize; excess > 0 {
		return excess
	}
	return 0
}

func containsName(haystack, needle string) bool {
	return haystack != "" && needle != "" && strings.Contains(haystack, needle)
}
