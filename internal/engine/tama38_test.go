package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rights-calculator/app/models"
)

// The worked example from the policy document: 142 m² contour, 3 floors, one
// unit per floor, 2 registered units, 2.5 proposed floors, 1011 m² plot.
func scenarioInput() models.BuildingInput {
	return models.BuildingInput{
		ExistingContour:       142,
		ExistingFloors:        3,
		ExistingUnitsPerFloor: 1,
		TotalExistingUnits:    2,
		AdditionalFloors:      2.5,
		PilotisArea:           70,
		BuildingType:          models.BuildingMultiFamily,
		BuildingPercentage:    0.60,
	}
}

func scenarioGeo() models.ParcelGeoData {
	return models.ParcelGeoData{
		ParcelID: models.ParcelID{Gush: 10850, Helka: 42},
		PlotArea: 1011,
	}
}

func TestCalculateTama38_WorkedExample(t *testing.T) {
	result := CalculateTama38(scenarioInput(), scenarioGeo())

	// Policy areas: (142 + 13×1) per proposed floor, flat 13 per existing
	// unit, pilotis allowance.
	assert.Equal(t, 155.0, result.ExpandedTypicalFloor)
	assert.Equal(t, 387.5, result.ExpandedTotal)
	assert.Equal(t, 26.0, result.ExistingUnitBonus)
	assert.Equal(t, 483.5, result.TamaPolicyTotal)

	// Statutory base: 60% of plot plus the 6% relief, each rounded.
	assert.Equal(t, 607.0, result.TbeBaseArea)
	assert.Equal(t, 61.0, result.TbeRelief)
	assert.Equal(t, 668.0, result.TbeTotal)

	assert.Equal(t, 1151.5, result.TotalPrimaryArea)

	assert.Equal(t, 85.0, result.MinApartmentSize)
	assert.Equal(t, 13, result.PotentialUnitsLow)
	assert.Equal(t, 14, result.PotentialUnitsHigh)
	assert.Nil(t, result.UnitsByDensity)

	assert.Equal(t, 2, result.RightsHolders)
	assert.Equal(t, 11, result.DeveloperUnitsLow)
	assert.Equal(t, 12, result.DeveloperUnitsHigh)

	assert.Equal(t, 168.0, result.TotalMamad)
	assert.Equal(t, 168.0, result.TotalBalcony)

	// Each returned unit: existing 142 m² apartment plus the 12 m² addition.
	assert.Equal(t, 308.0, result.ReturnedPrimaryToTenants)
	assert.Equal(t, 24.0, result.ReturnedMamadToTenants)
	assert.Equal(t, 843.5, result.DeveloperPrimary)
	assert.Equal(t, 312.0, result.DeveloperService)

	assert.Equal(t, 1319.5, result.TotalPaledelet)
	assert.Equal(t, 987.5, result.DeveloperPaledelet)

	assert.False(t, result.MamadOversizeWarning)
	assert.Equal(t, result.DeveloperPrimary, result.DeveloperPrimaryNet)

	assert.Equal(t, 13.8, result.UnitsPerDunam)
}

func TestCalculateTama38_Deterministic(t *testing.T) {
	first := CalculateTama38(scenarioInput(), scenarioGeo())
	second := CalculateTama38(scenarioInput(), scenarioGeo())
	assert.Equal(t, first, second)
}

func TestCalculateTama38_MonotonicInAdditionalFloors(t *testing.T) {
	previous := -1.0
	for floors := 0.0; floors <= 6.0; floors += 0.5 {
		input := scenarioInput()
		input.AdditionalFloors = floors

		result := CalculateTama38(input, scenarioGeo())
		assert.GreaterOrEqual(t, result.TotalPrimaryArea, previous, "additionalFloors=%v", floors)
		previous = result.TotalPrimaryArea
	}
}

func TestCalculateTama38_RightsHolderDefault(t *testing.T) {
	implicit := scenarioInput()

	explicit := scenarioInput()
	holders := explicit.TotalExistingUnits
	explicit.TotalRightsHolders = &holders

	assert.Equal(t,
		CalculateTama38(explicit, scenarioGeo()),
		CalculateTama38(implicit, scenarioGeo()))
}

func TestCalculateTama38_DensityDerivationRaisesUnits(t *testing.T) {
	input := scenarioInput()
	density := 20.0
	input.DensityPerDunam = &density

	result := CalculateTama38(input, scenarioGeo())

	// floor(1.011 × 20) = 20, above the area-based 13–14 range: the density
	// method is an independent lower bound, so it raises both ends.
	require.NotNil(t, result.UnitsByDensity)
	assert.Equal(t, 20, *result.UnitsByDensity)
	assert.Equal(t, 20, result.PotentialUnitsLow)
	assert.Equal(t, 20, result.PotentialUnitsHigh)
}

func TestCalculateTama38_PlotAreaOverride(t *testing.T) {
	input := scenarioInput()
	input.PlotArea = 500

	result := CalculateTama38(input, scenarioGeo())

	assert.Equal(t, 500.0, result.PlotArea)
	assert.Equal(t, 300.0, result.TbeBaseArea) // round(500 × 0.60)
	assert.Equal(t, 30.0, result.TbeRelief)
}

func TestCalculateTama38_NegativeDeveloperUnitsPreserved(t *testing.T) {
	input := scenarioInput()
	holders := 20
	input.TotalRightsHolders = &holders

	result := CalculateTama38(input, scenarioGeo())

	assert.Equal(t, -6, result.DeveloperUnitsHigh)
	assert.Equal(t, -7, result.DeveloperUnitsLow)
}

func TestCalculateTama38_MamadOversizeDeduction(t *testing.T) {
	input := scenarioInput()
	actual := 15.0
	input.MamadActualSize = &actual

	result := CalculateTama38(input, scenarioGeo())

	assert.Equal(t, 3.0, result.MamadOversizePerUnit)
	assert.Equal(t, 36.0, result.MamadOversizeDeduction) // 3 m² × 12 developer units
	assert.True(t, result.MamadOversizeWarning)
	assert.Equal(t, result.DeveloperPrimary-36.0, result.DeveloperPrimaryNet)
}

func TestCalculateTama38_MamadWithinBoundsNoDeduction(t *testing.T) {
	input := scenarioInput()
	actual := 12.0
	input.MamadActualSize = &actual

	result := CalculateTama38(input, scenarioGeo())

	assert.Equal(t, 0.0, result.MamadOversizeDeduction)
	assert.False(t, result.MamadOversizeWarning)
}
