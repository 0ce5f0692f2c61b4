package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rights-calculator/app/models"
)

func hfpInput(units int) models.BuildingInput {
	return models.BuildingInput{
		ExistingContour:       240,
		ExistingFloors:        3,
		ExistingUnitsPerFloor: 3,
		TotalExistingUnits:    units,
		BuildingType:          models.BuildingMultiFamily,
	}
}

func hfpGeo(neighborhood string) models.ParcelGeoData {
	return models.ParcelGeoData{
		ParcelID:     models.ParcelID{Gush: 10900, Helka: 3},
		PlotArea:     1011,
		Neighborhood: neighborhood,
	}
}

func TestCalculateHfp2666_StrengthenOnly(t *testing.T) {
	result := CalculateHfp2666(hfpInput(3), hfpGeo("המורדות הצפוניים"), 0, 0)

	assert.True(t, result.StrengthenOnly)
	require.NotNil(t, result.StrengthenAddition)
	assert.Equal(t, 75.0, *result.StrengthenAddition) // 3 units × 25 m²

	assert.Nil(t, result.RawPrimaryArea)
	assert.Nil(t, result.MaxByFloors)
	assert.Nil(t, result.MaxByDensity)
	assert.Nil(t, result.FinalPrimaryArea)
	assert.Nil(t, result.PotentialUnitsHigh)
	assert.Nil(t, result.InclusiveHousing)

	// Owners still receive their baseline return under strengthening.
	assert.Equal(t, 276.0, result.ReturnedPrimaryToTenants) // (240/3 + 12) × 3
	assert.Equal(t, 36.0, result.ReturnedMamadToTenants)

	require.NotNil(t, result.District)
	assert.Equal(t, 7, result.District.ID)
}

func TestCalculateHfp2666_UnresolvedDistrict(t *testing.T) {
	result := CalculateHfp2666(hfpInput(6), hfpGeo("תל אביב"), 0, 0)

	assert.False(t, result.DistrictDataAvailable)
	assert.Nil(t, result.District)
	assert.Nil(t, result.SubArea)
	assert.Nil(t, result.FinalPrimaryArea)
	assert.Nil(t, result.DeveloperUnitsHigh)

	// Return figures depend only on the declared building, not the district.
	assert.Equal(t, 552.0, result.ReturnedPrimaryToTenants) // (240/3 + 12) × 6
}

func TestCalculateHfp2666_SmallBuildingOverride(t *testing.T) {
	// Bat Galim sub-area 41 carries a 2.50 multiplier, but a 3-unit building
	// in a non-exempt district is clamped to the 1.35/4-floor/11-density
	// ceilings.
	result := CalculateHfp2666(hfpInput(3), hfpGeo("בת גלים"), 0, 0)

	assert.True(t, result.SmallBuildingApplied)
	require.NotNil(t, result.SubArea)
	assert.Equal(t, 41, result.SubArea.ID)
	assert.Equal(t, 1.35, result.SubArea.Multiplier)
	assert.Equal(t, 4, result.SubArea.MaxFloors)
	assert.Equal(t, 11.0, result.SubArea.MaxUnitsPerDunam)

	require.NotNil(t, result.RawPrimaryArea)
	assert.Equal(t, 1365.0, *result.RawPrimaryArea) // round(1011 × 1.35)
	require.NotNil(t, result.MaxByDensity)
	assert.Equal(t, 935.0, *result.MaxByDensity) // floor(1.011 × 11) × 85
	require.NotNil(t, result.FinalPrimaryArea)
	assert.Equal(t, 935.0, *result.FinalPrimaryArea)
}

func TestCalculateHfp2666_OverrideOnlyTightens(t *testing.T) {
	// District 10 is exempt from the small-building override: the Moriah
	// 2.50 multiplier survives even for a 3-unit building.
	result := CalculateHfp2666(hfpInput(3), hfpGeo("מוריה"), 0, 0)

	assert.False(t, result.SmallBuildingApplied)
	require.NotNil(t, result.Multiplier)
	assert.Equal(t, 2.50, *result.Multiplier)
}

func TestCalculateHfp2666_CapMinimumProperty(t *testing.T) {
	result := CalculateHfp2666(hfpInput(3), hfpGeo("בת גלים"), 0, 0)

	require.NotNil(t, result.FinalPrimaryArea)
	trio := []float64{*result.RawPrimaryArea, *result.MaxByFloors, *result.MaxByDensity}
	min := trio[0]
	for _, v := range trio[1:] {
		if v < min {
			min = v
		}
	}
	assert.Equal(t, min, *result.FinalPrimaryArea)
	// The density cap binds here, so final must differ from raw.
	assert.NotEqual(t, *result.RawPrimaryArea, *result.FinalPrimaryArea)
}

func TestCalculateHfp2666_UnitBandSelectsLargeBuildingSubArea(t *testing.T) {
	result := CalculateHfp2666(hfpInput(14), hfpGeo("בת גלים"), 0, 0)

	require.NotNil(t, result.SubArea)
	assert.Equal(t, 42, result.SubArea.ID)
	assert.False(t, result.SmallBuildingApplied)
	assert.Equal(t, 2.70, result.SubArea.Multiplier)
}

func TestCalculateHfp2666_ManualDistrictOverride(t *testing.T) {
	result := CalculateHfp2666(hfpInput(6), hfpGeo("תל אביב"), 5, 0)

	assert.True(t, result.DistrictDataAvailable)
	require.NotNil(t, result.District)
	assert.Equal(t, 5, result.District.ID)
	require.NotNil(t, result.SubArea)
	assert.Equal(t, 51, result.SubArea.ID)
}

func TestCalculateHfp2666_ManualFocalHubSubArea(t *testing.T) {
	// The Hadar focal-hub sub-area is never auto-selected; a manual id
	// reaches it.
	auto := CalculateHfp2666(hfpInput(6), hfpGeo("הדר"), 0, 0)
	require.NotNil(t, auto.SubArea)
	assert.Equal(t, 61, auto.SubArea.ID)

	manual := CalculateHfp2666(hfpInput(6), hfpGeo("הדר"), 0, 62)
	require.NotNil(t, manual.SubArea)
	assert.Equal(t, 62, manual.SubArea.ID)
	assert.Equal(t, 2.80, manual.SubArea.Multiplier)
}

func TestCalculateHfp2666_BuildingHBypassesDistricts(t *testing.T) {
	input := hfpInput(6)
	input.IsBuildingH = true
	input.ExistingContour = 300
	input.ExistingFloors = 4

	geo := hfpGeo("תל אביב") // would not resolve; Building-H must not care
	geo.PlotArea = 500

	result := CalculateHfp2666(input, geo, 0, 0)

	assert.True(t, result.BuildingHApplied)
	assert.True(t, result.DistrictDataAvailable)
	assert.Nil(t, result.District)
	assert.Nil(t, result.MaxByDensity) // no density cap for Building-H

	require.NotNil(t, result.RawPrimaryArea)
	assert.Equal(t, 4200.0, *result.RawPrimaryArea) // 300 × 4 × 3.5
	require.NotNil(t, result.MaxByFloors)
	assert.Equal(t, 3600.0, *result.MaxByFloors) // 9 × (500 × 0.80)
	require.NotNil(t, result.FinalPrimaryArea)
	assert.Equal(t, 3600.0, *result.FinalPrimaryArea)
}

func TestCalculateHfp2666_InclusiveHousingOnNormalOutcome(t *testing.T) {
	result := CalculateHfp2666(hfpInput(3), hfpGeo("בת גלים"), 0, 0)

	// final 935 / 85 = 11 units, 8 for the developer; Bat Galim rate 0.12.
	require.NotNil(t, result.InclusiveHousing)
	assert.True(t, result.InclusiveHousing.Applies)
	assert.Equal(t, 0.12, result.InclusiveHousing.Rate)
	assert.Equal(t, 1, result.InclusiveHousing.MandatedUnits)
	assert.Equal(t, 7, result.InclusiveHousing.MarketableUnits)
}

func TestCalculateHfp2666_NegativeDeveloperUnitsPreserved(t *testing.T) {
	result := CalculateHfp2666(hfpInput(25), hfpGeo("בת גלים"), 0, 0)

	// 25 units selects sub-area 42; no small-building clamp applies.
	require.NotNil(t, result.DeveloperUnitsHigh)
	assert.Negative(t, *result.DeveloperUnitsHigh)
}
