package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rights-calculator/app/config"
	"github.com/rights-calculator/app/models"
)

func testCalcService() *CalcService {
	config.Default()
	return &CalcService{logger: zap.NewNop()}
}

func serviceGeo() models.ParcelGeoData {
	return models.ParcelGeoData{
		ParcelID:     models.ParcelID{Gush: 10000, Helka: 7},
		PlotArea:     1011,
		Neighborhood: "הדר",
	}
}

func serviceInput() models.BuildingInput {
	return models.BuildingInput{
		ExistingContour:       142,
		ExistingFloors:        3,
		ExistingUnitsPerFloor: 1,
		TotalExistingUnits:    2,
		AdditionalFloors:      2.5,
		BuildingType:          models.BuildingMultiFamily,
	}
}

func TestCalcService_Calculate_AllTracksOnClearParcel(t *testing.T) {
	cs := testCalcService()

	report := cs.Calculate(serviceInput(), serviceGeo(), CalcOverrides{})

	require.NotNil(t, report)
	assert.Equal(t, models.StatusClear, report.FilterResult.Status)
	assert.NotNil(t, report.Tama38)
	assert.NotNil(t, report.Shaked)
	assert.NotNil(t, report.Hfp2666)
	assert.Equal(t, config.C.RulesVersion, report.RulesVersion)
	assert.False(t, report.GeneratedAt.IsZero())
	assert.Equal(t, 10000, report.ParcelID.Gush)
}

func TestCalcService_Calculate_BlockedParcelSkipsAllTracks(t *testing.T) {
	cs := testCalcService()

	geo := serviceGeo()
	geo.IsConservationBuilding = true

	report := cs.Calculate(serviceInput(), geo, CalcOverrides{})

	assert.Equal(t, models.StatusBlocked, report.FilterResult.Status)
	assert.Nil(t, report.Tama38)
	assert.Nil(t, report.Shaked)
	assert.Nil(t, report.Hfp2666)
}

func TestCalcService_Calculate_AppliesConfiguredDefaults(t *testing.T) {
	cs := testCalcService()

	input := serviceInput()
	input.PilotisArea = 0

	report := cs.Calculate(input, serviceGeo(), CalcOverrides{})

	require.NotNil(t, report.Tama38)
	assert.Equal(t, config.C.Defaults.PilotisArea, report.Tama38.PilotisArea)
	assert.Equal(t, config.C.Defaults.PilotisArea, report.Input.PilotisArea)
	assert.Equal(t, config.C.Defaults.BuildingPercentage, report.Input.BuildingPercentage)
	assert.Equal(t, config.C.Defaults.AvgApartmentSize, report.Input.MinApartmentSize)
}

func TestCalcService_Calculate_DeclaredInputsSurviveDefaulting(t *testing.T) {
	cs := testCalcService()

	input := serviceInput()
	input.PilotisArea = 45
	input.MinApartmentSize = 100
	input.BuildingPercentage = 0.75

	report := cs.Calculate(input, serviceGeo(), CalcOverrides{})

	assert.Equal(t, 45.0, report.Input.PilotisArea)
	assert.Equal(t, 100.0, report.Input.MinApartmentSize)
	assert.Equal(t, 0.75, report.Input.BuildingPercentage)
}

func TestCalcService_Calculate_OverrideValueFeedsLevy(t *testing.T) {
	cs := testCalcService()

	value := 10000.0
	report := cs.Calculate(serviceInput(), serviceGeo(), CalcOverrides{EstimatedValuePerSqm: &value})

	require.NotNil(t, report.Shaked)
	if report.Shaked.TotalPrimaryArea > report.Shaked.TbeTotal {
		assert.NotNil(t, report.Shaked.BettermentLevyAmount)
	}
}

func TestCalcService_Calculate_InputValueUsedWhenNoOverride(t *testing.T) {
	cs := testCalcService()

	value := 10000.0
	input := serviceInput()
	input.EstimatedValuePerSqm = &value

	withInput := cs.Calculate(input, serviceGeo(), CalcOverrides{})
	withOverride := cs.Calculate(serviceInput(), serviceGeo(), CalcOverrides{EstimatedValuePerSqm: &value})

	require.NotNil(t, withInput.Shaked)
	require.NotNil(t, withOverride.Shaked)
	assert.Equal(t, withOverride.Shaked.BettermentLevyAmount, withInput.Shaked.BettermentLevyAmount)
}

func TestCalcService_Calculate_ManualSubAreaReachesTrackC(t *testing.T) {
	cs := testCalcService()

	geo := serviceGeo()
	geo.Neighborhood = "בת גלים"

	auto := cs.Calculate(serviceInput(), geo, CalcOverrides{})
	manual := cs.Calculate(serviceInput(), geo, CalcOverrides{ManualSubAreaID: 42})

	require.NotNil(t, auto.Hfp2666)
	require.NotNil(t, manual.Hfp2666)
	require.NotNil(t, manual.Hfp2666.SubArea)
	assert.Equal(t, 42, manual.Hfp2666.SubArea.ID)
	assert.NotEqual(t, auto.Hfp2666.SubArea.ID, manual.Hfp2666.SubArea.ID)
}

func TestCalcService_ArchiveDisabledWithoutDatabase(t *testing.T) {
	cs := testCalcService()

	report := cs.Calculate(serviceInput(), serviceGeo(), CalcOverrides{})

	_, err := cs.ArchiveReport(context.Background(), report)
	assert.Error(t, err)

	_, err = cs.GetReport(context.Background(), "whatever")
	assert.Error(t, err)
}

func TestWithConfigDefaults_ZeroMeansDefault(t *testing.T) {
	config.Default()

	out := withConfigDefaults(models.BuildingInput{})

	assert.Equal(t, 70.0, out.PilotisArea)
	assert.Equal(t, 85.0, out.MinApartmentSize)
	assert.Equal(t, 0.60, out.BuildingPercentage)
	assert.Equal(t, 12.0, out.ReturnPerUnit)
	assert.Equal(t, 12.0, out.MamadReturnPerUnit)
}
