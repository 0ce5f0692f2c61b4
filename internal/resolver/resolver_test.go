package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rights-calculator/app/models"
	"github.com/rights-calculator/internal/rules"
)

func geoWith(neighborhood, quarter string) models.ParcelGeoData {
	return models.ParcelGeoData{
		ParcelID:     models.ParcelID{Gush: 11000, Helka: 5},
		PlotArea:     800,
		Neighborhood: neighborhood,
		Quarter:      quarter,
	}
}

func TestFindDistrict_SubstringMatch(t *testing.T) {
	r := New()

	d := r.FindDistrict(geoWith("שכונת הדר הכרמל", ""))
	require.NotNil(t, d)
	assert.Equal(t, 6, d.ID)
}

func TestFindDistrict_QuarterFallback(t *testing.T) {
	r := New()

	d := r.FindDistrict(geoWith("", "בת גלים"))
	require.NotNil(t, d)
	assert.Equal(t, 4, d.ID)
}

func TestFindDistrict_FirstMatchWins(t *testing.T) {
	r := New()

	// "קריית חיים מערבית" contains the bare "קריית חיים" key too; declaration
	// order must send it to district 2, not 3.
	d := r.FindDistrict(geoWith("קריית חיים מערבית", ""))
	require.NotNil(t, d)
	assert.Equal(t, 2, d.ID)

	d = r.FindDistrict(geoWith("קריית חיים", ""))
	require.NotNil(t, d)
	assert.Equal(t, 3, d.ID)
}

func TestFindDistrict_NoMatch(t *testing.T) {
	r := New()

	assert.Nil(t, r.FindDistrict(geoWith("תל אביב", "")))
	assert.Nil(t, r.FindDistrict(geoWith("", "")))
}

func TestFindDistrict_NormalizedInput(t *testing.T) {
	r := New()

	d := r.FindDistrict(geoWith("  נווה   שאנן ", ""))
	require.NotNil(t, d)
	assert.Equal(t, 9, d.ID)
}

func TestResolveSubArea_ManualOverrideWins(t *testing.T) {
	r := New()
	d := rules.DistrictByID(8)
	require.NotNil(t, d)

	sa := r.ResolveSubArea(d, models.BuildingInput{TotalExistingUnits: 6}, 82)
	require.NotNil(t, sa)
	assert.Equal(t, "כרמל ותיק", sa.Name)
	assert.Equal(t, 1.60, sa.Multiplier)
}

func TestResolveSubArea_SingleSubArea(t *testing.T) {
	r := New()
	d := rules.DistrictByID(5)
	require.NotNil(t, d)

	sa := r.ResolveSubArea(d, models.BuildingInput{TotalExistingUnits: 6}, 0)
	require.NotNil(t, sa)
	assert.Equal(t, 51, sa.ID)
}

func TestResolveSubArea_UnitBands(t *testing.T) {
	r := New()
	d := rules.DistrictByID(4)
	require.NotNil(t, d)

	small := r.ResolveSubArea(d, models.BuildingInput{TotalExistingUnits: 12}, 0)
	require.NotNil(t, small)
	assert.Equal(t, 41, small.ID)

	large := r.ResolveSubArea(d, models.BuildingInput{TotalExistingUnits: 13}, 0)
	require.NotNil(t, large)
	assert.Equal(t, 42, large.ID)
}

func TestResolveSubArea_UnitBandsPartition(t *testing.T) {
	r := New()
	d := rules.DistrictByID(4)
	require.NotNil(t, d)

	// Complementary bands: every unit count resolves to exactly one band.
	for units := 1; units <= 40; units++ {
		sa := r.ResolveSubArea(d, models.BuildingInput{TotalExistingUnits: units}, 0)
		require.NotNil(t, sa, "units=%d", units)
	}
}

func TestResolveSubArea_SkipsManualOnlyConditions(t *testing.T) {
	r := New()

	d := rules.DistrictByID(2)
	require.NotNil(t, d)
	sa := r.ResolveSubArea(d, models.BuildingInput{TotalExistingUnits: 20}, 0)
	require.NotNil(t, sa)
	assert.Equal(t, 21, sa.ID, "consolidation sub-area must not auto-resolve")

	d = rules.DistrictByID(6)
	require.NotNil(t, d)
	sa = r.ResolveSubArea(d, models.BuildingInput{TotalExistingUnits: 20}, 0)
	require.NotNil(t, sa)
	assert.Equal(t, 61, sa.ID, "focal-hub sub-area must not auto-resolve")
}

func TestResolveSubArea_ManualConsolidation(t *testing.T) {
	r := New()
	d := rules.DistrictByID(2)
	require.NotNil(t, d)

	sa := r.ResolveSubArea(d, models.BuildingInput{TotalExistingUnits: 20}, 22)
	require.NotNil(t, sa)
	assert.Equal(t, 2.10, sa.Multiplier)
}

func TestResolveSubArea_NilDistrict(t *testing.T) {
	r := New()

	assert.Nil(t, r.ResolveSubArea(nil, models.BuildingInput{}, 0))
}
