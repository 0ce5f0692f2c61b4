package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyInclusiveHousing_ScoredDistrict(t *testing.T) {
	result := ApplyInclusiveHousing(10, 14, "הדר")

	assert.True(t, result.Applies)
	assert.Equal(t, "הדר", result.DistrictName)
	assert.Equal(t, 0.15, result.Rate)
	assert.Equal(t, 2, result.MandatedUnits) // ceil(10 × 0.15)
	assert.Equal(t, 8, result.MarketableUnits)
}

func TestApplyInclusiveHousing_AliasSubstringMatch(t *testing.T) {
	result := ApplyInclusiveHousing(10, 14, "שכונת ואדי ניסנאס")

	assert.True(t, result.Applies)
	assert.Equal(t, "הדר", result.DistrictName)
}

func TestApplyInclusiveHousing_UnknownNeighborhoodNoop(t *testing.T) {
	result := ApplyInclusiveHousing(10, 14, "טירת כרמל")

	assert.False(t, result.Applies)
	assert.Equal(t, 0.0, result.Rate)
	assert.Equal(t, 0, result.MandatedUnits)
	assert.Equal(t, 10, result.MarketableUnits)
}

func TestApplyInclusiveHousing_BelowProjectSizeNoop(t *testing.T) {
	result := ApplyInclusiveHousing(6, 9, "הדר")

	assert.False(t, result.Applies)
	assert.Equal(t, 6, result.MarketableUnits)
}

func TestApplyInclusiveHousing_NonPositiveDeveloperCountNoop(t *testing.T) {
	result := ApplyInclusiveHousing(0, 14, "הדר")
	assert.False(t, result.Applies)
	assert.Equal(t, 0, result.MarketableUnits)

	result = ApplyInclusiveHousing(-3, 14, "הדר")
	assert.False(t, result.Applies)
	assert.Equal(t, -3, result.MarketableUnits)
}

func TestApplyInclusiveHousing_CeilingRounding(t *testing.T) {
	// 7 × 0.10 = 0.7 rounds up to a full mandated unit.
	result := ApplyInclusiveHousing(7, 12, "קריית חיים")

	assert.True(t, result.Applies)
	assert.Equal(t, 1, result.MandatedUnits)
	assert.Equal(t, 6, result.MarketableUnits)
}
