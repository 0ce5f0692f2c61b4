package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocs() []NeighborhoodDoc {
	return []NeighborhoodDoc{
		{Name: "הדר", SearchKey: "hdr", DistrictID: 6},
		{Name: "בת גלים", SearchKey: "bt_glym", DistrictID: 4},
		{Name: "קריית חיים", SearchKey: "qryyt_hyym", DistrictID: 3},
		{Name: "קריית חיים מערבית", SearchKey: "qryyt_hyym_m_rbyt", DistrictID: 2},
	}
}

func TestFuzzyScore_ExactMatch(t *testing.T) {
	assert.Equal(t, 1.0, fuzzyScore("bt_glym", "bt_glym", 0.6, 0.4))
}

func TestFuzzyScore_EmptyInputs(t *testing.T) {
	assert.Equal(t, 0.0, fuzzyScore("", "bt_glym", 0.6, 0.4))
	assert.Equal(t, 0.0, fuzzyScore("bt_glym", "", 0.6, 0.4))
}

func TestFuzzyScore_CloserStringScoresHigher(t *testing.T) {
	near := fuzzyScore("qryyt_hyym", "qryyt_hyym_m_rbyt", 0.6, 0.4)
	far := fuzzyScore("qryyt_hyym", "bt_glym", 0.6, 0.4)
	assert.Greater(t, near, far)
}

func TestRankSuggestions_OrderedByScore(t *testing.T) {
	suggestions := rankSuggestions("qryyt_hyym", sampleDocs(), 0.6, 0.4, 0, 10)

	require.NotEmpty(t, suggestions)
	assert.Equal(t, "קריית חיים", suggestions[0].Name)
	assert.Equal(t, 3, suggestions[0].DistrictID)
	for i := 1; i < len(suggestions); i++ {
		assert.GreaterOrEqual(t, suggestions[i-1].Score, suggestions[i].Score)
	}
}

func TestRankSuggestions_MinScoreFilters(t *testing.T) {
	suggestions := rankSuggestions("qryyt_hyym", sampleDocs(), 0.6, 0.4, 0.99, 10)

	require.Len(t, suggestions, 1)
	assert.Equal(t, "קריית חיים", suggestions[0].Name)
}

func TestRankSuggestions_LimitApplied(t *testing.T) {
	suggestions := rankSuggestions("qryyt_hyym", sampleDocs(), 0.6, 0.4, 0, 2)
	assert.Len(t, suggestions, 2)
}

func TestRankSuggestions_FallsBackToNormalizedName(t *testing.T) {
	docs := []NeighborhoodDoc{{Name: "הדר", NormalizedName: "הדר", DistrictID: 6}}
	suggestions := rankSuggestions("הדר", docs, 0.6, 0.4, 0, 10)

	require.Len(t, suggestions, 1)
	assert.Equal(t, 1.0, suggestions[0].Score)
}
