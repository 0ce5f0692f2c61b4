package services

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rights-calculator/internal/external"
)

func stubGovMapServer(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		assert.Equal(t, "/api/parcel", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"gush":         10000,
			"helka":        7,
			"plot_area":    1011.0,
			"neighborhood": "הדר",
			"quarter":      "הדר",
		})
	}))
}

func TestGeodataService_CacheRoundTrip(t *testing.T) {
	hits := 0
	server := stubGovMapServer(t, &hits)
	defer server.Close()

	govmap := external.NewGovMapClient(server.URL, 2*time.Second, zap.NewNop())
	cache := NewCacheService(time.Minute)
	gds := NewGeodataService(cache, govmap, zap.NewNop())

	ctx := context.Background()

	geo, cached, err := gds.GetParcelGeoData(ctx, 34.989, 32.794, 10000, 7, true)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 10000, geo.ParcelID.Gush)
	assert.Equal(t, 1011.0, geo.PlotArea)
	assert.Equal(t, "הדר", geo.Neighborhood)
	assert.Equal(t, 1, hits)

	geo2, cached2, err := gds.GetParcelGeoData(ctx, 34.989, 32.794, 10000, 7, true)
	require.NoError(t, err)
	assert.True(t, cached2)
	assert.Equal(t, geo.ParcelID, geo2.ParcelID)
	assert.Equal(t, 1, hits, "second lookup must be served from cache")
}

func TestGeodataService_BypassCacheStillRefreshes(t *testing.T) {
	hits := 0
	server := stubGovMapServer(t, &hits)
	defer server.Close()

	govmap := external.NewGovMapClient(server.URL, 2*time.Second, zap.NewNop())
	cache := NewCacheService(time.Minute)
	gds := NewGeodataService(cache, govmap, zap.NewNop())

	ctx := context.Background()

	_, _, err := gds.GetParcelGeoData(ctx, 34.989, 32.794, 10000, 7, false)
	require.NoError(t, err)
	assert.Equal(t, 1, hits)

	// The bypassed fetch still populated the cache for later callers.
	cachedGeo, found, err := cache.Get(ctx, GeodataCacheKey(10000, 7))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 10000, cachedGeo.ParcelID.Gush)
}

func TestGeodataService_UnknownGushSkipsCacheLookup(t *testing.T) {
	hits := 0
	server := stubGovMapServer(t, &hits)
	defer server.Close()

	govmap := external.NewGovMapClient(server.URL, 2*time.Second, zap.NewNop())
	cache := NewCacheService(time.Minute)
	gds := NewGeodataService(cache, govmap, zap.NewNop())

	geo, cached, err := gds.GetParcelGeoData(context.Background(), 34.989, 32.794, 0, 0, true)
	require.NoError(t, err)
	assert.False(t, cached)
	// The gateway resolved the parcel, so the result is cached under the
	// resolved key.
	assert.Equal(t, 10000, geo.ParcelID.Gush)
	_, found, _ := cache.Get(context.Background(), GeodataCacheKey(10000, 7))
	assert.True(t, found)
}

func TestGeodataService_InvalidateForcesRefetch(t *testing.T) {
	hits := 0
	server := stubGovMapServer(t, &hits)
	defer server.Close()

	govmap := external.NewGovMapClient(server.URL, 2*time.Second, zap.NewNop())
	cache := NewCacheService(time.Minute)
	gds := NewGeodataService(cache, govmap, zap.NewNop())

	ctx := context.Background()

	_, _, err := gds.GetParcelGeoData(ctx, 34.989, 32.794, 10000, 7, true)
	require.NoError(t, err)

	require.NoError(t, gds.InvalidateParcel(ctx, 10000, 7))

	_, cached, err := gds.GetParcelGeoData(ctx, 34.989, 32.794, 10000, 7, true)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 2, hits)
}

func TestGovMapClient_RejectsNonFiniteCoordinates(t *testing.T) {
	govmap := external.NewGovMapClient("http://localhost:1", time.Second, zap.NewNop())

	_, err := govmap.Enrich(context.Background(), math.NaN(), 32.794, 0, 0)
	assert.Error(t, err)

	_, err = govmap.Enrich(context.Background(), 34.989, math.Inf(1), 0, 0)
	assert.Error(t, err)
}
