package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rights-calculator/app/models"
)

func TestCacheService_RoundTripAndStats(t *testing.T) {
	cache := NewCacheService(time.Minute)
	ctx := context.Background()

	geo := &models.ParcelGeoData{
		ParcelID: models.ParcelID{Gush: 10000, Helka: 7},
		PlotArea: 1011,
	}
	require.NoError(t, cache.Set(ctx, GeodataCacheKey(10000, 7), geo))

	got, found, err := cache.Get(ctx, GeodataCacheKey(10000, 7))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1011.0, got.PlotArea)

	_, found, err = cache.Get(ctx, GeodataCacheKey(1, 1))
	require.NoError(t, err)
	assert.False(t, found)

	stats, err := cache.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalHits)
	assert.Equal(t, int64(1), stats.TotalMiss)
	assert.Equal(t, 0.5, stats.HitRate)
}

func TestCacheService_ConcurrentGetsKeepExactCounters(t *testing.T) {
	cache := NewCacheService(time.Minute)
	ctx := context.Background()

	geo := &models.ParcelGeoData{ParcelID: models.ParcelID{Gush: 10000, Helka: 7}}
	require.NoError(t, cache.Set(ctx, GeodataCacheKey(10000, 7), geo))

	const goroutines = 8
	const iterations = 200

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				cache.Get(ctx, GeodataCacheKey(10000, 7)) // hit
				cache.Get(ctx, GeodataCacheKey(2, 2))     // miss
			}
		}()
	}
	wg.Wait()

	stats, err := cache.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(goroutines*iterations), stats.TotalHits)
	assert.Equal(t, int64(goroutines*iterations), stats.TotalMiss)
}

func TestCacheService_ExpiredEntryMisses(t *testing.T) {
	cache := NewCacheService(time.Nanosecond)
	ctx := context.Background()

	geo := &models.ParcelGeoData{ParcelID: models.ParcelID{Gush: 10000, Helka: 7}}
	require.NoError(t, cache.Set(ctx, GeodataCacheKey(10000, 7), geo))

	time.Sleep(time.Millisecond)

	_, found, err := cache.Get(ctx, GeodataCacheKey(10000, 7))
	require.NoError(t, err)
	assert.False(t, found)
}
