package services

import (
	"context"
	"time"

	"github.com/rights-calculator/app/models"
)

// CacheStats summarizes cache effectiveness.
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// ICacheService is the parcel-geodata cache contract. Keys are the
// "gush:helka" pair rendered by GeodataCacheKey.
type ICacheService interface {
	// Get fetches a parcel's geodata from the cache
	Get(ctx context.Context, key string) (*models.ParcelGeoData, bool, error)

	// Set stores a parcel's geodata
	Set(ctx context.Context, key string, geo *models.ParcelGeoData) error

	// Delete removes one parcel from the cache
	Delete(ctx context.Context, key string) error

	// Clear removes everything
	Clear(ctx context.Context) error

	// InvalidateByRulesVersion drops entries written under other rule-table
	// versions
	InvalidateByRulesVersion(ctx context.Context, rulesVersion string) error

	// GetStats reports cache effectiveness
	GetStats(ctx context.Context) (*CacheStats, error)

	// Exists reports whether a key is cached
	Exists(ctx context.Context, key string) (bool, error)

	// GetTTL reports the remaining TTL of a key
	GetTTL(ctx context.Context, key string) (time.Duration, error)

	// Close releases the backing connection, if any
	Close() error
}
