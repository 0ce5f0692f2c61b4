package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/rights-calculator/app/models"
	"github.com/rights-calculator/internal/external"
)

// GeodataService resolves parcel attributes, consulting the cache before the
// GovMap gateway.
type GeodataService struct {
	cache  ICacheService
	govmap *external.GovMapClient
	logger *zap.Logger
}

// NewGeodataService creates a GeodataService.
func NewGeodataService(cache ICacheService, govmap *external.GovMapClient, logger *zap.Logger) *GeodataService {
	return &GeodataService{
		cache:  cache,
		govmap: govmap,
		logger: logger,
	}
}

// GetParcelGeoData returns the enriched attributes for a parcel. The second
// return value reports whether the cache served the request. useCache=false
// always hits the gateway but still refreshes the cache with the result.
func (gds *GeodataService) GetParcelGeoData(ctx context.Context, longitude, latitude float64, gush, helka int, useCache bool) (*models.ParcelGeoData, bool, error) {
	key := GeodataCacheKey(gush, helka)

	if useCache && gush > 0 {
		if geo, found, err := gds.cache.Get(ctx, key); err == nil && found {
			return geo, true, nil
		}
	}

	geo, err := gds.govmap.Enrich(ctx, longitude, latitude, gush, helka)
	if err != nil {
		return nil, false, err
	}

	if geo.ParcelID.Gush > 0 {
		cacheKey := GeodataCacheKey(geo.ParcelID.Gush, geo.ParcelID.Helka)
		if err := gds.cache.Set(ctx, cacheKey, geo); err != nil {
			gds.logger.Warn("caching geodata failed", zap.Error(err), zap.String("key", cacheKey))
		}
	}

	return geo, false, nil
}

// InvalidateParcel drops one parcel from the cache, forcing re-enrichment.
func (gds *GeodataService) InvalidateParcel(ctx context.Context, gush, helka int) error {
	return gds.cache.Delete(ctx, GeodataCacheKey(gush, helka))
}
