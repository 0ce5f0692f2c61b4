package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rights-calculator/app/models"
)

// HybridCacheService layers Redis (L1, fast) over MongoDB (L2, persistent).
// A Redis failure degrades to Mongo-only operation rather than erroring.
type HybridCacheService struct {
	redisCache *RedisCacheService
	mongoCache *MongoCacheService
	logger     *zap.Logger
}

// NewHybridCacheService combines the two cache layers.
func NewHybridCacheService(redisCache *RedisCacheService, mongoCache *MongoCacheService, logger *zap.Logger) *HybridCacheService {
	return &HybridCacheService{
		redisCache: redisCache,
		mongoCache: mongoCache,
		logger:     logger,
	}
}

// Get tries Redis first, then MongoDB; a Mongo hit is synced back to Redis
// in the background.
func (hcs *HybridCacheService) Get(ctx context.Context, key string) (*models.ParcelGeoData, bool, error) {
	geo, found, err := hcs.redisCache.Get(ctx, key)
	if err != nil {
		hcs.logger.Warn("redis error, falling back to mongo", zap.Error(err))
	} else if found {
		return geo, true, nil
	}

	geo, found, err = hcs.mongoCache.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := hcs.redisCache.Set(bgCtx, key, geo); err != nil {
			hcs.logger.Warn("mongo->redis sync failed", zap.Error(err), zap.String("key", key))
		}
	}()

	hcs.logger.Debug("L2 cache hit (mongo)", zap.String("key", key))
	return geo, true, nil
}

// Set writes to both layers in parallel.
func (hcs *HybridCacheService) Set(ctx context.Context, key string, geo *models.ParcelGeoData) error {
	return hcs.both(func() error {
		return hcs.redisCache.Set(ctx, key, geo)
	}, func() error {
		return hcs.mongoCache.Set(ctx, key, geo)
	})
}

// Delete removes the key from both layers.
func (hcs *HybridCacheService) Delete(ctx context.Context, key string) error {
	return hcs.both(func() error {
		return hcs.redisCache.Delete(ctx, key)
	}, func() error {
		return hcs.mongoCache.Delete(ctx, key)
	})
}

// Clear clears both layers.
func (hcs *HybridCacheService) Clear(ctx context.Context) error {
	err := hcs.both(func() error {
		return hcs.redisCache.Clear(ctx)
	}, func() error {
		return hcs.mongoCache.Clear(ctx)
	})
	if err == nil {
		hcs.logger.Info("cleared hybrid cache (redis + mongo)")
	}
	return err
}

// InvalidateByRulesVersion invalidates both layers.
func (hcs *HybridCacheService) InvalidateByRulesVersion(ctx context.Context, rulesVersion string) error {
	err := hcs.both(func() error {
		return hcs.redisCache.InvalidateByRulesVersion(ctx, rulesVersion)
	}, func() error {
		return hcs.mongoCache.InvalidateByRulesVersion(ctx, rulesVersion)
	})
	if err == nil {
		hcs.logger.Info("invalidated hybrid cache", zap.String("rules_version", rulesVersion))
	}
	return err
}

// GetStats combines the figures from both layers; one failing layer is
// tolerated.
func (hcs *HybridCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	redisStats, redisErr := hcs.redisCache.GetStats(ctx)
	mongoStats, mongoErr := hcs.mongoCache.GetStats(ctx)

	if redisErr != nil && mongoErr != nil {
		return nil, fmt.Errorf("both cache layers failed: %v, %v", redisErr, mongoErr)
	}

	combined := &CacheStats{}
	switch {
	case redisErr == nil && mongoErr == nil:
		totalHits := redisStats.TotalHits + mongoStats.TotalHits
		totalMiss := redisStats.TotalMiss + mongoStats.TotalMiss
		if total := totalHits + totalMiss; total > 0 {
			combined.HitRate = float64(totalHits) / float64(total)
		}
		combined.TotalHits = totalHits
		combined.TotalMiss = totalMiss
		combined.TotalItems = redisStats.TotalItems + mongoStats.TotalItems
	case redisErr == nil:
		*combined = *redisStats
	default:
		*combined = *mongoStats
	}

	return combined, nil
}

// Exists checks Redis first, then MongoDB.
func (hcs *HybridCacheService) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := hcs.redisCache.Exists(ctx, key)
	if err != nil {
		hcs.logger.Warn("redis exists check failed, falling back to mongo", zap.Error(err))
	} else if exists {
		return true, nil
	}

	return hcs.mongoCache.Exists(ctx, key)
}

// GetTTL reports the Redis TTL; the persistent layer has none.
func (hcs *HybridCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return hcs.redisCache.GetTTL(ctx, key)
}

// Close closes both layers.
func (hcs *HybridCacheService) Close() error {
	return hcs.both(hcs.redisCache.Close, hcs.mongoCache.Close)
}

// WarmUpFromMongo preloads the in-process LRU from the persistent layer.
func (hcs *HybridCacheService) WarmUpFromMongo(ctx context.Context, limit int) error {
	return hcs.mongoCache.WarmUp(ctx, limit)
}

// both runs two operations in parallel and joins their errors.
func (hcs *HybridCacheService) both(first, second func() error) error {
	errCh := make(chan error, 2)

	go func() { errCh <- first() }()
	go func() { errCh <- second() }()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("cache errors: %v", errs)
	}
	return nil
}
