package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rights-calculator/app/models"
)

// RedisCacheService is the fast L1 geodata cache. Parcel attributes change
// rarely, so the default TTL is generous.
type RedisCacheService struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedisCacheService connects to Redis and verifies the connection.
func NewRedisCacheService(redisURL string, logger *zap.Logger) (*RedisCacheService, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err = client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &RedisCacheService{
		client: client,
		logger: logger,
		prefix: "rights_calc:",
		ttl:    7 * 24 * time.Hour,
	}, nil
}

// Get fetches a parcel's geodata from Redis.
func (rcs *RedisCacheService) Get(ctx context.Context, key string) (*models.ParcelGeoData, bool, error) {
	cacheKey := rcs.prefix + key

	val, err := rcs.client.Get(ctx, cacheKey).Result()
	if err == redis.Nil {
		rcs.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		rcs.logger.Error("redis get failed", zap.Error(err), zap.String("key", cacheKey))
		return nil, false, err
	}

	var geo models.ParcelGeoData
	if err := json.Unmarshal([]byte(val), &geo); err != nil {
		rcs.logger.Error("unmarshal cached geodata failed", zap.Error(err))
		return nil, false, err
	}

	rcs.hits.Add(1)
	rcs.logger.Debug("redis cache hit", zap.String("key", key))
	return &geo, true, nil
}

// Set stores a parcel's geodata with the service TTL.
func (rcs *RedisCacheService) Set(ctx context.Context, key string, geo *models.ParcelGeoData) error {
	cacheKey := rcs.prefix + key

	data, err := json.Marshal(geo)
	if err != nil {
		return fmt.Errorf("marshal geodata: %w", err)
	}

	if err := rcs.client.Set(ctx, cacheKey, data, rcs.ttl).Err(); err != nil {
		rcs.logger.Error("redis set failed", zap.Error(err), zap.String("key", cacheKey))
		return err
	}

	rcs.logger.Debug("stored in redis cache", zap.String("key", key))
	return nil
}

// Delete removes a key from the cache.
func (rcs *RedisCacheService) Delete(ctx context.Context, key string) error {
	cacheKey := rcs.prefix + key

	if err := rcs.client.Del(ctx, cacheKey).Err(); err != nil {
		rcs.logger.Error("redis delete failed", zap.Error(err), zap.String("key", cacheKey))
		return err
	}
	return nil
}

// Clear removes every key under the service prefix.
func (rcs *RedisCacheService) Clear(ctx context.Context) error {
	keys, err := rcs.client.Keys(ctx, rcs.prefix+"*").Result()
	if err != nil {
		return fmt.Errorf("listing redis keys: %w", err)
	}

	if len(keys) > 0 {
		if err := rcs.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("deleting redis keys: %w", err)
		}
	}

	rcs.logger.Info("cleared redis cache", zap.Int("keys_deleted", len(keys)))
	return nil
}

// InvalidateByRulesVersion drops everything: Redis keys do not carry the
// rules version, so version invalidation degrades to a full clear.
func (rcs *RedisCacheService) InvalidateByRulesVersion(ctx context.Context, rulesVersion string) error {
	return rcs.Clear(ctx)
}

// GetStats reports hit-rate figures and the current key count.
func (rcs *RedisCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits := rcs.hits.Load()
	misses := rcs.misses.Load()
	total := hits + misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	keys, err := rcs.client.Keys(ctx, rcs.prefix+"*").Result()
	totalItems := int64(0)
	if err == nil {
		totalItems = int64(len(keys))
	}

	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: totalItems,
	}, nil
}

// Exists reports whether a key is cached.
func (rcs *RedisCacheService) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := rcs.client.Exists(ctx, rcs.prefix+key).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// GetTTL reports the remaining TTL of a key.
func (rcs *RedisCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return rcs.client.TTL(ctx, rcs.prefix+key).Result()
}

// Close closes the Redis connection.
func (rcs *RedisCacheService) Close() error {
	return rcs.client.Close()
}

// SetTTL overrides the service TTL.
func (rcs *RedisCacheService) SetTTL(ttl time.Duration) {
	rcs.ttl = ttl
}
