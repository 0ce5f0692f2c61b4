package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rights-calculator/app/models"
)

// CacheService is a plain in-memory TTL cache. Used in tests and for
// single-node deployments without Redis/Mongo.
type CacheService struct {
	cache      map[string]*models.ParcelGeoData
	timestamps map[string]time.Time
	mu         sync.RWMutex
	ttl        time.Duration

	// Counters are atomics: Get runs under the read lock, so plain
	// increments would race.
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCacheService creates an in-memory cache with the given TTL.
func NewCacheService(ttl time.Duration) *CacheService {
	return &CacheService{
		cache:      make(map[string]*models.ParcelGeoData),
		timestamps: make(map[string]time.Time),
		ttl:        ttl,
	}
}

// Get fetches a parcel's geodata if present and unexpired.
func (cs *CacheService) Get(ctx context.Context, key string) (*models.ParcelGeoData, bool, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	if geo, exists := cs.cache[key]; exists {
		if cs.isExpired(key) {
			go cs.deleteExpired(key)
			cs.misses.Add(1)
			return nil, false, nil
		}
		cs.hits.Add(1)
		return geo, true, nil
	}

	cs.misses.Add(1)
	return nil, false, nil
}

// Set stores a parcel's geodata.
func (cs *CacheService) Set(ctx context.Context, key string, geo *models.ParcelGeoData) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.timestamps[key] = time.Now()
	cs.cache[key] = geo
	return nil
}

// Delete removes one entry.
func (cs *CacheService) Delete(ctx context.Context, key string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	delete(cs.cache, key)
	delete(cs.timestamps, key)
	return nil
}

// Clear removes everything.
func (cs *CacheService) Clear(ctx context.Context) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.cache = make(map[string]*models.ParcelGeoData)
	cs.timestamps = make(map[string]time.Time)
	return nil
}

// InvalidateByRulesVersion degrades to a full clear: in-memory entries do
// not record the rules version.
func (cs *CacheService) InvalidateByRulesVersion(ctx context.Context, rulesVersion string) error {
	return cs.Clear(ctx)
}

// GetStats reports hit-rate figures and the live item count.
func (cs *CacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	active := int64(0)
	for key := range cs.cache {
		if !cs.isExpired(key) {
			active++
		}
	}

	hits := cs.hits.Load()
	misses := cs.misses.Load()
	total := hits + misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: active,
	}, nil
}

// Exists reports whether a key is present (expired or not).
func (cs *CacheService) Exists(ctx context.Context, key string) (bool, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	_, exists := cs.cache[key]
	return exists, nil
}

// GetTTL reports the remaining TTL of a key.
func (cs *CacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	timestamp, exists := cs.timestamps[key]
	if !exists {
		return 0, nil
	}

	remaining := cs.ttl - time.Since(timestamp)
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

// CleanupExpired removes every expired entry.
func (cs *CacheService) CleanupExpired() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	for key := range cs.cache {
		if cs.isExpired(key) {
			delete(cs.cache, key)
			delete(cs.timestamps, key)
		}
	}
}

// StartCleanupWorker periodically sweeps expired entries.
func (cs *CacheService) StartCleanupWorker(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			cs.CleanupExpired()
		}
	}()
}

// Close is a no-op for the in-memory cache.
func (cs *CacheService) Close() error {
	return nil
}

func (cs *CacheService) isExpired(key string) bool {
	timestamp, exists := cs.timestamps[key]
	if !exists {
		return true
	}
	return time.Since(timestamp) > cs.ttl
}

func (cs *CacheService) deleteExpired(key string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	delete(cs.cache, key)
	delete(cs.timestamps, key)
}
