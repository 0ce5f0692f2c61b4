package services

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/rights-calculator/app/config"
	"github.com/rights-calculator/app/models"
)

// MongoCacheService is the persistent L2 geodata cache with an in-process
// LRU in front of it.
type MongoCacheService struct {
	db         *mongo.Database
	collection *mongo.Collection
	l1Cache    *lru.Cache[string, *models.ParcelGeoData]
	logger     *zap.Logger

	totalHits int64
	totalMiss int64
	l1Hits    int64
	l1Miss    int64
	mongoHits int64
	mongoMiss int64
}

// NewMongoCacheService prepares the cache collection and its indexes.
func NewMongoCacheService(db *mongo.Database, l1Size int, logger *zap.Logger) (*MongoCacheService, error) {
	l1Cache, err := lru.New[string, *models.ParcelGeoData](l1Size)
	if err != nil {
		return nil, fmt.Errorf("creating LRU cache: %w", err)
	}

	collection := db.Collection("parcel_geodata")

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "fingerprint", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{bson.E{Key: "gush", Value: 1}, bson.E{Key: "helka", Value: 1}},
		},
		{
			Keys: bson.D{bson.E{Key: "rules_version", Value: 1}},
		},
		{
			Keys: bson.D{bson.E{Key: "last_accessed", Value: 1}},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err = collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.Warn("could not create parcel_geodata indexes", zap.Error(err))
	}

	return &MongoCacheService{
		db:         db,
		collection: collection,
		l1Cache:    l1Cache,
		logger:     logger,
	}, nil
}

// Get fetches a parcel's geodata, trying the in-process LRU first.
func (mcs *MongoCacheService) Get(ctx context.Context, key string) (*models.ParcelGeoData, bool, error) {
	if geo, found := mcs.l1Cache.Get(key); found {
		mcs.l1Hits++
		mcs.totalHits++
		mcs.logger.Debug("L1 cache hit", zap.String("key", key))
		return geo, true, nil
	}
	mcs.l1Miss++

	fingerprint := mcs.generateFingerprint(key)

	var entry models.ParcelCache
	err := mcs.collection.FindOne(ctx, bson.M{"fingerprint": fingerprint}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			mcs.mongoMiss++
			mcs.totalMiss++
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("querying geodata cache: %w", err)
	}

	mcs.mongoHits++
	mcs.totalHits++

	go mcs.updateAccessStats(entry.ID)

	mcs.l1Cache.Add(key, &entry.GeoData)

	mcs.logger.Debug("mongo cache hit",
		zap.String("key", key),
		zap.String("fingerprint", fingerprint))

	return &entry.GeoData, true, nil
}

// Set stores a parcel's geodata in both layers.
func (mcs *MongoCacheService) Set(ctx context.Context, key string, geo *models.ParcelGeoData) error {
	mcs.l1Cache.Add(key, geo)

	fingerprint := mcs.generateFingerprint(key)

	entry := models.ParcelCache{
		Fingerprint:  fingerprint,
		Gush:         geo.ParcelID.Gush,
		Helka:        geo.ParcelID.Helka,
		GeoData:      *geo,
		RulesVersion: config.C.RulesVersion,
		CreatedAt:    time.Now(),
		LastAccessed: time.Now(),
		AccessCount:  1,
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := mcs.collection.ReplaceOne(ctx, bson.M{"fingerprint": fingerprint}, entry, opts); err != nil {
		mcs.logger.Error("storing geodata cache entry failed",
			zap.Error(err),
			zap.String("fingerprint", fingerprint))
		return fmt.Errorf("storing geodata cache entry: %w", err)
	}

	mcs.logger.Debug("stored geodata cache entry",
		zap.String("key", key),
		zap.Int("gush", geo.ParcelID.Gush),
		zap.Int("helka", geo.ParcelID.Helka))

	return nil
}

// Delete removes one parcel from both layers.
func (mcs *MongoCacheService) Delete(ctx context.Context, key string) error {
	mcs.l1Cache.Remove(key)

	fingerprint := mcs.generateFingerprint(key)
	if _, err := mcs.collection.DeleteOne(ctx, bson.M{"fingerprint": fingerprint}); err != nil {
		return fmt.Errorf("deleting geodata cache entry: %w", err)
	}
	return nil
}

// Clear removes everything and resets the counters.
func (mcs *MongoCacheService) Clear(ctx context.Context) error {
	mcs.l1Cache.Purge()

	if _, err := mcs.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clearing geodata cache: %w", err)
	}

	mcs.totalHits = 0
	mcs.totalMiss = 0
	mcs.l1Hits = 0
	mcs.l1Miss = 0
	mcs.mongoHits = 0
	mcs.mongoMiss = 0

	return nil
}

// InvalidateByRulesVersion drops entries written under other rule-table
// versions. The LRU is purged wholesale.
func (mcs *MongoCacheService) InvalidateByRulesVersion(ctx context.Context, rulesVersion string) error {
	mcs.l1Cache.Purge()

	filter := bson.M{"rules_version": bson.M{"$ne": rulesVersion}}
	result, err := mcs.collection.DeleteMany(ctx, filter)
	if err != nil {
		return fmt.Errorf("invalidating by rules version: %w", err)
	}

	mcs.logger.Info("invalidated geodata cache",
		zap.String("rules_version", rulesVersion),
		zap.Int64("deleted_count", result.DeletedCount))

	return nil
}

// GetStats reports combined L1 + Mongo figures.
func (mcs *MongoCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	mongoCount, err := mcs.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("counting geodata cache documents: %w", err)
	}

	total := mcs.totalHits + mcs.totalMiss
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(mcs.totalHits) / float64(total)
	}

	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  mcs.totalHits,
		TotalMiss:  mcs.totalMiss,
		TotalItems: mongoCount,
	}, nil
}

// Exists reports whether a key is cached in either layer.
func (mcs *MongoCacheService) Exists(ctx context.Context, key string) (bool, error) {
	if mcs.l1Cache.Contains(key) {
		return true, nil
	}

	fingerprint := mcs.generateFingerprint(key)
	count, err := mcs.collection.CountDocuments(ctx, bson.M{"fingerprint": fingerprint})
	if err != nil {
		return false, fmt.Errorf("checking geodata cache existence: %w", err)
	}
	return count > 0, nil
}

// GetTTL always reports zero: the persistent cache has no expiry.
func (mcs *MongoCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return 0, nil
}

// Close is a no-op; the Mongo connection belongs to the caller.
func (mcs *MongoCacheService) Close() error {
	return nil
}

func (mcs *MongoCacheService) generateFingerprint(key string) string {
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("sha256:%x", hash)
}

func (mcs *MongoCacheService) updateAccessStats(id primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{"last_accessed": time.Now()},
		"$inc": bson.M{"access_count": 1},
	}
	if _, err := mcs.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		mcs.logger.Warn("updating access stats failed", zap.Error(err))
	}
}

// WarmUp preloads the most-accessed parcels into the LRU.
func (mcs *MongoCacheService) WarmUp(ctx context.Context, limit int) error {
	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "access_count", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := mcs.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("warming up geodata cache: %w", err)
	}
	defer cursor.Close(ctx)

	count := 0
	for cursor.Next(ctx) {
		var entry models.ParcelCache
		if err := cursor.Decode(&entry); err != nil {
			mcs.logger.Warn("decoding cache entry during warm up failed", zap.Error(err))
			continue
		}

		mcs.l1Cache.Add(GeodataCacheKey(entry.Gush, entry.Helka), &entry.GeoData)
		count++
	}

	mcs.logger.Info("geodata cache warm up complete",
		zap.Int("loaded_items", count),
		zap.Int("l1_size", mcs.l1Cache.Len()))

	return nil
}

// GeodataCacheKey renders the canonical cache key for a parcel.
func GeodataCacheKey(gush, helka int) string {
	return fmt.Sprintf("%d:%d", gush, helka)
}
