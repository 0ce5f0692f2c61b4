package services

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/rights-calculator/internal/search"
)

// AdminService handles maintenance operations: gazetteer seeding, index
// rebuilds, stats, and data export.
type AdminService struct {
	db       *mongo.Database
	searcher *search.GazetteerSearcher
	logger   *zap.Logger
}

func NewAdminService(db *mongo.Database, searcher *search.GazetteerSearcher, logger *zap.Logger) *AdminService {
	return &AdminService{
		db:       db,
		searcher: searcher,
		logger:   logger,
	}
}

// SeedNeighborhoods replaces the neighborhood gazetteer in Mongo and pushes
// the documents into the search index.
func (as *AdminService) SeedNeighborhoods(ctx context.Context, docs []search.NeighborhoodDoc) (int, error) {
	if len(docs) == 0 {
		return 0, fmt.Errorf("no neighborhood documents provided")
	}

	if as.db != nil {
		collection := as.db.Collection("neighborhoods")
		if err := collection.Drop(ctx); err != nil {
			return 0, fmt.Errorf("dropping neighborhoods collection: %w", err)
		}

		records := make([]interface{}, len(docs))
		for i, d := range docs {
			records[i] = d
		}
		if _, err := collection.InsertMany(ctx, records); err != nil {
			return 0, fmt.Errorf("inserting neighborhoods: %w", err)
		}

		indexModel := mongo.IndexModel{
			Keys:    bson.D{bson.E{Key: "district_id", Value: 1}},
			Options: options.Index(),
		}
		if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
			as.logger.Warn("could not index neighborhoods", zap.Error(err))
		}
	}

	if as.searcher != nil {
		if err := as.searcher.SeedData(docs); err != nil {
			return 0, fmt.Errorf("seeding search index: %w", err)
		}
	}

	as.logger.Info("neighborhood gazetteer seeded", zap.Int("count", len(docs)))
	return len(docs), nil
}

// BuildIndexes reconfigures the search index settings.
func (as *AdminService) BuildIndexes() error {
	if as.searcher == nil {
		return fmt.Errorf("search is not configured")
	}
	return as.searcher.BuildIndexes()
}

// SystemStats is a point-in-time snapshot of process and data-store state.
type SystemStats struct {
	Timestamp     time.Time        `json:"timestamp"`
	MemoryUsageMB uint64           `json:"memory_usage_mb"`
	NumGoroutines int              `json:"num_goroutines"`
	NumGC         uint32           `json:"num_gc"`
	Collections   map[string]int64 `json:"collections,omitempty"`
}

// GetSystemStats collects runtime figures and document counts for the
// operational collections.
func (as *AdminService) GetSystemStats(ctx context.Context) (*SystemStats, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := &SystemStats{
		Timestamp:     time.Now(),
		MemoryUsageMB: bToMb(m.Alloc),
		NumGoroutines: runtime.NumGoroutine(),
		NumGC:         m.NumGC,
	}

	if as.db != nil {
		stats.Collections = make(map[string]int64)
		for _, name := range []string{"parcel_geodata", "efes_reports", "neighborhoods"} {
			count, err := as.db.Collection(name).CountDocuments(ctx, bson.M{})
			if err != nil {
				as.logger.Warn("could not count collection", zap.String("collection", name), zap.Error(err))
				continue
			}
			stats.Collections[name] = count
		}
	}

	return stats, nil
}

// ExportData dumps a collection's documents, capped to keep responses
// bounded.
func (as *AdminService) ExportData(ctx context.Context, collectionName string, limit int) ([]bson.M, error) {
	if as.db == nil {
		return nil, fmt.Errorf("database is not configured")
	}

	allowed := map[string]bool{
		"parcel_geodata": true,
		"efes_reports":   true,
		"neighborhoods":  true,
	}
	if !allowed[collectionName] {
		return nil, fmt.Errorf("collection %s cannot be exported", collectionName)
	}

	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	cursor, err := as.db.Collection(collectionName).Find(ctx, bson.M{}, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("exporting %s: %w", collectionName, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding %s export: %w", collectionName, err)
	}
	return docs, nil
}

func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}
