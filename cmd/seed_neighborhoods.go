package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/meilisearch/meilisearch-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rights-calculator/helpers/utils"
	"github.com/rights-calculator/internal/normalizer"
	"github.com/rights-calculator/internal/search"
)

// Seeds the Meilisearch neighborhood index from the MongoDB gazetteer.
// Standalone so ops can re-run it after a rules update without restarting
// the API.
func main() {
	mongoURI := envOr("MONGO_URI", "mongodb://localhost:27017")
	meiliURL := envOr("MEILI_URL", "http://localhost:7700")
	meiliKey := os.Getenv("MEILI_MASTER_KEY")

	mongoClient, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("Cannot connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(context.TODO())

	meiliClient := meilisearch.New(meiliURL, meilisearch.WithAPIKey(meiliKey))

	health, err := meiliClient.Health()
	if err != nil {
		log.Fatal("Cannot connect to Meilisearch:", err)
	}
	fmt.Printf("Meilisearch status: %s\n", health.Status)

	index := meiliClient.Index("neighborhoods")

	fmt.Println("Configuring Meilisearch index settings...")
	settings := &meilisearch.Settings{
		SearchableAttributes: []string{"name", "normalized_name", "search_key", "aliases"},
		FilterableAttributes: []string{"district_id", "quarter", "doc_id"},
		SortableAttributes:   []string{"name"},
		RankingRules: []string{
			"words",
			"typo",
			"proximity",
			"attribute",
			"sort",
			"exactness",
		},
	}

	task, err := index.UpdateSettings(settings)
	if err != nil {
		log.Fatal("Settings update failed:", err)
	}
	waitForTask(meiliClient, task.TaskUID)

	fmt.Println("Fetching gazetteer from MongoDB...")
	collection := mongoClient.Database("rights_calculator").Collection("neighborhoods")

	cursor, err := collection.Find(context.TODO(), bson.M{})
	if err != nil {
		log.Fatal("MongoDB query failed:", err)
	}
	defer cursor.Close(context.TODO())

	norm := normalizer.NewPlaceNameNormalizer()

	var documents []search.NeighborhoodDoc
	batchSize := 1000
	totalProcessed := 0

	fmt.Println("Seeding documents into Meilisearch...")

	for cursor.Next(context.TODO()) {
		var doc search.NeighborhoodDoc
		if err := cursor.Decode(&doc); err != nil {
			fmt.Printf("Decode error: %v\n", err)
			continue
		}

		if doc.Name == "" {
			continue
		}
		if doc.DocID == "" {
			doc.DocID = "nbhd-" + utils.GenerateShortID()
		}
		if doc.NormalizedName == "" {
			doc.NormalizedName = norm.Normalize(doc.Name)
		}
		if doc.SearchKey == "" {
			doc.SearchKey = norm.SearchKey(doc.Name)
		}
		if doc.Aliases == nil {
			doc.Aliases = []string{}
		}

		documents = append(documents, doc)

		if len(documents) >= batchSize {
			if err := insertBatch(index, documents); err != nil {
				log.Printf("Batch insert failed: %v", err)
			} else {
				totalProcessed += len(documents)
				fmt.Printf("Processed %d documents...\n", totalProcessed)
			}
			documents = nil
		}
	}

	if len(documents) > 0 {
		if err := insertBatch(index, documents); err != nil {
			log.Printf("Final batch insert failed: %v", err)
		} else {
			totalProcessed += len(documents)
		}
	}

	if err := cursor.Err(); err != nil {
		log.Fatal("Cursor error:", err)
	}

	fmt.Printf("Done. Seeded %d documents into Meilisearch\n", totalProcessed)

	time.Sleep(2 * time.Second) // wait for indexing
	result, err := index.Search("", &meilisearch.SearchRequest{Limit: 1})
	if err != nil {
		log.Printf("Count check failed: %v", err)
	} else {
		fmt.Printf("Total documents in Meilisearch: %d\n", result.EstimatedTotalHits)
	}
}

func insertBatch(index meilisearch.IndexManager, documents []search.NeighborhoodDoc) error {
	docs := make([]interface{}, len(documents))
	for i, doc := range documents {
		docs[i] = doc
	}

	_, err := index.AddDocuments(docs, "doc_id")
	return err
}

func waitForTask(client meilisearch.ServiceManager, taskUID int64) {
	for {
		taskInfo, err := client.GetTask(taskUID)
		if err != nil {
			log.Fatal("Task status check failed:", err)
		}
		if taskInfo.Status == "succeeded" {
			return
		}
		if taskInfo.Status == "failed" {
			log.Fatal("Task failed:", taskInfo.Error)
		}
		time.Sleep(1 * time.Second)
	}
}

func envOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
