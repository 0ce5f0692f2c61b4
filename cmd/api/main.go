package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/rights-calculator/app/config"
	"github.com/rights-calculator/app/controllers"
	"github.com/rights-calculator/app/services"
	"github.com/rights-calculator/internal/external"
	"github.com/rights-calculator/internal/search"
	"github.com/rights-calculator/routes"
)

// Minimal API entrypoint: MongoDB cache only, no Redis. The root main.go
// is the full deployment.
func main() {
	if err := config.Load("config/calculator.yaml"); err != nil {
		config.Default()
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	logger.Info("Starting Building Rights Calculator...")

	mongoClient, err := initMongoDB(logger)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("Failed to disconnect from MongoDB", zap.Error(err))
		}
	}()
	database := mongoClient.Database("rights_calculator")

	searchConfig := search.SearchConfig{
		Host:          getEnv("MEILI_URL", "http://localhost:7700"),
		APIKey:        os.Getenv("MEILI_MASTER_KEY"),
		IndexName:     "neighborhoods",
		Timeout:       30 * time.Second,
		MaxCandidates: 20,
	}
	searcher, err := search.NewGazetteerSearcher(searchConfig, logger)
	if err != nil {
		logger.Fatal("Failed to create gazetteer searcher", zap.Error(err))
	}

	govmapClient := external.NewGovMapClient(config.C.GovMap.BaseURL, config.GovMapTimeout(), logger)

	cacheService, err := services.NewMongoCacheService(database, 1000, logger)
	if err != nil {
		logger.Fatal("Failed to create cache service", zap.Error(err))
	}

	geodataService := services.NewGeodataService(cacheService, govmapClient, logger)
	calcService := services.NewCalcService(geodataService, database, logger)
	adminService := services.NewAdminService(database, searcher, logger)

	calcController := controllers.NewCalcController(calcService, geodataService, searcher, cacheService, logger)
	adminController := controllers.NewAdminController(adminService, cacheService, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	routes.SetupAllRoutes(router, calcController, adminController)

	port := getEnv("PORT", "8080")
	go func() {
		logger.Info("Starting HTTP server", zap.String("port", port))
		if err := router.Run(":" + port); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	logger.Info("Server exited")
}

func initMongoDB(logger *zap.Logger) (*mongo.Client, error) {
	mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017")

	logger.Info("Connecting to MongoDB", zap.String("uri", mongoURI))

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	logger.Info("Successfully connected to MongoDB")
	return client, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
