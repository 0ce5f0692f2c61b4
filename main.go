package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
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

func main() {
	// 1. Load configuration
	loadConfig()
	if err := config.Load(viper.GetString("calc.rules_file")); err != nil {
		config.Default()
	}

	// 2. Initialize logger
	logger := initLogger()
	defer logger.Sync()

	logger.Info("Starting Building Rights Calculator",
		zap.String("rules_version", config.C.RulesVersion))

	// 3. Connect to MongoDB
	mongoDB := initMongoDB(logger)
	defer func() {
		if err := mongoDB.Client().Disconnect(context.Background()); err != nil {
			logger.Error("Error disconnecting MongoDB", zap.Error(err))
		}
	}()

	// 4. Initialize Meilisearch gazetteer
	searchConfig := search.SearchConfig{
		Host:          viper.GetString("meilisearch.url"),
		APIKey:        viper.GetString("meilisearch.master_key"),
		IndexName:     "neighborhoods",
		Timeout:       30 * time.Second,
		MaxCandidates: 20,
		JWWeight:      config.C.Fuzzy.JWWeight,
		LevWeight:     config.C.Fuzzy.LevWeight,
		MinScore:      config.C.Fuzzy.MinScore,
	}

	gazetteerSearcher, err := search.NewGazetteerSearcher(searchConfig, logger)
	if err != nil {
		logger.Fatal("Failed to initialize Meilisearch", zap.Error(err))
	}

	// 5. Initialize the GovMap enrichment client
	govmapClient := external.NewGovMapClient(config.C.GovMap.BaseURL, config.GovMapTimeout(), logger)

	// 6. Initialize cache services (Redis L1 + MongoDB L2)
	redisURL := getEnv("REDIS_URL", "redis://localhost:6379")
	redisCache, err := services.NewRedisCacheService(redisURL, logger)
	if err != nil {
		logger.Fatal("Failed to initialize Redis cache", zap.Error(err))
	}

	l1Size := getEnvInt("L1_CACHE_SIZE", 10000)
	mongoCache, err := services.NewMongoCacheService(mongoDB, l1Size, logger)
	if err != nil {
		logger.Fatal("Failed to initialize MongoDB cache", zap.Error(err))
	}

	cacheService := services.NewHybridCacheService(redisCache, mongoCache, logger)

	// 7. Warm up cache from MongoDB
	if err := cacheService.WarmUpFromMongo(context.Background(), l1Size/2); err != nil {
		logger.Warn("Failed to warm up cache", zap.Error(err))
	}

	// 8. Initialize services
	geodataService := services.NewGeodataService(cacheService, govmapClient, logger)
	calcService := services.NewCalcService(geodataService, mongoDB, logger)
	adminService := services.NewAdminService(mongoDB, gazetteerSearcher, logger)

	// 9. Initialize controllers
	calcController := controllers.NewCalcController(calcService, geodataService, gazetteerSearcher, cacheService, logger)
	adminController := controllers.NewAdminController(adminService, cacheService, logger)

	// 10. Initialize Gin router and routes
	router := gin.New()
	routes.SetupAllRoutes(router, calcController, adminController)

	// 11. Build Meilisearch indexes if needed
	if err := gazetteerSearcher.BuildIndexes(); err != nil {
		logger.Warn("Failed to build Meilisearch indexes", zap.Error(err))
	}

	// 12. Start server
	port := getEnv("APP_PORT", "8080")
	logger.Info("Building Rights Calculator starting", zap.String("port", port))

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// loadConfig reads configuration from file and env vars.
func loadConfig() {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("meilisearch.url", "http://meili:7700")
	viper.SetDefault("meilisearch.master_key", "")
	viper.SetDefault("mongo.url", "mongodb://localhost:27017/rights_calculator")
	viper.SetDefault("cache.l1_size", 10000)
	viper.SetDefault("calc.rules_file", "config/calculator.yaml")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Cannot read config file: %v", err)
	}
}

// initLogger builds the structured logger for the current environment.
func initLogger() *zap.Logger {
	env := getEnv("APP_ENV", "development")

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}
	return logger
}

// initMongoDB opens the MongoDB connection and verifies it.
func initMongoDB(logger *zap.Logger) *mongo.Database {
	mongoURL := getEnv("MONGO_URL", "mongodb://localhost:27017/rights_calculator")

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURL))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}

	dbName := "rights_calculator"
	clientOpts := options.Client().ApplyURI(mongoURL)
	if clientOpts.Auth != nil && clientOpts.Auth.AuthSource != "" {
		dbName = clientOpts.Auth.AuthSource
	}

	db := client.Database(dbName)
	logger.Info("Connected to MongoDB", zap.String("database", dbName))
	return db
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
