package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rayburnranger/backend/internal/app"
	"github.com/rayburnranger/backend/internal/cache"
	"github.com/rayburnranger/backend/internal/clients/arcgis"
	"github.com/rayburnranger/backend/internal/clients/youtube"
	"github.com/rayburnranger/backend/internal/db"
	"github.com/rayburnranger/backend/internal/handlers"
	"github.com/rayburnranger/backend/internal/logger"
	"github.com/rayburnranger/backend/internal/repos"
	"github.com/rayburnranger/backend/internal/server"
	"github.com/rayburnranger/backend/internal/services"
	"github.com/rayburnranger/backend/internal/taxonomy"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Config
	cfg := app.LoadConfig(log)

	// Taxonomy
	registry, err := taxonomy.Load()
	if err != nil {
		log.Fatal("Could not load bait taxonomy", "error", err)
	}

	// Store
	sqliteService, err := db.NewSQLiteService(cfg.DBPath, log)
	if err != nil {
		log.Fatal("Could not open sqlite store", "error", err)
	}
	if err := sqliteService.AutoMigrateAll(); err != nil {
		log.Fatal("Sqlite auto migration failed", "error", err)
	}
	theDB := sqliteService.DB()

	// Repos
	log.Info("Setting up repos...")
	videoRepo := repos.NewVideoRepo(theDB, log)
	baitRepo := repos.NewBaitRepo(theDB, log)
	baitHitRepo := repos.NewBaitHitRepo(theDB, log)
	categoryRepo := repos.NewCategoryRepo(theDB, log)
	rampRepo := repos.NewRampRepo(theDB, log)

	if err := categoryRepo.Seed(context.Background(), nil, registry); err != nil {
		log.Fatal("Could not seed bait categories", "error", err)
	}

	// Clients + cache
	responseCache, err := cache.New(cfg.CacheDir)
	if err != nil {
		log.Fatal("Could not init response cache", "error", err)
	}
	ytClient := youtube.NewClient(cfg.YouTubeAPIKey, log)
	arcgisClient, err := arcgis.NewClient(cfg.RampsLayerURL, log)
	if err != nil {
		// Ramps endpoints report this per request; everything else works.
		log.Warn("ArcGIS client unavailable", "error", err)
		arcgisClient = nil
	}

	// Services
	log.Info("Setting up services...")
	baitService := services.NewBaitService(theDB, log, registry, videoRepo, baitRepo, baitHitRepo)
	intelService := services.NewIntelService(log, ytClient, responseCache)
	rampService := services.NewRampService(theDB, log, arcgisClient, rampRepo)

	// Handlers
	baitHandler := handlers.NewBaitHandler(log, baitService)
	intelHandler := handlers.NewIntelHandler(log, intelService)
	rampHandler := handlers.NewRampHandler(log, rampService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		CORSOrigins:  cfg.CORSOrigins,
		BaitHandler:  baitHandler,
		IntelHandler: intelHandler,
		RampHandler:  rampHandler,
	})

	log.Info("Server listening", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
