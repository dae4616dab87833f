package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"go-cloud-drive/internal/api"
	"go-cloud-drive/internal/api/handlers"
	"go-cloud-drive/internal/config"
	"go-cloud-drive/internal/database"
	"go-cloud-drive/internal/drive"
	"go-cloud-drive/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Database
	if err := database.Initialize(cfg); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Initialize Storage
	store, err := storage.New(&cfg.Storage)
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}

	registry := drive.NewRegistry(drive.NewGormGateway(database.GetDB()), store)
	handlers.Init(cfg, registry, store)

	// Initialize Router and Routes
	router := gin.Default()
	api.SetupRoutes(router, cfg)

	// Start Server
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
