package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/furnikart/FurniBargain/bargain"
	"github.com/furnikart/FurniBargain/config"
	"github.com/furnikart/FurniBargain/controllers"
	"github.com/furnikart/FurniBargain/repository"
	"github.com/furnikart/FurniBargain/routes"
	"github.com/furnikart/FurniBargain/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Optional Redis for the contribute throttle
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	// Wire the bargain service over the Postgres stores
	service := bargain.NewService(bargain.ServiceConfig{
		Activities:       repository.NewActivityRepository(config.DB),
		Ledger:           repository.NewContributionRepository(config.DB),
		Catalog:          repository.NewCatalogRepository(config.DB),
		Policy:           bargain.NewRangePolicy(cfg.CutMin, cfg.CutMax, nil),
		ActivityDuration: cfg.ActivityDuration,
	})
	controllers.InitBargain(service)

	// Background expiry sweeper
	sweeper := bargain.NewSweeper(service, cfg.SweepInterval)
	go sweeper.Run(context.Background())

	// Set up router
	router := routes.SetupRouter(routes.RouterDeps{
		Redis:            redisClient,
		ContributeLimit:  cfg.ContributeLimit,
		ContributeWindow: cfg.ContributeWindow,
	})

	// Add middleware
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	utils.LogInfo("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
