package main

import (
	"log"

	"airsync/internal/api"
	"airsync/internal/config"
	"airsync/internal/database"
	"airsync/internal/events"
	"airsync/internal/logger"
	"airsync/internal/relay"
	"airsync/internal/services/shopify"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}

	// Shopify client and sync pipeline
	client := shopify.NewClient(cfg, logger)
	syncer := relay.New(client, logger)

	// Audit event publisher
	publisher := events.NewPublisher(cfg.KafkaBrokers, logger)
	defer publisher.Close()

	// Initialize API server
	server := api.New(cfg, logger, db, syncer, publisher)

	// Start server
	logger.Info("Starting API server on port " + cfg.APIPort)
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
