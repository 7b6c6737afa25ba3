package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Shopify
	ShopDomain          string
	ShopifyClientID     string
	ShopifyClientSecret string
	ShopifyAPIVersion   string

	// Webhook
	WebhookSecret string

	// API Configuration
	APIPort string
	APIHost string

	// Database
	DatabaseURL string

	// Kafka
	KafkaBrokers string

	// Environment
	Env      string
	LogLevel string
}

func Load() (*Config, error) {
	// Load .env file
	godotenv.Load()

	cfg := &Config{
		ShopDomain:          getEnv("SHOPIFY_DOMAIN", ""),
		ShopifyClientID:     getEnv("SHOPIFY_CLIENT_ID", ""),
		ShopifyClientSecret: getEnv("SHOPIFY_CLIENT_SECRET", ""),
		ShopifyAPIVersion:   getEnv("SHOPIFY_API_VERSION", "2025-01"),
		WebhookSecret:       getEnv("WEBHOOK_SECRET", ""),
		APIPort:             getEnv("API_PORT", "8080"),
		APIHost:             getEnv("API_HOST", "0.0.0.0"),
		DatabaseURL:         getEnv("DATABASE_URL", "sqlite://airsync.db"),
		KafkaBrokers:        getEnv("KAFKA_BROKERS", "localhost:9092"),
		Env:                 getEnv("ENV", "development"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}

	if cfg.ShopDomain == "" {
		return nil, fmt.Errorf("SHOPIFY_DOMAIN is required")
	}
	if cfg.ShopifyClientID == "" {
		return nil, fmt.Errorf("SHOPIFY_CLIENT_ID is required")
	}
	if cfg.ShopifyClientSecret == "" {
		return nil, fmt.Errorf("SHOPIFY_CLIENT_SECRET is required")
	}
	if cfg.WebhookSecret == "" {
		return nil, fmt.Errorf("WEBHOOK_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
