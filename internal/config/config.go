// Package config handles loading of application settings
// from environment variables.
package config

import (
	"errors"
	"os"
)

// Config holds all configuration for the connector,
// typically loaded from environment variables.
type Config struct {
	APIKey         string
	BaseURL        string
	MongoURI       string
	MongoDatabase  string
	LogFile        string
	PushgatewayURL string
}

// Defaults applied when the corresponding variable is unset.
const (
	DefaultBaseURL       = "https://api.greynoise.io"
	DefaultMongoURI      = "mongodb://localhost:27017/"
	DefaultMongoDatabase = "greynoise_db"
)

// LoadConfig loads application settings from environment variables
// (which should be populated by the .env file in main.go).
func LoadConfig() (*Config, error) {
	apiKey := os.Getenv("GREYNOISE_API_KEY")
	if apiKey == "" {
		return nil, errors.New("GREYNOISE_API_KEY environment variable not set")
	}

	return &Config{
		APIKey:         apiKey,
		BaseURL:        getEnv("GREYNOISE_BASE_URL", DefaultBaseURL),
		MongoURI:       getEnv("MONGODB_URI", DefaultMongoURI),
		MongoDatabase:  getEnv("MONGODB_DATABASE", DefaultMongoDatabase),
		LogFile:        os.Getenv("ETL_LOG_FILE"),
		PushgatewayURL: os.Getenv("METRICS_PUSHGATEWAY_URL"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
