package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration
type Config struct {
	BaseURL        string `env:"BASE_URL" envDefault:"https://service.upstox.com/option-analytics-tool/open/v1/strategy-chains"`
	AssetKey       string `env:"ASSET_KEY" envDefault:"NSE_INDEX|Nifty 50"`
	ExpiryDate     string `env:"EXPIRY_DATE" envDefault:"10-04-2025"` // DD-MM-YYYY
	RequestTimeout int    `env:"REQUEST_TIMEOUT" envDefault:"10"`     // seconds
	MaxRetries     int    `env:"MAX_RETRIES" envDefault:"0"`          // 0 = single attempt
	RequestsPerSec int    `env:"REQUESTS_PER_SEC" envDefault:"5"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	DebugDumpFile  string `env:"DEBUG_DUMP_FILE" envDefault:""` // empty = no dump
	ChartFile      string `env:"CHART_FILE" envDefault:"option_chain.html"`
	TopN           int    `env:"TOP_N" envDefault:"5"`
	HTTPAddr       string `env:"HTTP_ADDR" envDefault:":8081"`
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	cfg.BaseURL = getEnvWithDefault("BASE_URL", "https://service.upstox.com/option-analytics-tool/open/v1/strategy-chains")
	cfg.AssetKey = getEnvWithDefault("ASSET_KEY", "NSE_INDEX|Nifty 50")
	cfg.ExpiryDate = getEnvWithDefault("EXPIRY_DATE", "10-04-2025")
	cfg.RequestTimeout = getEnvIntWithDefault("REQUEST_TIMEOUT", 10)
	cfg.MaxRetries = getEnvIntWithDefault("MAX_RETRIES", 0)
	cfg.RequestsPerSec = getEnvIntWithDefault("REQUESTS_PER_SEC", 5)
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.DebugDumpFile = os.Getenv("DEBUG_DUMP_FILE")
	cfg.ChartFile = getEnvWithDefault("CHART_FILE", "option_chain.html")
	cfg.TopN = getEnvIntWithDefault("TOP_N", 5)
	cfg.HTTPAddr = getEnvWithDefault("HTTP_ADDR", ":8081")

	return &cfg, nil
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
