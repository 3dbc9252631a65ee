package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the engine and its stores
type Config struct {
	// Environment
	Environment string // "development" or "production"

	// Resource paths
	DataDir     string
	CatalogPath string // YAML game catalog; empty uses the built-in catalog

	// Storage
	StorageType      string // "memory" or "sqlite"
	SQLitePath       string
	PatternCapacity  int
	ElasticURL       string // empty disables the outcome archive
	ElasticUsername  string
	ElasticPassword  string
	ElasticIndexName string
	ElasticRetention time.Duration // 0 keeps archive indices forever

	// Engine tuning
	TargetHouseEdge   float64
	SessionGap        time.Duration
	RandomSeed        int64 // 0 seeds from the wall clock
	RapidBetWindow    time.Duration
	RapidBetMax       int
	HighAvgBet        float64
	HighSessionLoss   float64
	MediumAvgBet      float64
	MediumSessionLoss float64
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	// Get working directory for resource paths
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	dataDir := getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data"))

	cfg := &Config{
		Environment:      getEnvWithDefault("ENVIRONMENT", "development"),
		DataDir:          dataDir,
		CatalogPath:      os.Getenv("CATALOG_PATH"),
		StorageType:      getEnvWithDefault("STORAGE_TYPE", "memory"),
		SQLitePath:       getEnvWithDefault("SQLITE_PATH", filepath.Join(dataDir, "wagercore.db")),
		ElasticURL:       os.Getenv("ELASTIC_URL"),
		ElasticUsername:  os.Getenv("ELASTIC_USERNAME"),
		ElasticPassword:  os.Getenv("ELASTIC_PASSWORD"),
		ElasticIndexName: getEnvWithDefault("ELASTIC_INDEX_PREFIX", "wagercore"),
	}

	cfg.ElasticRetention, err = getEnvDuration("ELASTIC_RETENTION", 0)
	if err != nil {
		return nil, err
	}
	cfg.PatternCapacity, err = getEnvInt("PATTERN_CAPACITY", 1000)
	if err != nil {
		return nil, err
	}
	cfg.TargetHouseEdge, err = getEnvFloat("TARGET_HOUSE_EDGE", 0.05)
	if err != nil {
		return nil, err
	}
	cfg.SessionGap, err = getEnvDuration("SESSION_GAP", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	seed, err := getEnvInt("RANDOM_SEED", 0)
	if err != nil {
		return nil, err
	}
	cfg.RandomSeed = int64(seed)
	cfg.RapidBetWindow, err = getEnvDuration("RAPID_BET_WINDOW", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.RapidBetMax, err = getEnvInt("RAPID_BET_MAX", 10)
	if err != nil {
		return nil, err
	}
	cfg.HighAvgBet, err = getEnvFloat("RISK_HIGH_AVG_BET", 1000)
	if err != nil {
		return nil, err
	}
	cfg.HighSessionLoss, err = getEnvFloat("RISK_HIGH_SESSION_LOSS", 5000)
	if err != nil {
		return nil, err
	}
	cfg.MediumAvgBet, err = getEnvFloat("RISK_MEDIUM_AVG_BET", 500)
	if err != nil {
		return nil, err
	}
	cfg.MediumSessionLoss, err = getEnvFloat("RISK_MEDIUM_SESSION_LOSS", 2000)
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// validate checks that the configuration is usable
func (c *Config) validate() error {
	if c.StorageType != "memory" && c.StorageType != "sqlite" {
		return fmt.Errorf("STORAGE_TYPE must be \"memory\" or \"sqlite\", got %q", c.StorageType)
	}
	if c.TargetHouseEdge <= 0 || c.TargetHouseEdge >= 1 {
		return fmt.Errorf("TARGET_HOUSE_EDGE must be in (0,1), got %v", c.TargetHouseEdge)
	}
	if c.PatternCapacity <= 0 {
		return fmt.Errorf("PATTERN_CAPACITY must be positive, got %d", c.PatternCapacity)
	}
	if c.SessionGap <= 0 {
		return fmt.Errorf("SESSION_GAP must be positive, got %v", c.SessionGap)
	}
	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt parses an integer environment variable
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

// getEnvFloat parses a float environment variable
func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

// getEnvDuration parses a duration environment variable
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
