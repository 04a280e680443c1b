package config

import (
	"os"
	"strconv"
	"strings"

	"slotsense/internal/errors"
)

// Storage drivers
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Storage  StorageConfig
	Analysis AnalysisConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// LogConfig holds logger settings
type LogConfig struct {
	Level       string
	Development bool
}

// StorageConfig selects where snapshots are persisted
type StorageConfig struct {
	Driver      string
	Dir         string
	DatabaseURL string
}

// AnalysisConfig holds engine settings
type AnalysisConfig struct {
	BatchWorkers int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:   *loadServerConfig(),
		Log:      *loadLogConfig(),
		Storage:  *loadStorageConfig(),
		Analysis: *loadAnalysisConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadLogConfig() *LogConfig {
	return &LogConfig{
		Level:       strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		Development: getEnvBoolOrDefault("LOG_DEVELOPMENT", false),
	}
}

func loadStorageConfig() *StorageConfig {
	return &StorageConfig{
		Driver:      strings.ToLower(getEnvOrDefault("STORAGE_DRIVER", DriverFile)),
		Dir:         getEnvOrDefault("SNAPSHOT_DIR", "./snapshots"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
}

func loadAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		BatchWorkers: getEnvIntOrDefault("BATCH_WORKERS", 4),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	switch config.Storage.Driver {
	case DriverFile:
		if config.Storage.Dir == "" {
			return errors.ConfigInvalid("SNAPSHOT_DIR is required for the file driver")
		}
	case DriverPostgres:
		if config.Storage.DatabaseURL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required for the postgres driver")
		}
	default:
		return errors.ConfigInvalid("unknown STORAGE_DRIVER " + strconv.Quote(config.Storage.Driver))
	}
	if config.Analysis.BatchWorkers < 1 {
		return errors.ConfigInvalid("BATCH_WORKERS must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
