package config

import (
	"os"
	"strconv"

	"pgtadash/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data    DataConfig   `validate:"required"`
	Server  ServerConfig `validate:"required"`
	Metrics MetricsConfig
}

// DataConfig holds the dataset source settings
type DataConfig struct {
	FilePath string `validate:"required"`
	Sheet    string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string `validate:"required"`
	GinMode string
}

// MetricsConfig holds prometheus metrics settings
type MetricsConfig struct {
	Enabled bool
}

// DefaultDataFile is the spreadsheet path used when DATA_FILE is not set.
const DefaultDataFile = "pre_analysis_last.xlsx"

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data:    loadDataConfig(),
		Server:  loadServerConfig(),
		Metrics: loadMetricsConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDataConfig() DataConfig {
	return DataConfig{
		FilePath: getEnvOrDefault("DATA_FILE", DefaultDataFile),
		Sheet:    getEnvOrDefault("SHEET_NAME", ""),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled: getEnvBoolOrDefault("METRICS_ENABLED", true),
	}
}

func validateConfig(config *Config) error {
	if config.Data.FilePath == "" {
		return errors.ConfigInvalid("DATA_FILE must not be empty")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT must not be empty")
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
