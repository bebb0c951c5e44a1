package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"fitlab/internal/errors"
	"fitlab/internal/playground"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig
	API        APIConfig
	Playground PlaygroundConfig
	LogLevel   string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// APIConfig holds headless API settings
type APIConfig struct {
	Port string
}

// PlaygroundConfig holds the fixed shape of every playground session
type PlaygroundConfig struct {
	NumPoints     int
	CurveSteps    int
	Seed          int64
	MaxComplexity int
	SessionTTL    time.Duration
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:     *loadServerConfig(),
		API:        *loadAPIConfig(),
		Playground: *loadPlaygroundConfig(),
		LogLevel:   getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadAPIConfig() *APIConfig {
	return &APIConfig{
		Port: getEnvOrDefault("API_PORT", "8081"),
	}
}

func loadPlaygroundConfig() *PlaygroundConfig {
	return &PlaygroundConfig{
		NumPoints:     getEnvIntOrDefault("FITLAB_POINTS", 30),
		CurveSteps:    getEnvIntOrDefault("FITLAB_CURVE_STEPS", 200),
		Seed:          int64(getEnvIntOrDefault("FITLAB_SEED", 1)),
		MaxComplexity: getEnvIntOrDefault("FITLAB_MAX_COMPLEXITY", 20),
		SessionTTL:    getEnvDurationOrDefault("FITLAB_SESSION_TTL", 30*time.Minute),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.API.Port == "" {
		return errors.ConfigInvalid("API port is required")
	}
	if config.Playground.NumPoints < 2 || config.Playground.NumPoints > playground.MaxNumPoints {
		return errors.ConfigInvalid(fmt.Sprintf("FITLAB_POINTS must be in [2, %d]", playground.MaxNumPoints))
	}
	if config.Playground.CurveSteps < 1 || config.Playground.CurveSteps > playground.MaxCurveSteps {
		return errors.ConfigInvalid(fmt.Sprintf("FITLAB_CURVE_STEPS must be in [1, %d]", playground.MaxCurveSteps))
	}
	if config.Playground.MaxComplexity < playground.MinComplexity || config.Playground.MaxComplexity > playground.MaxComplexity {
		return errors.ConfigInvalid(fmt.Sprintf("FITLAB_MAX_COMPLEXITY must be in [%d, %d]", playground.MinComplexity, playground.MaxComplexity))
	}
	if config.Playground.SessionTTL <= 0 {
		return errors.ConfigInvalid("FITLAB_SESSION_TTL must be positive")
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
