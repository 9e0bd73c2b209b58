package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port              string
	Provider          string
	RefreshSchedule   string
	EnrichConcurrency int
	LogLevel          string
	LogFormat         string
	AdminToken        string
	OddsAPI           OddsAPIConfig
	Stats             StatsConfig
	Redis             RedisConfig
	Metrics           MetricsConfig
}

// Load reads configuration from a .env file (if present) and environment
// variables with sensible defaults, then applies the optional YAML overrides
// file named by PROPS_CONFIG_FILE.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:              envOrDefault(envPort, defaultPort),
		Provider:          envOrDefault(envProvider, defaultProvider),
		RefreshSchedule:   envOrDefault(envRefreshSchedule, defaultRefreshSchedule),
		EnrichConcurrency: intEnvOrDefault(envEnrichConcurrency, defaultEnrichConcurrency),
		LogLevel:          envOrDefault(envLogLevel, defaultLogLevel),
		LogFormat:         envOrDefault(envLogFormat, defaultLogFormat),
		AdminToken:        envOrDefault(envAdminToken, ""),
		OddsAPI:           loadOddsAPI(),
		Stats:             loadStats(),
		Redis:             loadRedis(),
		Metrics:           loadMetrics(),
	}

	path := os.Getenv(envOverridesFile)
	if path == "" {
		return cfg, nil
	}
	overrides, err := LoadOverrides(path)
	if err != nil {
		return cfg, fmt.Errorf("load overrides: %w", err)
	}
	overrides.Apply(&cfg)
	return cfg, nil
}
