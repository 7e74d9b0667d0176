package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Server struct {
		Port         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
	}

	Stormglass struct {
		// APIKey may be empty; absence is not validated here and
		// requests fail authentication downstream.
		APIKey  string
		BaseURL string
	}

	OpenMeteo struct {
		BaseURL string
	}

	Upstream struct {
		Timeout        time.Duration
		BreakerTimeout time.Duration
	}

	Cache struct {
		MaxAge time.Duration
	}
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		zap.L().Info("No .env file found, using environment variables")
	}

	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("FIBER_PORT", "8080")
	cfg.Server.ReadTimeout = parseDuration(getEnv("FIBER_READ_TIMEOUT", "10s"))
	cfg.Server.WriteTimeout = parseDuration(getEnv("FIBER_WRITE_TIMEOUT", "10s"))

	// Provider configuration
	cfg.Stormglass.APIKey = getEnv("STORMGLASS_API_KEY", "")
	cfg.Stormglass.BaseURL = getEnv("STORMGLASS_BASE_URL", "https://api.stormglass.io")
	cfg.OpenMeteo.BaseURL = getEnv("OPENMETEO_BASE_URL", "https://marine-api.open-meteo.com")

	// Outbound call bounds
	cfg.Upstream.Timeout = parseDuration(getEnv("UPSTREAM_TIMEOUT", "10s"))
	cfg.Upstream.BreakerTimeout = parseDuration(getEnv("CIRCUIT_BREAKER_TIMEOUT", "30s"))

	// Cache retention
	cfg.Cache.MaxAge = parseDuration(getEnv("CACHE_MAX_AGE", "6h"))

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		zap.L().Warn("Failed to parse duration", zap.String("value", value), zap.Error(err))
		return 0
	}
	return duration
}
