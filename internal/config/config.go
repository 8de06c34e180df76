package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort      int
	AllowedOrigin   string
	TokenTTL        time.Duration
	StoreMinLatency time.Duration
	StoreMaxLatency time.Duration
	MonitorInterval time.Duration
	LeaderboardCron string
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, err
	}

	minLatency, err := time.ParseDuration(getEnv("STORE_MIN_LATENCY", "100ms"))
	if err != nil {
		return nil, err
	}

	maxLatency, err := time.ParseDuration(getEnv("STORE_MAX_LATENCY", "600ms"))
	if err != nil {
		return nil, err
	}

	monitorInterval, err := time.ParseDuration(getEnv("MONITOR_INTERVAL", "1m"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:      port,
		AllowedOrigin:   getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		TokenTTL:        tokenTTL,
		StoreMinLatency: minLatency,
		StoreMaxLatency: maxLatency,
		MonitorInterval: monitorInterval,
		LeaderboardCron: getEnv("LEADERBOARD_CRON", "@every 30s"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
