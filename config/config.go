package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	PGURL           string
	Port            string
	ScenarioDir     string
	LogLevel        log.Level
	CacheTTL        time.Duration
	CacheMaxEntries int
}

// Load reads configuration from environment variables. A .env file in the
// working directory fills in anything the shell does not set.
func Load() (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	cfg := &Config{
		PGURL:           os.Getenv("PG_URL"),
		Port:            getEnv("PORT", "8080"),
		ScenarioDir:     getEnv("SCENARIO_DIR", "./scenarios"),
		CacheMaxEntries: 10000,
	}

	level, err := log.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	cfg.CacheTTL, err = time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("CACHE_TTL cannot be negative, got %s", cfg.CacheTTL)
	}

	if v := os.Getenv("CACHE_MAX_ENTRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("CACHE_MAX_ENTRIES must be a non-negative integer, got %q", v)
		}
		cfg.CacheMaxEntries = n
	}

	return cfg, nil
}

// UsePostgres reports whether scenarios are stored in PostgreSQL rather than
// on disk
func (c *Config) UsePostgres() bool {
	return c.PGURL != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
