package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr  string
	CORSOrigins string // Comma-separated allowed origins
	RateLimit   int    // Requests per minute per IP

	// Database
	DatabaseURL string

	// Cache
	RedisURL string        // Empty disables the result cache
	CacheTTL time.Duration // Lifetime of cached groupings

	// Background cache warmer
	WarmInterval time.Duration // 0 disables the warmer

	// Storage circuit breaker
	BreakerMaxFailures int
	BreakerTimeout     time.Duration

	// Logging
	LogLevel  string
	LogFormat string // "json" or "console"

	// Lexicons
	LexiconFile string // env: LEXICON_FILE, default: "lexicons.yaml"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:                getEnv("ENV", "development"),
		ServerAddr:         getEnv("SERVER_ADDR", ":3000"),
		CORSOrigins:        getEnv("CORS_ORIGINS", "*"),
		RateLimit:          getEnvInt("RATE_LIMIT", 100),
		DatabaseURL:        getEnv("DATABASE_URL", "postgres://localhost:5432/kwtaxonomy?sslmode=disable"),
		RedisURL:           getEnv("REDIS_URL", ""),
		CacheTTL:           getEnvDuration("CACHE_TTL", 10*time.Minute),
		WarmInterval:       getEnvDuration("WARM_INTERVAL", 5*time.Minute),
		BreakerMaxFailures: getEnvInt("BREAKER_MAX_FAILURES", 5),
		BreakerTimeout:     getEnvDuration("BREAKER_TIMEOUT", 30*time.Second),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		LexiconFile:        getEnv("LEXICON_FILE", "lexicons.yaml"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if value == "0" {
		return 0
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// CacheEnabled returns true if a Redis URL is configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}
