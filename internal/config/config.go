package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// Remote CRM
	CRMBaseURL string
	CRMLock    string // static X-CITADEL-LOCK header
	CRMKey     string // static X-CITADEL-KEY header

	// HTTP client
	HTTPTimeout time.Duration

	// Resilience
	MaxRetries     int
	InitialBackoff time.Duration
	MaxConcurrency int

	// Cache
	UserCacheTTL time.Duration
	RedisURL     string // empty keeps the cache in memory

	// Session tokens issued by the identity provider
	SessionSecret string
	SessionIssuer string

	// Observability
	OTLPEndpoint string

	// Lists
	DefaultPageSize int
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		CRMBaseURL: getEnv("CRM_BASE_URL", "http://localhost:8000/api/v1"),
		CRMLock:    getEnv("CRM_LOCK", ""),
		CRMKey:     getEnv("CRM_KEY", ""),

		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		MaxRetries:     getEnvInt("MAX_RETRIES", 2),
		InitialBackoff: getEnvDuration("INITIAL_BACKOFF", 100*time.Millisecond),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 50),

		UserCacheTTL: getEnvDuration("USER_CACHE_TTL", 5*time.Minute),
		RedisURL:     getEnv("REDIS_URL", ""),

		SessionSecret: getEnv("SESSION_JWT_SECRET", "citadel-dev-secret-change-me"),
		SessionIssuer: getEnv("SESSION_ISSUER", ""),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),

		DefaultPageSize: getEnvInt("DEFAULT_PAGE_SIZE", 10),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
