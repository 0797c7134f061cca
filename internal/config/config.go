// Package config reads service configuration from environment variables,
// falling back to sensible local-development defaults.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds every tunable the service consumes. Load it once in main and
// pass it down; nothing in this package is read again after startup.
type Config struct {
	// Port the HTTP server listens on.
	Port string

	// MaxCostPerSquare is the ceiling for a contest's cost per square.
	MaxCostPerSquare float64
	// RequiredRosterSize is the exact roster length required to start a
	// contest, and the maximum accepted by a roster update.
	RequiredRosterSize int
	// MaxNameLength caps each participant (and winner) name, in bytes.
	MaxNameLength int

	// MaxBodyBytes caps request body size.
	MaxBodyBytes int64
	// RateLimitPerMinute is the per-client request budget. Zero disables
	// rate limiting.
	RateLimitPerMinute int
	// CORSAllowedOrigins is the list handed to the CORS middleware.
	CORSAllowedOrigins []string
}

// Load builds a Config from the environment.
func Load() Config {
	return Config{
		Port:               getEnv("PORT", "8080"),
		MaxCostPerSquare:   getEnvFloat("MAX_COST_PER_SQUARE", 10000),
		RequiredRosterSize: getEnvInt("REQUIRED_ROSTER_SIZE", 100),
		MaxNameLength:      getEnvInt("MAX_NAME_LENGTH", 100),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_RPM", 120),
		CORSAllowedOrigins: splitOrigins(getEnv("CORS_ALLOWED_ORIGINS", "*")),
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
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func splitOrigins(v string) []string {
	parts := strings.Split(v, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
