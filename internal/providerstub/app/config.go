package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/frontauth/pkg/httpx"
)

type Config struct {
	Issuer       string // Issuer claim of session tokens (default: http://localhost:{port})
	KeyFile      string // Optional: PEM file holding the Ed25519 signing key; ephemeral when empty
	KeyID        string // kid header of session tokens (default: stub-1)
	Pepper       string // Pepper mixed into password hashes
	MultiSession bool   // Allow several active sessions per client (default: false)

	SeedEmail    string // Optional: email of a user created at startup
	SeedPassword string // Password of the seeded user
	SeedTOTP     bool   // Enroll the seeded user in TOTP

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1m)
	SessionRetention     time.Duration // How long ended sessions are kept (default: 1h)

	AttemptLimit httpx.RateLimitConfig
	DefaultLimit httpx.RateLimitConfig
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:       os.Getenv("STUB_ISSUER"),
		KeyFile:      os.Getenv("STUB_KEY_FILE"),
		KeyID:        getEnvOrDefault("STUB_KEY_ID", "stub-1"),
		Pepper:       getEnvOrDefault("STUB_PEPPER", "frontauth-stub"),
		MultiSession: getEnvBoolOrDefault("STUB_MULTI_SESSION", false),

		SeedEmail:    os.Getenv("STUB_SEED_EMAIL"),
		SeedPassword: os.Getenv("STUB_SEED_PASSWORD"),
		SeedTOTP:     getEnvBoolOrDefault("STUB_SEED_TOTP", false),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Minute),
		SessionRetention:     getEnvDurationOrDefault("STUB_SESSION_RETENTION", time.Hour),

		AttemptLimit: httpx.RateLimitFromEnv("ATTEMPT", httpx.AttemptLimit),
		DefaultLimit: httpx.RateLimitFromEnv("DEFAULT", httpx.DefaultLimit),
	}

	if cfg.Issuer == "" {
		cfg.Issuer = "http://localhost:" + strconv.Itoa(cfg.Port)
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
