package app

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// ErrMissingSecret reports that JWT_SECRET was not provided. The secret
// has no default: it is the highest-value asset in the system and must
// be supplied explicitly by the deployment.
var ErrMissingSecret = errors.New("app: JWT_SECRET must be set")

type Config struct {
	JWTSecret string // Required: symmetric signing secret, never logged
	Issuer    string // Optional: issuer claim for tokens (default: platform-api)

	AccessTokenTTL       time.Duration // Optional: token lifetime (default: 24h)
	AdmissionMaxRequests int           // Optional: requests per client per window (default: 1000)
	AdmissionWindow      time.Duration // Optional: admission window duration (default: 15m)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./platform.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 3000)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() (Config, error) {
	cfg := Config{
		JWTSecret:            os.Getenv("JWT_SECRET"),
		Issuer:               getEnvOrDefault("PLATFORM_ISSUER", "platform-api"),
		AccessTokenTTL:       getEnvDurationOrDefault("TOKEN_TTL", 24*time.Hour),
		AdmissionMaxRequests: getEnvIntOrDefault("ADMISSION_MAX_REQUESTS", 1000),
		AdmissionWindow:      getEnvDurationOrDefault("ADMISSION_WINDOW", 15*time.Minute),
		DatabaseFile:         getEnvOrDefault("DATABASE_FILE", "platform.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 3000),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingSecret
	}

	return cfg, nil
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are treated as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
