package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	JWTSecret string // Required: shared secret for signing session tokens
	Issuer    string // Optional: issuer claim for tokens (default: leftbox)

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./leftbox.db)
	UploadDir            string        // Optional: directory for uploaded file bytes (default: ./uploads)
	BcryptCost           int           // Optional: bcrypt work factor (default: library default)
	TokenTTL             time.Duration // Optional: session token lifetime (default: 120h)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired-session sweep interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		JWTSecret:            os.Getenv("LEFTBOX_JWT_SECRET"),
		Issuer:               getEnvOrDefault("LEFTBOX_ISSUER", "leftbox"),
		DatabaseFile:         getEnvOrDefault("LEFTBOX_DATABASE_FILE", "leftbox.db"),
		UploadDir:            getEnvOrDefault("LEFTBOX_UPLOAD_DIR", "uploads"),
		BcryptCost:           getEnvIntOrDefault("LEFTBOX_BCRYPT_COST", 0),
		TokenTTL:             getEnvDurationOrDefault("LEFTBOX_TOKEN_TTL", 120*time.Hour),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Hour),
	}
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

	return defaultValue
}
