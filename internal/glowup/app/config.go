package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)

	Host string // HTTP listen address (default: 127.0.0.1)
	Port int    // HTTP server port (default: 8080)

	StoreDriver  string // sqlite, gorm or memory (default: sqlite)
	DatabaseFile string // sqlite file, also used by gorm without a URL (default: ./glowup.db)
	DatabaseURL  string // gorm DSN, e.g. postgres://... (optional)

	HydrateTimeout      time.Duration // Cold start read budget (default: 3s)
	PersistWriteTimeout time.Duration // Budget for one snapshot write (default: 5s)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads the environment. A .env file in the working directory is
// loaded first when present; variables already set win over it.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Host:                getEnvOrDefault("HOST", "127.0.0.1"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		StoreDriver:         getEnvOrDefault("STORE_DRIVER", DriverSQLite),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "glowup.db"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		HydrateTimeout:      getEnvDurationOrDefault("HYDRATE_TIMEOUT", 3*time.Second),
		PersistWriteTimeout: getEnvDurationOrDefault("PERSIST_WRITE_TIMEOUT", 5*time.Second),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
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

	// Try parsing as duration (e.g., "3s", "500ms")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
