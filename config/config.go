// Package config loads runtime settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the application settings.
type Config struct {
	HTTPPort           int
	DBDriver           string
	DBPath             string
	DatabaseURL        string
	DBDebug            bool
	LogLevel           string
	CORSAllowedOrigins string
	ShutdownTimeout    time.Duration
}

// Load reads the configuration from environment variables.
// Missing or malformed values fall back to defaults.
func Load() Config {
	return Config{
		HTTPPort:           getEnvInt("HTTP_PORT", 3000),
		DBDriver:           strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DBPath:             getEnv("DB_PATH", "tasks.db"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		DBDebug:            getEnvBool("DB_DEBUG", false),
		LogLevel:           parseLogLevel(getEnv("LOG_LEVEL", "info")),
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == DriverPostgres {
		return c.DatabaseURL
	}
	return c.DBPath
}

// parseLogLevel accepts "error" for quiet output; anything else is "info".
func parseLogLevel(s string) string {
	if strings.EqualFold(s, "error") {
		return "error"
	}
	return "info"
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil && i > 0 {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
