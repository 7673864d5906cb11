package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Ledger time zone. All monthly windows are computed in this fixed
	// zone so that a transaction's month never depends on request locale.
	LedgerTimezone string

	// Auth (single operator)
	AuthUsername     string
	AuthPasswordHash string
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Notifications
	SlackWebhookURL string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "kakeibo"),
		DBPassword: getEnv("DB_PASSWORD", "kakeibo"),
		DBName:     getEnv("DB_NAME", "kakeibo"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		LedgerTimezone: getEnv("LEDGER_TIMEZONE", "UTC"),

		// Auth
		AuthUsername:     getEnv("AUTH_USERNAME", "admin"),
		AuthPasswordHash: getEnv("AUTH_PASSWORD_HASH", ""),
		JWTSecret:        getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		SlackWebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),
	}

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// Location resolves the configured ledger time zone.
// Falls back to UTC if the zone name is unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.LedgerTimezone)
	if err != nil {
		log.Printf("Warning: unknown LEDGER_TIMEZONE %q, falling back to UTC\n", c.LedgerTimezone)
		return time.UTC
	}
	return loc
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
