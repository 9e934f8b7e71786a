package config

import (
	"log"
	"os"
	"strconv"
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

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Uploads
	UploadDir      string
	MaxUploadBytes int64

	// Wizard sessions
	WizardTTL time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get values from environment variables with defaults
	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "heirloom"),
		DBPassword: getEnv("DB_PASSWORD", "heirloom"),
		DBName:     getEnv("DB_NAME", "heirloom"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		// Uploads
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
	}

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	// Parse upload size limit (bytes)
	maxStr := getEnv("MAX_UPLOAD_BYTES", "5242880")
	maxBytes, err := strconv.ParseInt(maxStr, 10, 64)
	if err != nil {
		log.Printf("Warning: invalid MAX_UPLOAD_BYTES value '%s', falling back to 5 MiB\n", maxStr)
		maxBytes = 5 << 20
	}
	config.MaxUploadBytes = maxBytes

	// Parse wizard session TTL
	ttlStr := getEnv("WIZARD_TTL", "30m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		log.Printf("Warning: invalid WIZARD_TTL value '%s', falling back to 30m\n", ttlStr)
		ttl = 30 * time.Minute
	}
	config.WizardTTL = ttl

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

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
} 