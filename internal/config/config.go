// Package config provides configuration management for the application.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application.
type Config struct {
	// AWS
	AWSRegion string
	S3Bucket  string

	// Database
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Geocoding
	NominatimBaseURL string

	// Rental listings API
	RentalsAPIBaseURL string
	RentalsAPIKey     string

	// SES
	SESSenderEmail string

	// AI
	GeminiAPIKey string
	GeminiModel  string

	// Application
	Port     int
	Stage    string
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	_ = godotenv.Load()

	cfg := &Config{
		// AWS
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),
		S3Bucket:  getEnv("S3_BUCKET", "housing-match-photos-dev"),

		// Database
		DBHost:     getEnv("DB_HOST", getEnv("HOUSING_DB_HOST", "localhost")),
		DBPort:     getEnvInt("DB_PORT", getEnvInt("HOUSING_DB_PORT", 5432)),
		DBName:     getEnv("DB_NAME", getEnv("HOUSING_DB_NAME", "housing_match")),
		DBUser:     getEnv("DB_USER", getEnv("HOUSING_DB_USER", "postgres")),
		DBPassword: getEnv("DB_PASSWORD", getEnv("HOUSING_DB_PASSWORD", "")),

		// Redis
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		// Geocoding
		NominatimBaseURL: getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),

		// Rental listings API
		RentalsAPIBaseURL: getEnv("RENTALS_API_BASE_URL", ""),
		RentalsAPIKey:     getEnv("RENTALS_API_KEY", ""),

		// SES
		SESSenderEmail: getEnv("SES_SENDER_EMAIL", ""),

		// AI
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		// Application
		Port:     getEnvInt("PORT", 8080),
		Stage:    getEnv("STAGE", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// DatabaseURL returns the PostgreSQL connection string.
func (c *Config) DatabaseURL() string {
	sslMode := "require" // Use SSL for managed databases
	if c.DBHost == "localhost" || c.DBHost == "127.0.0.1" {
		sslMode = "disable" // Disable SSL for local development
	}
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + strconv.Itoa(c.DBPort) + "/" + c.DBName + "?sslmode=" + sslMode
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an environment variable as int or returns a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
