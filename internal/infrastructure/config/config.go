// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"flight-query-service/internal/domain/entity"

	"github.com/joho/godotenv"
)

// Extractor backends
const (
	ExtractorOpenAI = "openai"
	ExtractorGemini = "gemini"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Extractor
	Extractor           string
	ExtractorTimeout    time.Duration
	ExtractionCacheSize int

	// OpenAI
	OpenAIAPIKey    string
	OpenAIOrgID     string
	OpenAIProjectID string
	OpenAIBaseURL   string
	OpenAIModel     string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// MongoDB, search log is disabled when MongoURI is empty
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// PostgreSQL, airport lookup is disabled when PostgresURI is empty
	PostgresURI string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		Port:         getEnv("PORT", "5000"),
		ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", 60*time.Second),

		Extractor:           strings.ToLower(getEnv("EXTRACTOR", ExtractorOpenAI)),
		ExtractorTimeout:    getEnvAsDuration("EXTRACTOR_TIMEOUT", 30*time.Second),
		ExtractionCacheSize: getEnvAsInt("EXTRACTION_CACHE_SIZE", 256),

		OpenAIAPIKey:    strings.TrimSpace(getEnv("OPENAI_API_KEY", "")),
		OpenAIOrgID:     getEnv("OPENAI_ORG_ID", ""),
		OpenAIProjectID: getEnv("OPENAI_PROJECT_ID", ""),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o"),

		GeminiAPIKey: strings.TrimSpace(getEnv("GEMINI_API_KEY", "")),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),

		MongoURI:      getEnv("MONGODB_DSN", ""),
		MongoDB:       getEnv("MONGO_DB", "flight_query"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresURI: getEnv("POSTGRES_URI", ""),
	}

	return config, nil
}

// Validate checks that the selected extractor can be built
func (c *Config) Validate() error {
	switch c.Extractor {
	case ExtractorOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY not set: %w", entity.ErrExtractorNotConfigured)
		}
	case ExtractorGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY not set: %w", entity.ErrExtractorNotConfigured)
		}
	default:
		return fmt.Errorf("unknown EXTRACTOR %q, want %q or %q", c.Extractor, ExtractorOpenAI, ExtractorGemini)
	}
	return nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("45s") or plain seconds ("45").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
