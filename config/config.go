package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// ErrMissingAPIKey is returned by Load when GOOGLE_API_KEY is not set.
var ErrMissingAPIKey = errors.New("GOOGLE_API_KEY not found in environment or .env file")

// Search providers understood by SEARCH_PROVIDER.
const (
	SearchProviderStub    = "stub"
	SearchProviderSerpAPI = "serpapi"
)

// Config holds application configuration
type Config struct {
	// Gemini
	GoogleAPIKey string
	GeminiModel  string
	ModelTimeout time.Duration

	// Web search tool
	SearchProvider    string
	SerpAPIKey        string
	SerpAPIBaseURL    string
	SearchResultCount int

	// Server
	ServerPort      string
	ChatErrorStatus int
	GinMode         string

	// Logging
	LogLevel  string
	LogFormat string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional for local development)
	_ = godotenv.Load()

	config := &Config{
		GoogleAPIKey: os.Getenv("GOOGLE_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-pro-latest"),
		ModelTimeout: getDuration("MODEL_TIMEOUT", 60*time.Second),

		SearchProvider:    strings.ToLower(getEnv("SEARCH_PROVIDER", SearchProviderStub)),
		SerpAPIKey:        os.Getenv("SERPAPI_API_KEY"),
		SerpAPIBaseURL:    getEnv("SERPAPI_BASE_URL", "https://serpapi.com/search.json"),
		SearchResultCount: getInt("SEARCH_RESULT_COUNT", 3),

		ServerPort:      getEnv("SERVER_PORT", "8000"),
		ChatErrorStatus: getInt("CHAT_ERROR_STATUS", http.StatusOK),
		GinMode:         os.Getenv("GIN_MODE"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	if config.GoogleAPIKey == "" {
		return nil, ErrMissingAPIKey
	}

	// Validate search provider configuration
	switch config.SearchProvider {
	case SearchProviderStub:
	case SearchProviderSerpAPI:
		if config.SerpAPIKey == "" {
			return nil, fmt.Errorf("SEARCH_PROVIDER=%s requires SERPAPI_API_KEY", config.SearchProvider)
		}
	default:
		logrus.Warnf("Unknown SEARCH_PROVIDER: %s (using stub as fallback)", config.SearchProvider)
		config.SearchProvider = SearchProviderStub
	}

	if config.SearchResultCount < 1 {
		logrus.Warnf("SEARCH_RESULT_COUNT must be positive, got %d (using 3)", config.SearchResultCount)
		config.SearchResultCount = 3
	}

	if http.StatusText(config.ChatErrorStatus) == "" {
		logrus.Warnf("CHAT_ERROR_STATUS %d is not an HTTP status (using 200)", config.ChatErrorStatus)
		config.ChatErrorStatus = http.StatusOK
	}

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		logrus.Warnf("invalid %s=%q: %v", key, value, err)
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		logrus.Warnf("invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
