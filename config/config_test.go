package config

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GOOGLE_API_KEY", "GEMINI_MODEL", "MODEL_TIMEOUT",
		"SEARCH_PROVIDER", "SERPAPI_API_KEY", "SERPAPI_BASE_URL", "SEARCH_RESULT_COUNT",
		"SERVER_PORT", "CHAT_ERROR_STATUS", "GIN_MODE", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	assert.Nil(t, cfg)
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.GoogleAPIKey)
	assert.Equal(t, "gemini-1.5-pro-latest", cfg.GeminiModel)
	assert.Equal(t, 60*time.Second, cfg.ModelTimeout)
	assert.Equal(t, SearchProviderStub, cfg.SearchProvider)
	assert.Equal(t, 3, cfg.SearchResultCount)
	assert.Equal(t, "8000", cfg.ServerPort)
	assert.Equal(t, http.StatusOK, cfg.ChatErrorStatus)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-1.5-flash")
	t.Setenv("MODEL_TIMEOUT", "5s")
	t.Setenv("SEARCH_PROVIDER", "SerpAPI")
	t.Setenv("SERPAPI_API_KEY", "serp-key")
	t.Setenv("SEARCH_RESULT_COUNT", "5")
	t.Setenv("CHAT_ERROR_STATUS", "502")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.Equal(t, 5*time.Second, cfg.ModelTimeout)
	assert.Equal(t, SearchProviderSerpAPI, cfg.SearchProvider)
	assert.Equal(t, "serp-key", cfg.SerpAPIKey)
	assert.Equal(t, 5, cfg.SearchResultCount)
	assert.Equal(t, http.StatusBadGateway, cfg.ChatErrorStatus)
	assert.Equal(t, "9090", cfg.ServerPort)
}

func TestLoadFallsBackOnInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "test-key")
	t.Setenv("MODEL_TIMEOUT", "soon")
	t.Setenv("SEARCH_PROVIDER", "bing")
	t.Setenv("SEARCH_RESULT_COUNT", "zero")
	t.Setenv("CHAT_ERROR_STATUS", "999")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 60*time.Second, cfg.ModelTimeout)
	assert.Equal(t, SearchProviderStub, cfg.SearchProvider)
	assert.Equal(t, 3, cfg.SearchResultCount)
	assert.Equal(t, http.StatusOK, cfg.ChatErrorStatus)
}

func TestLoadSerpAPIRequiresKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "test-key")
	t.Setenv("SEARCH_PROVIDER", "serpapi")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadZeroTimeoutDisables(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "test-key")
	t.Setenv("MODEL_TIMEOUT", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.ModelTimeout)
}
