package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"GEM_API_KEY", "OPENAI_API_KEY", "GENERATION_BASE_URL", "GENERATION_MODEL",
	"GENERATION_TEMPERATURE", "MAX_TOKENS", "GENERATION_TIMEOUT_SECONDS",
	"GENERATION_RATE_PER_MINUTE", "GUIDELINES_PATH", "HISTORY_WINDOW", "HTTP_PORT",
	"TELEGRAM_BOT_TOKEN", "ADMIN_USER_IDS", "ALLOWED_TELEGRAM_USER_IDS", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEM_API_KEY", "gem-key")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gem-key", cfg.APIKey)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Nil(t, cfg.Temperature)
	assert.Equal(t, 4096, cfg.MaxCompletionTokens)
	assert.Equal(t, 120*time.Second, cfg.GenerationTimeout)
	assert.Equal(t, 0, cfg.RatePerMinute)
	assert.Equal(t, "data.txt", cfg.GuidelinesPath)
	assert.Equal(t, 0, cfg.HistoryWindow)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.AdminUserIDs)
}

func TestLoad_MissingKey(t *testing.T) {
	clearEnv(t)

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_OpenAIKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.APIKey)
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEM_API_KEY", "gem-key")
	t.Setenv("GENERATION_MODEL", "gemini-2.0-flash")
	t.Setenv("GENERATION_TEMPERATURE", "0.1")
	t.Setenv("HISTORY_WINDOW", "12")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("GENERATION_RATE_PER_MINUTE", "30")
	t.Setenv("ADMIN_USER_IDS", "1, 2,,x,3")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.1, *cfg.Temperature, 1e-6)
	assert.Equal(t, 12, cfg.HistoryWindow)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, 30, cfg.RatePerMinute)
	assert.Equal(t, []int64{1, 2, 3}, cfg.AdminUserIDs)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEM_API_KEY", "gem-key")
	t.Setenv("HTTP_PORT", "notanumber")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	content := "GEM_API_KEY=file-key\nGUIDELINES_PATH=diretrizes.txt\nHTTP_PORT=7070\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("HTTP_PORT", "6060")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "diretrizes.txt", cfg.GuidelinesPath)
	assert.Equal(t, 6060, cfg.HTTPPort, "environment wins over the file")
}

func TestLoad_MissingEnvFileIsNotFatal(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEM_API_KEY", "gem-key")

	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	assert.NoError(t, err)
}
