package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/llm"
)

// missingEnv points Load at a .env path that does not exist
func missingEnv(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New(), "", missingEnv(t))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "ollama", cfg.LLMProvider)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadSize)
	assert.Equal(t, []string{"pdf", "docx", "text/plain"}, cfg.AllowedFileTypes)
	assert.Equal(t, "uploads", cfg.UploadDirectory)
	assert.Equal(t, 0.025, cfg.KeywordDensityTarget)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, 120*time.Second, cfg.InvokeTimeout())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_RETRIES", "0")
	t.Setenv("KEYWORD_DENSITY_TARGET", "0.03")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CACHE_TTL", "90m")
	t.Setenv("OLLAMA_TIMEOUT", "30")

	cfg, err := Load(viper.New(), "", missingEnv(t))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Equal(t, 0.03, cfg.KeywordDensityTarget)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 90*time.Minute, cfg.CacheTTL)

	opts := cfg.EngineOptions()
	assert.Equal(t, 0, opts.MaxRetries)
	assert.Equal(t, 30*time.Second, opts.InvokeTimeout)
}

func TestLoad_ConfigFileAndDotEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("max_keywords: 12\nlog_level: warn\n"), 0o644))

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("RATE_LIMIT_PER_MINUTE=15\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("RATE_LIMIT_PER_MINUTE") })

	cfg, err := Load(viper.New(), file, envFile)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.MaxKeywords)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 15, cfg.RateLimitPerMinute)
}

func TestLoad_DebugForcesDebugLevel(t *testing.T) {
	t.Setenv("DEBUG", "true")

	cfg, err := Load(viper.New(), "", missingEnv(t))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"provider", "LLM_PROVIDER", "openai"},
		{"gemini without key", "LLM_PROVIDER", "gemini"},
		{"density", "KEYWORD_DENSITY_TARGET", "1.5"},
		{"tolerance", "KEYWORD_TOLERANCE_FACTOR", "0.5"},
		{"retries", "MAX_RETRIES", "-1"},
		{"port", "PORT", "70000"},
		{"log level", "LOG_LEVEL", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load(viper.New(), "", missingEnv(t))
			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
		})
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"), missingEnv(t))
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "reading")
}

func TestConfig_LLMConfig(t *testing.T) {
	cfg := &Config{
		LLMProvider:   "gemini",
		GeminiAPIKey:  "key",
		GeminiModel:   "gemini-pro",
		OllamaTimeout: 900,
	}

	got := cfg.LLMConfig()
	assert.Equal(t, llm.ProviderGemini, got.Provider)
	assert.Equal(t, "key", got.APIKey)
	assert.Equal(t, "gemini-pro", got.Model())
	assert.Equal(t, 900*time.Second, got.HTTPTimeout)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList([]string{"a, b", " c "}))
	assert.Nil(t, splitList([]string{" , "}))
}
