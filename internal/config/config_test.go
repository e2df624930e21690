package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("GEMINI_API_KEY", "test-key-123")
}

func TestLoad(t *testing.T) {
	t.Run("loads all config from env", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
		t.Setenv("LISTEN_ADDR", ":9090")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "postgres://localhost/test", cfg.DatabaseURL)
		require.Equal(t, "test-key-123", cfg.GeminiAPIKey)
		require.Equal(t, "gemini-2.5-pro", cfg.GeminiModel)
		require.Equal(t, ":9090", cfg.ListenAddr)
		require.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("applies defaults", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("GEMINI_MODEL", "")
		t.Setenv("LISTEN_ADDR", "")
		t.Setenv("EXTRACT_TIMEOUT_SECONDS", "")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, DefaultGeminiModel, cfg.GeminiModel)
		require.Equal(t, DefaultListenAddr, cfg.ListenAddr)
		require.Equal(t, DefaultExtractTimeout, cfg.ExtractTimeout)
	})

	t.Run("parses extraction timeout", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("EXTRACT_TIMEOUT_SECONDS", "45")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, 45*time.Second, cfg.ExtractTimeout)
	})

	t.Run("ignores invalid extraction timeout", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("EXTRACT_TIMEOUT_SECONDS", "not-a-number")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, DefaultExtractTimeout, cfg.ExtractTimeout)
	})

	t.Run("ignores non-positive extraction timeout", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("EXTRACT_TIMEOUT_SECONDS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, DefaultExtractTimeout, cfg.ExtractTimeout)
	})

	t.Run("fails without DATABASE_URL", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("GEMINI_API_KEY", "test-key-123")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "DATABASE_URL is required")
	})

	t.Run("fails without GEMINI_API_KEY", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/test")
		t.Setenv("GEMINI_API_KEY", "")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "GEMINI_API_KEY is required")
	})

	t.Run("collects all missing vars", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("GEMINI_API_KEY", "")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "DATABASE_URL is required")
		require.Contains(t, err.Error(), "GEMINI_API_KEY is required")
	})
}
