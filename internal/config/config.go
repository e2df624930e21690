// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultListenAddr is the address the HTTP API binds to when
// LISTEN_ADDR is not set.
const DefaultListenAddr = ":8000"

// DefaultExtractTimeout bounds a single LLM extraction call.
const DefaultExtractTimeout = 30 * time.Second

// DefaultGeminiModel is the model used for expense extraction.
const DefaultGeminiModel = "gemini-2.5-flash"

// Config holds all configuration for the application.
type Config struct {
	DatabaseURL    string
	GeminiAPIKey   string
	GeminiModel    string
	ListenAddr     string
	LogLevel       string
	ExtractTimeout time.Duration
	OTLPEndpoint   string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    os.Getenv("GEMINI_MODEL"),
		ListenAddr:     os.Getenv("LISTEN_ADDR"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ExtractTimeout: DefaultExtractTimeout,
	}

	if cfg.GeminiModel == "" {
		cfg.GeminiModel = DefaultGeminiModel
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}

	if secStr := os.Getenv("EXTRACT_TIMEOUT_SECONDS"); secStr != "" {
		if sec, err := strconv.Atoi(secStr); err == nil && sec > 0 {
			cfg.ExtractTimeout = time.Duration(sec) * time.Second
		}
	}

	// Validate required configuration.
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required configuration is present.
func (c *Config) validate() error {
	var errs []string

	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}

	if c.GeminiAPIKey == "" {
		errs = append(errs, "GEMINI_API_KEY is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
