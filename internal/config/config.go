// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the settings for the resume builder service. DatabaseURL may
// be empty, in which case account features are disabled and every session
// runs as a guest.
type Config struct {
	Port           int
	GeminiAPIKey   string
	DatabaseURL    string
	OutputDir      string
	TemplatePath   string
	AllowedOrigins []string
}

// Load reads configuration from environment variables. GEMINI_API_KEY is
// required; everything else has a default.
func Load() (*Config, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required but not set")
	}

	cfg := &Config{
		Port:         8080,
		GeminiAPIKey: apiKey,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		OutputDir:    os.Getenv("OUTPUT_DIR"),
		TemplatePath: os.Getenv("TEMPLATE_PATH"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT out of range: %d", cfg.Port)
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = os.TempDir()
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{"*"}
	}

	return cfg, nil
}

// AuthEnabled reports whether account features are available.
func (c *Config) AuthEnabled() bool {
	return c.DatabaseURL != ""
}
