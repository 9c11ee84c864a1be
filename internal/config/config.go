package config

import (
	"fmt"
	"os"

	"github.com/couchcryptid/storm-export-repair/internal/domain"
)

// Config holds all tool settings, populated from environment variables. The
// repair surface itself is the two positional paths; everything here is
// ambient (logging) or cosmetic (narrative separator).
type Config struct {
	LogLevel           string
	LogFormat          string
	NarrativeSeparator string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		LogFormat:          envOrDefault("LOG_FORMAT", "json"),
		NarrativeSeparator: envOrDefault("NARRATIVE_SEPARATOR", domain.DefaultNarrativeSeparator),
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
