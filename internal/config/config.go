// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
)

// Config holds every runtime setting.
type Config struct {
	Endpoint      string        `env:"BANANA_ENDPOINT" envDefault:"https://yinothing.com/api/google/banana"`
	Timeout       time.Duration `env:"BANANA_TIMEOUT" envDefault:"30s"`
	PromptsPath   string        `env:"BANANA_PROMPTS_PATH" envDefault:"prompts.json"`
	HTTPAddr      string        `env:"BANANA_HTTP_ADDR"`
	LogLevel      string        `env:"BANANA_LOG_LEVEL" envDefault:"info"`
	RateLimit     float64       `env:"BANANA_RATE_LIMIT" envDefault:"0"`
	RateBurst     int           `env:"BANANA_RATE_BURST" envDefault:"1"`
	ImageCacheTTL time.Duration `env:"BANANA_IMAGE_CACHE_TTL" envDefault:"10m"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing env config: %w", err)
	}
	if cfg.Timeout <= 0 {
		return Config{}, fmt.Errorf("BANANA_TIMEOUT must be positive, got %s", cfg.Timeout)
	}
	if cfg.RateLimit < 0 {
		return Config{}, fmt.Errorf("BANANA_RATE_LIMIT must not be negative, got %v", cfg.RateLimit)
	}
	return cfg, nil
}

// SlogLevel maps LogLevel to a slog level. Unknown values select info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
