package pagination

import (
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config holds pagination defaults and limits.
type Config struct {
	DefaultPage  int `env:"PAGINATION_DEFAULT_PAGE" envDefault:"1"`
	DefaultLimit int `env:"PAGINATION_DEFAULT_LIMIT" envDefault:"20"`
	MaxLimit     int `env:"PAGINATION_MAX_LIMIT" envDefault:"100"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 20,
		MaxLimit:     100,
	}
}

// LoadFromEnv reads PAGINATION_* variables. Unparseable or inconsistent values
// fall back to DefaultConfig with a warning.
func LoadFromEnv() Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		slog.Warn("invalid pagination configuration, using defaults", slog.Any("error", err))
		return DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		slog.Warn("invalid pagination configuration, using defaults", slog.Any("error", err))
		return DefaultConfig()
	}
	return cfg
}
