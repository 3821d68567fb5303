package config

import (
	"fmt"
	"os"
)

// Color modes for console output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds runtime settings for the gallery console.
//
// Fields:
//   - Backend: storage backend, one of sqlite, postgres or memory.
//   - DatabaseDSN: SQLite file path or PostgreSQL URL.
//   - LogLevel: slog level for diagnostics written to stderr.
//   - Color: auto (only on a terminal), always or never.
type Config struct {
	Backend     string `env:"GALLERY_BACKEND"`
	DatabaseDSN string `env:"GALLERY_DATABASE_DSN"`
	LogLevel    string `env:"GALLERY_LOG_LEVEL"`
	Color       string `env:"GALLERY_COLOR"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Backend = "sqlite"
	c.DatabaseDSN = "galleryDB.sqlite"
	c.LogLevel = "warn"
	c.Color = ColorAuto
}

// LoadConfig constructs a Config from defaults, the JSON file, the
// environment and os.Args.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	default:
		return fmt.Errorf("color must be %s, %s or %s, got %q", ColorAuto, ColorAlways, ColorNever, c.Color)
	}
}
