// Package config handles configuration for the gallery HTTP server:
// defaults, an optional JSON file, GALLERY_* environment variables and
// command-line flags, applied in that order.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds runtime settings for the gallery server.
//
// Fields:
//   - HTTPAddr: bind address of the HTTP endpoint.
//   - Backend: storage backend, one of sqlite, postgres or memory.
//   - DatabaseDSN: SQLite file path or PostgreSQL URL.
//   - LogLevel / LogFormat: slog level name and handler ("json" or "text").
//   - ReadTimeout / WriteTimeout: per-request HTTP timeouts.
//   - ShutdownTimeout: how long in-flight requests may run after a signal.
type Config struct {
	HTTPAddr        string        `env:"GALLERY_HTTP_ADDR"`
	Backend         string        `env:"GALLERY_BACKEND"`
	DatabaseDSN     string        `env:"GALLERY_DATABASE_DSN"`
	LogLevel        string        `env:"GALLERY_LOG_LEVEL"`
	LogFormat       string        `env:"GALLERY_LOG_FORMAT"`
	ReadTimeout     time.Duration `env:"GALLERY_READ_TIMEOUT"`
	WriteTimeout    time.Duration `env:"GALLERY_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"GALLERY_SHUTDOWN_TIMEOUT"`
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.Backend = "sqlite"
	c.DatabaseDSN = "gallery.db"
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.ReadTimeout = 10 * time.Second
	c.WriteTimeout = 10 * time.Second
	c.ShutdownTimeout = 5 * time.Second
}

// LoadConfig builds a Config from os.Args and the process environment.
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
	return cfg, nil
}
