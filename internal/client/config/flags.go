package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gallery/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-b string       backend: sqlite, postgres or memory
//	-d string       database DSN
//	-l string       log level
//	-color string   auto, always or never
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-b", "-d", "-l", "-color"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "storage backend")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.Color, "color", cfg.Color, "colored output: auto, always or never")

	return fs.Parse(args)
}
