package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gallery/internal/flagx"
)

// parseFlags overlays command-line flags onto config.
//
//	-a string     HTTP bind address (e.g. ":8080")
//	-b string     backend: sqlite, postgres or memory
//	-d string     database DSN
//	-l string     log level
//	-f string     log format (json or text)
//	-t duration   shutdown timeout
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-b", "-d", "-l", "-f", "-t"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.Backend, "b", config.Backend, "storage backend")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format")
	fs.DurationVar(&config.ShutdownTimeout, "t", config.ShutdownTimeout, "shutdown timeout")

	return fs.Parse(args)
}
