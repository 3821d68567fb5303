// Package repomanager selects and constructs the gallery backend named in the
// configuration. Callers depend only on gallery.DataAccess.
package repomanager

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gallery/internal/logging"
	"github.com/dmitrijs2005/gallery/internal/repositories/gallery"
)

// Backend names a DataAccess implementation.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendMemory   Backend = "memory"
)

var (
	ErrUnknownBackend = errors.New("unknown backend")
	ErrMissingDSN     = errors.New("data source is required")
)

// Settings describes the backend to build. DSN is a file path for SQLite and
// a connection URL for PostgreSQL; it is ignored by the memory backend.
type Settings struct {
	Backend Backend
	DSN     string
}

// ParseBackend maps a configuration value onto a Backend.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendSQLite, BackendPostgres, BackendMemory:
		return b, nil
	case "sqlite3":
		return BackendSQLite, nil
	case "pg", "postgresql":
		return BackendPostgres, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// New returns a closed backend for s. Call Open before use.
func New(s Settings, logger logging.Logger) (gallery.DataAccess, error) {
	switch s.Backend {
	case BackendMemory:
		return gallery.NewMemoryRepository(logger), nil
	case BackendSQLite, BackendPostgres:
		if strings.TrimSpace(s.DSN) == "" {
			return nil, fmt.Errorf("%s backend: %w", s.Backend, ErrMissingDSN)
		}
		if s.Backend == BackendPostgres {
			return gallery.NewPostgresRepository(s.DSN, logger), nil
		}
		return gallery.NewSQLiteRepository(s.DSN, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, s.Backend)
	}
}
