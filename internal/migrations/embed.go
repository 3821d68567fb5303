// Package migrations embeds the goose schema migrations of the gallery
// database, one directory per SQL dialect.
package migrations

import (
	"embed"
	"io/fs"

	"github.com/dmitrijs2005/gallery/internal/dbx"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// For returns the migration tree of the given dialect.
func For(d dbx.Dialect) (fs.FS, error) {
	dir := "sqlite"
	if d == dbx.DialectPostgres {
		dir = "postgres"
	}
	return fs.Sub(Migrations, dir)
}
