package repomanager

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gallery/internal/logging"
	"github.com/dmitrijs2005/gallery/internal/repositories/gallery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    Backend
		wantErr bool
	}{
		{"sqlite", BackendSQLite, false},
		{" SQLite3 ", BackendSQLite, false},
		{"postgres", BackendPostgres, false},
		{"postgresql", BackendPostgres, false},
		{"memory", BackendMemory, false},
		{"mongo", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBackend(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownBackend)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_SelectsImplementation(t *testing.T) {
	log := logging.Discard()

	mem, err := New(Settings{Backend: BackendMemory}, log)
	require.NoError(t, err)
	assert.IsType(t, &gallery.MemoryRepository{}, mem)

	lite, err := New(Settings{Backend: BackendSQLite, DSN: filepath.Join(t.TempDir(), "g.db")}, log)
	require.NoError(t, err)
	assert.IsType(t, &gallery.SQLRepository{}, lite)

	pg, err := New(Settings{Backend: BackendPostgres, DSN: "postgres://gallery@localhost/gallery"}, log)
	require.NoError(t, err)
	assert.IsType(t, &gallery.SQLRepository{}, pg)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Settings{Backend: BackendSQLite}, nil)
	assert.ErrorIs(t, err, ErrMissingDSN)

	_, err = New(Settings{Backend: BackendPostgres, DSN: "  "}, nil)
	assert.ErrorIs(t, err, ErrMissingDSN)

	_, err = New(Settings{Backend: "redis"}, nil)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestNew_SQLiteBackendOpens(t *testing.T) {
	ctx := context.Background()
	repo, err := New(Settings{Backend: BackendSQLite, DSN: filepath.Join(t.TempDir(), "g.db")}, nil)
	require.NoError(t, err)

	require.NoError(t, repo.Open(ctx))
	defer repo.Close()

	u, err := repo.CreateUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Name)
}
