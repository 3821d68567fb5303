package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c := &Config{}
	c.LoadDefaults()

	assert.Equal(t, Config{
		Backend:     "sqlite",
		DatabaseDSN: "galleryDB.sqlite",
		LogLevel:    "warn",
		Color:       ColorAuto,
	}, *c)
}

func TestLoad_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"backend":"postgres","database_dsn":"postgres://json","color":"never"}`), 0o600))

	t.Setenv("GALLERY_DATABASE_DSN", "postgres://env")

	c, err := load([]string{"-config=" + path, "-b", "memory", "-x"})
	require.NoError(t, err)

	assert.Equal(t, "memory", c.Backend)
	assert.Equal(t, "postgres://env", c.DatabaseDSN)
	assert.Equal(t, ColorNever, c.Color)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestLoad_InvalidColor(t *testing.T) {
	_, err := load([]string{"-color", "sometimes"})
	assert.ErrorContains(t, err, "sometimes")
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"backend":1}`), 0o600))

	_, err := load([]string{"-c", path})
	assert.Error(t, err)
}
