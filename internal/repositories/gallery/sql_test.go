package gallery

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gallery/internal/common"
	"github.com/dmitrijs2005/gallery/internal/dbx"
	"github.com/dmitrijs2005/gallery/internal/logging"
	"github.com/dmitrijs2005/gallery/internal/models"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T, dialect dbx.Dialect) (*SQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewSQLRepository(dialect, "", logging.Discard())
	repo.db = db
	return repo, mock
}

func TestSQLRepository_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "gallery.db")

	repo := NewSQLiteRepository(path, logging.Discard())
	require.NoError(t, repo.Open(ctx))
	u, err := repo.CreateUser(ctx, "alice")
	require.NoError(t, err)
	_, err = repo.CreateAlbum(ctx, models.NewAlbum(u.ID, "summer"))
	require.NoError(t, err)
	_, err = repo.AddPictureToAlbum(ctx, "summer", models.NewPicture("beach", "beach.jpg"))
	require.NoError(t, err)
	require.NoError(t, repo.TagUser(ctx, "summer", "beach", u.ID))
	require.NoError(t, repo.Close())

	reopened := NewSQLiteRepository(path, logging.Discard())
	require.NoError(t, reopened.Open(ctx))
	t.Cleanup(func() { _ = reopened.Close() })

	album, err := reopened.OpenAlbum(ctx, "summer")
	require.NoError(t, err)
	require.Len(t, album.Pictures, 1)
	assert.Equal(t, "alice", album.OwnerName)
	assert.Equal(t, []models.User{u}, album.Pictures[0].TaggedUsers)
}

func TestSQLRepository_SkipsMalformedRows(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(filepath.Join(t.TempDir(), "gallery.db"), logging.Discard())
	require.NoError(t, repo.Open(ctx))
	t.Cleanup(func() { _ = repo.Close() })

	good, err := repo.CreateUser(ctx, "alice")
	require.NoError(t, err)

	res, err := repo.db.ExecContext(ctx, `INSERT INTO users (name) VALUES ('')`)
	require.NoError(t, err)
	badID, err := res.LastInsertId()
	require.NoError(t, err)

	_, err = repo.db.ExecContext(ctx, `INSERT INTO albums (name, user_id, creation_date) VALUES ('broken', ?, 'yesterday')`, good.ID)
	require.NoError(t, err)

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.User{good}, users)

	_, err = repo.GetUser(ctx, badID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	albums, err := repo.ListAlbums(ctx)
	require.NoError(t, err)
	assert.Empty(t, albums)

	_, err = repo.OpenAlbum(ctx, "broken")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLRepository_QueryFailureIsStorageError(t *testing.T) {
	repo, mock := newMockRepository(t, dbx.DialectSQLite)

	mock.ExpectQuery(`SELECT id, name FROM users ORDER BY id`).WillReturnError(errors.New("disk I/O error"))

	_, err := repo.ListUsers(context.Background())
	require.ErrorIs(t, err, common.ErrorStorage)
	assert.Contains(t, err.Error(), "list users")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepository_CreateUserRollsBack(t *testing.T) {
	repo, mock := newMockRepository(t, dbx.DialectSQLite)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users \(name\) VALUES \(\?\) RETURNING id`).
		WithArgs("alice").
		WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	_, err := repo.CreateUser(context.Background(), "alice")
	require.ErrorIs(t, err, common.ErrorStorage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepository_DeleteUserIsAllOrNothing(t *testing.T) {
	repo, mock := newMockRepository(t, dbx.DialectSQLite)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 AS found FROM users WHERE id = \?`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"found"}).AddRow(int64(1)))
	mock.ExpectExec(`DELETE FROM tags WHERE picture_id IN`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM tags WHERE user_id = \?`).
		WithArgs(int64(3)).
		WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	err := repo.DeleteUser(context.Background(), models.User{ID: 3})
	require.ErrorIs(t, err, common.ErrorStorage)
	assert.Contains(t, err.Error(), "tags of user")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepository_MissingUserIsNotFound(t *testing.T) {
	repo, mock := newMockRepository(t, dbx.DialectSQLite)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 AS found FROM users WHERE id = \?`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"found"}))
	mock.ExpectRollback()

	err := repo.DeleteUser(context.Background(), models.User{ID: 9})
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.NotErrorIs(t, err, common.ErrorStorage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepository_PostgresPlaceholders(t *testing.T) {
	repo, mock := newMockRepository(t, dbx.DialectPostgres)

	mock.ExpectQuery(`SELECT 1 AS found FROM users WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"found"}).AddRow(int64(1)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) AS count FROM tags WHERE user_id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(6)))

	n, err := repo.CountTags(context.Background(), models.User{ID: 4})
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepository_OpenFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("driver", func(t *testing.T) {
		orig := sqlOpen
		t.Cleanup(func() { sqlOpen = orig })
		sqlOpen = func(driverName, dataSourceName string) (*sql.DB, error) {
			return nil, errors.New("unknown driver")
		}

		repo := NewSQLiteRepository(filepath.Join(t.TempDir(), "gallery.db"), nil)
		err := repo.Open(ctx)
		require.ErrorIs(t, err, common.ErrorStorage)
		assert.Nil(t, repo.db)
	})

	t.Run("migrations", func(t *testing.T) {
		orig := gooseUpContext
		t.Cleanup(func() { gooseUpContext = orig })
		gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
			return errors.New("bad migration")
		}

		repo := NewSQLiteRepository(filepath.Join(t.TempDir(), "gallery.db"), nil)
		err := repo.Open(ctx)
		require.ErrorIs(t, err, common.ErrorStorage)
		assert.Contains(t, err.Error(), "bad migration")
		assert.Nil(t, repo.db)
	})
}

func TestSQLRepository_DataSource(t *testing.T) {
	assert.Equal(t, "g.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		NewSQLiteRepository("g.db", nil).dataSource())
	assert.Equal(t, "file:g.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		NewSQLiteRepository("file:g.db?mode=rwc", nil).dataSource())
	assert.Equal(t, "postgres://u@h/db", NewPostgresRepository("postgres://u@h/db", nil).dataSource())
}

func TestSQLRepository_OpenCreatesDatabaseDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "var", "lib", "gallery.db")
	repo := NewSQLiteRepository(path, nil)

	require.NoError(t, repo.Open(context.Background()))
	t.Cleanup(func() { _ = repo.Close() })

	assert.FileExists(t, path)
}
