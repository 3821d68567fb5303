package gallery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gallery/internal/common"
	"github.com/dmitrijs2005/gallery/internal/dbx"
	"github.com/dmitrijs2005/gallery/internal/filex"
	"github.com/dmitrijs2005/gallery/internal/logging"
	"github.com/dmitrijs2005/gallery/internal/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLRepository implements DataAccess on top of database/sql. It keeps a
// single connection for the lifetime between Open and Close.
type SQLRepository struct {
	dialect dbx.Dialect
	dsn     string
	db      *sql.DB
	log     logging.Logger
}

// NewSQLiteRepository returns a closed repository backed by the SQLite file at
// path. The schema is created on Open.
func NewSQLiteRepository(path string, logger logging.Logger) *SQLRepository {
	return NewSQLRepository(dbx.DialectSQLite, path, logger)
}

// NewPostgresRepository returns a closed repository backed by PostgreSQL.
func NewPostgresRepository(dsn string, logger logging.Logger) *SQLRepository {
	return NewSQLRepository(dbx.DialectPostgres, dsn, logger)
}

func NewSQLRepository(dialect dbx.Dialect, dsn string, logger logging.Logger) *SQLRepository {
	if logger == nil {
		logger = logging.Discard()
	}
	return &SQLRepository{
		dialect: dialect,
		dsn:     dsn,
		log:     logger.With("backend", string(dialect)),
	}
}

// sqlOpen and gooseUpContext are seams for testing.
var (
	sqlOpen        = sql.Open
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.UpContext(ctx, db, dir, opts...)
	}
)

func (r *SQLRepository) Open(ctx context.Context) error {
	if r.db != nil {
		return nil
	}

	if r.dialect == dbx.DialectSQLite {
		if _, err := filex.EnsureParentDir(r.dsn); err != nil {
			return common.StorageError("open database", err)
		}
	}

	db, err := sqlOpen(r.dialect.DriverName(), r.dataSource())
	if err != nil {
		return common.StorageError("open database", err)
	}

	// Every read and write goes through one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return common.StorageError("open database", err)
	}

	if err := r.runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return common.StorageError("migrate database", err)
	}

	r.db = db
	r.log.Info(ctx, "database opened")
	return nil
}

func (r *SQLRepository) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	if err != nil {
		return common.StorageError("close database", err)
	}
	r.log.Info(context.Background(), "database closed")
	return nil
}

// Clear deletes every row, children first. Identifier sequences are kept so
// ids are never handed out twice.
func (r *SQLRepository) Clear(ctx context.Context) error {
	err := r.mutate(ctx, "clear", func(ctx context.Context, tx dbx.DBTX) error {
		for _, table := range []string{"tags", "pictures", "albums", "users"} {
			if _, err := r.exec(ctx, tx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.compact(ctx)
	return nil
}

func (r *SQLRepository) dataSource() string {
	if r.dialect != dbx.DialectSQLite {
		return r.dsn
	}
	sep := "?"
	if strings.Contains(r.dsn, "?") {
		sep = "&"
	}
	return r.dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func (r *SQLRepository) runMigrations(ctx context.Context, db *sql.DB) error {
	fsys, err := migrations.For(r.dialect)
	if err != nil {
		return err
	}
	goose.SetBaseFS(fsys)
	goose.SetLogger(gooseLogger{log: r.log})
	if err := goose.SetDialect(r.dialect.GooseDialect()); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// conn returns the open handle or a not-open storage error for op.
func (r *SQLRepository) conn(op string) (*sql.DB, error) {
	if r.db == nil {
		return nil, common.StorageError(op, common.ErrorNotOpen)
	}
	return r.db, nil
}

// mutate runs fn in a transaction. Classified errors pass through unchanged,
// everything else becomes a storage error for op.
func (r *SQLRepository) mutate(ctx context.Context, op string, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	db, err := r.conn(op)
	if err != nil {
		return err
	}
	if err := dbx.WithTx(ctx, db, nil, fn); err != nil {
		return common.StorageError(op, err)
	}
	return nil
}

// compact reclaims the space freed by a destructive delete. The delete has
// already been committed, so a failure is only logged.
func (r *SQLRepository) compact(ctx context.Context) {
	if r.db == nil {
		return
	}
	if _, err := r.db.ExecContext(ctx, "VACUUM"); err != nil {
		r.log.Warn(ctx, "vacuum failed", "error", err)
	}
}

func (r *SQLRepository) exec(ctx context.Context, q dbx.DBTX, query string, args ...any) (sql.Result, error) {
	return q.ExecContext(ctx, r.dialect.Rebind(query), args...)
}

func (r *SQLRepository) query(ctx context.Context, q dbx.DBTX, query string, args ...any) ([]record, error) {
	return scanRecords(ctx, q, r.dialect.Rebind(query), args...)
}

// queryOne returns the first record of the result, if any.
func (r *SQLRepository) queryOne(ctx context.Context, q dbx.DBTX, query string, args ...any) (record, bool, error) {
	recs, err := r.query(ctx, q, query, args...)
	if err != nil || len(recs) == 0 {
		return nil, false, err
	}
	return recs[0], true, nil
}

func (r *SQLRepository) exists(ctx context.Context, q dbx.DBTX, query string, args ...any) (bool, error) {
	_, ok, err := r.queryOne(ctx, q, query, args...)
	return ok, err
}

// count runs a query returning a single "count" column.
func (r *SQLRepository) count(ctx context.Context, q dbx.DBTX, query string, args ...any) (int, error) {
	rec, ok, err := r.queryOne(ctx, q, query, args...)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	n, ok := rec.int64("count")
	if !ok {
		return 0, errors.New("count column missing")
	}
	return int(n), nil
}

// insertID runs an INSERT ... RETURNING id statement.
func (r *SQLRepository) insertID(ctx context.Context, q dbx.DBTX, query string, args ...any) (int64, error) {
	var id int64
	if err := q.QueryRowContext(ctx, r.dialect.Rebind(query), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// gooseLogger routes migration output into the repository logger.
type gooseLogger struct {
	log logging.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Debug(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}
