// Package database opens the relational store backing the builder service.
// Postgres and SQLite are both supported; queries are written with ?
// placeholders and rebound for the active driver.
package database

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	// Registers the "postgres" driver
	_ "github.com/lib/pq"
	// Registers the "sqlite" driver
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/rpg-builder/internal/errors"
)

// Dialect is a supported SQL driver
type Dialect string

// Supported dialects. The values are the registered driver names.
const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Config configures a database connection
type Config struct {
	Dialect Dialect
	URL     string

	// MaxOpenConns is ignored for SQLite, which always uses one connection
	MaxOpenConns    int
	ConnMaxIdleTime time.Duration
}

// Validate ensures the config is usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("Dialect", string(c.Dialect),
		[]string{string(DialectPostgres), string(DialectSQLite)}, vb)
	errors.ValidateRequired("URL", c.URL, vb)
	return vb.Build()
}

// DB is a *sql.DB that knows its dialect
type DB struct {
	*sql.DB
	dialect Dialect
}

// Open connects and pings the database
func Open(ctx context.Context, cfg *Config) (*DB, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	sqlDB, err := sql.Open(string(cfg.Dialect), cfg.URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s database", cfg.Dialect)
	}

	if cfg.Dialect == DialectSQLite {
		// In-memory databases are per connection
		sqlDB.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to reach database")
	}

	return &DB{DB: sqlDB, dialect: cfg.Dialect}, nil
}

// Dialect returns the active dialect
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Rebind rewrites ? placeholders for the active dialect
func (db *DB) Rebind(query string) string {
	return Rebind(db.dialect, query)
}

// ExecContext runs a statement written with ? placeholders
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.DB.ExecContext(ctx, db.Rebind(query), args...)
}

// QueryContext runs a query written with ? placeholders
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.DB.QueryContext(ctx, db.Rebind(query), args...)
}

// QueryRowContext runs a single-row query written with ? placeholders
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.DB.QueryRowContext(ctx, db.Rebind(query), args...)
}

// Tx is a transaction that rebinds like DB
type Tx struct {
	tx      *sql.Tx
	dialect Dialect
}

// ExecContext runs a statement inside the transaction
func (t *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, Rebind(t.dialect, query), args...)
}

// QueryRowContext runs a single-row query inside the transaction
func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, Rebind(t.dialect, query), args...)
}

// WithTx runs fn in a transaction, committing when fn returns nil.
// fn must only use the Tx it is given.
func (db *DB) WithTx(ctx context.Context, fn func(*Tx) error) error {
	sqlTx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}

	if err := fn(&Tx{tx: sqlTx, dialect: db.dialect}); err != nil {
		_ = sqlTx.Rollback()
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

// Rebind converts ? placeholders to $n for postgres. Placeholders inside
// single-quoted literals are left alone.
func Rebind(dialect Dialect, query string) string {
	if dialect != DialectPostgres || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Placeholders returns term repeated n times, comma separated. term holds
// one ? placeholder, for example "?" or "LOWER(?)".
func Placeholders(n int, term string) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat(term+", ", n), ", ")
}

// IsUniqueViolation reports whether err is a unique or primary key conflict
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key value")
}

// ToMillis stores times as UTC unix milliseconds
func ToMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

// FromMillis reads a stored timestamp
func FromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}
