package database

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-builder/internal/errors"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const (
	migrationTable = "schema_migrations"
	migrationDir   = "migrations"

	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

// Migrate applies the embedded migrations in file name order, each at most
// once, and returns the names it applied
func Migrate(ctx context.Context, db *DB) ([]string, error) {
	return applyMigrations(ctx, db, migrationFS, migrationDir)
}

// MigrationNames lists the embedded migrations in apply order
func MigrationNames() ([]string, error) {
	return listMigrations(migrationFS, migrationDir)
}

func applyMigrations(ctx context.Context, db *DB, migrations fs.FS, root string) ([]string, error) {
	if db == nil {
		return nil, errors.InvalidArgument("database is required")
	}

	files, err := listMigrations(migrations, root)
	if err != nil {
		return nil, err
	}

	createSQL := `CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
    name TEXT PRIMARY KEY,
    applied_at BIGINT NOT NULL
)`
	if _, err := db.ExecContext(ctx, createSQL); err != nil {
		return nil, errors.Wrap(err, "failed to ensure migration table")
	}

	var applied []string
	for _, name := range files {
		done, err := isApplied(ctx, db, name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to check migration %s", name)
		}
		if done {
			continue
		}

		content, err := fs.ReadFile(migrations, root+"/"+name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read migration %s", name)
		}

		upSQL := ExtractUpMigration(string(content))
		err = db.WithTx(ctx, func(tx *Tx) error {
			if strings.TrimSpace(upSQL) != "" {
				if _, err := tx.tx.ExecContext(ctx, upSQL); err != nil {
					// Postgres aborts the transaction on any error, so only
					// SQLite can shrug off DDL that already ran
					if db.dialect != DialectSQLite || !IsAlreadyExistsError(err) {
						return errors.Wrapf(err, "failed to apply migration %s", name)
					}
				}
			}

			_, err := tx.ExecContext(ctx,
				`INSERT INTO `+migrationTable+` (name, applied_at) VALUES (?, ?) ON CONFLICT (name) DO NOTHING`,
				name, ToMillis(time.Now()))
			if err != nil {
				return errors.Wrapf(err, "failed to record migration %s", name)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		slog.Info("Applied migration", "name", name, "dialect", db.dialect)
		applied = append(applied, name)
	}

	return applied, nil
}

func listMigrations(migrations fs.FS, root string) ([]string, error) {
	entries, err := fs.ReadDir(migrations, root)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read migrations")
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// ExtractUpMigration returns the SQL between the Up and Down markers. A
// file without markers is all Up.
func ExtractUpMigration(content string) string {
	upIdx := strings.Index(content, upMarker)
	if upIdx == -1 {
		return content
	}
	rest := content[upIdx+len(upMarker):]
	if downIdx := strings.Index(rest, downMarker); downIdx != -1 {
		return rest[:downIdx]
	}
	return rest
}

// IsAlreadyExistsError reports whether err came from DDL that already ran
func IsAlreadyExistsError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate column name")
}

func isApplied(ctx context.Context, db *DB, name string) (bool, error) {
	var found int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM `+migrationTable+` WHERE name = ?`, name).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
