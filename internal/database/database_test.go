package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-builder/internal/database"
	"github.com/KirkDiggler/rpg-builder/internal/errors"
)

type DatabaseTestSuite struct {
	suite.Suite
	ctx context.Context
	db  *database.DB
}

func TestDatabaseSuite(t *testing.T) {
	suite.Run(t, new(DatabaseTestSuite))
}

func (s *DatabaseTestSuite) SetupTest() {
	s.ctx = context.Background()

	db, err := database.Open(s.ctx, &database.Config{
		Dialect: database.DialectSQLite,
		URL:     "file::memory:?_pragma=foreign_keys(1)",
	})
	s.Require().NoError(err)
	s.db = db
}

func (s *DatabaseTestSuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
}

func (s *DatabaseTestSuite) TestOpenValidatesConfig() {
	_, err := database.Open(s.ctx, &database.Config{Dialect: "mysql", URL: "x"})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = database.Open(s.ctx, nil)
	s.Assert().Error(err)
}

func (s *DatabaseTestSuite) TestMigrateIsIdempotent() {
	applied, err := database.Migrate(s.ctx, s.db)
	s.Require().NoError(err)

	names, err := database.MigrationNames()
	s.Require().NoError(err)
	s.Assert().Equal(names, applied)
	s.Assert().Equal("001_init.sql", names[0])

	applied, err = database.Migrate(s.ctx, s.db)
	s.Require().NoError(err)
	s.Assert().Empty(applied)

	var count int
	s.Require().NoError(s.db.QueryRowContext(s.ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	s.Assert().Equal(len(names), count)
}

func (s *DatabaseTestSuite) TestSeedDataIsLoaded() {
	_, err := database.Migrate(s.ctx, s.db)
	s.Require().NoError(err)

	var name string
	err = s.db.QueryRowContext(s.ctx, `SELECT name FROM items WHERE id = ?`, "item-backpack").Scan(&name)
	s.Require().NoError(err)
	s.Assert().Equal("Backpack", name)

	var classes int
	s.Require().NoError(s.db.QueryRowContext(s.ctx, `SELECT COUNT(*) FROM classes`).Scan(&classes))
	s.Assert().Equal(12, classes)
}

func (s *DatabaseTestSuite) TestWithTxRollsBack() {
	_, err := database.Migrate(s.ctx, s.db)
	s.Require().NoError(err)

	err = s.db.WithTx(s.ctx, func(tx *database.Tx) error {
		if _, err := tx.ExecContext(s.ctx,
			`INSERT INTO campaigns (id, name, dm_player_id, join_code, created_at) VALUES (?, ?, ?, ?, ?)`,
			"camp-1", "Lost Mine", "player-1", "ABC-123", 0); err != nil {
			return err
		}
		return errors.Internal("boom")
	})
	s.Require().Error(err)

	var count int
	s.Require().NoError(s.db.QueryRowContext(s.ctx, `SELECT COUNT(*) FROM campaigns`).Scan(&count))
	s.Assert().Zero(count)
}

func (s *DatabaseTestSuite) TestUniqueViolationIsDetected() {
	_, err := database.Migrate(s.ctx, s.db)
	s.Require().NoError(err)

	_, err = s.db.ExecContext(s.ctx,
		`INSERT INTO items (id, name) VALUES (?, ?)`, "item-backpack", "Another Backpack")
	s.Require().Error(err)
	s.Assert().True(database.IsUniqueViolation(err))
}

func TestRebind(t *testing.T) {
	testCases := []struct {
		name     string
		dialect  database.Dialect
		query    string
		expected string
	}{
		{"sqlite untouched", database.DialectSQLite, "SELECT * FROM t WHERE a = ? AND b = ?", "SELECT * FROM t WHERE a = ? AND b = ?"},
		{"postgres numbered", database.DialectPostgres, "SELECT * FROM t WHERE a = ? AND b = ?", "SELECT * FROM t WHERE a = $1 AND b = $2"},
		{"postgres skips literals", database.DialectPostgres, "SELECT '?' FROM t WHERE a = ?", "SELECT '?' FROM t WHERE a = $1"},
		{"no placeholders", database.DialectPostgres, "SELECT 1", "SELECT 1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := database.Rebind(tc.dialect, tc.query); got != tc.expected {
				t.Errorf("Rebind() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestPlaceholders(t *testing.T) {
	if got := database.Placeholders(3, "?"); got != "?, ?, ?" {
		t.Errorf("Placeholders(3) = %q", got)
	}
	if got := database.Placeholders(2, "LOWER(?)"); got != "LOWER(?), LOWER(?)" {
		t.Errorf("Placeholders(2, LOWER) = %q", got)
	}
	if got := database.Placeholders(0, "?"); got != "" {
		t.Errorf("Placeholders(0) = %q", got)
	}
}

func TestExtractUpMigration(t *testing.T) {
	content := "-- header\n-- +migrate Up\nCREATE TABLE a (id TEXT);\n-- +migrate Down\nDROP TABLE a;\n"
	if got := database.ExtractUpMigration(content); got != "\nCREATE TABLE a (id TEXT);\n" {
		t.Errorf("ExtractUpMigration() = %q", got)
	}
	if got := database.ExtractUpMigration("SELECT 1;"); got != "SELECT 1;" {
		t.Errorf("ExtractUpMigration() without markers = %q", got)
	}
}
