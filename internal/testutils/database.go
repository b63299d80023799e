package testutils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-builder/internal/database"
)

// CreateTestDB opens a migrated in-memory SQLite database, seeded with the
// reference catalog and classes
func CreateTestDB(t *testing.T) *database.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, &database.Config{
		Dialect: database.DialectSQLite,
		URL:     "file::memory:?_pragma=foreign_keys(1)",
	})
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	_, err = database.Migrate(ctx, db)
	require.NoError(t, err, "failed to migrate test database")

	return db
}
