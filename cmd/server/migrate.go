package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-builder/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long:  `Apply the embedded schema and reference data migrations to DATABASE_URL. Already applied migrations are skipped.`,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close() // nolint:errcheck
	}()

	applied, err := database.Migrate(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	slog.Info("Migrations complete", "applied", len(applied), "names", applied)
	return nil
}
