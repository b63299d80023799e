package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	redisclient "github.com/KirkDiggler/rpg-builder/internal/redis"
	abilitysession "github.com/KirkDiggler/rpg-builder/internal/repositories/ability_session"
)

var sweepDelete bool

var sweepCmd = &cobra.Command{
	Use:   "sweep-sessions",
	Short: "Find corrupt or dangling ability sessions in Redis",
	Long: `Scan ability session keys for payloads that no longer decode and player
index entries whose session is gone. Nothing is removed unless --delete is set.`,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().BoolVar(&sweepDelete, "delete", false, "Delete flagged keys")
}

func runSweep(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := redisclient.NewClientFromURL(cfg.RedisURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() {
		_ = client.Close() // nolint:errcheck
	}()

	out, err := abilitysession.Sweep(cmd.Context(), client, abilitysession.SweepInput{Delete: sweepDelete})
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	for _, key := range out.Corrupt {
		slog.Warn("Corrupt ability session", "key", key)
	}
	for _, key := range out.Dangling {
		slog.Warn("Dangling player index", "key", key)
	}
	slog.Info("Sweep complete",
		"checked", out.Checked,
		"corrupt", len(out.Corrupt),
		"dangling", len(out.Dangling),
		"deleted", out.Deleted)

	return nil
}
