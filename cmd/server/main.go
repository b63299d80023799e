// Package main is the entry point for the character builder server and CLI
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-builder/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "rpg-builder",
	Short: "D&D 5e character builder",
	Long:  `rpg-builder serves character building, campaigns and the DM console over gRPC.`,
}

func main() {
	// a missing .env is fine; the environment may already be set
	_ = godotenv.Load() // nolint:errcheck

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
