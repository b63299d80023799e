// Package client provides commands that call the character builder over gRPC
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-builder/internal/handlers/builder/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
	output     string
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the character builder",
	Long:  `Client commands make real gRPC requests against a running rpg-builder server.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	ClientCmd.PersistentFlags().StringVarP(&output, "output", "o", "json", "Output format (json|yaml)")

	ClientCmd.AddCommand(abilityCmd)
	ClientCmd.AddCommand(characterCmd)
	ClientCmd.AddCommand(campaignCmd)
	ClientCmd.AddCommand(dmCmd)
}

// invoke calls one method and prints the decoded response
func invoke(method string, req, resp any) error {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := v1alpha1.NewClient(conn).Call(ctx, method, req, resp); err != nil {
		return fmt.Errorf("%s failed: %w", method, err)
	}

	return printResponse(resp)
}

func printResponse(resp any) error {
	switch output {
	case "yaml":
		// round trip through JSON so field names match the wire
		data, err := json.Marshal(resp)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer func() {
			_ = enc.Close() // nolint:errcheck
		}()
		return enc.Encode(generic)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}
