package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/teams-mcp/internal/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Long: `Start the MCP server. The protocol is spoken on stdin/stdout;
diagnostics go to stderr only.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	server, err := mcpserver.NewServer(mcpserver.Config{
		Name:    "teams-mcp",
		Version: version,
	}, session, teamsService, log)
	if err != nil {
		return fmt.Errorf("create MCP server: %w", err)
	}

	log.Info("MCP server ready", "name", "teams-mcp", "version", version, "transport", "stdio")

	if err := server.Run(ctx, &mcpsdk.StdioTransport{}); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
