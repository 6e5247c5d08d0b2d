// Package cli defines the teams-mcp command tree.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/teams-mcp/internal/auth"
	"github.com/custodia-labs/teams-mcp/internal/logger"
	"github.com/custodia-labs/teams-mcp/internal/teams"
)

var (
	// version is set by goreleaser ldflags via SetVersion.
	version = "dev"

	// verbose enables debug logging.
	verbose bool

	// Injected service implementations.
	session      auth.ClientSource
	teamsService *teams.Service
	log          logger.Logger
	logLevel     *slog.LevelVar
)

// Services holds the dependencies injected into CLI commands at startup.
type Services struct {
	Session  auth.ClientSource
	Teams    *teams.Service
	Logger   logger.Logger
	LogLevel *slog.LevelVar
}

// SetServices injects service implementations for CLI commands.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	session = s.Session
	teamsService = s.Teams
	log = s.Logger
	logLevel = s.LogLevel
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
}

// rootCmd is the base command. Running it without a subcommand starts the
// stdio MCP server, which is what MCP host configurations expect.
var rootCmd = &cobra.Command{
	Use:   "teams-mcp",
	Short: "MCP server exposing Microsoft Teams operations",
	Long: `teams-mcp is a Model Context Protocol server that exposes Microsoft Teams
operations (teams, channels, messages, members, users) as tools backed by
Microsoft Graph.

Authentication is taken from the environment: either a pre-issued bearer
token in AUTH_TOKEN, or an Azure AD client-credential application configured
through AZURE_TENANT_ID, AZURE_CLIENT_ID and AZURE_CLIENT_SECRET.`,
	RunE: runServe,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose debug output")
	cobra.OnInitialize(func() {
		if verbose && logLevel != nil {
			logLevel.Set(slog.LevelDebug)
		}
	})
}
