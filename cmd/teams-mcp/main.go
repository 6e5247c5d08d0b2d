package main

import (
	"log/slog"
	"os"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/teams-mcp/internal/auth"
	"github.com/custodia-labs/teams-mcp/internal/cli"
	"github.com/custodia-labs/teams-mcp/internal/config"
	"github.com/custodia-labs/teams-mcp/internal/graph"
	"github.com/custodia-labs/teams-mcp/internal/logger"
	"github.com/custodia-labs/teams-mcp/internal/teams"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cli.SetVersion(version)

	settings, err := config.Load("")
	if err != nil {
		// Stderr only: stdout belongs to the MCP transport.
		logger.New(logger.Config{}).Error("load config", "error", err)
		return 1
	}

	logLevel := new(slog.LevelVar)
	logLevel.Set(settings.Log.SlogLevel())
	log := logger.New(logger.Config{Level: logLevel, JSON: settings.Log.JSON})

	// The Graph client honours the settings file for base URL and rate
	// limits; credentials always come from the live environment.
	clientFactory := func(tokens oauth2.TokenSource) *graph.Client {
		return graph.NewClientWithConfig(tokens, log, graph.Config{
			BaseURL: settings.Graph.BaseURL,
			RateLimit: graph.RateLimitConfig{
				RequestsPerSecond: settings.Graph.RequestsPerSecond,
				BurstSize:         settings.Graph.Burst,
			},
		})
	}

	session := auth.NewSessionWithOptions(auth.Options{
		ClientFactory: clientFactory,
		Logger:        log,
	})

	teamsService := teams.NewService(session, log)

	cli.SetServices(&cli.Services{
		Session:  session,
		Teams:    teamsService,
		Logger:   log,
		LogLevel: logLevel,
	})

	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}
