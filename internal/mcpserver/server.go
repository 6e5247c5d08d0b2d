// Package mcpserver exposes the Teams service as MCP tools.
//
// Tool handlers are thin request/response formatters: they validate nothing
// beyond their input shape, fetch results from the Teams service (which pulls
// an authenticated Graph client from the credential manager per invocation)
// and render either JSON text or a user-facing error result. A handler never
// panics and never terminates the process; every failure becomes an IsError
// tool result for the calling agent.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/teams-mcp/internal/auth"
	"github.com/custodia-labs/teams-mcp/internal/logger"
	"github.com/custodia-labs/teams-mcp/internal/teams"
)

// Config holds MCP server identity.
type Config struct {
	Name    string
	Version string
}

// Server wraps the MCP SDK server with the Teams service and credential
// manager.
type Server struct {
	mcpServer *mcp.Server
	session   auth.ClientSource
	svc       *teams.Service
	log       logger.Logger
}

// NewServer creates an MCP server and registers all Teams tools.
func NewServer(cfg Config, session auth.ClientSource, svc *teams.Service, log logger.Logger) (*Server, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("server name is required")
	}
	if cfg.Version == "" {
		return nil, fmt.Errorf("server version is required")
	}
	if session == nil {
		return nil, fmt.Errorf("session is required")
	}
	if svc == nil {
		return nil, fmt.Errorf("teams service is required")
	}
	if log == nil {
		log = logger.NewNop()
	}

	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{Name: cfg.Name, Version: cfg.Version}, nil),
		session:   session,
		svc:       svc,
		log:       log,
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("register tools: %w", err)
	}
	return s, nil
}

// Run starts the MCP server on the given transport. Blocks until the
// transport closes or ctx is cancelled.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.mcpServer.Run(ctx, transport)
}

// registerTools registers every tool exposed by this server.
func (s *Server) registerTools() error {
	registrations := []func() error{
		s.registerAuthStatus,
		s.registerListTeams,
		s.registerListChannels,
		s.registerListTeamMembers,
		s.registerListChannelMessages,
		s.registerGetChannelMessage,
		s.registerListMessageReplies,
		s.registerSendChannelMessage,
		s.registerReplyToChannelMessage,
		s.registerUpdateChannelMessage,
		s.registerDeleteChannelMessage,
		s.registerListUsers,
		s.registerGetUser,
	}
	for _, register := range registrations {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}

// addTool infers the input schema for In and registers a typed handler.
func addTool[In any](s *Server, name, description string, handler func(ctx context.Context, in In) (*mcp.CallToolResult, error)) error {
	inputSchema, err := jsonschema.For[In](nil)
	if err != nil {
		return fmt.Errorf("create input schema for %s: %w", name, err)
	}

	tool := &mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: inputSchema,
	}

	mcp.AddTool(s.mcpServer, tool, func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
		result, err := handler(ctx, in)
		if err != nil {
			// Tool failures surface to the agent as error results, never as
			// protocol errors: the host process must keep serving.
			s.log.Warn("tool call failed", "tool", name, "error", err)
			return errorResult(err), nil, nil
		}
		return result, nil, nil
	})
	return nil
}

// jsonResult renders v as an indented JSON text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// textResult wraps plain text in a tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// errorResult converts an error into a user-facing error result.
func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + err.Error()}},
		IsError: true,
	}
}
