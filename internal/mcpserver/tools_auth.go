package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AuthStatusInput has no parameters.
type AuthStatusInput struct{}

// registerAuthStatus registers the auth_status tool. It reports whether the
// server holds a working Graph credential, probing Graph to confirm.
func (s *Server) registerAuthStatus() error {
	return addTool(s, "auth_status",
		"Check whether the server is authenticated against Microsoft Graph. Returns the tenant and client IDs when authentication works.",
		func(ctx context.Context, _ AuthStatusInput) (*mcp.CallToolResult, error) {
			return jsonResult(s.session.GetAuthStatus(ctx))
		})
}
