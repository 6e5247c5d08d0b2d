package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListUsersInput filters and limits a directory user listing.
type ListUsersInput struct {
	Filter string `json:"filter,omitempty" jsonschema:"Optional OData $filter expression, e.g. startswith(displayName,'Ada')"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of users to return (default and maximum 50)"`
}

// GetUserInput identifies a user.
type GetUserInput struct {
	UserID string `json:"user_id" jsonschema:"User object ID or user principal name"`
}

func (s *Server) registerListUsers() error {
	return addTool(s, "list_users",
		"List directory users, optionally filtered with an OData expression.",
		func(ctx context.Context, in ListUsersInput) (*mcp.CallToolResult, error) {
			result, err := s.svc.ListUsers(ctx, in.Filter, in.Limit)
			if err != nil {
				return nil, err
			}
			return jsonResult(result)
		})
}

func (s *Server) registerGetUser() error {
	return addTool(s, "get_user",
		"Get a directory user by object ID or user principal name.",
		func(ctx context.Context, in GetUserInput) (*mcp.CallToolResult, error) {
			result, err := s.svc.GetUser(ctx, in.UserID)
			if err != nil {
				return nil, err
			}
			return jsonResult(result)
		})
}
