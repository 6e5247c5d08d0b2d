package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListTeamsInput has no parameters.
type ListTeamsInput struct{}

// ListChannelsInput identifies a team.
type ListChannelsInput struct {
	TeamID string `json:"team_id" jsonschema:"The ID of the team"`
}

// ListTeamMembersInput identifies a team.
type ListTeamMembersInput struct {
	TeamID string `json:"team_id" jsonschema:"The ID of the team"`
}

func (s *Server) registerListTeams() error {
	return addTool(s, "list_teams",
		"List the Microsoft Teams teams visible to the current credential.",
		func(ctx context.Context, _ ListTeamsInput) (*mcp.CallToolResult, error) {
			result, err := s.svc.ListTeams(ctx)
			if err != nil {
				return nil, err
			}
			return jsonResult(result)
		})
}

func (s *Server) registerListChannels() error {
	return addTool(s, "list_channels",
		"List the channels of a team.",
		func(ctx context.Context, in ListChannelsInput) (*mcp.CallToolResult, error) {
			result, err := s.svc.ListChannels(ctx, in.TeamID)
			if err != nil {
				return nil, err
			}
			return jsonResult(result)
		})
}

func (s *Server) registerListTeamMembers() error {
	return addTool(s, "list_team_members",
		"List the members of a team with their roles and email addresses.",
		func(ctx context.Context, in ListTeamMembersInput) (*mcp.CallToolResult, error) {
			result, err := s.svc.ListMembers(ctx, in.TeamID)
			if err != nil {
				return nil, err
			}
			return jsonResult(result)
		})
}
