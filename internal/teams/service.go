// Package teams implements Microsoft Teams operations over the Graph REST
// client: teams, channels, channel messages, members and directory users.
//
// Every operation fetches the Graph client from the credential manager at
// call time, so an unconfigured process fails with a descriptive
// authentication error rather than a nil dereference.
package teams

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/custodia-labs/teams-mcp/internal/auth"
	"github.com/custodia-labs/teams-mcp/internal/graph"
	"github.com/custodia-labs/teams-mcp/internal/logger"
)

// defaultPageSize is used when the caller does not limit a listing.
// Microsoft Graph caps $top at 50 for channel messages.
const defaultPageSize = 50

// Service exposes Teams operations backed by Microsoft Graph.
type Service struct {
	clients auth.ClientSource
	log     logger.Logger
}

// NewService creates a Teams service. The client source is consulted on
// every call; the service holds no credential state of its own.
func NewService(clients auth.ClientSource, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{clients: clients, log: log}
}

// ListTeams lists the teams visible to the current credential.
//
// With a delegated token /me/joinedTeams returns the signed-in user's teams.
// That endpoint is invalid for app-only credentials, which Graph rejects with
// 400, so we fall back to listing team-provisioned groups.
func (s *Service) ListTeams(ctx context.Context) ([]Team, error) {
	client, err := s.clients.GetClient(ctx)
	if err != nil {
		return nil, err
	}

	var resp listResponse[Team]
	err = client.Get(ctx, "/me/joinedTeams", nil, &resp)
	if err == nil {
		return resp.Value, nil
	}
	if !errors.Is(err, graph.ErrBadRequest) {
		return nil, fmt.Errorf("list joined teams: %w", err)
	}

	query := url.Values{}
	query.Set("$filter", "resourceProvisioningOptions/Any(x:x eq 'Team')")
	query.Set("$select", "id,displayName,description")
	resp = listResponse[Team]{}
	if err := client.Get(ctx, "/groups", query, &resp); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return resp.Value, nil
}

// ListChannels lists the channels of a team.
func (s *Service) ListChannels(ctx context.Context, teamID string) ([]Channel, error) {
	if teamID == "" {
		return nil, fmt.Errorf("team ID is required")
	}

	client, err := s.clients.GetClient(ctx)
	if err != nil {
		return nil, err
	}

	var resp listResponse[Channel]
	path := fmt.Sprintf("/teams/%s/channels", url.PathEscape(teamID))
	if err := client.Get(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	return resp.Value, nil
}

// ListMembers lists the members of a team.
func (s *Service) ListMembers(ctx context.Context, teamID string) ([]Member, error) {
	if teamID == "" {
		return nil, fmt.Errorf("team ID is required")
	}

	client, err := s.clients.GetClient(ctx)
	if err != nil {
		return nil, err
	}

	var resp listResponse[Member]
	path := fmt.Sprintf("/teams/%s/members", url.PathEscape(teamID))
	if err := client.Get(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return resp.Value, nil
}

// clampLimit normalises a caller-supplied page size.
func clampLimit(limit int) string {
	if limit <= 0 || limit > defaultPageSize {
		limit = defaultPageSize
	}
	return strconv.Itoa(limit)
}
