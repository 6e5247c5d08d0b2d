package teams

import (
	"context"
	"fmt"
	"net/url"
)

// userSelect keeps user listings to the fields the tools render.
const userSelect = "id,displayName,mail,userPrincipalName,jobTitle"

// ListUsers lists directory users. filter is an optional OData $filter
// expression (e.g. "startswith(displayName,'Ada')").
func (s *Service) ListUsers(ctx context.Context, filter string, limit int) ([]User, error) {
	client, err := s.clients.GetClient(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("$select", userSelect)
	query.Set("$top", clampLimit(limit))
	if filter != "" {
		query.Set("$filter", filter)
	}

	var resp listResponse[User]
	if err := client.Get(ctx, "/users", query, &resp); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return resp.Value, nil
}

// GetUser retrieves a user by object ID or user principal name.
func (s *Service) GetUser(ctx context.Context, idOrPrincipal string) (*User, error) {
	if idOrPrincipal == "" {
		return nil, fmt.Errorf("user ID or principal name is required")
	}

	client, err := s.clients.GetClient(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("$select", userSelect)

	var user User
	path := "/users/" + url.PathEscape(idOrPrincipal)
	if err := client.Get(ctx, path, query, &user); err != nil {
		return nil, fmt.Errorf("get user %s: %w", idOrPrincipal, err)
	}
	return &user, nil
}
