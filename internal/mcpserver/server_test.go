package mcpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/teams-mcp/internal/auth"
	"github.com/custodia-labs/teams-mcp/internal/graph"
	"github.com/custodia-labs/teams-mcp/internal/teams"
)

// fakeSession is a ClientSource with a fixed client and status.
type fakeSession struct {
	client *graph.Client
	err    error
}

func (f *fakeSession) GetClient(context.Context) (*graph.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.client, nil
}

func (f *fakeSession) GetAuthStatus(context.Context) auth.Status {
	if f.err != nil {
		return auth.Status{IsAuthenticated: false}
	}
	return auth.Status{IsAuthenticated: true, TenantID: "t", ClientID: "c"}
}

func (f *fakeSession) IsAuthenticated() bool {
	return f.err == nil
}

// newGraphFake returns a session backed by an httptest Graph server.
func newGraphFake(t *testing.T, handler http.HandlerFunc) *fakeSession {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})
	client := graph.NewClientWithConfig(tokens, nil, graph.Config{BaseURL: server.URL})
	return &fakeSession{client: client}
}

// connectServer builds the server and an SDK client joined by in-memory
// transports, returning the client session for protocol calls.
func connectServer(t *testing.T, session auth.ClientSource) *mcp.ClientSession {
	t.Helper()

	svc := teams.NewService(session, nil)
	server, err := NewServer(Config{Name: "teams-mcp", Version: "test"}, session, svc, nil)
	require.NoError(t, err)

	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serverSession, err := server.mcpServer.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = clientSession.Close() })

	return clientSession
}

func TestNewServer_Validation(t *testing.T) {
	session := &fakeSession{err: &auth.AuthenticationError{}}
	svc := teams.NewService(session, nil)

	tests := []struct {
		name    string
		cfg     Config
		session auth.ClientSource
		svc     *teams.Service
		wantErr string
	}{
		{
			name:    "missing name",
			cfg:     Config{Version: "1.0.0"},
			session: session,
			svc:     svc,
			wantErr: "name is required",
		},
		{
			name:    "missing version",
			cfg:     Config{Name: "teams-mcp"},
			session: session,
			svc:     svc,
			wantErr: "version is required",
		},
		{
			name:    "missing session",
			cfg:     Config{Name: "teams-mcp", Version: "1.0.0"},
			svc:     svc,
			wantErr: "session is required",
		},
		{
			name:    "missing service",
			cfg:     Config{Name: "teams-mcp", Version: "1.0.0"},
			session: session,
			wantErr: "teams service is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewServer(tt.cfg, tt.session, tt.svc, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestServer_ListTools(t *testing.T) {
	session := connectServer(t, &fakeSession{err: &auth.AuthenticationError{}})

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %q has no description", tool.Name)
	}
	sort.Strings(names)

	wantNames := []string{
		"auth_status",
		"delete_channel_message",
		"get_channel_message",
		"get_user",
		"list_channel_messages",
		"list_channels",
		"list_message_replies",
		"list_team_members",
		"list_teams",
		"list_users",
		"reply_to_channel_message",
		"send_channel_message",
		"update_channel_message",
	}
	assert.Equal(t, wantNames, names)
}

func TestServer_AuthStatus_Unauthenticated(t *testing.T) {
	session := connectServer(t, &fakeSession{err: &auth.AuthenticationError{}})

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "auth_status",
		Arguments: map[string]any{},
	})

	require.NoError(t, err)
	assert.False(t, result.IsError)
	require.NotEmpty(t, result.Content)
	text := result.Content[0].(*mcp.TextContent).Text
	assert.Contains(t, text, `"isAuthenticated": false`)
}

func TestServer_ToolFailure_BecomesErrorResult(t *testing.T) {
	// An unauthenticated tool call must surface as an IsError result with
	// the variable names in the text, never as a protocol error.
	session := connectServer(t, &fakeSession{err: &auth.AuthenticationError{}})

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "list_teams",
		Arguments: map[string]any{},
	})

	require.NoError(t, err)
	assert.True(t, result.IsError)
	require.NotEmpty(t, result.Content)
	text := result.Content[0].(*mcp.TextContent).Text
	assert.Contains(t, text, "Error:")
	assert.Contains(t, text, "AZURE_TENANT_ID")
	assert.Contains(t, text, "AZURE_CLIENT_ID")
	assert.Contains(t, text, "AZURE_CLIENT_SECRET")
}

func TestServer_ListTeams(t *testing.T) {
	fake := newGraphFake(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/me/joinedTeams", r.URL.Path)
		_, _ = w.Write([]byte(`{"value":[{"id":"team-1","displayName":"Engineering"}]}`))
	})
	session := connectServer(t, fake)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "list_teams",
		Arguments: map[string]any{},
	})

	require.NoError(t, err)
	assert.False(t, result.IsError)
	text := result.Content[0].(*mcp.TextContent).Text
	assert.Contains(t, text, "team-1")
	assert.Contains(t, text, "Engineering")
}

func TestServer_SendChannelMessage(t *testing.T) {
	fake := newGraphFake(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/teams/team-1/channels/chan-1/messages", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"msg-1"}`))
	})
	session := connectServer(t, fake)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "send_channel_message",
		Arguments: map[string]any{
			"team_id":    "team-1",
			"channel_id": "chan-1",
			"content":    "hello",
		},
	})

	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, result.Content[0].(*mcp.TextContent).Text, "msg-1")
}

func TestSendInput_Mapping(t *testing.T) {
	in := sendInput("team-1", "chan-1", "hi @Ada", "html",
		[]MentionParam{{UserID: "u-1", DisplayName: "Ada"}},
		[]ImageParam{{ContentType: "image/png", ContentBytes: "aGk="}},
	)

	assert.Equal(t, "team-1", in.TeamID)
	assert.Equal(t, "chan-1", in.ChannelID)
	assert.Equal(t, "html", in.ContentType)
	require.Len(t, in.Mentions, 1)
	assert.Equal(t, teams.MentionInput{UserID: "u-1", DisplayName: "Ada"}, in.Mentions[0])
	require.Len(t, in.Images, 1)
	assert.Equal(t, teams.ImageInput{ContentType: "image/png", ContentBytes: "aGk="}, in.Images[0])
}
