// Package auth implements the credential manager for teams-mcp.
//
// A single long-lived Session owns credential acquisition, token validation
// and Graph client construction. Two mutually exclusive credential modes
// exist: a pre-issued static bearer token (AUTH_TOKEN) and the Azure AD
// client credentials flow (AZURE_TENANT_ID / AZURE_CLIENT_ID /
// AZURE_CLIENT_SECRET). The mode is resolved once, at the first
// initialisation that succeeds, and never switches for the life of the
// process even if the environment changes afterwards.
//
// Initialisation is lazy and idempotent: every GetClient/GetAuthStatus call
// attempts it while the session is uninitialised, and skips it forever after
// the first success. Failures are logged and swallowed; the caller sees them
// only as a missing client.
package auth

import (
	"context"
	"fmt"
	"os"
	"sync"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/teams-mcp/internal/graph"
	"github.com/custodia-labs/teams-mcp/internal/logger"
)

// Environment variables recognised by the credential manager.
const (
	// EnvAuthToken activates static-token mode when set. Its presence, even
	// with a malformed value, disables the client-credential path.
	EnvAuthToken = "AUTH_TOKEN"
	// EnvTenantID is the Azure AD tenant, required for client-credential mode.
	EnvTenantID = "AZURE_TENANT_ID"
	// EnvClientID is the application (client) ID, required for client-credential mode.
	EnvClientID = "AZURE_CLIENT_ID"
	// EnvClientSecret is the application secret, required for client-credential mode.
	EnvClientSecret = "AZURE_CLIENT_SECRET"
)

// probePath is the lightweight authenticated endpoint used to confirm the
// credential actually works.
const probePath = "/organization"

// Status reports whether the session holds a working credential.
// It is produced fresh on every GetAuthStatus call and never persisted.
type Status struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	TenantID        string `json:"tenantId,omitempty"`
	ClientID        string `json:"clientId,omitempty"`
}

// AuthenticationError is returned by GetClient when no credential could be
// established. Its message names the configuration the caller must provide.
type AuthenticationError struct{}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("not authenticated: set %s, %s and %s (or provide a pre-issued token via %s)",
		EnvTenantID, EnvClientID, EnvClientSecret, EnvAuthToken)
}

// ClientFactory builds a Graph client around a token source.
// Tests substitute a factory pointing at a fake Graph server.
type ClientFactory func(tokens oauth2.TokenSource) *graph.Client

// ClientSource hands out an authenticated Graph client. Tool handlers depend
// on this interface rather than on Session directly.
type ClientSource interface {
	GetClient(ctx context.Context) (*graph.Client, error)
	GetAuthStatus(ctx context.Context) Status
	IsAuthenticated() bool
}

// Options configures a Session. Zero values select production defaults.
type Options struct {
	// IssuerFactory builds the client-credential token issuer.
	IssuerFactory IssuerFactory
	// ClientFactory builds the Graph client once a credential is established.
	ClientFactory ClientFactory
	// Logger receives diagnostics. Defaults to a nop logger.
	Logger logger.Logger
}

// Session is the process-wide credential manager. Create one at startup and
// pass it to every tool handler; it lives until process exit.
type Session struct {
	mu          sync.Mutex
	initialized bool
	client      *graph.Client

	issuerFactory IssuerFactory
	clientFactory ClientFactory
	log           logger.Logger
}

var _ ClientSource = (*Session)(nil)

// NewSession creates a credential manager with production defaults.
func NewSession(log logger.Logger) *Session {
	return NewSessionWithOptions(Options{Logger: log})
}

// NewSessionWithOptions creates a credential manager with explicit
// collaborators.
func NewSessionWithOptions(opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	issuerFactory := opts.IssuerFactory
	if issuerFactory == nil {
		issuerFactory = NewClientSecretIssuer
	}
	clientFactory := opts.ClientFactory
	if clientFactory == nil {
		clientFactory = func(tokens oauth2.TokenSource) *graph.Client {
			return graph.NewClient(tokens, log)
		}
	}
	return &Session{
		issuerFactory: issuerFactory,
		clientFactory: clientFactory,
		log:           log,
	}
}

// initialize establishes the credential mode and builds the Graph client.
// Callers must hold s.mu. It is a no-op once a client exists; until then it
// runs again on every call. Failures never propagate: they are logged and the
// session stays uninitialised so a later call can retry.
func (s *Session) initialize(ctx context.Context) {
	if s.initialized {
		return
	}

	// Static-token mode. The presence of AUTH_TOKEN, valid or not, disables
	// the client-credential path entirely.
	if token := os.Getenv(EnvAuthToken); token != "" {
		if err := graph.ValidateToken(token); err != nil {
			s.log.Warn("ignoring AUTH_TOKEN", "error", err)
			return
		}
		s.client = s.clientFactory(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
		s.initialized = true
		s.log.Debug("session initialised", "mode", "static_token")
		return
	}

	tenantID := os.Getenv(EnvTenantID)
	clientID := os.Getenv(EnvClientID)
	clientSecret := os.Getenv(EnvClientSecret)
	if tenantID == "" || clientID == "" || clientSecret == "" {
		return
	}

	issuer, err := s.issuerFactory(tenantID, clientID, clientSecret)
	if err != nil {
		s.log.Warn("create token issuer", "error", err)
		return
	}

	// Request one token up front to confirm the grant works. The client's
	// token source then requests a fresh token on every Graph call.
	token, err := issuer.RequestToken(ctx)
	if err != nil {
		s.log.Warn("initial token request", "error", err)
		return
	}
	if token == nil || token.AccessToken == "" {
		s.log.Warn("token issuer returned no token")
		return
	}

	s.client = s.clientFactory(issuerTokenSource{issuer: issuer})
	s.initialized = true
	s.log.Debug("session initialised", "mode", "client_credential", "tenant_id", tenantID)
}

// GetClient returns the authenticated Graph client, initialising the session
// if needed. It performs no probe: a stale or expired credential surfaces
// only when the caller invokes the client.
func (s *Session) GetClient(ctx context.Context) (*graph.Client, error) {
	s.mu.Lock()
	s.initialize(ctx)
	client := s.client
	s.mu.Unlock()

	if client == nil {
		return nil, &AuthenticationError{}
	}
	return client, nil
}

// GetAuthStatus initialises the session if needed, then probes Microsoft
// Graph to confirm the credential is actually usable. Tenant and client IDs
// are read from the live environment, not from values captured at
// initialisation. A probe failure is reported as unauthenticated but does not
// discard the client; future calls skip re-initialisation and re-probe.
func (s *Session) GetAuthStatus(ctx context.Context) Status {
	s.mu.Lock()
	s.initialize(ctx)
	client := s.client
	s.mu.Unlock()

	if client == nil {
		return Status{IsAuthenticated: false}
	}

	if err := client.Get(ctx, probePath, nil, nil); err != nil {
		s.log.Warn("auth probe failed", "error", err)
		return Status{IsAuthenticated: false}
	}

	return Status{
		IsAuthenticated: true,
		TenantID:        os.Getenv(EnvTenantID),
		ClientID:        os.Getenv(EnvClientID),
	}
}

// IsAuthenticated reports whether initialisation has completed. It is a pure
// state read: no initialisation attempt, no network access.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized && s.client != nil
}
