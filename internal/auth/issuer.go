package auth

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/teams-mcp/internal/graph"
)

// TokenIssuer requests app-only access tokens from an identity provider.
// Implementations must be safe to call repeatedly; every call performs a
// fresh credential grant.
type TokenIssuer interface {
	RequestToken(ctx context.Context) (*oauth2.Token, error)
}

// IssuerFactory builds a TokenIssuer from client-credential configuration.
// Tests substitute a fake; the default uses azidentity.
type IssuerFactory func(tenantID, clientID, clientSecret string) (TokenIssuer, error)

// clientSecretIssuer issues tokens via the Azure AD client credentials flow.
type clientSecretIssuer struct {
	credential *azidentity.ClientSecretCredential
}

// NewClientSecretIssuer creates a TokenIssuer backed by an Azure AD
// confidential client application.
func NewClientSecretIssuer(tenantID, clientID, clientSecret string) (TokenIssuer, error) {
	credential, err := azidentity.NewClientSecretCredential(tenantID, clientID, clientSecret, nil)
	if err != nil {
		return nil, fmt.Errorf("create client secret credential: %w", err)
	}
	return &clientSecretIssuer{credential: credential}, nil
}

// RequestToken requests a token scoped to Microsoft Graph.
func (i *clientSecretIssuer) RequestToken(ctx context.Context) (*oauth2.Token, error) {
	token, err := i.credential.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{graph.DefaultScope},
	})
	if err != nil {
		return nil, fmt.Errorf("request token: %w", err)
	}
	return &oauth2.Token{
		AccessToken: token.Token,
		Expiry:      token.ExpiresOn,
	}, nil
}

// issuerTokenSource adapts a TokenIssuer to oauth2.TokenSource. Every Token
// call triggers a fresh credential grant; nothing is cached here.
type issuerTokenSource struct {
	issuer TokenIssuer
}

func (s issuerTokenSource) Token() (*oauth2.Token, error) {
	return s.issuer.RequestToken(context.Background())
}
