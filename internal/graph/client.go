// Package graph implements a minimal authenticated REST client for the
// Microsoft Graph v1.0 API, plus the supporting error taxonomy, request rate
// limiting and bearer-token shape validation.
//
// The client is deliberately generic: callers pass a relative resource path
// and optional query options, and decode the JSON response into their own
// types. Authentication is delegated to an oauth2.TokenSource supplied at
// construction, so the same client works for pre-issued static tokens and for
// tokens minted per request by a credential flow.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/teams-mcp/internal/logger"
)

// BaseURL is the Microsoft Graph v1.0 endpoint.
const BaseURL = "https://graph.microsoft.com/v1.0"

const requestTimeout = 30 * time.Second

// Config holds optional client configuration.
type Config struct {
	// BaseURL overrides the Graph endpoint. Used by tests.
	BaseURL string
	// HTTPClient overrides the underlying HTTP client.
	HTTPClient *http.Client
	// RateLimit overrides the default request rate limit.
	RateLimit RateLimitConfig
}

// Client is an authenticated Microsoft Graph REST client.
// A fresh token is requested from the token source for every call.
type Client struct {
	baseURL     string
	tokens      oauth2.TokenSource
	httpClient  *http.Client
	rateLimiter *RateLimiter
	log         logger.Logger
}

// NewClient creates a Graph client with default configuration.
func NewClient(tokens oauth2.TokenSource, log logger.Logger) *Client {
	return NewClientWithConfig(tokens, log, Config{})
}

// NewClientWithConfig creates a Graph client with explicit configuration.
func NewClientWithConfig(tokens oauth2.TokenSource, log logger.Logger, cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = BaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	limiter := NewRateLimiter()
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = NewRateLimiterWithConfig(cfg.RateLimit)
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{
		baseURL:     baseURL,
		tokens:      tokens,
		httpClient:  httpClient,
		rateLimiter: limiter,
		log:         log,
	}
}

// Call performs an authenticated Graph request.
//
// path is relative to the v1.0 endpoint (e.g. "/me/joinedTeams"). When out is
// non-nil the JSON response body is decoded into it; empty and 204 responses
// are skipped. Non-2xx responses are translated through WrapError.
func (c *Client) Call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("get access token: %w", err)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader = http.NoBody
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("client-request-id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("graph request", "method", method, "path", path, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graph request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if IsRateLimited(resp.StatusCode) {
			c.rateLimiter.RecordRateLimitError(parseRetryAfter(resp.Header.Get("Retry-After")))
		}
		return fmt.Errorf("graph %s %s failed with status %d: %s: %w",
			method, path, resp.StatusCode, truncate(string(respBody), 200), WrapError(resp.StatusCode))
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// Get performs an authenticated GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Call(ctx, http.MethodGet, path, query, nil, out)
}

// Post performs an authenticated POST request.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Call(ctx, http.MethodPost, path, nil, body, out)
}

// Patch performs an authenticated PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Call(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete performs an authenticated DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Call(ctx, http.MethodDelete, path, nil, nil, nil)
}

// parseRetryAfter parses a Retry-After header value in seconds.
func parseRetryAfter(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}

// truncate shortens s for inclusion in error messages.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
