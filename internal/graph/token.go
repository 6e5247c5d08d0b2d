package graph

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// GraphResource is the audience expected in tokens issued for Microsoft Graph.
const GraphResource = "https://graph.microsoft.com"

// DefaultScope is the scope requested for app-only (client credential) tokens.
const DefaultScope = "https://graph.microsoft.com/.default"

// Token validation errors.
var (
	// ErrMalformedToken indicates the token is not a three-segment bearer token
	// or its payload could not be decoded.
	ErrMalformedToken = errors.New("graph: malformed bearer token")

	// ErrWrongAudience indicates the token audience is not Microsoft Graph.
	ErrWrongAudience = errors.New("graph: token audience is not Microsoft Graph")
)

// tokenClaims is the subset of JWT payload claims we inspect.
// The audience claim may be a string or an array of strings.
type tokenClaims struct {
	Audience any `json:"aud"`
}

// ValidateToken checks that token has the shape of a Graph bearer token:
// exactly three dot-separated segments, a base64-decodable JSON payload, and
// an audience claim equal to (or containing) the Graph resource URI.
//
// This is a shape check only. The signature is not verified; Microsoft Graph
// does that on every request.
func ValidateToken(token string) error {
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedToken, len(segments))
	}

	payload, err := decodeSegment(segments[1])
	if err != nil {
		return fmt.Errorf("%w: decode payload: %v", ErrMalformedToken, err)
	}

	var claims tokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return fmt.Errorf("%w: parse payload: %v", ErrMalformedToken, err)
	}

	switch aud := claims.Audience.(type) {
	case string:
		if aud == GraphResource {
			return nil
		}
	case []any:
		for _, a := range aud {
			if s, ok := a.(string); ok && s == GraphResource {
				return nil
			}
		}
	}

	return ErrWrongAudience
}

// decodeSegment decodes a base64url JWT segment, tolerating missing padding.
func decodeSegment(segment string) ([]byte, error) {
	if data, err := base64.RawURLEncoding.DecodeString(segment); err == nil {
		return data, nil
	}
	return base64.URLEncoding.DecodeString(segment)
}
