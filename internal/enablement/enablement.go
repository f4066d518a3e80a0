// Package enablement decides whether the application is embedded by a host.
//
// The decision is a heuristic evaluated once, when the control channel is
// initialized: the application is considered embedded when the host passed
// a numeric API identifier, or when a JSON Web Token is present in the URL
// the application was opened with. A token in the URL means an outer
// application is very likely driving this one and will want to talk to it.
package enablement

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// TokenParam is the URL parameter carrying the embedding token.
const TokenParam = "jwt"

// Predicate reports whether the control channel should be enabled.
type Predicate func() bool

// Always enables the control channel unconditionally.
func Always() bool { return true }

// Never keeps the control channel disabled.
func Never() bool { return false }

// NavigationParams describes how the application was opened.
type NavigationParams struct {
	// APIID is the numeric identifier assigned by the host, if any.
	APIID *int

	// URL is the URL the application was opened with.
	URL string
}

// VerifyOptions controls token validation.
type VerifyOptions struct {
	// HS256Secret, when set, requires the token to be signed with it.
	// Otherwise the token is only checked for being a well-formed JWT.
	HS256Secret string
}

// FromNavigation returns a predicate for the given navigation parameters.
func FromNavigation(params NavigationParams, opts VerifyOptions) Predicate {
	return func() bool {
		if params.APIID != nil {
			return true
		}

		token := TokenFromURL(params.URL)
		if token == "" {
			return false
		}

		return ValidToken(token, opts) == nil
	}
}

// TokenFromURL extracts the embedding token from the query or the fragment
// of rawURL. The query wins when both carry one. It returns "" when there is
// no token or rawURL does not parse.
func TokenFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	if token := u.Query().Get(TokenParam); token != "" {
		return token
	}

	// Fragments use the same key=value&... syntax, optionally with a leading '?'.
	fragment, err := url.ParseQuery(strings.TrimPrefix(u.Fragment, "?"))
	if err != nil {
		return ""
	}

	return fragment.Get(TokenParam)
}

// ValidToken checks tokenString according to opts.
func ValidToken(tokenString string, opts VerifyOptions) error {
	if opts.HS256Secret == "" {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{}); err != nil {
			return fmt.Errorf("failed to parse token: %w", err)
		}

		return nil
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte(opts.HS256Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return fmt.Errorf("failed to verify token: %w", err)
	}

	if !token.Valid {
		return fmt.Errorf("invalid token")
	}

	return nil
}
