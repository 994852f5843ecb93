// Package auth provides bearer-token verification for incoming requests
package auth

import (
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/UnendingLoop/ImageVault/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates bearer tokens against a process-wide RSA public key.
// It is a pure function of header + key: no side effects, safe for
// concurrent use.
type Verifier struct {
	key *rsa.PublicKey
}

// tokenClaims - registered claims plus the custom ones the issuer puts in
type tokenClaims struct {
	jwt.RegisteredClaims
	GivenName       string `json:"given_name"`
	FamilyName      string `json:"family_name"`
	Email           string `json:"email"`
	PermissionLevel int    `json:"x_permission_level"`
}

// NewVerifier builds a Verifier from a base64-encoded PEM RSA public key.
func NewVerifier(base64Key string) (*Verifier, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(base64Key))
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM(raw)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	return &Verifier{key: key}, nil
}

// Verify checks the Authorization header value and returns the caller identity.
// Any failure - wrong scheme, bad signature, expired or malformed token -
// wraps model.ErrUnauthenticated; the underlying cause stays attached for
// logging but must never reach the response body.
func (v *Verifier) Verify(authorizationHeader string) (*model.Caller, error) {
	scheme, token, found := strings.Cut(authorizationHeader, " ")
	if !found || scheme != "Bearer" || token == "" {
		return nil, fmt.Errorf("%w: invalid authentication scheme", model.ErrUnauthenticated)
	}

	var claims tokenClaims
	if _, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return v.key, nil
	}, jwt.WithValidMethods([]string{"RS256"})); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrUnauthenticated, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token carries no subject", model.ErrUnauthenticated)
	}

	return &model.Caller{
		ID:              claims.Subject,
		FirstName:       claims.GivenName,
		LastName:        claims.FamilyName,
		Email:           claims.Email,
		PermissionLevel: claims.PermissionLevel,
	}, nil
}
