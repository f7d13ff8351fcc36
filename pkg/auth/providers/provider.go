package providers

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// AuthProvider verifies the bearer tokens sent by API callers and viewers.
type AuthProvider interface {
	// VerifyToken returns the claims of a valid token. Rejected tokens fail with ErrInvalidToken.
	VerifyToken(ctx context.Context, idToken string) (*TokenClaims, error)
}

// TokenClaims identifies the painter behind a token.
type TokenClaims struct {
	UID string `json:"uid"`
	// Provider is the sign-in method, empty when unknown
	Provider string `json:"provider,omitempty"`
	// ExpiresAt is zero for tokens that never expire
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// ErrInvalidToken is returned when a token is rejected, as opposed to
// the provider being unable to verify it.
type ErrInvalidToken struct {
	Reason string
}

func (e *ErrInvalidToken) Error() string {
	return fmt.Sprintf("invalid token: %s", e.Reason)
}

func IsInvalidToken(err error) bool {
	var target *ErrInvalidToken
	return errors.As(err, &target)
}
