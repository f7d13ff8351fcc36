package providers

import (
	"context"
)

var _ AuthProvider = &StaticAuthProvider{}

// StaticAuthProvider accepts a fixed set of tokens. It is meant for local runs and tests.
type StaticAuthProvider struct {
	tokens map[string]string
}

// NewStaticAuthProvider creates a provider mapping each token to a user id.
func NewStaticAuthProvider(tokens map[string]string) *StaticAuthProvider {
	t := make(map[string]string, len(tokens))
	for token, uid := range tokens {
		t[token] = uid
	}
	return &StaticAuthProvider{tokens: t}
}

func (p *StaticAuthProvider) VerifyToken(ctx context.Context, idToken string) (*TokenClaims, error) {
	uid, ok := p.tokens[idToken]
	if !ok {
		return nil, &ErrInvalidToken{Reason: "unknown token"}
	}
	return &TokenClaims{UID: uid, Provider: "static"}, nil
}
