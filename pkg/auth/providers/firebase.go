package providers

import (
	"context"
	"fmt"
	"time"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/auth"
	"google.golang.org/api/option"
)

var _ AuthProvider = &FirebaseAuthProvider{}

// FirebaseAuthProvider verifies Firebase ID tokens of painters.
type FirebaseAuthProvider struct {
	projectID string
	client    *auth.Client
}

// NewFirebaseAuthProvider creates a provider for tokens issued by the given project.
// The API key is optional; without it the default credentials are used.
func NewFirebaseAuthProvider(ctx context.Context, projectID string, apiKey string) (*FirebaseAuthProvider, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firebase project id is required")
	}

	var opts []option.ClientOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %v", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get firebase auth client: %v", err)
	}

	return &FirebaseAuthProvider{
		projectID: projectID,
		client:    client,
	}, nil
}

func (p *FirebaseAuthProvider) VerifyToken(ctx context.Context, idToken string) (*TokenClaims, error) {
	if idToken == "" {
		return nil, &ErrInvalidToken{Reason: "empty token"}
	}

	token, err := p.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		// the admin SDK does not separate rejected tokens from key fetch failures here
		return nil, &ErrInvalidToken{Reason: fmt.Sprintf("project %s: %v", p.projectID, err)}
	}

	claims := &TokenClaims{
		UID:      token.UID,
		Provider: token.Firebase.SignInProvider,
	}
	if token.Expires > 0 {
		claims.ExpiresAt = time.Unix(token.Expires, 0).UTC()
	}
	return claims, nil
}
