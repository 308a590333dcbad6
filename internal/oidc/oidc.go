package oidc

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/firetemplate/items-api/internal/models"
)

// Verifier checks ID tokens from a generic OpenID Connect issuer.
type Verifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewVerifier discovers the issuer's configuration and keys for the given client ID
func NewVerifier(ctx context.Context, issuer, clientID string) (*Verifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}
	return &Verifier{verifier: provider.Verifier(&oidc.Config{ClientID: clientID})}, nil
}

func (v *Verifier) Name() string { return "oidc" }

// Verify checks the raw ID token and maps its claims onto a Caller
func (v *Verifier) Verify(ctx context.Context, raw string) (*models.Caller, error) {
	idToken, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}
	var claims struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("decode claims: %w", err)
	}
	return &models.Caller{
		UID:       idToken.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		Source:    v.Name(),
		ExpiresAt: idToken.Expiry,
	}, nil
}
