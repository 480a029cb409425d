// Package auth implements caller authentication against external
// identity providers.
package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"

	"github.com/kisanmitra/formbridge/internal/core/domain"
	"github.com/kisanmitra/formbridge/internal/core/ports/driven"
)

// Ensure GoogleVerifier implements the interface.
var _ driven.TokenVerifier = (*GoogleVerifier)(nil)

// validateFunc matches idtoken.Validate. Injectable for tests; the
// real implementation fetches and caches Google's signing keys.
type validateFunc func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// GoogleVerifier validates Google-issued ID tokens: signature against
// Google's published keys, expiry, and the configured OAuth audience.
type GoogleVerifier struct {
	audience string
	validate validateFunc
}

// NewGoogleVerifier creates a verifier for tokens issued to audience.
// An empty audience accepts tokens for any client ID; production
// deployments should always pin one.
func NewGoogleVerifier(audience string) *GoogleVerifier {
	return &GoogleVerifier{
		audience: audience,
		validate: idtoken.Validate,
	}
}

// Verify checks the token and extracts the caller identity.
func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*domain.Caller, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing bearer token", domain.ErrUnauthorized)
	}

	payload, err := v.validate(ctx, token, v.audience)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	caller := &domain.Caller{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		caller.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		caller.Name = name
	}
	return caller, nil
}
