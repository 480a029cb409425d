package driven

import (
	"context"

	"github.com/kisanmitra/formbridge/internal/core/domain"
)

// TokenVerifier validates a caller's bearer token against the external
// identity provider and extracts the verified identity.
//
// Verification is per-request; implementations may cache provider keys
// but never the verdict for a given token.
type TokenVerifier interface {
	// Verify checks the token's signature, audience, and expiry.
	// Returns domain.ErrUnauthorized (possibly wrapped) when the token
	// is missing, malformed, expired, or issued for another audience.
	Verify(ctx context.Context, token string) (*domain.Caller, error)
}
