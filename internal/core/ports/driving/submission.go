package driving

import (
	"context"

	"github.com/kisanmitra/formbridge/internal/core/domain"
)

// SubmissionService accepts client form submissions, verifies them
// against the live upstream schema, and relays them to the ERP.
type SubmissionService interface {
	// Submit validates the payload, recomputes the schema fingerprint
	// from the live doctype, and forwards the data upstream on match.
	// A stale fingerprint yields *domain.SchemaMismatchError and the
	// upstream create endpoint is never called.
	Submit(ctx context.Context, sub domain.Submission) (*domain.SubmissionResult, error)
}
