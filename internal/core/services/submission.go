package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kisanmitra/formbridge/internal/core/domain"
	"github.com/kisanmitra/formbridge/internal/core/ports/driven"
	"github.com/kisanmitra/formbridge/internal/core/ports/driving"
	"github.com/kisanmitra/formbridge/internal/logger"
)

// Ensure SubmissionService implements the interface.
var _ driving.SubmissionService = (*SubmissionService)(nil)

// SubmissionService coordinates schema-validated form submission: it
// recomputes the schema fingerprint from the live doctype, rejects
// stale submissions, and relays accepted ones to the upstream ERP.
type SubmissionService struct {
	erp driven.ERPGateway
}

// NewSubmissionService creates a new submission coordinator.
func NewSubmissionService(erp driven.ERPGateway) *SubmissionService {
	return &SubmissionService{erp: erp}
}

// Submit runs one submission through its full lifecycle:
// validate input, fetch the live schema, compare fingerprints, create
// the record, and optionally chase the submit transition.
//
// The create call is never retried here. Session expiry is the one
// retryable failure and the gateway already handles it; anything else
// is surfaced so the client can decide, especially the partial-success
// case where the record exists but its submit transition failed.
func (s *SubmissionService) Submit(ctx context.Context, sub domain.Submission) (*domain.SubmissionResult, error) {
	if err := validateSubmission(sub); err != nil {
		return nil, err
	}

	schema, err := s.erp.GetDoctype(ctx, sub.FormName)
	if err != nil {
		return nil, fmt.Errorf("fetch doctype %q: %w", sub.FormName, err)
	}

	current := domain.Fingerprint(*schema)
	if current != sub.SchemaHash {
		logger.Debug("schema mismatch for %q: current=%s submitted=%s",
			sub.FormName, current, sub.SchemaHash)
		return nil, &domain.SchemaMismatchError{
			Current:   current,
			Submitted: sub.SchemaHash,
		}
	}

	record, err := s.erp.CreateRecord(ctx, sub.FormName, sub.Data)
	if err != nil {
		return nil, fmt.Errorf("create %q record: %w", sub.FormName, err)
	}

	recordID, _ := record["name"].(string)
	result := &domain.SubmissionResult{
		SubmissionID: sub.ID,
		RecordID:     recordID,
		Record:       record,
	}

	if !sub.IsSubmittable {
		return result, nil
	}

	if recordID == "" {
		// Upstream accepted the create but returned no identifier, so
		// the transition has no target. Surfaced as partial success:
		// the record exists and a blind client retry would duplicate it.
		return nil, &domain.CreatedButNotSubmittedError{
			Err: fmt.Errorf("create response for %q carried no record id", sub.FormName),
		}
	}

	if err := s.erp.SubmitRecord(ctx, sub.FormName, recordID); err != nil {
		return nil, &domain.CreatedButNotSubmittedError{RecordID: recordID, Err: err}
	}

	result.Submitted = true
	logger.Debug("submission %s: created and submitted %s/%s", sub.ID, sub.FormName, recordID)
	return result, nil
}

// validateSubmission rejects payloads the coordinator cannot act on.
func validateSubmission(sub domain.Submission) error {
	if sub.FormName == "" {
		return fmt.Errorf("%w: missing form name", domain.ErrInvalidInput)
	}
	if len(sub.Data) == 0 {
		return fmt.Errorf("%w: missing form data", domain.ErrInvalidInput)
	}
	if sub.SchemaHash == "" {
		return fmt.Errorf("%w: missing schema hash", domain.ErrInvalidInput)
	}
	if sub.ID != "" {
		if _, err := uuid.Parse(sub.ID); err != nil {
			return fmt.Errorf("%w: submission id is not a valid UUID", domain.ErrInvalidInput)
		}
	}
	return nil
}
