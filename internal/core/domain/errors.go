package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates upstream returned empty or absent data for
	// a read.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a malformed submission payload, e.g.
	// a missing form name or empty data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAuthenticationFailed indicates the upstream ERP rejected our
	// login credentials. Fatal for the current operation; never retried.
	ErrAuthenticationFailed = errors.New("upstream authentication failed")

	// ErrUnauthorized indicates the caller's bearer token is missing,
	// invalid, or expired.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTimeout indicates an upstream call exceeded its deadline.
	ErrTimeout = errors.New("upstream call timed out")
)

// SchemaMismatchError is returned when a submission's fingerprint does
// not match the live schema. The client must refresh its cached form
// and resubmit. Both fingerprints are carried so the client can detect
// whether a refresh actually changed anything.
type SchemaMismatchError struct {
	// Current is the fingerprint recomputed from the live schema.
	Current string

	// Submitted is the stale fingerprint the client sent.
	Submitted string
}

func (e *SchemaMismatchError) Error() string {
	return "schema hash mismatch: the form schema has been updated, refresh and resubmit"
}

// UpstreamError is a non-success response from the upstream ERP for a
// forwarded operation. The status and body are carried for diagnostics.
// Not retried: the one retryable case, an expired session, is handled
// inside the connector before this error is produced.
type UpstreamError struct {
	// Op names the operation that failed, e.g. "fetch doctype".
	Op string

	// Status is the upstream HTTP status code.
	Status int

	// Body is the upstream response body, possibly truncated.
	Body string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream rejected %s: status %d: %s", e.Op, e.Status, e.Body)
}

// CreatedButNotSubmittedError is a partial success: the record was
// created upstream but the follow-up submit transition failed. Surfaced
// distinctly so clients do not blindly retry the full creation and
// duplicate the record.
type CreatedButNotSubmittedError struct {
	// RecordID identifies the record that now exists upstream.
	RecordID string

	// Err is the failure of the submit transition.
	Err error
}

func (e *CreatedButNotSubmittedError) Error() string {
	return fmt.Sprintf("record %s created but submit transition failed: %v", e.RecordID, e.Err)
}

func (e *CreatedButNotSubmittedError) Unwrap() error { return e.Err }

// IsSchemaMismatch reports whether err is a schema-hash mismatch.
func IsSchemaMismatch(err error) bool {
	var mismatch *SchemaMismatchError
	return errors.As(err, &mismatch)
}

// IsUpstreamRejection reports whether err is an upstream non-success
// response.
func IsUpstreamRejection(err error) bool {
	var upstream *UpstreamError
	return errors.As(err, &upstream)
}

// IsCreatedButNotSubmitted reports whether err is the partial-success
// case where a record exists upstream without its submit transition.
func IsCreatedButNotSubmitted(err error) bool {
	var partial *CreatedButNotSubmittedError
	return errors.As(err, &partial)
}
