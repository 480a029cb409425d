package domain

// SubmissionStatus is the client-reported lifecycle state of a
// submission. It is informational only; the server never trusts it.
type SubmissionStatus string

const (
	StatusPending   SubmissionStatus = "pending"
	StatusSubmitted SubmissionStatus = "submitted"
	StatusFailed    SubmissionStatus = "failed"
)

// Submission is a client-submitted form payload. It is constructed by
// the client, validated and consumed exactly once by the submission
// coordinator, and never persisted by this system.
type Submission struct {
	// ID is a client-generated correlation identifier (UUID).
	ID string `json:"id"`

	// FormName is the target doctype name.
	FormName string `json:"formName"`

	// Data maps fieldnames to user-entered values.
	Data map[string]any `json:"data"`

	// SchemaHash is the fingerprint of the schema the client validated
	// this data against. Submission is rejected when it no longer
	// matches the live schema.
	SchemaHash string `json:"schemaHash"`

	// Status is the client's view of the submission lifecycle.
	Status SubmissionStatus `json:"status"`

	// IsSubmittable requests a post-create submit transition on the
	// created record.
	IsSubmittable bool `json:"isSubmittable"`
}

// SubmissionResult is the outcome of a successfully relayed submission.
type SubmissionResult struct {
	// SubmissionID echoes the client correlation identifier.
	SubmissionID string `json:"submissionId"`

	// RecordID is the upstream identifier of the created record.
	RecordID string `json:"recordId"`

	// Submitted reports whether the post-create submit transition ran.
	// Always false for non-submittable doctypes.
	Submitted bool `json:"submitted"`

	// Record is the created record as returned by upstream.
	Record map[string]any `json:"record,omitempty"`
}
