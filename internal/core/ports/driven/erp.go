package driven

import (
	"context"

	"github.com/kisanmitra/formbridge/internal/core/domain"
)

// ListOptions controls pagination for doctype listings.
type ListOptions struct {
	// LimitStart is the zero-based offset into the listing.
	LimitStart int

	// PageLength is the maximum number of entries to return.
	// Zero means the upstream default.
	PageLength int
}

// RecordQuery narrows a record fetch. Filters and Fields are passed to
// upstream as JSON-encoded query parameters.
type RecordQuery struct {
	// Filters is an upstream filter expression, e.g.
	// [["disabled","=",0]]. Nil fetches everything.
	Filters [][]any

	// Fields limits which columns upstream returns. Nil means all.
	Fields []string

	// LimitStart and PageLength paginate the result set.
	LimitStart int
	PageLength int
}

// ERPGateway is the upstream ERP's resource API as core sees it.
//
// Implementations authenticate lazily, cache the session process-wide,
// and on an expired-session response re-login and retry each call
// exactly once. Callers receive domain errors only: ErrNotFound for
// empty reads, ErrAuthenticationFailed for rejected logins, ErrTimeout
// for deadline overruns, and *domain.UpstreamError for other
// non-success statuses.
type ERPGateway interface {
	// GetDoctype fetches one doctype's full definition.
	GetDoctype(ctx context.Context, name string) (*domain.DoctypeSchema, error)

	// ListDoctypes lists doctype names, paginated.
	ListDoctypes(ctx context.Context, opts ListOptions) ([]domain.DoctypeName, error)

	// GetRecords fetches records of a doctype, e.g. link options.
	GetRecords(ctx context.Context, doctype string, q RecordQuery) ([]map[string]any, error)

	// CountRecords returns the number of records matching the filters,
	// without transferring the records themselves.
	CountRecords(ctx context.Context, doctype string, filters [][]any) (int, error)

	// CreateRecord creates a record and returns it as upstream echoes
	// it, including its assigned identifier under "name".
	CreateRecord(ctx context.Context, doctype string, data map[string]any) (map[string]any, error)

	// SubmitRecord runs the submit transition on an existing record.
	SubmitRecord(ctx context.Context, doctype, recordID string) error
}
