package driving

import (
	"context"

	"github.com/kisanmitra/formbridge/internal/core/domain"
)

// DoctypeResult pairs a doctype definition with its current
// fingerprint so clients never have to reimplement the hash.
type DoctypeResult struct {
	Schema     *domain.DoctypeSchema `json:"schema"`
	SchemaHash string                `json:"schemaHash"`
}

// DoctypeListQuery controls a doctype listing.
type DoctypeListQuery struct {
	// LimitStart and PageLength paginate the listing.
	LimitStart int
	PageLength int

	// ExcludeWithLinks drops doctypes containing a Link field. This
	// costs one upstream fetch per candidate doctype.
	ExcludeWithLinks bool
}

// LinkOptionsQuery controls a link-option fetch.
type LinkOptionsQuery struct {
	Filters    [][]any
	Fields     []string
	LimitStart int
	PageLength int
}

// MetadataService exposes upstream form metadata to clients.
type MetadataService interface {
	// GetDoctype returns one doctype's definition and fingerprint.
	GetDoctype(ctx context.Context, name string) (*DoctypeResult, error)

	// ListDoctypes lists doctype names, optionally filtered to those
	// without Link fields.
	ListDoctypes(ctx context.Context, q DoctypeListQuery) ([]domain.DoctypeName, error)

	// GetLinkOptions fetches records of a linked doctype for use as
	// form choice lists.
	GetLinkOptions(ctx context.Context, doctype string, q LinkOptionsQuery) ([]map[string]any, error)

	// CountLinkOptions returns the number of matching link options.
	// Falls back to a configured cap when upstream cannot answer.
	CountLinkOptions(ctx context.Context, doctype string, filters [][]any) (int, error)
}
