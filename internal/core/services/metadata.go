package services

import (
	"context"
	"fmt"

	"github.com/kisanmitra/formbridge/internal/core/domain"
	"github.com/kisanmitra/formbridge/internal/core/ports/driven"
	"github.com/kisanmitra/formbridge/internal/core/ports/driving"
	"github.com/kisanmitra/formbridge/internal/logger"
)

// Ensure MetadataService implements the interface.
var _ driving.MetadataService = (*MetadataService)(nil)

// DefaultCountCap bounds the count reported when upstream cannot
// answer a count query. Clients use the count to size pagination, so a
// conservative cap beats a hard failure.
const DefaultCountCap = 1000

// MetadataService serves doctype definitions, listings, and
// link-option records, all fetched fresh from the upstream ERP.
type MetadataService struct {
	erp      driven.ERPGateway
	countCap int
}

// NewMetadataService creates a metadata service. countCap bounds the
// fallback for unanswerable count queries; zero selects
// DefaultCountCap.
func NewMetadataService(erp driven.ERPGateway, countCap int) *MetadataService {
	if countCap <= 0 {
		countCap = DefaultCountCap
	}
	return &MetadataService{erp: erp, countCap: countCap}
}

// GetDoctype returns one doctype's definition together with its
// current fingerprint, so clients cache both as a unit.
func (s *MetadataService) GetDoctype(ctx context.Context, name string) (*driving.DoctypeResult, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: missing doctype name", domain.ErrInvalidInput)
	}

	schema, err := s.erp.GetDoctype(ctx, name)
	if err != nil {
		return nil, err
	}

	return &driving.DoctypeResult{
		Schema:     schema,
		SchemaHash: domain.Fingerprint(*schema),
	}, nil
}

// ListDoctypes lists doctype names. With ExcludeWithLinks set, each
// candidate's full definition is fetched to inspect its field types,
// which costs one upstream call per doctype. The gateway rate-limits
// those probes; this stays O(n) in upstream requests.
func (s *MetadataService) ListDoctypes(ctx context.Context, q driving.DoctypeListQuery) ([]domain.DoctypeName, error) {
	names, err := s.erp.ListDoctypes(ctx, driven.ListOptions{
		LimitStart: q.LimitStart,
		PageLength: q.PageLength,
	})
	if err != nil {
		return nil, err
	}
	if !q.ExcludeWithLinks {
		return names, nil
	}

	filtered := make([]domain.DoctypeName, 0, len(names))
	for _, n := range names {
		schema, err := s.erp.GetDoctype(ctx, n.Name)
		if err != nil {
			return nil, fmt.Errorf("inspect doctype %q: %w", n.Name, err)
		}
		if !schema.HasLinkField() {
			filtered = append(filtered, n)
		}
	}
	logger.Debug("link filter kept %d of %d doctypes", len(filtered), len(names))
	return filtered, nil
}

// GetLinkOptions fetches records of a linked doctype for use as form
// choice lists.
func (s *MetadataService) GetLinkOptions(ctx context.Context, doctype string, q driving.LinkOptionsQuery) ([]map[string]any, error) {
	if doctype == "" {
		return nil, fmt.Errorf("%w: missing doctype name", domain.ErrInvalidInput)
	}

	return s.erp.GetRecords(ctx, doctype, driven.RecordQuery{
		Filters:    q.Filters,
		Fields:     q.Fields,
		LimitStart: q.LimitStart,
		PageLength: q.PageLength,
	})
}

// CountLinkOptions returns the number of matching link options via the
// upstream count endpoint. When upstream cannot answer, the configured
// cap is reported instead of failing: the count only sizes client
// pagination and a transient counting failure should not block a form.
func (s *MetadataService) CountLinkOptions(ctx context.Context, doctype string, filters [][]any) (int, error) {
	if doctype == "" {
		return 0, fmt.Errorf("%w: missing doctype name", domain.ErrInvalidInput)
	}

	count, err := s.erp.CountRecords(ctx, doctype, filters)
	switch {
	case err == nil:
		return count, nil
	case domain.IsUpstreamRejection(err):
		// Unanswerable count, not a broken session or deadline.
		logger.Warn("count of %q failed, reporting cap %d: %v", doctype, s.countCap, err)
		return s.countCap, nil
	default:
		return 0, err
	}
}
