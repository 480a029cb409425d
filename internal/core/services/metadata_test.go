package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kisanmitra/formbridge/internal/core/domain"
	"github.com/kisanmitra/formbridge/internal/core/ports/driving"
)

func TestGetDoctypeReturnsFingerprint(t *testing.T) {
	schema := expenseSchema()
	erp := &mockERPGateway{schema: schema}
	svc := NewMetadataService(erp, 0)

	result, err := svc.GetDoctype(context.Background(), "Expense Claim")

	require.NoError(t, err)
	assert.Equal(t, schema, result.Schema)
	assert.Equal(t, domain.Fingerprint(*schema), result.SchemaHash)
}

func TestGetDoctypeRequiresName(t *testing.T) {
	svc := NewMetadataService(&mockERPGateway{}, 0)

	_, err := svc.GetDoctype(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetDoctypePropagatesNotFound(t *testing.T) {
	erp := &mockERPGateway{schemaErr: domain.ErrNotFound}
	svc := NewMetadataService(erp, 0)

	_, err := svc.GetDoctype(context.Background(), "Missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// linkFilterGateway returns a different schema per doctype name so the
// link filter can be exercised.
type linkFilterGateway struct {
	mockERPGateway
	schemas map[string]*domain.DoctypeSchema
}

func (g *linkFilterGateway) GetDoctype(_ context.Context, name string) (*domain.DoctypeSchema, error) {
	g.getDoctypeCalls++
	schema, ok := g.schemas[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return schema, nil
}

func TestListDoctypesFiltersLinkFields(t *testing.T) {
	erp := &linkFilterGateway{
		schemas: map[string]*domain.DoctypeSchema{
			"Plain": {Name: "Plain", Fields: []domain.FieldDefinition{
				{Fieldname: "title", Fieldtype: "Data"},
			}},
			"Linked": {Name: "Linked", Fields: []domain.FieldDefinition{
				{Fieldname: "customer", Fieldtype: "Link", Options: "Customer"},
			}},
		},
	}
	erp.names = []domain.DoctypeName{{Name: "Plain"}, {Name: "Linked"}}
	svc := NewMetadataService(erp, 0)

	names, err := svc.ListDoctypes(context.Background(), driving.DoctypeListQuery{ExcludeWithLinks: true})

	require.NoError(t, err)
	assert.Equal(t, []domain.DoctypeName{{Name: "Plain"}}, names)
	assert.Equal(t, 2, erp.getDoctypeCalls, "one probe per candidate doctype")
}

func TestListDoctypesWithoutFilterSkipsProbes(t *testing.T) {
	erp := &mockERPGateway{names: []domain.DoctypeName{{Name: "A"}, {Name: "B"}}}
	svc := NewMetadataService(erp, 0)

	names, err := svc.ListDoctypes(context.Background(), driving.DoctypeListQuery{})

	require.NoError(t, err)
	assert.Len(t, names, 2)
	assert.Zero(t, erp.getDoctypeCalls)
}

func TestCountLinkOptionsFallsBackOnRejection(t *testing.T) {
	erp := &mockERPGateway{
		countErr: &domain.UpstreamError{Op: "count records", Status: 500, Body: "boom"},
	}
	svc := NewMetadataService(erp, 250)

	count, err := svc.CountLinkOptions(context.Background(), "Customer", nil)

	require.NoError(t, err)
	assert.Equal(t, 250, count, "unanswerable counts report the configured cap")
}

func TestCountLinkOptionsFallsBackOnNotFoundStatus(t *testing.T) {
	erp := &mockERPGateway{
		countErr: &domain.UpstreamError{Op: "count records", Status: 404, Body: "not found"},
	}
	svc := NewMetadataService(erp, 0)

	count, err := svc.CountLinkOptions(context.Background(), "Customer", nil)

	require.NoError(t, err)
	assert.Equal(t, DefaultCountCap, count, "a 404 count answer is unanswerable, not fatal")
}

func TestCountLinkOptionsSurfacesAuthFailure(t *testing.T) {
	erp := &mockERPGateway{countErr: domain.ErrAuthenticationFailed}
	svc := NewMetadataService(erp, 0)

	_, err := svc.CountLinkOptions(context.Background(), "Customer", nil)

	assert.ErrorIs(t, err, domain.ErrAuthenticationFailed)
}

func TestCountLinkOptionsPassthrough(t *testing.T) {
	erp := &mockERPGateway{count: 42}
	svc := NewMetadataService(erp, 0)

	count, err := svc.CountLinkOptions(context.Background(), "Customer", [][]any{{"disabled", "=", 0}})

	require.NoError(t, err)
	assert.Equal(t, 42, count)
}

func TestGetLinkOptionsRequiresDoctype(t *testing.T) {
	svc := NewMetadataService(&mockERPGateway{}, 0)

	_, err := svc.GetLinkOptions(context.Background(), "", driving.LinkOptionsQuery{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetLinkOptionsPassthrough(t *testing.T) {
	records := []map[string]any{{"name": "CUST-0001"}, {"name": "CUST-0002"}}
	erp := &mockERPGateway{records: records}
	svc := NewMetadataService(erp, 0)

	got, err := svc.GetLinkOptions(context.Background(), "Customer", driving.LinkOptionsQuery{
		Fields: []string{"name"},
	})

	require.NoError(t, err)
	assert.Equal(t, records, got)
}
