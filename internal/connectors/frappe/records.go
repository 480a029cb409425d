package frappe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kisanmitra/formbridge/internal/core/domain"
	"github.com/kisanmitra/formbridge/internal/core/ports/driven"
)

// GetRecords fetches records of a doctype from /api/resource/{doctype}.
// Filters and field lists travel as JSON-encoded query parameters, the
// format the Frappe resource API expects.
func (c *Client) GetRecords(ctx context.Context, doctype string, q driven.RecordQuery) ([]map[string]any, error) {
	const op = "fetch records"

	query := url.Values{}
	if len(q.Filters) > 0 {
		encoded, err := json.Marshal(q.Filters)
		if err != nil {
			return nil, fmt.Errorf("%s: encode filters: %w", op, err)
		}
		query.Set("filters", string(encoded))
	}
	if len(q.Fields) > 0 {
		encoded, err := json.Marshal(q.Fields)
		if err != nil {
			return nil, fmt.Errorf("%s: encode fields: %w", op, err)
		}
		query.Set("fields", string(encoded))
	}
	if q.LimitStart > 0 {
		query.Set("limit_start", strconv.Itoa(q.LimitStart))
	}
	if q.PageLength > 0 {
		query.Set("limit_page_length", strconv.Itoa(q.PageLength))
	}

	rawURL := c.resourceURL(doctype)
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	resp, err := c.get(ctx, op, rawURL)
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusOK {
		return nil, statusError(op, resp)
	}

	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(resp.body, &envelope); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}
	if len(envelope.Data) == 0 {
		return nil, fmt.Errorf("%s for %q: %w", op, doctype, domain.ErrNotFound)
	}

	return envelope.Data, nil
}

// CountRecords asks frappe.client.get_count for the number of records
// matching the filters, avoiding a full record transfer. An answer
// that cannot be parsed is reported as an upstream rejection so the
// metadata layer can apply its fallback cap.
func (c *Client) CountRecords(ctx context.Context, doctype string, filters [][]any) (int, error) {
	const op = "count records"

	query := url.Values{}
	query.Set("doctype", doctype)
	if len(filters) > 0 {
		encoded, err := json.Marshal(filters)
		if err != nil {
			return 0, fmt.Errorf("%s: encode filters: %w", op, err)
		}
		query.Set("filters", string(encoded))
	}

	resp, err := c.get(ctx, op, c.methodURL("frappe.client.get_count", query))
	if err != nil {
		return 0, err
	}
	if resp.status != http.StatusOK {
		// Any non-200 count answer, 404 included, is an upstream
		// rejection so the metadata layer can apply its fallback cap.
		return 0, &domain.UpstreamError{
			Op:     op,
			Status: resp.status,
			Body:   truncate(string(resp.body), maxErrorBody),
		}
	}

	var envelope struct {
		Message json.Number `json:"message"`
	}
	if err := json.Unmarshal(resp.body, &envelope); err != nil {
		return 0, &domain.UpstreamError{Op: op, Status: resp.status, Body: "unparsable count response"}
	}
	count, err := strconv.Atoi(envelope.Message.String())
	if err != nil {
		return 0, &domain.UpstreamError{Op: op, Status: resp.status, Body: "unparsable count: " + envelope.Message.String()}
	}

	return count, nil
}
