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

// GetDoctype fetches one doctype's full definition from
// /api/resource/DocType/{name}.
func (c *Client) GetDoctype(ctx context.Context, name string) (*domain.DoctypeSchema, error) {
	const op = "fetch doctype"

	resp, err := c.get(ctx, op, c.resourceURL("DocType", name))
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusOK {
		return nil, statusError(op, resp)
	}

	var envelope struct {
		Data *domain.DoctypeSchema `json:"data"`
	}
	if err := json.Unmarshal(resp.body, &envelope); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}
	if envelope.Data == nil || envelope.Data.Name == "" {
		return nil, fmt.Errorf("%s %q: %w", op, name, domain.ErrNotFound)
	}

	return envelope.Data, nil
}

// ListDoctypes lists doctype names from /api/resource/DocType.
func (c *Client) ListDoctypes(ctx context.Context, opts driven.ListOptions) ([]domain.DoctypeName, error) {
	const op = "list doctypes"

	query := url.Values{}
	if opts.LimitStart > 0 {
		query.Set("limit_start", strconv.Itoa(opts.LimitStart))
	}
	if opts.PageLength > 0 {
		query.Set("limit_page_length", strconv.Itoa(opts.PageLength))
	}
	rawURL := c.resourceURL("DocType")
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
		Data []domain.DoctypeName `json:"data"`
	}
	if err := json.Unmarshal(resp.body, &envelope); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}
	if len(envelope.Data) == 0 {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	return envelope.Data, nil
}
