package frappe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kisanmitra/formbridge/internal/core/domain"
	"github.com/kisanmitra/formbridge/internal/logger"
)

// CreateRecord creates a record via POST /api/resource/{doctype} and
// returns the record as upstream echoes it. Frappe assigns the record
// identifier under "name".
func (c *Client) CreateRecord(ctx context.Context, doctype string, data map[string]any) (map[string]any, error) {
	const op = "create record"

	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: encode data: %w", op, err)
	}

	resp, err := c.post(ctx, op, c.resourceURL(doctype), body)
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusOK {
		return nil, statusError(op, resp)
	}

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(resp.body, &envelope); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("%s for %q: %w", op, doctype, domain.ErrNotFound)
	}

	logger.Debug("created %s record %v", doctype, envelope.Data["name"])
	return envelope.Data, nil
}

// SubmitRecord runs the submit workflow transition on a record via
// POST /api/resource/{doctype}/{id}?run_method=submit, locking it
// upstream.
func (c *Client) SubmitRecord(ctx context.Context, doctype, recordID string) error {
	const op = "submit record"

	rawURL := c.resourceURL(doctype, recordID) + "?run_method=submit"
	resp, err := c.post(ctx, op, rawURL, nil)
	if err != nil {
		return err
	}
	if resp.status != http.StatusOK {
		return statusError(op, resp)
	}

	logger.Debug("submitted %s record %s", doctype, recordID)
	return nil
}
