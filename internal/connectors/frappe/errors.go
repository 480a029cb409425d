package frappe

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/kisanmitra/formbridge/internal/core/domain"
)

// wrapTransportError maps network-level failures to domain errors so
// HTTP client internals never leak to callers.
func wrapTransportError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, domain.ErrTimeout)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return &domain.UpstreamError{Op: op, Status: 0, Body: err.Error()}
}

// statusError maps a non-success upstream status to a domain error.
// 404 becomes ErrNotFound; everything else carries status and body for
// diagnostics.
func statusError(op string, resp *response) error {
	if resp.status == http.StatusNotFound {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return &domain.UpstreamError{
		Op:     op,
		Status: resp.status,
		Body:   truncate(string(resp.body), maxErrorBody),
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
