package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kisanmitra/formbridge/internal/core/domain"
	"github.com/kisanmitra/formbridge/internal/logger"
)

// Machine-checkable error kinds carried in JSON error bodies. Clients
// branch on these, never on the human-readable message.
const (
	kindInvalidInput        = "invalid_input"
	kindUnauthorized        = "unauthorized"
	kindNotFound            = "not_found"
	kindSchemaMismatch      = "schema_mismatch"
	kindUpstreamRejected    = "upstream_rejected"
	kindUpstreamAuthFailed  = "upstream_auth_failed"
	kindCreatedNotSubmitted = "created_but_not_submitted"
	kindTimeout             = "timeout"
	kindInternal            = "internal"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`

	// CurrentHash and SubmittedHash accompany schema_mismatch so the
	// client can tell whether refreshing actually changed the schema.
	CurrentHash   string `json:"currentHash,omitempty"`
	SubmittedHash string `json:"submittedHash,omitempty"`

	// RecordID accompanies created_but_not_submitted: the record
	// exists upstream and a blind retry would duplicate it.
	RecordID string `json:"recordId,omitempty"`

	// UpstreamStatus accompanies upstream_rejected for diagnostics.
	UpstreamStatus int `json:"upstreamStatus,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response: %v", err)
	}
}

// writeError maps a domain error to an HTTP status and stable kind.
func writeError(w http.ResponseWriter, err error) {
	var mismatch *domain.SchemaMismatchError
	if errors.As(err, &mismatch) {
		writeJSON(w, http.StatusConflict, errorBody{
			Error:         kindSchemaMismatch,
			Message:       "The form schema has been updated. Please refresh and resubmit.",
			CurrentHash:   mismatch.Current,
			SubmittedHash: mismatch.Submitted,
		})
		return
	}

	var partial *domain.CreatedButNotSubmittedError
	if errors.As(err, &partial) {
		writeJSON(w, http.StatusBadGateway, errorBody{
			Error:    kindCreatedNotSubmitted,
			Message:  "The record was created but its submit transition failed. Do not resubmit; the record already exists.",
			RecordID: partial.RecordID,
		})
		return
	}

	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		writeJSON(w, http.StatusBadGateway, errorBody{
			Error:          kindUpstreamRejected,
			Message:        upstream.Error(),
			UpstreamStatus: upstream.Status,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: kindInvalidInput, Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: kindUnauthorized, Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: kindNotFound, Message: err.Error()})
	case errors.Is(err, domain.ErrAuthenticationFailed):
		writeJSON(w, http.StatusBadGateway, errorBody{Error: kindUpstreamAuthFailed, Message: "upstream login failed"})
	case errors.Is(err, domain.ErrTimeout):
		writeJSON(w, http.StatusGatewayTimeout, errorBody{Error: kindTimeout, Message: "upstream call timed out"})
	default:
		logger.Error("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: kindInternal, Message: "internal error"})
	}
}
