package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/kisanmitra/formbridge/internal/core/domain"
	"github.com/kisanmitra/formbridge/internal/core/ports/driving"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// GET /api/doctype/{name}
func (s *Server) handleGetDoctype(w http.ResponseWriter, r *http.Request) {
	result, err := s.metadata.GetDoctype(r.Context(), r.PathValue("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"data":       result.Schema,
		"schemaHash": result.SchemaHash,
	})
}

// GET /api/doctype?limit_start=&limit_page_length=&exclude_links=
func (s *Server) handleListDoctypes(w http.ResponseWriter, r *http.Request) {
	q := driving.DoctypeListQuery{
		LimitStart:       intQuery(r, "limit_start"),
		PageLength:       intQuery(r, "limit_page_length"),
		ExcludeWithLinks: r.URL.Query().Get("exclude_links") == "true",
	}

	names, err := s.metadata.ListDoctypes(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": names})
}

// GET /api/link-options/{doctype}?filters=&fields=&limit_start=&limit_page_length=
func (s *Server) handleLinkOptions(w http.ResponseWriter, r *http.Request) {
	q := driving.LinkOptionsQuery{
		LimitStart: intQuery(r, "limit_start"),
		PageLength: intQuery(r, "limit_page_length"),
	}
	var err error
	if q.Filters, err = filtersQuery(r); err != nil {
		writeError(w, err)
		return
	}
	if raw := r.URL.Query().Get("fields"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &q.Fields); err != nil {
			writeError(w, fmt.Errorf("%w: malformed fields parameter", domain.ErrInvalidInput))
			return
		}
	}

	records, err := s.metadata.GetLinkOptions(r.Context(), r.PathValue("doctype"), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": records})
}

// GET /api/link-options/{doctype}/count?filters=
func (s *Server) handleLinkOptionsCount(w http.ResponseWriter, r *http.Request) {
	filters, err := filtersQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	count, err := s.metadata.CountLinkOptions(r.Context(), r.PathValue("doctype"), filters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "count": count})
}

// POST /api/sync
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	var sub domain.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, fmt.Errorf("%w: malformed submission body", domain.ErrInvalidInput))
		return
	}

	result, err := s.submission.Submit(r.Context(), sub)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Data synced successfully",
		"data":    result,
	})
}

func intQuery(r *http.Request, key string) int {
	v, _ := strconv.Atoi(r.URL.Query().Get(key))
	return v
}

func filtersQuery(r *http.Request) ([][]any, error) {
	raw := r.URL.Query().Get("filters")
	if raw == "" {
		return nil, nil
	}
	var filters [][]any
	if err := json.Unmarshal([]byte(raw), &filters); err != nil {
		return nil, fmt.Errorf("%w: malformed filters parameter", domain.ErrInvalidInput)
	}
	return filters, nil
}
