package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/outreach-composer/internal/generation"
	"github.com/jonathan/outreach-composer/internal/types"
)

// handleGenerate runs one generation request end to end
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.generator.Generate(r.Context(), req)
	if err != nil {
		s.errorResponse(w, httpStatusForError(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListRequests returns recent stored request logs
func (s *Server) handleListRequests(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusNotFound, "request storage is not configured")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries, err := s.db.Recent(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"requests": entries})
}

// handleGetRequest returns one stored request with its full record
func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "id must be a UUID")
		return
	}

	if s.db == nil {
		s.errorResponse(w, http.StatusNotFound, "request storage is not configured")
		return
	}

	entry, err := s.db.Get(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entry == nil {
		s.errorResponse(w, http.StatusNotFound, "request not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, entry)
}

// httpStatusForError maps generation failures to HTTP status codes.
// Model and parsing failures are upstream problems, not ours.
func httpStatusForError(err error) int {
	var genErr *generation.Error
	if errors.As(err, &genErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
