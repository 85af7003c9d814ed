package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/custodia-labs/kotae-cli/internal/core/domain"
)

// askRequest is the POST /api/ask request body.
type askRequest struct {
	Query string `json:"query"`
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSearch runs retrieval for the q parameter. An empty query is the
// caller's error; any retrieval failure is a server error.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	resp, err := s.ports.Search.Search(r.Context(), query)
	if err != nil {
		writeSearchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleAsk runs retrieval plus answer generation for the posted query.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if s.ports.Answer == nil {
		writeError(w, http.StatusServiceUnavailable, "answering is not configured")
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	answer, err := s.ports.Answer.Answer(r.Context(), req.Query)
	if err != nil {
		if errors.Is(err, domain.ErrLLMUnavailable) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeSearchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

// handleHistory returns recent searches.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.ports.History == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := s.ports.History.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// writeSearchError maps retrieval errors to HTTP statuses: a rejected query
// is a 400, everything else a 500.
func writeSearchError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrInvalidQuery) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
