package api

import (
	"fmt"
	"net/http"

	"github.com/okian/matchmaker/internal/domain/model"
	"github.com/okian/matchmaker/internal/domain/types"
)

type batchRequest struct {
	Queries []profileRequest `json:"queries"`
	K       *int             `json:"k,omitempty"`
}

type batchResponse struct {
	RequestID string              `json:"request_id"`
	Results   []types.MatchResult `json:"results"`
}

// HandleMatchBatch handles POST /match/batch requests. Results are
// returned in query order.
func (s *Server) HandleMatchBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_match_batch"
	if r.Method != http.MethodPost {
		s.fail(w, r, NewKind(op, ErrMethodNotAllowed))
		return
	}

	var req batchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, WrapKind(op, ErrBadRequest, err))
		return
	}

	queries := make([]model.Profile, len(req.Queries))
	for i, q := range req.Queries {
		if err := s.validateQuery(q, req.K); err != nil {
			s.fail(w, r, WrapKind(op, ErrBadRequest, fmt.Errorf("query %d: %w", i, err)))
			return
		}
		queries[i] = q.profile()
	}

	results, err := s.deps.MatchBatch(r.Context(), queries, topK(req.K))
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, batchResponse{
		RequestID: RequestIDFromContext(r.Context()),
		Results:   results,
	})
}
