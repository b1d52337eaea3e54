package api

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/okian/matchmaker/internal/domain/types"
)

type matchRequest struct {
	profileRequest
	K *int `json:"k,omitempty"`
}

type matchResponse struct {
	RequestID string `json:"request_id"`
	types.MatchResult
}

// validateQuery checks a query profile and an optional shortlist size.
func (s *Server) validateQuery(p profileRequest, k *int) error {
	if n := utf8.RuneCountInString(p.Description); n > s.maxDescriptionLength {
		return fmt.Errorf("description is %d characters, limit %d", n, s.maxDescriptionLength)
	}
	if k != nil && *k < 1 {
		return errors.New("k must be at least 1")
	}
	return nil
}

func topK(k *int) int {
	if k == nil {
		return 0
	}
	return *k
}

// HandleMatch handles POST /match requests.
func (s *Server) HandleMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_match"
	if r.Method != http.MethodPost {
		s.fail(w, r, NewKind(op, ErrMethodNotAllowed))
		return
	}

	var req matchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := s.validateQuery(req.profileRequest, req.K); err != nil {
		s.fail(w, r, WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := s.deps.Match(r.Context(), req.profile(), topK(req.K))
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, matchResponse{
		RequestID:   RequestIDFromContext(r.Context()),
		MatchResult: res,
	})
}
