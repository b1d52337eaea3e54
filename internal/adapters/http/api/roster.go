package api

import (
	"net/http"
)

// HandleRoster handles GET /roster requests.
func (s *Server) HandleRoster(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_roster"
	if r.Method != http.MethodGet {
		s.fail(w, r, NewKind(op, ErrMethodNotAllowed))
		return
	}
	view, err := s.deps.Roster(r.Context())
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleBadges handles GET /badges requests.
func (s *Server) HandleBadges(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_badges"
	if r.Method != http.MethodGet {
		s.fail(w, r, NewKind(op, ErrMethodNotAllowed))
		return
	}
	badges, err := s.deps.Badges(r.Context())
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, badges)
}
