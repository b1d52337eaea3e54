package api

import (
	"net/http"
)

type healthResponse struct {
	Status string `json:"status"`
	Ready  bool   `json:"ready"`
}

// HandleHealth handles GET /healthz. It answers 503 until the roster has
// been loaded.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	if !s.deps.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "loading", Ready: false})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Ready: true})
}
