// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/matchmaker/internal/domain/model"
	"github.com/okian/matchmaker/internal/domain/types"
	"github.com/okian/matchmaker/pkg/logger"
	"github.com/okian/matchmaker/pkg/metrics"
)

const (
	defaultMaxDescriptionLength = 5000
	defaultMaxBodyBytes         = 1 << 20
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Match(ctx context.Context, query model.Profile, k int) (types.MatchResult, error)
	MatchBatch(ctx context.Context, queries []model.Profile, k int) ([]types.MatchResult, error)
	Roster(ctx context.Context) (types.RosterView, error)
	Badges(ctx context.Context) ([]model.Badge, error)

	// Ready reports whether the service is started with a roster loaded.
	Ready() bool
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxDescriptionLength caps the description length, in characters,
// accepted for a query.
func WithMaxDescriptionLength(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxDescriptionLength = n
		}
	}
}

// WithLogger sets the logger used for server-side failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// Server wires HTTP routes for the matchmaking API.
type Server struct {
	deps                 Dependencies
	statsHandler         *StatsHandler
	maxDescriptionLength int
	logger               logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		deps:                 deps,
		statsHandler:         NewStatsHandler(statsProvider),
		maxDescriptionLength: defaultMaxDescriptionLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("api")
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(path, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(path, RequestID(MetricsMiddleware(h, endpoint)))
	}

	route("/healthz", "healthz", s.HandleHealth)
	route("/stats", "stats", s.statsHandler.HandleStats)
	route("/match", "match", s.HandleMatch)
	route("/match/batch", "match_batch", s.HandleMatchBatch)
	route("/roster", "roster", s.HandleRoster)
	route("/badges", "badges", s.HandleBadges)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
}

// profileRequest is the query profile accepted by the match endpoints.
type profileRequest struct {
	Name        string   `json:"name"`
	Year        string   `json:"year"`
	Major       string   `json:"major"`
	Description string   `json:"description"`
	Badges      []string `json:"badges"`
}

func (p profileRequest) profile() model.Profile {
	return model.Profile{
		Name:        p.Name,
		Year:        p.Year,
		Major:       p.Major,
		Description: p.Description,
		Badges:      p.Badges,
	}
}

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg, RequestID: w.Header().Get(RequestIDHeader)})
}

// fail classifies err, logs server-side failures and writes the response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		s.logger.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.String("request_id", RequestIDFromContext(r.Context())),
			logger.Error(err),
		)
	}
	writeError(w, status, code, err)
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, defaultMaxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}
