// Package service wires the roster store and the ranking engine into the
// operations the HTTP API and the CLI depend on.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/matchmaker/internal/adapters/mq/worker"
	"github.com/okian/matchmaker/internal/adapters/repository"
	"github.com/okian/matchmaker/internal/domain/matching"
	"github.com/okian/matchmaker/internal/domain/model"
	"github.com/okian/matchmaker/internal/domain/text"
	"github.com/okian/matchmaker/internal/domain/types"
	"github.com/okian/matchmaker/pkg/logger"
	"github.com/okian/matchmaker/pkg/metrics"
)

const (
	defaultMaxTopK      = 25
	defaultMaxBatchSize = 100
)

// Service answers match requests against a roster loaded once at Start.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     *repository.Store
	source    repository.Source
	ranker    *matching.Ranker
	tokenizer *text.Tokenizer
	pool      *worker.Pool

	// Configuration
	loadTimeout   time.Duration
	topK          int
	maxTopK       int
	maxBatchSize  int
	batchWorkers  int
	tokenizerOpts []text.Option

	// State
	started bool

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		loadTimeout:  repository.DefaultLoadTimeout,
		topK:         matching.DefaultTopK,
		maxTopK:      defaultMaxTopK,
		maxBatchSize: defaultMaxBatchSize,
		batchWorkers: runtime.NumCPU(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.maxTopK < s.topK {
		s.maxTopK = s.topK
	}

	s.tokenizer = text.NewTokenizer(s.tokenizerOpts...)
	s.ranker = matching.NewRanker(matching.WithTokenizer(s.tokenizer))
	s.store = repository.NewStore(
		repository.WithLoadTimeout(s.loadTimeout),
		repository.WithLogger(s.logger.Named("repository")),
	)
	s.pool = worker.NewPool(
		worker.WithSize(s.batchWorkers),
		worker.WithName("batch"),
		worker.WithLogger(s.logger.Named("batch")),
	)
	return s
}

// Start loads the roster. The service only reports ready after the load
// succeeds; a failed load is returned and not retried.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting matchmaking service...")

	if _, err := s.store.Load(ctx, s.source); err != nil {
		return fmt.Errorf("start: %w", err)
	}

	s.started = true
	s.logger.Info(ctx, "matchmaking service started",
		logger.Int("topK", s.topK),
		logger.Int("maxTopK", s.maxTopK),
		logger.Int("batchWorkers", s.pool.Size()),
		logger.Int("minTokenLength", s.tokenizer.MinTokenLength()),
	)
	return nil
}

// Stop marks the service stopped, so Ready reports false. The loaded
// snapshot stays readable so in-flight requests can finish.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "matchmaking service stopped")
}

// Ready reports whether the service is started with a roster loaded.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started && s.store.Ready()
}

// Match ranks the roster against query. k <= 0 selects the configured
// default; k above the maximum is rejected with matching.ErrInvalidTopK.
func (s *Service) Match(ctx context.Context, query model.Profile, k int) (types.MatchResult, error) {
	k, err := s.resolveTopK(k)
	if err != nil {
		return types.MatchResult{}, err
	}

	roster, err := s.store.Snapshot(ctx)
	if err != nil {
		return types.MatchResult{}, err
	}

	metrics.RecordMatchRequest("single")
	return s.match(ctx, roster, query, k), nil
}

// MatchBatch ranks several independent queries against the same snapshot.
// Results are returned in query order.
func (s *Service) MatchBatch(ctx context.Context, queries []model.Profile, k int) ([]types.MatchResult, error) {
	if len(queries) == 0 {
		return nil, matching.ErrEmptyBatch
	}
	if len(queries) > s.maxBatchSize {
		return nil, fmt.Errorf("%w: %d queries, limit %d", matching.ErrBatchTooLarge, len(queries), s.maxBatchSize)
	}

	k, err := s.resolveTopK(k)
	if err != nil {
		return nil, err
	}

	roster, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	metrics.RecordMatchRequest("batch")
	metrics.RecordBatchSize(len(queries))

	results := make([]types.MatchResult, len(queries))
	err = s.pool.Run(ctx, len(queries), func(ctx context.Context, i int) {
		results[i] = s.match(ctx, roster, queries[i], k)
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) match(ctx context.Context, roster *model.Roster, query model.Profile, k int) types.MatchResult {
	start := time.Now()
	ranked := s.ranker.Rank(query, roster.Members, roster.Catalog, k)
	took := time.Since(start)

	metrics.RecordMatchLatency(float64(took.Microseconds()) / 1000)
	metrics.RecordCandidatesScored(len(roster.Members))
	if len(ranked) == 0 {
		metrics.RecordEmptyMatch()
	} else {
		metrics.RecordMatchScore(ranked[0].Score)
	}

	res := types.NewMatchResult(query.Name, ranked, roster.Catalog)
	s.logger.Debug(ctx, "matched",
		logger.String("pnm", res.PNMName),
		logger.Int("candidates", len(roster.Members)),
		logger.Int("returned", len(ranked)),
		logger.Duration("took", took),
	)
	return res
}

func (s *Service) resolveTopK(k int) (int, error) {
	if k <= 0 {
		return s.topK, nil
	}
	if k > s.maxTopK {
		return 0, fmt.Errorf("%w: %d exceeds %d", matching.ErrInvalidTopK, k, s.maxTopK)
	}
	return k, nil
}

// Roster returns the loaded roster with badges resolved.
func (s *Service) Roster(ctx context.Context) (types.RosterView, error) {
	roster, err := s.store.Snapshot(ctx)
	if err != nil {
		return types.RosterView{}, err
	}
	return types.NewRosterView(roster), nil
}

// Badges returns the badge catalog in load order.
func (s *Service) Badges(ctx context.Context) ([]model.Badge, error) {
	roster, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return roster.Catalog.All(), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"ready":          s.started && s.store.Ready(),
		"topK":           s.topK,
		"maxTopK":        s.maxTopK,
		"maxBatchSize":   s.maxBatchSize,
		"batchWorkers":   s.pool.Size(),
		"minTokenLength": s.tokenizer.MinTokenLength(),
	}

	if roster, err := s.store.Snapshot(context.Background()); err == nil {
		stats["members"] = len(roster.Members)
		stats["badges"] = roster.Catalog.Len()
		stats["loadedAt"] = roster.LoadedAt.UTC().Format(time.RFC3339)
	}

	return stats
}
