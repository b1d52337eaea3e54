// Package repository loads the matchmaking roster and holds the snapshot
// every match call reads from.
package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/okian/matchmaker/internal/domain/model"
	"github.com/okian/matchmaker/pkg/logger"
	"github.com/okian/matchmaker/pkg/metrics"
)

// Store holds the current roster snapshot. Snapshots are immutable once
// published, so readers never lock.
type Store struct {
	current     atomic.Pointer[model.Roster]
	loadTimeout time.Duration
	now         func() time.Time
	logger      logger.Logger
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		loadTimeout: DefaultLoadTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("repository")
	}
	return s
}

// Load fetches and decodes a roster from src and publishes it. On failure
// the previous snapshot stays in place and the error wraps ErrLoad.
func (s *Store) Load(ctx context.Context, src Source) (*model.Roster, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: no source configured", ErrLoad)
	}

	ctx, cancel := context.WithTimeout(ctx, s.loadTimeout)
	defer cancel()

	start := s.now()
	roster, err := s.fetch(ctx, src)
	if err != nil {
		metrics.RecordRosterLoad(false)
		metrics.RecordErrorByType("roster_load", "high")
		s.logger.Error(ctx, "roster load failed",
			logger.String("source", src.String()),
			logger.Error(err),
		)
		return nil, err
	}

	roster.LoadedAt = s.now()
	s.current.Store(roster)

	metrics.RecordRosterLoad(true)
	metrics.UpdateRoster(len(roster.Members), roster.Catalog.Len(), roster.LoadedAt.Unix())
	s.logger.Info(ctx, "roster loaded",
		logger.String("source", src.String()),
		logger.Int("members", len(roster.Members)),
		logger.Int("badges", roster.Catalog.Len()),
		logger.Duration("took", roster.LoadedAt.Sub(start)),
	)
	return roster, nil
}

func (s *Store) fetch(ctx context.Context, src Source) (*model.Roster, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %w", ErrLoad, src.String(), err)
	}
	return Decode(data)
}

// Snapshot returns the published roster or ErrNotReady.
func (s *Store) Snapshot(_ context.Context) (*model.Roster, error) {
	r := s.current.Load()
	if r == nil {
		return nil, ErrNotReady
	}
	return r, nil
}

// Ready reports whether a roster has been published.
func (s *Store) Ready() bool {
	return s.current.Load() != nil
}
