package repository

import (
	"time"

	"github.com/okian/matchmaker/pkg/logger"
)

// DefaultLoadTimeout bounds a single roster load.
const DefaultLoadTimeout = 5 * time.Second

// Option configures a Store.
type Option func(*Store)

// WithLoadTimeout sets the per-load deadline. Non-positive values are ignored.
func WithLoadTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.loadTimeout = d
		}
	}
}

// WithClock overrides the clock used to stamp LoadedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}
