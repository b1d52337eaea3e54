// Package worker runs independent jobs on a bounded set of goroutines.
package worker

import (
	"context"
	"runtime"
	"sync"

	"github.com/okian/matchmaker/pkg/logger"
	"github.com/okian/matchmaker/pkg/metrics"
)

// Job processes the item at index i. Jobs for different indexes run
// concurrently and must not share mutable state.
type Job func(ctx context.Context, i int)

// Pool bounds how many jobs run at once. A Pool has no background
// goroutines and may be shared by concurrent callers.
type Pool struct {
	size   int
	name   string
	logger logger.Logger
}

// NewPool creates a pool sized to the CPU count unless overridden.
func NewPool(opts ...Option) *Pool {
	p := &Pool{
		size: runtime.NumCPU(),
		name: "worker-pool",
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get().Named(p.name)
	}
	return p
}

// Size returns the maximum number of concurrent jobs.
func (p *Pool) Size() int { return p.size }

// Run calls job for every index in [0, n) and waits for the started jobs
// to finish. Once ctx is done no further index is dispatched and ctx.Err()
// is returned; jobs already running see the canceled ctx.
func (p *Pool) Run(ctx context.Context, n int, job Job) error {
	if n <= 0 {
		return ctx.Err()
	}

	workers := min(p.size, n)
	indexes := make(chan int)
	var wg sync.WaitGroup

	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for i := range indexes {
				metrics.AddBatchWorkersBusy(1)
				job(ctx, i)
				metrics.AddBatchWorkersBusy(-1)
			}
		}()
	}

	var err error
dispatch:
	for i := range n {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break dispatch
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	if err != nil {
		p.logger.Warn(ctx, "batch canceled", logger.Int("jobs", n), logger.Error(err))
	}
	return err
}
