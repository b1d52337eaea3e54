package worker_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/matchmaker/internal/adapters/mq/worker"
	"github.com/okian/matchmaker/pkg/logger"
)

func TestPool(t *testing.T) {
	convey.Convey("Given a pool of two workers", t, func() {
		p := worker.NewPool(worker.WithSize(2), worker.WithLogger(logger.Nop()))
		convey.So(p.Size(), convey.ShouldEqual, 2)

		convey.Convey("every index is processed exactly once", func() {
			out := make([]int, 50)
			err := p.Run(context.Background(), len(out), func(_ context.Context, i int) {
				out[i] = i * i
			})
			convey.So(err, convey.ShouldBeNil)
			for i, v := range out {
				convey.So(v, convey.ShouldEqual, i*i)
			}
		})

		convey.Convey("no more than Size jobs run at once", func() {
			var running, peak int32
			var mu sync.Mutex
			err := p.Run(context.Background(), 20, func(_ context.Context, _ int) {
				cur := atomic.AddInt32(&running, 1)
				mu.Lock()
				if cur > peak {
					peak = cur
				}
				mu.Unlock()
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&running, -1)
			})
			convey.So(err, convey.ShouldBeNil)
			convey.So(peak, convey.ShouldBeLessThanOrEqualTo, 2)
		})

		convey.Convey("zero jobs is a no-op", func() {
			called := false
			err := p.Run(context.Background(), 0, func(context.Context, int) { called = true })
			convey.So(err, convey.ShouldBeNil)
			convey.So(called, convey.ShouldBeFalse)
		})

		convey.Convey("a canceled context stops dispatch", func() {
			ctx, cancel := context.WithCancel(context.Background())
			var done int32
			err := p.Run(ctx, 100, func(_ context.Context, i int) {
				if i == 0 {
					cancel()
				}
				atomic.AddInt32(&done, 1)
			})
			convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
			convey.So(atomic.LoadInt32(&done), convey.ShouldBeLessThan, 100)
		})
	})

	convey.Convey("A pool without options uses at least one worker", t, func() {
		convey.So(worker.NewPool(worker.WithLogger(logger.Nop())).Size(), convey.ShouldBeGreaterThanOrEqualTo, 1)
	})
}
