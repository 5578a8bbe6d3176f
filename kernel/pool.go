package kernel

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cru-go/cru/cruerr"
	"github.com/cru-go/cru/metrics"
)

// Pool is the fixed-size worker pool every phase runs on: N lane tasks,
// dispatched via an errgroup.Group, joined at a barrier before the next
// phase may start. A Pool has no goroutines of its own between calls to
// RunPhase; lanes are a scheduling unit, not a resident goroutine.
type Pool struct {
	Lanes   int
	Metrics *metrics.Registry
}

// NewPool creates a pool of the given lane count. metricsReg may be nil.
func NewPool(lanes int, metricsReg *metrics.Registry) (*Pool, error) {
	if lanes <= 0 {
		return nil, cruerr.ErrNoLanes
	}
	return &Pool{Lanes: lanes, Metrics: metricsReg}, nil
}

// LaneTask is one lane's unit of work for a phase.
type LaneTask func(ctx context.Context, lane int) error

// RunPhase runs task once per lane concurrently and blocks until every
// lane has returned (the phase barrier), or until the first error or a
// Killswitch trip is observed, in which case already-running tasks are
// still allowed to finish (cooperative cancellation: in-flight work runs
// to completion, but gctx.Done() lets a task short-circuit its own
// remaining work if it chooses to watch it).
func (p *Pool) RunPhase(ctx context.Context, ks *Killswitch, phase string, task LaneTask) error {
	if ks.Tripped() {
		return cruerr.ErrCancelled
	}
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	p.Metrics.SetActiveLanes(p.Lanes)
	for i := 0; i < p.Lanes; i++ {
		lane := i
		g.Go(func() error {
			if ks.Tripped() {
				return cruerr.ErrCancelled
			}
			return task(gctx, lane)
		})
	}
	err := g.Wait()
	p.Metrics.SetActiveLanes(0)
	p.Metrics.ObservePhaseDuration(phase, time.Since(start).Seconds())
	if err == nil && ks.Tripped() {
		return cruerr.ErrCancelled
	}
	return err
}
