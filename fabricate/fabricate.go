package fabricate

import (
	"context"
	"sync"

	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/cruerr"
	"github.com/cru-go/cru/kernel"
	"github.com/cru-go/cru/metrics"
)

// Fabricated copies source into a new graph of the same lane count and
// traits, running plan's copiers over every live vertex and edge. With
// identity copiers the result is isomorphic to source.
func Fabricated(ctx context.Context, cfg config.Config, source *core.Graph, plan Plan, ks *kernel.Killswitch, met *metrics.Registry) (*core.Graph, error) {
	if plan.copyVertex == nil {
		return nil, cruerr.ErrCallbackMissing
	}

	dst, err := core.NewGraph(source.Lanes.N(), source.Traits, cfg.QueueDepth)
	if err != nil {
		return nil, err
	}

	inv, err := kernel.Start(cfg, source, ks, met)
	if err != nil {
		return nil, err
	}
	inv.Enter(kernel.StateMapping)

	var mu sync.Mutex
	copyOf := make(map[*core.VertexRecord]*core.VertexRecord)

	mapTask := func(taskCtx context.Context, laneIdx int) error {
		lane := source.Lanes.Lanes[laneIdx]
		var firstErr error
		lane.Store.IterateLive(func(rec *core.VertexRecord) {
			if firstErr != nil || inv.KS.Tripped() {
				return
			}
			newVal, cerr := plan.copyVertex(rec.Value)
			if cerr != nil {
				firstErr = cerr
				return
			}
			target := dst.Lanes.LaneFor(dst.Traits.VertexHash(newVal))
			newRec, _, ierr := target.Store.InsertIfAbsent(newVal)
			if ierr != nil {
				firstErr = ierr
				return
			}
			mu.Lock()
			copyOf[rec] = newRec
			mu.Unlock()
		})
		return firstErr
	}
	if err := inv.Pool.RunPhase(ctx, inv.KS, "map", mapTask); err != nil {
		inv.Fail(err)
		_ = dst.FreeNow()
		return nil, err
	}
	dst.Lanes.PromoteAll()

	inv.Enter(kernel.StateRewiring)
	rewireTask := func(taskCtx context.Context, laneIdx int) error {
		lane := source.Lanes.Lanes[laneIdx]
		var firstErr error
		lane.Store.IterateLive(func(rec *core.VertexRecord) {
			if firstErr != nil || inv.KS.Tripped() {
				return
			}
			newSource := copyOf[rec]
			rec.Outgoing.Each(func(n *core.EdgeNode) {
				if firstErr != nil {
					return
				}
				newLabel := n.Label
				if plan.copyEdge != nil {
					var cerr error
					newLabel, cerr = plan.copyEdge(n.Label)
					if cerr != nil {
						firstErr = cerr
						return
					}
				}
				core.AttachEdge(newSource, copyOf[n.Endpoint], newLabel)
			})
		})
		return firstErr
	}
	if err := inv.Pool.RunPhase(ctx, inv.KS, "rewire", rewireTask); err != nil {
		inv.Fail(err)
		_ = dst.FreeNow()
		return nil, err
	}

	if source.Initial != nil {
		dst.Initial = copyOf[source.Initial]
	}
	inv.Enter(kernel.StateDone)
	return dst, nil
}
