package stretch

import (
	"context"
	"sync"

	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/cruerr"
	"github.com/cru-go/cru/kernel"
	"github.com/cru-go/cru/metrics"
)

type dropReq struct {
	source *core.VertexRecord
	edge   *core.EdgeNode
}

// Stretched rewires graph in place, interposing a fresh vertex on
// every edge plan.expander selects. New interposed vertices are
// inserted directly into their home lane's store during MAP (safe for
// concurrent cross-lane callers, per VertexStore's InsertIfAbsent);
// the original edge is only detached afterward, in REWIRE, once every
// lane has finished deciding what to stretch, so that one lane's
// mid-pass rewiring can never shadow another lane's iteration.
func Stretched(ctx context.Context, cfg config.Config, graph *core.Graph, plan Plan, ks *kernel.Killswitch, met *metrics.Registry) (*core.Graph, error) {
	if plan.expander == nil || plan.stretch == nil {
		return nil, cruerr.ErrCallbackMissing
	}

	inv, err := kernel.Start(cfg, graph, ks, met)
	if err != nil {
		return nil, err
	}

	if plan.prop != nil {
		if err := kernel.Prop(ctx, inv, plan.prop); err != nil {
			inv.Fail(err)
			return graph, err
		}
	}

	inv.Enter(kernel.StateMapping)
	var mu sync.Mutex
	var drops []dropReq

	task := func(taskCtx context.Context, laneIdx int) error {
		lane := graph.Lanes.Lanes[laneIdx]
		var firstErr error
		lane.Store.IterateLive(func(u *core.VertexRecord) {
			if firstErr != nil || inv.KS.Tripped() {
				return
			}
			for _, e := range u.Outgoing.Slice() {
				ok, eerr := plan.expander(u.Scratch, e.Label, e.Endpoint.Scratch)
				if eerr != nil {
					firstErr = eerr
					return
				}
				if !ok {
					continue
				}
				inLabel, interposedVal, outLabel, serr := plan.stretch(e.Label)
				if serr != nil {
					firstErr = serr
					return
				}
				home := graph.Lanes.LaneFor(graph.Traits.VertexHash(interposedVal))
				rec, _, ierr := home.Store.InsertIfAbsent(interposedVal)
				if ierr != nil {
					firstErr = ierr
					return
				}
				core.AttachEdge(u, rec, inLabel)
				core.AttachEdge(rec, e.Endpoint, outLabel)

				mu.Lock()
				drops = append(drops, dropReq{source: u, edge: e})
				mu.Unlock()
			}
		})
		return firstErr
	}
	if err := inv.Pool.RunPhase(ctx, inv.KS, "map", task); err != nil {
		inv.Fail(err)
		return graph, err
	}
	graph.Lanes.PromoteAll()

	inv.Enter(kernel.StateRewiring)
	for _, d := range drops {
		core.DetachEdge(d.source, d.edge)
		if graph.Traits.EdgeDestroy != nil {
			if err := graph.Traits.EdgeDestroy(d.edge.Label); err != nil {
				inv.Fail(err)
				return graph, err
			}
		}
	}

	inv.Enter(kernel.StateDone)
	return graph, nil
}
