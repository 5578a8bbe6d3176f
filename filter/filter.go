package filter

import (
	"context"
	"sync"

	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/cruerr"
	"github.com/cru-go/cru/kernel"
	"github.com/cru-go/cru/metrics"
)

// Filtered deletes every vertex for which plan.predicate returns false,
// pruning its edges (and, unless WithReclaimEdges(false) was set,
// destroying their labels), then returns the same graph handle with the
// survivors. With a predicate that always returns true, the graph is
// left unchanged.
func Filtered(ctx context.Context, cfg config.Config, graph *core.Graph, plan Plan, ks *kernel.Killswitch, met *metrics.Registry) (*core.Graph, error) {
	if plan.predicate == nil {
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
	var toRemove []*core.VertexRecord

	task := func(taskCtx context.Context, laneIdx int) error {
		lane := graph.Lanes.Lanes[laneIdx]
		var firstErr error
		lane.Store.IterateLive(func(rec *core.VertexRecord) {
			if firstErr != nil || inv.KS.Tripped() {
				return
			}
			keep, perr := plan.predicate(rec.Value, rec.Scratch)
			if perr != nil {
				firstErr = perr
				return
			}
			if !keep {
				mu.Lock()
				toRemove = append(toRemove, rec)
				mu.Unlock()
			}
		})
		return firstErr
	}
	if err := inv.Pool.RunPhase(ctx, inv.KS, "map", task); err != nil {
		inv.Fail(err)
		return graph, err
	}
	if len(toRemove) == 0 {
		inv.Enter(kernel.StateDone)
		return graph, nil
	}

	inv.Enter(kernel.StateRewiring)
	removed := make(map[*core.VertexRecord]bool, len(toRemove))
	for _, rec := range toRemove {
		removed[rec] = true
	}
	seenEdges := make(map[*core.EdgeNode]bool)
	destroyEdge := func(out *core.EdgeNode) error {
		if seenEdges[out] || (out.Mate() != nil && seenEdges[out.Mate()]) {
			return nil
		}
		seenEdges[out] = true
		if plan.reclaimEdges && graph.Traits.EdgeDestroy != nil {
			return graph.Traits.EdgeDestroy(out.Label)
		}
		return nil
	}

	for _, rec := range toRemove {
		for _, n := range rec.Outgoing.Slice() {
			if err := destroyEdge(n); err != nil {
				inv.Fail(err)
				return graph, err
			}
			core.DetachEdge(rec, n)
		}
		for _, n := range rec.Incident.Slice() {
			src := n.Endpoint
			out := n.Mate()
			if out == nil || removed[src] {
				continue
			}
			if err := destroyEdge(out); err != nil {
				inv.Fail(err)
				return graph, err
			}
			core.DetachEdge(src, out)
		}
	}

	if err := kernel.Reclaim(ctx, inv, toRemove); err != nil {
		inv.Fail(err)
		return graph, err
	}
	inv.Enter(kernel.StateDone)
	return graph, nil
}
