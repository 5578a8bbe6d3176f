package postpone

import (
	"context"
	"sync"

	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/cruerr"
	"github.com/cru-go/cru/kernel"
	"github.com/cru-go/cru/metrics"
)

type newEdge struct {
	from, to *core.VertexRecord
	label    interface{}
}

type dropReq struct {
	source *core.VertexRecord
	edge   *core.EdgeNode
}

// Postponed rewires graph in place. For every vertex u and every pair
// (e1, e2) of u's outgoing edges where e1 is postponable and
// plan.pairPred(e1, e2) holds, it attaches a new edge from e1's
// terminus to e2's terminus labeled by plan.combine, then drops every
// postponable edge it matched at least once. Edges attach eagerly
// during MAP (AttachEdge is safe across lanes); the drops are deferred
// to a REWIRE pass so a vertex's outgoing list stays stable for the
// rest of its own MAP iteration.
func Postponed(ctx context.Context, cfg config.Config, graph *core.Graph, plan Plan, ks *kernel.Killswitch, met *metrics.Registry) (*core.Graph, error) {
	if plan.postponable == nil || plan.pairPred == nil || plan.combine == nil {
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
			edges := u.Outgoing.Slice()
			matched := make(map[*core.EdgeNode]bool)
			for _, e1 := range edges {
				ok, perr := plan.postponable(e1.Label)
				if perr != nil {
					firstErr = perr
					return
				}
				if !ok {
					continue
				}
				for _, e2 := range edges {
					if e2 == e1 {
						continue
					}
					pok, perr := plan.pairPred(e1.Label, e2.Label)
					if perr != nil {
						firstErr = perr
						return
					}
					if !pok {
						continue
					}
					label, cerr := plan.combine(e1.Label, e2.Label)
					if cerr != nil {
						firstErr = cerr
						return
					}
					core.AttachEdge(e1.Endpoint, e2.Endpoint, label)
					matched[e1] = true
				}
			}
			for e := range matched {
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
