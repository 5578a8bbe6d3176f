package compose

import (
	"context"
	"sync"

	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/cruerr"
	"github.com/cru-go/cru/kernel"
	"github.com/cru-go/cru/metrics"
)

type bypassReq struct {
	u, w  *core.VertexRecord
	label interface{}
}

type dropReq struct {
	source *core.VertexRecord
	edge   *core.EdgeNode
}

// Composed rewires graph in place, bridging every two-hop path that
// satisfies plan.qpred with a direct bypass edge. With plan.zone.CoFix
// it repeats rounds until a round finds nothing left to bridge;
// otherwise it runs exactly one round.
func Composed(ctx context.Context, cfg config.Config, graph *core.Graph, plan Plan, ks *kernel.Killswitch, met *metrics.Registry) (*core.Graph, error) {
	if plan.qpred == nil || plan.qop == nil {
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

	round := func() (bool, error) {
		inv.Enter(kernel.StateMapping)
		var mu sync.Mutex
		var bypasses []bypassReq
		var drops []dropReq

		task := func(taskCtx context.Context, laneIdx int) error {
			lane := graph.Lanes.Lanes[laneIdx]
			var firstErr error
			lane.Store.IterateLive(func(u *core.VertexRecord) {
				if firstErr != nil || inv.KS.Tripped() {
					return
				}
				for _, e := range u.Outgoing.Slice() {
					v := e.Endpoint
					for _, e2 := range v.Outgoing.Slice() {
						w := e2.Endpoint
						ok, perr := plan.qpred(u.Scratch, e.Label, v.Scratch, e2.Label)
						if perr != nil {
							firstErr = perr
							return
						}
						if !ok {
							continue
						}
						label, oerr := plan.qop(e.Label, e2.Label)
						if oerr != nil {
							firstErr = oerr
							return
						}
						mu.Lock()
						bypasses = append(bypasses, bypassReq{u: u, w: w, label: label})
						if plan.destructive {
							drops = append(drops, dropReq{source: u, edge: e})
						}
						mu.Unlock()
					}
				}
			})
			return firstErr
		}
		if err := inv.Pool.RunPhase(ctx, inv.KS, "map", task); err != nil {
			return false, err
		}

		inv.Enter(kernel.StateRewiring)
		for _, b := range bypasses {
			core.AttachEdge(b.u, b.w, b.label)
		}
		if plan.destructive {
			seen := make(map[*core.EdgeNode]bool, len(drops))
			for _, d := range drops {
				if seen[d.edge] {
					continue
				}
				seen[d.edge] = true
				core.DetachEdge(d.source, d.edge)
				if graph.Traits.EdgeDestroy != nil {
					if err := graph.Traits.EdgeDestroy(d.edge.Label); err != nil {
						return false, err
					}
				}
			}
		}
		return len(bypasses) > 0, nil
	}

	changed, err := round()
	if err != nil {
		inv.Fail(err)
		return graph, err
	}
	for changed && plan.zone.CoFix {
		changed, err = round()
		if err != nil {
			inv.Fail(err)
			return graph, err
		}
	}

	inv.Enter(kernel.StateDone)
	return graph, nil
}
