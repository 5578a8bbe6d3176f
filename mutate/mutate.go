package mutate

import (
	"context"

	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/cruerr"
	"github.com/cru-go/cru/kernel"
	"github.com/cru-go/cru/metrics"
)

// Mutated rewrites graph's vertex and edge values in place via plan's
// callbacks and returns the same handle. On failure already-rewritten
// vertices keep their new values, since mutate has no undo log, and no
// RECLAIM pass runs.
func Mutated(ctx context.Context, cfg config.Config, graph *core.Graph, plan Plan, ks *kernel.Killswitch, met *metrics.Registry) (*core.Graph, error) {
	if plan.vop == nil {
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
	direction := plan.zone.Direction()

	task := func(taskCtx context.Context, laneIdx int) error {
		lane := graph.Lanes.Lanes[laneIdx]
		var firstErr error
		lane.Store.IterateLive(func(rec *core.VertexRecord) {
			if firstErr != nil || inv.KS.Tripped() {
				return
			}
			oldVal := rec.Value
			newVal, verr := plan.vop(oldVal, rec.Scratch)
			if verr != nil {
				firstErr = verr
				return
			}
			rec.Value = newVal
			if graph.Traits.VertexDestroy != nil {
				if derr := graph.Traits.VertexDestroy(oldVal); derr != nil {
					firstErr = derr
					return
				}
			}
			if plan.eop == nil {
				return
			}
			list := &rec.Outgoing
			if direction == core.Incident {
				list = &rec.Incident
			}
			list.Each(func(n *core.EdgeNode) {
				if firstErr != nil {
					return
				}
				oldLabel := n.Label
				newLabel, eerr := plan.eop(oldLabel)
				if eerr != nil {
					firstErr = eerr
					return
				}
				n.Label = newLabel
				if n.Mate() != nil {
					n.Mate().Label = newLabel
				}
				if graph.Traits.EdgeDestroy != nil {
					if derr := graph.Traits.EdgeDestroy(oldLabel); derr != nil {
						firstErr = derr
					}
				}
			})
		})
		return firstErr
	}

	if err := inv.Pool.RunPhase(ctx, inv.KS, "map", task); err != nil {
		inv.Fail(err)
		return graph, err
	}
	inv.Enter(kernel.StateDone)
	return graph, nil
}
