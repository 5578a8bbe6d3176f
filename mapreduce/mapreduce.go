package mapreduce

import (
	"context"

	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/cruerr"
	"github.com/cru-go/cru/kernel"
	"github.com/cru-go/cru/metrics"
)

// Mapreduced folds graph into a single value via plan.mapFn and
// plan.reduce, leaving the graph untouched: PROP (optional), then
// REDUCE, returning a value rather than mutating the graph.
func Mapreduced(ctx context.Context, cfg config.Config, graph *core.Graph, plan Plan, ks *kernel.Killswitch, met *metrics.Registry) (interface{}, error) {
	if plan.mapFn == nil || plan.reduce == nil {
		return nil, cruerr.ErrCallbackMissing
	}

	inv, err := kernel.Start(cfg, graph, ks, met)
	if err != nil {
		return nil, err
	}

	if plan.prop != nil {
		if err := kernel.Prop(ctx, inv, plan.prop); err != nil {
			inv.Fail(err)
			return nil, err
		}
	}

	result, err := kernel.ReduceAll(ctx, inv, plan.mapFn, plan.reduce, plan.vacuous)
	if err != nil {
		inv.Fail(err)
		return nil, err
	}

	inv.Enter(kernel.StateDone)
	return result, nil
}
