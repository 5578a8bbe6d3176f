package build

import (
	"context"

	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/cruerr"
	"github.com/cru-go/cru/kernel"
	"github.com/cru-go/cru/metrics"
)

// Built runs DISCOVER from plan's seed and/or endogenous roots,
// producing a new graph. On failure every value already allocated
// during discovery is destroyed and a nil graph is returned.
func Built(ctx context.Context, cfg config.Config, traits core.Traits, plan Plan, ks *kernel.Killswitch, met *metrics.Registry) (*core.Graph, error) {
	if plan.connector == nil && plan.subconnector == nil {
		return nil, cruerr.ErrCallbackMissing
	}

	lanes := cfg.Lanes
	if lanes <= 0 {
		lanes = config.DefaultLanes()
	}
	graph, err := core.NewGraph(lanes, traits, cfg.QueueDepth)
	if err != nil {
		return nil, err
	}

	inv, err := kernel.Start(cfg, graph, ks, met)
	if err != nil {
		return nil, err
	}

	seeds := make([]interface{}, 0, len(plan.endogenous)+1)
	if plan.seed != nil {
		seeds = append(seeds, plan.seed)
	}
	seeds = append(seeds, plan.endogenous...)

	isInitial := func(v interface{}) bool {
		if plan.seed == nil {
			return false
		}
		eq, eqErr := traits.VertexEqual(v, plan.seed)
		return eqErr == nil && eq
	}

	dcfg := kernel.DiscoverConfig{Connector: plan.connector, Subconnector: plan.subconnector, IsInitial: isInitial}
	if err := kernel.Discover(ctx, inv, dcfg, seeds); err != nil {
		inv.Fail(err)
		_ = graph.FreeNow()
		return nil, err
	}

	if plan.seed != nil {
		lane := graph.Lanes.LaneFor(traits.VertexHash(plan.seed))
		rec, _, ferr := lane.Store.InsertIfAbsent(plan.seed)
		if ferr != nil {
			inv.Fail(ferr)
			_ = graph.FreeNow()
			return nil, ferr
		}
		graph.Initial = rec
	}

	inv.Enter(kernel.StateDone)
	return graph, nil
}
