package induce

import (
	"context"
	"reflect"

	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/cruerr"
	"github.com/cru-go/cru/kernel"
	"github.com/cru-go/cru/metrics"
)

// Induced folds graph into a single value by walking backward from
// every sink to plan.zone's starting vertex: a sink's remote value is
// plan.vacuous, and every other vertex's remote value is the reduction
// over its direction-selected edges of plan.mapFn(local value, label,
// remote value of the edge's terminus). The traversal is inherently
// sequential (each vertex's value depends on its neighbors' already
// being known), so unlike the other operations it does not run
// lane-parallel.
//
// A cyclic graph has no well-founded reverse-topological order: with
// plan.zone.CoFix unset, Induced fails with
// cruerr.ErrCyclicWithoutFixpoint rather than guess at a stopping
// point; with CoFix set, it iterates every reachable vertex's fold to
// a fixed point instead of a single pass.
func Induced(ctx context.Context, cfg config.Config, graph *core.Graph, plan Plan, ks *kernel.Killswitch, met *metrics.Registry) (interface{}, error) {
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

	initRec, err := resolveInitial(graph, plan.zone)
	if err != nil {
		inv.Fail(err)
		return nil, err
	}

	edgesOf := func(rec *core.VertexRecord) []*core.EdgeNode {
		if plan.zone.Backwards {
			return rec.Incident.Slice()
		}
		return rec.Outgoing.Slice()
	}

	inv.Enter(kernel.StateProp)
	order, cyclic := topoOrder(initRec, edgesOf)

	var remote map[*core.VertexRecord]interface{}
	if !cyclic {
		remote, err = foldAcyclic(order, edgesOf, plan)
	} else if plan.zone.CoFix {
		remote, err = foldFixpoint(order, edgesOf, plan)
	} else {
		err = cruerr.ErrCyclicWithoutFixpoint
	}
	if err != nil {
		inv.Fail(err)
		return nil, err
	}

	inv.Enter(kernel.StateDone)
	return remote[initRec], nil
}

func resolveInitial(graph *core.Graph, zone core.Zone) (*core.VertexRecord, error) {
	if zone.InitialVertex != nil {
		lane := graph.Lanes.LaneFor(graph.Traits.VertexHash(zone.InitialVertex))
		rec, _, err := lane.Store.InsertIfAbsent(zone.InitialVertex)
		if err != nil {
			return nil, err
		}
		return rec, nil
	}
	if graph.Initial != nil {
		return graph.Initial, nil
	}
	return nil, cruerr.ErrContractViolation
}

// topoOrder runs an iterative post-order DFS from root over edgesOf,
// using each record's Color as scratch state (reset to ColorWhite
// before returning). cyclic reports whether the walk found a back
// edge to a vertex still on the stack.
func topoOrder(root *core.VertexRecord, edgesOf func(*core.VertexRecord) []*core.EdgeNode) (order []*core.VertexRecord, cyclic bool) {
	type frame struct {
		rec   *core.VertexRecord
		edges []*core.EdgeNode
		idx   int
	}
	var stack []*frame
	var touched []*core.VertexRecord

	push := func(rec *core.VertexRecord) {
		rec.Color = core.ColorGray
		touched = append(touched, rec)
		stack = append(stack, &frame{rec: rec, edges: edgesOf(rec)})
	}

	if root.Color == core.ColorWhite {
		push(root)
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.idx < len(top.edges) {
			next := top.edges[top.idx].Endpoint
			top.idx++
			switch next.Color {
			case core.ColorWhite:
				push(next)
			case core.ColorGray:
				cyclic = true
			}
			continue
		}
		top.rec.Color = core.ColorBlack
		order = append(order, top.rec)
		stack = stack[:len(stack)-1]
	}

	for _, rec := range touched {
		rec.Color = core.ColorWhite
	}
	return order, cyclic
}

// foldAcyclic computes each vertex's remote value once, in post order,
// so that every edge's terminus is already resolved when its source is
// folded.
func foldAcyclic(order []*core.VertexRecord, edgesOf func(*core.VertexRecord) []*core.EdgeNode, plan Plan) (map[*core.VertexRecord]interface{}, error) {
	remote := make(map[*core.VertexRecord]interface{}, len(order))
	for _, rec := range order {
		edges := edgesOf(rec)
		if len(edges) == 0 {
			remote[rec] = plan.vacuous
			continue
		}
		acc, err := plan.mapFn(rec.Value, edges[0].Label, remote[edges[0].Endpoint])
		if err != nil {
			return nil, err
		}
		for _, e := range edges[1:] {
			elem, err := plan.mapFn(rec.Value, e.Label, remote[e.Endpoint])
			if err != nil {
				return nil, err
			}
			acc, err = plan.reduce(acc, elem)
			if err != nil {
				return nil, err
			}
		}
		remote[rec] = acc
	}
	return remote, nil
}

// foldFixpoint re-folds every reachable vertex repeatedly until no
// value changes (detected via reflect.DeepEqual), bounded by a pass
// count proportional to the reachable set's size.
func foldFixpoint(order []*core.VertexRecord, edgesOf func(*core.VertexRecord) []*core.EdgeNode, plan Plan) (map[*core.VertexRecord]interface{}, error) {
	remote := make(map[*core.VertexRecord]interface{}, len(order))
	for _, rec := range order {
		remote[rec] = plan.vacuous
	}

	maxPasses := 2*len(order) + 1
	for pass := 0; pass < maxPasses; pass++ {
		changed := false
		for _, rec := range order {
			edges := edgesOf(rec)
			if len(edges) == 0 {
				continue
			}
			acc, err := plan.mapFn(rec.Value, edges[0].Label, remote[edges[0].Endpoint])
			if err != nil {
				return nil, err
			}
			for _, e := range edges[1:] {
				elem, err := plan.mapFn(rec.Value, e.Label, remote[e.Endpoint])
				if err != nil {
					return nil, err
				}
				acc, err = plan.reduce(acc, elem)
				if err != nil {
					return nil, err
				}
			}
			if !reflect.DeepEqual(acc, remote[rec]) {
				remote[rec] = acc
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return remote, nil
}
