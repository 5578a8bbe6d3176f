package dedup

import (
	"context"

	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/cruerr"
	"github.com/cru-go/cru/kernel"
	"github.com/cru-go/cru/metrics"
)

// Deduplicated collapses every class of vertices that collide under
// plan's grouping into one representative, relocating every class
// member's edges onto it, then (with WithEqualEdges) coalescing the
// representative's now-parallel outgoing edges. Phases are CLASSIFY
// (identity key by default), MAP (fusion), REWIRE, RECLAIM; classifier-
// key and equal_edges dedup reuse the same engine with a different key
// function and an extra coalescing pass.
func Deduplicated(ctx context.Context, cfg config.Config, graph *core.Graph, plan Plan, ks *kernel.Killswitch, met *metrics.Registry) (*core.Graph, error) {
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

	classify, keyHash, keyEqual := plan.classify, plan.keyHash, plan.keyEqual
	var classifyErr error
	if classify == nil {
		classify = func(v interface{}) (interface{}, error) { return v, nil }
		keyHash = graph.Traits.VertexHash
		keyEqual = func(a, b interface{}) bool {
			ok, eerr := graph.Traits.VertexEqual(a, b)
			if eerr != nil {
				classifyErr = eerr
			}
			return ok
		}
	}

	table, err := kernel.Classify(ctx, inv, classify, keyHash, keyEqual)
	if err != nil {
		inv.Fail(err)
		return graph, err
	}
	if classifyErr != nil {
		inv.Fail(classifyErr)
		return graph, classifyErr
	}

	inv.Enter(kernel.StateMapping)
	var toRemove []*core.VertexRecord

	for _, group := range table.Groups() {
		if ks.Tripped() {
			inv.Fail(cruerr.ErrCancelled)
			return graph, cruerr.ErrCancelled
		}
		if len(group.Records) <= 1 {
			continue
		}

		rep := group.Records[0]
		for _, rec := range group.Records[1:] {
			redirectEdges(rec, rep)
			if graph.Traits.VertexDestroy != nil {
				if derr := graph.Traits.VertexDestroy(rec.Value); derr != nil {
					inv.Fail(derr)
					return graph, derr
				}
			}
			toRemove = append(toRemove, rec)
		}

		if plan.equalEdges != nil {
			if err := coalesceParallel(graph, rep, plan.equalEdges); err != nil {
				inv.Fail(err)
				return graph, err
			}
		}
	}

	inv.Enter(kernel.StateReclaiming)
	for _, rec := range toRemove {
		lane := graph.Lanes.Lanes[rec.Lane()]
		lane.Store.MarkRemoved(rec)
	}
	graph.Lanes.CompactAll()

	inv.Enter(kernel.StateDone)
	return graph, nil
}

// redirectEdges relocates every EdgeNode on rec's two lists onto rep,
// repointing each edge's mate at the new endpoint.
func redirectEdges(rec, rep *core.VertexRecord) {
	for _, n := range rec.Outgoing.Slice() {
		if n.Mate() != nil {
			n.Mate().Endpoint = rep
		}
		rep.Outgoing.AppendNode(n)
	}
	rec.Outgoing.Reset()

	for _, n := range rec.Incident.Slice() {
		if n.Mate() != nil {
			n.Mate().Endpoint = rep
		}
		rep.Incident.AppendNode(n)
	}
	rec.Incident.Reset()
}

// coalesceParallel drops every outgoing edge from rep that equalEdges
// judges equal to an earlier-kept edge sharing the same endpoint,
// destroying the dropped label and detaching its mate.
func coalesceParallel(graph *core.Graph, rep *core.VertexRecord, equalEdges EqualEdges) error {
	kept := make(map[*core.VertexRecord][]*core.EdgeNode)
	var outerErr error
	dropped := rep.Outgoing.Filter(func(n *core.EdgeNode) bool {
		if outerErr != nil {
			return true
		}
		for _, k := range kept[n.Endpoint] {
			eq, err := equalEdges(k.Label, n.Label)
			if err != nil {
				outerErr = err
				return true
			}
			if eq {
				return false
			}
		}
		kept[n.Endpoint] = append(kept[n.Endpoint], n)
		return true
	})
	if outerErr != nil {
		return outerErr
	}
	for _, n := range dropped {
		if n.Mate() != nil {
			n.Endpoint.Incident.Filter(func(x *core.EdgeNode) bool { return x != n.Mate() })
		}
		if graph.Traits.EdgeDestroy != nil {
			if err := graph.Traits.EdgeDestroy(n.Label); err != nil {
				return err
			}
		}
	}
	return nil
}
