package split

import (
	"context"
	"sync"

	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/cruerr"
	"github.com/cru-go/cru/kernel"
	"github.com/cru-go/cru/metrics"
)

type pair struct {
	in, out *core.VertexRecord
}

type dropReq struct {
	source *core.VertexRecord
	edge   *core.EdgeNode
}

// Split replaces every vertex v with two new vertices, ana(v) and
// cata(v), bridged by one internal edge. Every original edge u -> w is
// redirected to run from cata(u) to ana(w), labeled Rewired{Outward,
// Inward} from plan.outward and plan.inward's independent takes on the
// original label. v itself is reclaimed.
//
// MAP creates the ana/cata pairs and the bridge edge for every
// original vertex (direct cross-lane inserts, as DISCOVER uses);
// REWIRE, run after a barrier so every pair already exists, redirects
// each original vertex's outgoing edges onto its pair and drops the
// now-orphaned originals.
func Split(ctx context.Context, cfg config.Config, graph *core.Graph, plan Plan, ks *kernel.Killswitch, met *metrics.Registry) (*core.Graph, error) {
	if plan.ana == nil || plan.cata == nil || plan.inward.Labeler == nil || plan.outward.Labeler == nil {
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
	pairs := make(map[*core.VertexRecord]pair)
	var originals []*core.VertexRecord

	// Every lane's originals are listed before MAP starts, because the
	// ana/cata inserts below can land in a lane that has not begun yet.
	snapshot := make([][]*core.VertexRecord, graph.Lanes.N())
	graph.VisitAll(func(v *core.VertexRecord) { snapshot[v.Lane()] = append(snapshot[v.Lane()], v) })

	mapTask := func(taskCtx context.Context, laneIdx int) error {
		var firstErr error
		var local []*core.VertexRecord
		visit := func(v *core.VertexRecord) {
			if firstErr != nil || inv.KS.Tripped() {
				return
			}
			inVal, aerr := plan.ana(v.Value)
			if aerr != nil {
				firstErr = aerr
				return
			}
			outVal, cerr := plan.cata(v.Value)
			if cerr != nil {
				firstErr = cerr
				return
			}
			inRec, _, ierr := graph.Lanes.LaneFor(graph.Traits.VertexHash(inVal)).Store.InsertIfAbsent(inVal)
			if ierr != nil {
				firstErr = ierr
				return
			}
			outRec, _, oerr := graph.Lanes.LaneFor(graph.Traits.VertexHash(outVal)).Store.InsertIfAbsent(outVal)
			if oerr != nil {
				firstErr = oerr
				return
			}
			var bridgeLabel interface{}
			if plan.bridgeLabel != nil {
				bridgeLabel, firstErr = plan.bridgeLabel(v.Value)
				if firstErr != nil {
					return
				}
			}
			core.AttachEdge(inRec, outRec, bridgeLabel)

			mu.Lock()
			pairs[v] = pair{in: inRec, out: outRec}
			mu.Unlock()
			local = append(local, v)
		}
		for _, v := range snapshot[laneIdx] {
			visit(v)
		}
		if firstErr != nil {
			return firstErr
		}
		mu.Lock()
		originals = append(originals, local...)
		mu.Unlock()
		return nil
	}
	if err := inv.Pool.RunPhase(ctx, inv.KS, "map", mapTask); err != nil {
		inv.Fail(err)
		return graph, err
	}
	graph.Lanes.PromoteAll()

	inv.Enter(kernel.StateRewiring)
	var dropMu sync.Mutex
	var drops []dropReq

	rewireTask := func(taskCtx context.Context, laneIdx int) error {
		for _, v := range originals {
			if v.Lane() != laneIdx {
				continue
			}
			p := pairs[v]
			// Every edge appears on exactly one vertex's Outgoing list, so
			// walking Outgoing alone rewires each original edge exactly
			// once, redirecting it from this vertex's cata vertex (p.out)
			// to the far endpoint's ana vertex. Both ctops contribute to
			// the new label: outward describes the edge as it leaves the
			// source's half, inward as it arrives at the terminus's half.
			for _, e := range v.Outgoing.Slice() {
				outSide, err := plan.outward.apply(e.Label)
				if err != nil {
					return err
				}
				inSide, err := plan.inward.apply(e.Label)
				if err != nil {
					return err
				}
				dst := pairs[e.Endpoint].in
				core.AttachEdge(p.out, dst, Rewired{Outward: outSide, Inward: inSide})
				dropMu.Lock()
				drops = append(drops, dropReq{source: v, edge: e})
				dropMu.Unlock()
			}
		}
		return nil
	}
	if err := inv.Pool.RunPhase(ctx, inv.KS, "rewire", rewireTask); err != nil {
		inv.Fail(err)
		return graph, err
	}

	inv.Enter(kernel.StateReclaiming)
	seen := make(map[*core.EdgeNode]bool, len(drops))
	for _, d := range drops {
		if seen[d.edge] {
			continue
		}
		seen[d.edge] = true
		core.DetachEdge(d.source, d.edge)
		if graph.Traits.EdgeDestroy != nil {
			if err := graph.Traits.EdgeDestroy(d.edge.Label); err != nil {
				inv.Fail(err)
				return graph, err
			}
		}
	}
	for _, v := range originals {
		if graph.Traits.VertexDestroy != nil {
			if err := graph.Traits.VertexDestroy(v.Value); err != nil {
				inv.Fail(err)
				return graph, err
			}
		}
		graph.Lanes.Lanes[v.Lane()].Store.MarkRemoved(v)
	}
	graph.Lanes.CompactAll()

	inv.Enter(kernel.StateDone)
	return graph, nil
}
