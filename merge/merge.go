package merge

import (
	"context"

	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/cruerr"
	"github.com/cru-go/cru/kernel"
	"github.com/cru-go/cru/metrics"
)

// Merged fuses every classifier-key class of two-or-more vertices into
// one representative, folding their mapped values with plan.reduce and
// redirecting every class member's edges onto the survivor. Classes are
// fused one at a time rather than lane-parallel: two classes may share
// an edge across their boundary, and relinking that edge's two
// EdgeNodes (one per endpoint) from two goroutines at once would race,
// so MAP+REWIRE run as a single sequential pass here instead of the
// usual per-lane barrier split.
func Merged(ctx context.Context, cfg config.Config, graph *core.Graph, plan Plan, ks *kernel.Killswitch, met *metrics.Registry) (*core.Graph, error) {
	if plan.classify == nil || plan.vertexMap == nil || plan.reduce == nil {
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

	table, err := kernel.Classify(ctx, inv, plan.classify, plan.keyHash, plan.keyEqual)
	if err != nil {
		inv.Fail(err)
		return graph, err
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

		fused := make([]interface{}, len(group.Records))
		for i, rec := range group.Records {
			v, merr := plan.vertexMap(rec.Value)
			if merr != nil {
				inv.Fail(merr)
				return graph, merr
			}
			fused[i] = v
		}
		acc := fused[0]
		for i := 1; i < len(fused); i++ {
			var rerr error
			acc, rerr = plan.reduce(acc, fused[i])
			if rerr != nil {
				inv.Fail(rerr)
				return graph, rerr
			}
		}

		rep := group.Records[0]
		rep.Value = acc
		for _, rec := range group.Records[1:] {
			redirectEdges(rec, rep)
			toRemove = append(toRemove, rec)
		}
		if plan.pruner != nil {
			dropped := rep.Outgoing.Filter(func(n *core.EdgeNode) bool {
				keep, perr := plan.pruner(true, n.Label)
				if perr != nil {
					err = perr
				}
				return perr == nil && keep
			})
			if err != nil {
				inv.Fail(err)
				return graph, err
			}
			for _, n := range dropped {
				if n.Mate() != nil {
					n.Endpoint.Incident.Filter(func(x *core.EdgeNode) bool { return x != n.Mate() })
				}
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
// repointing each edge's mate at the new endpoint so the opposite
// side's list stays consistent.
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
