package cross

import (
	"context"

	"github.com/cru-go/cru/build"
	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/cruerr"
	"github.com/cru-go/cru/kernel"
	"github.com/cru-go/cru/metrics"
)

// Pair is the vertex value of a crossed graph: one vertex from each
// input graph.
type Pair struct {
	A, B interface{}
}

func lookup(g *core.Graph, v interface{}) (*core.VertexRecord, error) {
	lane := g.Lanes.LaneFor(g.Traits.VertexHash(v))
	rec, _, err := lane.Store.InsertIfAbsent(v)
	return rec, err
}

// Crossed discovers the product of a and b from the seed pair
// plan.seedA/plan.seedB: a vertex (u, v) has an outgoing edge to
// (u', v') for every pair of edges u->u' in a and v->v' in b that
// plan.equivalence accepts (or every pair, if plan.equivalence is
// nil), labeled via plan.pairLabel. Implemented as a DISCOVER over a
// connector that reads a and b's existing edge lists, running DISCOVER
// over the paired vertex space instead of either source graph alone.
func Crossed(ctx context.Context, cfg config.Config, a, b *core.Graph, plan Plan, ks *kernel.Killswitch, met *metrics.Registry) (*core.Graph, error) {
	if plan.pairLabel == nil || plan.seedA == nil || plan.seedB == nil {
		return nil, cruerr.ErrCallbackMissing
	}

	traits := core.Traits{
		VertexHash: func(v interface{}) uint64 {
			p := v.(Pair)
			return core.Spread(a.Traits.VertexHash(p.A)) ^ b.Traits.VertexHash(p.B)
		},
		VertexEqual: func(x, y interface{}) (bool, error) {
			px, py := x.(Pair), y.(Pair)
			eqA, err := a.Traits.VertexEqual(px.A, py.A)
			if err != nil || !eqA {
				return false, err
			}
			return b.Traits.VertexEqual(px.B, py.B)
		},
	}

	connector := func(vertex interface{}, connect core.ConnectFunc) error {
		pv := vertex.(Pair)
		arec, err := lookup(a, pv.A)
		if err != nil {
			return err
		}
		brec, err := lookup(b, pv.B)
		if err != nil {
			return err
		}
		for _, ea := range arec.Outgoing.Slice() {
			for _, eb := range brec.Outgoing.Slice() {
				if plan.equivalence != nil {
					ok, eerr := plan.equivalence(ea.Label, eb.Label)
					if eerr != nil {
						return eerr
					}
					if !ok {
						continue
					}
				}
				label, lerr := plan.pairLabel(ea.Label, eb.Label)
				if lerr != nil {
					return lerr
				}
				terminus := Pair{A: ea.Endpoint.Value, B: eb.Endpoint.Value}
				if cerr := connect(label, terminus); cerr != nil {
					return cerr
				}
			}
		}
		return nil
	}

	bp := build.New(
		build.WithSeed(Pair{A: plan.seedA, B: plan.seedB}),
		build.WithConnector(connector),
	)
	return build.Built(ctx, cfg, traits, bp, ks, met)
}
