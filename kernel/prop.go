package kernel

import (
	"context"

	"github.com/cru-go/cru/core"
)

// PropFunc computes a vertex's property from its own value and its
// neighborhood, read through the two edge lists. It must not mutate the
// graph; it returns the value to stash in the vertex's Scratch cell for
// the phases that follow (CLASSIFY, MAP, REDUCE).
type PropFunc func(value interface{}, incident, outgoing *core.EdgeList) (interface{}, error)

// Prop runs fn over every live vertex, lane-parallel, writing each
// result into the vertex's Scratch cell. It is the PROP phase: a pure
// per-vertex computation that every later phase in the same invocation
// can read back without recomputing it.
func Prop(ctx context.Context, inv *Invocation, fn PropFunc) error {
	inv.Enter(StateProp)

	task := func(taskCtx context.Context, laneIdx int) error {
		lane := inv.Graph.Lanes.Lanes[laneIdx]
		var firstErr error
		lane.Store.IterateLive(func(rec *core.VertexRecord) {
			if firstErr != nil || inv.KS.Tripped() {
				return
			}
			val, err := fn(rec.Value, &rec.Incident, &rec.Outgoing)
			if err != nil {
				firstErr = err
				return
			}
			rec.Scratch = val
		})
		return firstErr
	}

	return inv.Pool.RunPhase(ctx, inv.KS, "prop", task)
}
