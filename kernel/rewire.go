package kernel

import (
	"context"

	"github.com/cru-go/cru/core"
)

// RewireOp is one pending structural edit produced during MAP and
// applied at the REWIRE barrier. Exactly one of Attach/Detach is set.
type RewireOp struct {
	Attach *attachOp
	Detach *detachOp
}

type attachOp struct {
	Source, Terminus *core.VertexRecord
	Label             interface{}
}

type detachOp struct {
	Source *core.VertexRecord
	Edge   *core.EdgeNode
}

// Attach builds a RewireOp that creates an edge from source to terminus
// when REWIRE applies it.
func Attach(source, terminus *core.VertexRecord, label interface{}) RewireOp {
	return RewireOp{Attach: &attachOp{Source: source, Terminus: terminus, Label: label}}
}

// Detach builds a RewireOp that removes edge (identified by its node on
// source.Outgoing) when REWIRE applies it.
func Detach(source *core.VertexRecord, edge *core.EdgeNode) RewireOp {
	return RewireOp{Detach: &detachOp{Source: source, Edge: edge}}
}

// Rewire applies every queued op. Ops are partitioned across lanes by
// their source vertex's lane so that two ops touching the same source
// are applied by the same goroutine and so stay in submission order;
// ops on different sources run concurrently. This is the REWIRE phase:
// by construction it runs after MAP/REDUCE have finished deciding what
// the new edge set looks like, so no further discovery happens here.
func Rewire(ctx context.Context, inv *Invocation, ops []RewireOp) error {
	inv.Enter(StateRewiring)

	byLane := make([][]RewireOp, inv.Pool.Lanes)
	for _, op := range ops {
		var lane int
		switch {
		case op.Attach != nil:
			lane = op.Attach.Source.Lane()
		case op.Detach != nil:
			lane = op.Detach.Source.Lane()
		default:
			continue
		}
		byLane[lane] = append(byLane[lane], op)
	}

	task := func(taskCtx context.Context, laneIdx int) error {
		for _, op := range byLane[laneIdx] {
			if inv.KS.Tripped() {
				return nil
			}
			switch {
			case op.Attach != nil:
				core.AttachEdge(op.Attach.Source, op.Attach.Terminus, op.Attach.Label)
			case op.Detach != nil:
				core.DetachEdge(op.Detach.Source, op.Detach.Edge)
			}
		}
		return nil
	}

	return inv.Pool.RunPhase(ctx, inv.KS, "rewire", task)
}
