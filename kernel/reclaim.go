package kernel

import (
	"context"

	"github.com/cru-go/cru/core"
)

// Reclaim destroys the edge and vertex values owned by records, then
// tombstones each record in its home store. records may come from any
// lane; work is partitioned by each record's own lane so destructors
// for one vertex always run on that vertex's owning goroutine. Every
// edge value is destroyed exactly once even though it is reachable from
// both endpoints' lists, mirroring core.Graph.FreeNow's dedup.
//
// This is the RECLAIM phase: it runs after REWIRE, once no live
// reference to a removed record's edges can still be created.
func Reclaim(ctx context.Context, inv *Invocation, records []*core.VertexRecord) error {
	inv.Enter(StateReclaiming)
	if len(records) == 0 {
		return nil
	}

	byLane := make([][]*core.VertexRecord, inv.Pool.Lanes)
	for _, rec := range records {
		byLane[rec.Lane()] = append(byLane[rec.Lane()], rec)
	}

	task := func(taskCtx context.Context, laneIdx int) error {
		lane := inv.Graph.Lanes.Lanes[laneIdx]
		seenEdges := make(map[*core.EdgeNode]bool)
		var firstErr error
		for _, rec := range byLane[laneIdx] {
			if inv.KS.Tripped() {
				return nil
			}
			rec.Outgoing.Each(func(n *core.EdgeNode) {
				if firstErr != nil || seenEdges[n] || (n.Mate() != nil && seenEdges[n.Mate()]) {
					return
				}
				seenEdges[n] = true
				if inv.Graph.Traits.EdgeDestroy != nil {
					if err := inv.Graph.Traits.EdgeDestroy(n.Label); err != nil {
						firstErr = err
						return
					}
				}
				inv.Met.IncDestroyed("edge")
			})
			if firstErr != nil {
				return firstErr
			}
			if inv.Graph.Traits.VertexDestroy != nil {
				if err := inv.Graph.Traits.VertexDestroy(rec.Value); err != nil {
					return err
				}
			}
			lane.Store.MarkRemoved(rec)
			inv.Met.IncDestroyed("vertex")
		}
		return firstErr
	}

	err := inv.Pool.RunPhase(ctx, inv.KS, "reclaim", task)
	inv.Graph.Lanes.CompactAll()
	return err
}
