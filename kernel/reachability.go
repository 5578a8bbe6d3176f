package kernel

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/cruerr"
)

// spinDelay is how long an idle lane worker sleeps before re-checking
// its pending list during discovery. It trades a little latency for
// avoiding a true busy loop; the termination counter it polls is cheap
// to read, so this is not on any hot path once the graph is small.
const spinDelay = 200 * time.Microsecond

// DiscoverConfig names the connector pair a build or re-expansion needs.
// Exactly one of Connector/Subconnector must be set.
type DiscoverConfig struct {
	Connector    core.Connector
	Subconnector core.Subconnector

	// IsInitial reports whether value is the graph's distinguished
	// initial vertex, forwarded to Subconnector's isInitial parameter.
	IsInitial func(value interface{}) bool
}

// Discover drives connector-based expansion on inv.Graph to quiescence.
// seeds are pushed as roots before the pool starts: the build operation
// passes its one seed (or its endogenous root values); an operation
// re-expanding an existing graph passes nil and instead seeds lanes
// itself before calling Discover, or omits DISCOVER from its phase
// sequence entirely when it has no connector to run.
//
// Routing a newly declared terminus to its home lane's store and
// attaching the edge happen synchronously, in the visiting lane's own
// goroutine, so that outgoing-edge order at a vertex matches
// connector-call order even though the store being written may belong
// to a different lane; VertexStore and VertexRecord carry the locking
// needed to make that safe (see core.AttachEdge).
func Discover(ctx context.Context, inv *Invocation, cfg DiscoverConfig, seeds []interface{}) error {
	if cfg.Connector == nil && cfg.Subconnector == nil {
		return cruerr.ErrCallbackMissing
	}
	inv.Enter(StateDiscovering)

	var outstanding int64
	var reachedMu sync.Mutex
	reachedBy := make(map[*core.VertexRecord]interface{})

	route := func(source *core.VertexRecord, label, terminusValue interface{}) error {
		if terminusValue == nil {
			return cruerr.ErrContractViolation
		}
		h := inv.Graph.Traits.VertexHash(terminusValue)
		target := inv.Graph.Lanes.LaneFor(h)
		rec, created, err := target.Store.InsertIfAbsent(terminusValue)
		if err != nil {
			return err
		}
		if created {
			if source != nil {
				reachedMu.Lock()
				reachedBy[rec] = label
				reachedMu.Unlock()
			}
			atomic.AddInt64(&outstanding, 1)
			target.PushPending(rec)
		} else if inv.Graph.Traits.VertexDestroy != nil {
			if derr := inv.Graph.Traits.VertexDestroy(terminusValue); derr != nil {
				return derr
			}
		}
		if source != nil {
			core.AttachEdge(source, rec, label)
		}
		return nil
	}

	for _, v := range seeds {
		if err := route(nil, nil, v); err != nil {
			return err
		}
	}

	visit := func(rec *core.VertexRecord) error {
		connect := func(label, terminus interface{}) error {
			return route(rec, label, terminus)
		}
		if cfg.Subconnector != nil {
			isInitial := cfg.IsInitial != nil && cfg.IsInitial(rec.Value)
			reachedMu.Lock()
			incident := reachedBy[rec]
			reachedMu.Unlock()
			return cfg.Subconnector(isInitial, incident, rec.Value, connect)
		}
		return cfg.Connector(rec.Value, connect)
	}

	task := func(taskCtx context.Context, laneIdx int) error {
		lane := inv.Graph.Lanes.Lanes[laneIdx]
		for {
			if inv.KS.Tripped() {
				return cruerr.ErrCancelled
			}
			rec, ok := lane.PopPending()
			if !ok {
				if atomic.LoadInt64(&outstanding) == 0 {
					return nil
				}
				select {
				case <-taskCtx.Done():
					return nil
				case <-time.After(spinDelay):
				}
				continue
			}
			if err := visit(rec); err != nil {
				return err
			}
			rec.Color = core.ColorBlack
			atomic.AddInt64(&outstanding, -1)
		}
	}

	err := inv.Pool.RunPhase(ctx, inv.KS, "discover", task)
	inv.Graph.Lanes.PromoteAll()
	return err
}
