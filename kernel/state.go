package kernel

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/cruerr"
	"github.com/cru-go/cru/metrics"
)

// State is one point in the per-invocation phase state machine.
type State int

const (
	StateInit State = iota
	StateDiscovering
	StateProp
	StateClassifying
	StateMapping
	StateReducing
	StateRewiring
	StateReclaiming
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateDiscovering:
		return "DISCOVERING"
	case StateProp:
		return "PROPPING"
	case StateClassifying:
		return "CLASSIFYING"
	case StateMapping:
		return "MAPPING"
	case StateReducing:
		return "REDUCING"
	case StateRewiring:
		return "REWIRING"
	case StateReclaiming:
		return "RECLAIMING"
	case StateDone:
		return "DONE"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Invocation bundles the per-call machinery every operation package
// threads through the kernel's phase helpers: the pool, the graph being
// operated on, the killswitch, the error channel, and the ambient
// logging/metrics. One Invocation is consumed by exactly one operation
// call.
type Invocation struct {
	ID    uuid.UUID
	Graph *core.Graph
	Pool  *Pool
	KS    *Killswitch
	Err   *cruerr.Channel
	Log   *zap.Logger
	Met   *metrics.Registry

	State State
}

// NewInvocation builds an Invocation for one operation call. logger and
// metricsReg may be nil (a no-op logger and a metrics no-op are used).
func NewInvocation(graph *core.Graph, pool *Pool, ks *Killswitch, logger *zap.Logger, metricsReg *metrics.Registry) *Invocation {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New()
	return &Invocation{
		ID:    id,
		Graph: graph,
		Pool:  pool,
		KS:    ks,
		Err:   cruerr.NewChannel(),
		Log:   logger.With(zap.String("invocation_id", id.String())),
		Met:   metricsReg,
		State: StateInit,
	}
}

// Enter transitions to the given state and logs it at Debug.
func (inv *Invocation) Enter(s State) {
	inv.State = s
	inv.Log.Debug("phase transition", zap.String("state", s.String()), zap.String("invocation_id", inv.ID.String()))
}

// Fail transitions to StateFailed, records err, and logs at Warn
// (Cancelled) or Error (everything else).
func (inv *Invocation) Fail(err error) {
	inv.Err.Report(err)
	inv.State = StateFailed
	if cruerr.CodeOf(err) == cruerr.Cancelled {
		inv.Log.Warn("invocation cancelled", zap.Error(err))
	} else {
		inv.Log.Error("invocation failed", zap.Error(err))
	}
}
