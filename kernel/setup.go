package kernel

import (
	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/metrics"
)

// Start builds a Pool sized to graph's own lane count (never cfg.Lanes
// directly: a graph's lane table is fixed at NewGraph time, and a
// phase's pool must issue exactly one task per lane that table has) and
// wraps it with graph, ks, and the ambient logger/metrics into a fresh
// Invocation ready for an operation package to drive through its phase
// sequence.
func Start(cfg config.Config, graph *core.Graph, ks *Killswitch, met *metrics.Registry) (*Invocation, error) {
	pool, err := NewPool(graph.Lanes.N(), met)
	if err != nil {
		return nil, err
	}
	return NewInvocation(graph, pool, ks, cfg.Logger, met), nil
}
