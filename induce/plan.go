package induce

import (
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/kernel"
)

// StageMap computes one edge's contribution to its source's remote
// value: map(local vertex value, edge label, remote value of the
// edge's terminus).
type StageMap func(localValue, label, remoteValue interface{}) (interface{}, error)

// StageReduce associatively combines two edge contributions at the
// same vertex into one.
type StageReduce func(a, b interface{}) (interface{}, error)

// Plan names induce's callbacks and traversal zone. StageMap,
// StageReduce, and Vacuous are required; Vacuous may be nil if that is
// itself a meaningful sink value.
type Plan struct {
	mapFn   StageMap
	reduce  StageReduce
	vacuous interface{}
	zone    core.Zone
	prop    kernel.PropFunc
}

// Option mutates a Plan during New.
type Option func(*Plan)

// WithMap sets the per-edge stage function. Required.
func WithMap(fn StageMap) Option { return func(p *Plan) { p.mapFn = fn } }

// WithReduce sets the per-vertex combiner over its edges. Required.
func WithReduce(fn StageReduce) Option { return func(p *Plan) { p.reduce = fn } }

// WithVacuous sets the value assigned to a sink (a vertex with no
// edges in the traversal direction).
func WithVacuous(v interface{}) Option { return func(p *Plan) { p.vacuous = v } }

// WithZone sets the traversal zone: direction, the starting vertex
// (defaulting to the graph's own initial vertex), and whether a cyclic
// graph should be resolved by fixed-point iteration (CoFix) rather
// than rejected.
func WithZone(z core.Zone) Option { return func(p *Plan) { p.zone = z } }

// WithProp enables the PROP phase feeding the stage functions'
// properties via Scratch.
func WithProp(fn kernel.PropFunc) Option { return func(p *Plan) { p.prop = fn } }

// New resolves a Plan from options.
func New(opts ...Option) Plan {
	var p Plan
	for _, o := range opts {
		o(&p)
	}
	return p
}
