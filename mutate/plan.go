package mutate

import (
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/kernel"
)

// VertexOp rewrites a vertex's value. prop is the vertex's PROP-phase
// property if a Prop callback was supplied, else nil.
type VertexOp func(value interface{}, prop interface{}) (interface{}, error)

// EdgeOp rewrites an edge's label.
type EdgeOp func(label interface{}) (interface{}, error)

// Plan names mutate's callbacks. VOp is required; EOp, Prop, and Zone
// are optional.
type Plan struct {
	vop  VertexOp
	eop  EdgeOp
	prop kernel.PropFunc
	zone core.Zone
}

// Option mutates a Plan during New.
type Option func(*Plan)

// WithVertexOp sets the vertex rewrite callback. Required.
func WithVertexOp(fn VertexOp) Option { return func(p *Plan) { p.vop = fn } }

// WithEdgeOp sets the edge rewrite callback. If unset, labels are left
// unchanged.
func WithEdgeOp(fn EdgeOp) Option { return func(p *Plan) { p.eop = fn } }

// WithProp enables the PROP phase, feeding its result to VertexOp.
func WithProp(fn kernel.PropFunc) Option { return func(p *Plan) { p.prop = fn } }

// WithZone sets the traversal direction/order hint (currently only
// Backwards affects which edge list EdgeOp walks; the remaining Zone
// fields are accepted for forward compatibility with compose/induce's
// shared Zone type but mutate's per-vertex rewrite has no traversal
// order dependency of its own to apply them to).
func WithZone(z core.Zone) Option { return func(p *Plan) { p.zone = z } }

// New resolves a Plan from options.
func New(opts ...Option) Plan {
	var p Plan
	for _, o := range opts {
		o(&p)
	}
	return p
}
