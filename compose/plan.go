package compose

import (
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/kernel"
)

// QPred reports whether the two-hop path u --L1--> v --L2--> w
// qualifies for a bypass edge, given u and v's PROP properties.
type QPred func(uProp, label1, vProp, label2 interface{}) (bool, error)

// QOp derives the bypass edge's label from the two hops it replaces.
type QOp func(label1, label2 interface{}) (interface{}, error)

// Plan names compose's callbacks. QPred and QOp are required.
type Plan struct {
	qpred       QPred
	qop         QOp
	prop        kernel.PropFunc
	destructive bool
	zone        core.Zone
}

// Option mutates a Plan during New.
type Option func(*Plan)

// WithQPred sets the pair predicate. Required.
func WithQPred(fn QPred) Option { return func(p *Plan) { p.qpred = fn } }

// WithQOp sets the bypass label derivation. Required.
func WithQOp(fn QOp) Option { return func(p *Plan) { p.qop = fn } }

// WithProp enables the PROP phase, feeding its result to QPred.
func WithProp(fn kernel.PropFunc) Option { return func(p *Plan) { p.prop = fn } }

// WithDestructive drops each bypassed path's first-hop edge (u -> v)
// once the bypasses are attached; the second-hop edge (v -> w) is kept.
// Without it every original edge is retained alongside the new bypass.
func WithDestructive(destructive bool) Option {
	return func(p *Plan) { p.destructive = destructive }
}

// WithZone sets CoFix to iterate composition to a fixed point (no qpred
// holds anywhere) instead of a single pass.
func WithZone(z core.Zone) Option { return func(p *Plan) { p.zone = z } }

// New resolves a Plan from options.
func New(opts ...Option) Plan {
	var p Plan
	for _, o := range opts {
		o(&p)
	}
	return p
}
