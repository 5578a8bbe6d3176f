package filter

import "github.com/cru-go/cru/kernel"

// Predicate reports whether a vertex survives filtering. prop is the
// vertex's PROP-phase property if a Prop callback was supplied, else
// nil.
type Predicate func(value interface{}, prop interface{}) (keep bool, err error)

// Plan names filter's callbacks.
type Plan struct {
	predicate    Predicate
	prop         kernel.PropFunc
	reclaimEdges bool
}

// Option mutates a Plan during New.
type Option func(*Plan)

// WithPredicate sets the survival predicate. Required.
func WithPredicate(fn Predicate) Option { return func(p *Plan) { p.predicate = fn } }

// WithProp enables the PROP phase, feeding its result to Predicate.
func WithProp(fn kernel.PropFunc) Option { return func(p *Plan) { p.prop = fn } }

// WithReclaimEdges controls whether a dropped vertex's pruned edges have
// their labels passed to the edge destructor, or are left undestroyed
// because the client retains ownership of them some other way. Defaults
// to true.
func WithReclaimEdges(reclaim bool) Option { return func(p *Plan) { p.reclaimEdges = reclaim } }

// New resolves a Plan from options; WithReclaimEdges defaults to true.
func New(opts ...Option) Plan {
	p := Plan{reclaimEdges: true}
	for _, o := range opts {
		o(&p)
	}
	return p
}
