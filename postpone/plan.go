package postpone

import "github.com/cru-go/cru/kernel"

// Postponable marks which of a vertex's outgoing edges are eligible to
// be postponed.
type Postponable func(label interface{}) (bool, error)

// PairPred decides whether a postponable edge and another outgoing
// edge at the same source should be combined.
type PairPred func(postponeLabel, otherLabel interface{}) (bool, error)

// Combine produces the label for the new edge added for a combined
// pair. Both inputs stay with the engine: the other edge keeps its
// label, and the postponable edge's label goes to the edge destructor
// when that edge is dropped.
type Combine func(postponeLabel, otherLabel interface{}) (interface{}, error)

// Plan names postpone's callbacks. All three are required.
type Plan struct {
	postponable Postponable
	pairPred    PairPred
	combine     Combine
	prop        kernel.PropFunc
}

// Option mutates a Plan during New.
type Option func(*Plan)

// WithPostponable sets the per-edge eligibility predicate. Required.
func WithPostponable(fn Postponable) Option { return func(p *Plan) { p.postponable = fn } }

// WithPairPred sets the pair predicate. Required.
func WithPairPred(fn PairPred) Option { return func(p *Plan) { p.pairPred = fn } }

// WithCombine sets the binary combiner. Required.
func WithCombine(fn Combine) Option { return func(p *Plan) { p.combine = fn } }

// WithProp enables the PROP phase ahead of MAP.
func WithProp(fn kernel.PropFunc) Option { return func(p *Plan) { p.prop = fn } }

// New resolves a Plan from options.
func New(opts ...Option) Plan {
	var p Plan
	for _, o := range opts {
		o(&p)
	}
	return p
}
