package stretch

import "github.com/cru-go/cru/kernel"

// Expander decides whether the edge (sourceProp, label, targetProp)
// should be stretched. A non-nil error aborts the operation.
type Expander func(sourceProp, label, targetProp interface{}) (bool, error)

// StretchFunc replaces one selected edge's label with a pair of labels
// and the vertex value interposed between them. label stays with the
// engine, which passes it to the edge destructor when the original edge
// is dropped.
type StretchFunc func(label interface{}) (inLabel, interposedVertex, outLabel interface{}, err error)

// Plan names stretch's callbacks. Expander and StretchFunc are
// required.
type Plan struct {
	expander Expander
	stretch  StretchFunc
	prop     kernel.PropFunc
}

// Option mutates a Plan during New.
type Option func(*Plan)

// WithExpander sets the per-edge selection predicate. Required.
func WithExpander(fn Expander) Option { return func(p *Plan) { p.expander = fn } }

// WithStretch sets the edge-splitting callback. Required.
func WithStretch(fn StretchFunc) Option { return func(p *Plan) { p.stretch = fn } }

// WithProp enables the PROP phase feeding Expander's source/target
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
