package mapreduce

import "github.com/cru-go/cru/kernel"

// Plan names mapreduce's callbacks. Map, Reduce, and Vacuous are
// required (Vacuous may itself be nil if that is a meaningful empty
// value for the client's type).
type Plan struct {
	mapFn   kernel.MapFunc
	reduce  kernel.ReduceFunc
	vacuous interface{}
	prop    kernel.PropFunc
}

// Option mutates a Plan during New.
type Option func(*Plan)

// WithMap sets the per-vertex projection. Required.
func WithMap(fn kernel.MapFunc) Option { return func(p *Plan) { p.mapFn = fn } }

// WithReduce sets the associative combiner. Required.
func WithReduce(fn kernel.ReduceFunc) Option { return func(p *Plan) { p.reduce = fn } }

// WithVacuous sets the value returned for an empty graph.
func WithVacuous(v interface{}) Option { return func(p *Plan) { p.vacuous = v } }

// WithProp enables the PROP phase ahead of the fold.
func WithProp(fn kernel.PropFunc) Option { return func(p *Plan) { p.prop = fn } }

// New resolves a Plan from options.
func New(opts ...Option) Plan {
	var p Plan
	for _, o := range opts {
		o(&p)
	}
	return p
}
