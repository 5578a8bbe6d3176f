package merge

import "github.com/cru-go/cru/kernel"

// ClassifyFunc computes a vertex's classifier key; vertices with equal
// keys (per KeyEqual) are fused together.
type ClassifyFunc func(value interface{}) (key interface{}, err error)

// VertexMap produces the fused form of one class member's value, of the
// same ownership kind as the original. VertexMap owns its input: the
// engine does not separately destroy the original value.
type VertexMap func(value interface{}) (interface{}, error)

// Reduce folds two fused values into one. Reduce takes ownership of
// both a and b and returns the value that survives; if it discards one
// of them it is responsible for destroying it, matching the source
// C project's reduce-consumes-both-inputs convention (the engine never
// touches a consumed value again).
type Reduce func(a, b interface{}) (interface{}, error)

// Pruner filters a representative's outgoing edges after redirection.
// everywhere reports whether the predicate is being evaluated against
// every remaining edge in one pass (true) rather than incrementally.
type Pruner func(everywhere bool, edge interface{}) (keep bool, err error)

// Plan names merge's callbacks. Classify, VertexMap, and Reduce are
// required.
type Plan struct {
	classify  ClassifyFunc
	keyHash   func(interface{}) uint64
	keyEqual  func(a, b interface{}) bool
	vertexMap VertexMap
	reduce    Reduce
	pruner    Pruner
	prop      kernel.PropFunc
}

// Option mutates a Plan during New.
type Option func(*Plan)

// WithClassify sets the classifier key function and the hash/equality
// used to compare keys. Required.
func WithClassify(fn ClassifyFunc, keyHash func(interface{}) uint64, keyEqual func(a, b interface{}) bool) Option {
	return func(p *Plan) { p.classify = fn; p.keyHash = keyHash; p.keyEqual = keyEqual }
}

// WithVertexMap sets the per-member fuser. Required.
func WithVertexMap(fn VertexMap) Option { return func(p *Plan) { p.vertexMap = fn } }

// WithReduce sets the pairwise class fold. Required.
func WithReduce(fn Reduce) Option { return func(p *Plan) { p.reduce = fn } }

// WithPruner sets the post-redirect edge pruner, run over each
// representative's outgoing edges right after its own class is fused.
func WithPruner(fn Pruner) Option { return func(p *Plan) { p.pruner = fn } }

// WithProp enables the PROP phase, feeding its result to Classify via
// the vertex's Scratch cell (Classify still receives the raw value;
// a Classify closure that reads kernel-populated Scratch through a
// shared reference can use the property without changing this
// signature).
func WithProp(fn kernel.PropFunc) Option { return func(p *Plan) { p.prop = fn } }

// New resolves a Plan from options.
func New(opts ...Option) Plan {
	var p Plan
	for _, o := range opts {
		o(&p)
	}
	return p
}
