package dedup

import "github.com/cru-go/cru/kernel"

// ClassifyFunc computes a vertex's grouping key. Leaving it unset
// (via New with no WithClassify) selects identity dedup: vertices
// group by the graph's own Traits.VertexHash/VertexEqual, i.e. two
// vertices collapse only if their values are themselves equal.
// WithClassify switches to classifier-key dedup: vertices with equal
// keys collapse even if their values differ.
type ClassifyFunc func(value interface{}) (key interface{}, err error)

// EqualEdges additionally coalesces parallel edges sharing an endpoint
// once their sources have been fused, collapsing duplicates whenever
// it reports two labels equal. Left nil, dedup only fuses vertices and
// leaves every edge in place.
type EqualEdges func(a, b interface{}) (bool, error)

// Plan names dedup's callbacks. None are required: New() alone selects
// plain identity dedup with no edge coalescing.
type Plan struct {
	classify   ClassifyFunc
	keyHash    func(interface{}) uint64
	keyEqual   func(a, b interface{}) bool
	equalEdges EqualEdges
	prop       kernel.PropFunc
}

// Option mutates a Plan during New.
type Option func(*Plan)

// WithClassify switches dedup from identity to classifier-key
// grouping.
func WithClassify(fn ClassifyFunc, keyHash func(interface{}) uint64, keyEqual func(a, b interface{}) bool) Option {
	return func(p *Plan) { p.classify = fn; p.keyHash = keyHash; p.keyEqual = keyEqual }
}

// WithEqualEdges enables post-fusion parallel-edge coalescing.
func WithEqualEdges(fn EqualEdges) Option { return func(p *Plan) { p.equalEdges = fn } }

// WithProp enables the PROP phase ahead of classification.
func WithProp(fn kernel.PropFunc) Option { return func(p *Plan) { p.prop = fn } }

// New resolves a Plan from options.
func New(opts ...Option) Plan {
	var p Plan
	for _, o := range opts {
		o(&p)
	}
	return p
}
