package build

import "github.com/cru-go/cru/core"

// Plan names the callbacks and roots one build invocation needs.
// Exactly one of Connector/Subconnector must be set; Seed and
// EndogenousVertices may both be empty only if the resulting graph is
// meant to be empty.
type Plan struct {
	connector    core.Connector
	subconnector core.Subconnector
	seed         interface{}
	endogenous   []interface{}
}

// Option mutates a Plan during New.
type Option func(*Plan)

// WithConnector sets the connector callback driving discovery.
func WithConnector(fn core.Connector) Option {
	return func(p *Plan) { p.connector = fn }
}

// WithSubconnector sets the subconnector variant, which additionally
// receives the incoming edge label and an is-initial flag.
func WithSubconnector(fn core.Subconnector) Option {
	return func(p *Plan) { p.subconnector = fn }
}

// WithSeed sets the graph's distinguished initial vertex. A build
// without a seed is purely endogenous.
func WithSeed(v interface{}) Option {
	return func(p *Plan) { p.seed = v }
}

// WithEndogenousVertices adds extra roots that are pushed for discovery
// alongside (or instead of) the seed: these vertices exist whether or
// not the connector ever reaches them from the seed.
func WithEndogenousVertices(values ...interface{}) Option {
	return func(p *Plan) { p.endogenous = append(p.endogenous, values...) }
}

// New resolves a Plan from options.
func New(opts ...Option) Plan {
	var p Plan
	for _, o := range opts {
		o(&p)
	}
	return p
}
