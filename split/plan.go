package split

import "github.com/cru-go/cru/kernel"

// Ana produces the vertex that takes over an original vertex's
// incident (incoming) edges.
type Ana func(value interface{}) (interface{}, error)

// Cata produces the vertex that takes over an original vertex's
// outgoing edges.
type Cata func(value interface{}) (interface{}, error)

// EdgeWithProp is the label a ctop produces when it supplies an
// EdgeProp, carrying both the relabeled edge and the derived property
// alongside it.
type EdgeWithProp struct {
	Label interface{}
	Prop  interface{}
}

// Rewired is the label split attaches to every rewired edge, carrying
// both ctops' contributions: Outward is what the outward ctop derived
// from the original label as it leaves the source's cata vertex, and
// Inward is what the inward ctop derived as it arrives at the
// terminus's ana vertex.
type Rewired struct {
	Outward interface{}
	Inward  interface{}
}

// Ctop relabels one side's edges during rewiring. Labeler is required;
// EdgeProp is optional and, when set, wraps the result in an
// EdgeWithProp instead of a bare label.
type Ctop struct {
	Labeler  func(origLabel interface{}) (interface{}, error)
	EdgeProp func(origLabel interface{}) (interface{}, error)
}

func (c Ctop) apply(origLabel interface{}) (interface{}, error) {
	label, err := c.Labeler(origLabel)
	if err != nil {
		return nil, err
	}
	if c.EdgeProp == nil {
		return label, nil
	}
	prop, err := c.EdgeProp(origLabel)
	if err != nil {
		return nil, err
	}
	return EdgeWithProp{Label: label, Prop: prop}, nil
}

// Plan names split's callbacks. Ana, Cata, Inward.Labeler, and
// Outward.Labeler are required.
type Plan struct {
	ana         Ana
	cata        Cata
	inward      Ctop
	outward     Ctop
	bridgeLabel func(value interface{}) (interface{}, error)
	prop        kernel.PropFunc
}

// Option mutates a Plan during New.
type Option func(*Plan)

// WithAna sets the ana constructor. Required.
func WithAna(fn Ana) Option { return func(p *Plan) { p.ana = fn } }

// WithCata sets the cata constructor. Required.
func WithCata(fn Cata) Option { return func(p *Plan) { p.cata = fn } }

// WithInward sets the ctop that relabels edges that used to terminate
// at the original vertex. Required.
func WithInward(c Ctop) Option { return func(p *Plan) { p.inward = c } }

// WithOutward sets the ctop that relabels edges that used to
// originate at the original vertex. Required.
func WithOutward(c Ctop) Option { return func(p *Plan) { p.outward = c } }

// WithBridgeLabel sets the label of the internal edge connecting ana's
// vertex to cata's vertex, derived from the original value. Omitted,
// the bridge edge carries a nil label.
func WithBridgeLabel(fn func(value interface{}) (interface{}, error)) Option {
	return func(p *Plan) { p.bridgeLabel = fn }
}

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
