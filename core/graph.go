package core

import "github.com/google/uuid"

// Traits bundles the client callbacks a Graph needs for the lifetime of
// every vertex and edge it owns: hashing and equality (which define
// "same vertex" for coalescing), and the destructors called exactly
// once per value during reclamation. EdgeEqual is optional and no
// operation reads it; edges are never coalesced through Traits (dedup's
// WithEqualEdges is the only edge coalescing).
type Traits struct {
	VertexHash    Hasher
	VertexEqual   Equaler
	EdgeEqual     Equaler
	VertexDestroy Destructor
	EdgeDestroy   Destructor
}

// Validate reports ErrNilHash/ErrNilEqual if a required callback is
// missing; EdgeEqual and the destructors may be nil.
func (t Traits) Validate() error {
	if t.VertexHash == nil {
		return ErrNilHash
	}
	if t.VertexEqual == nil {
		return ErrNilEqual
	}
	return nil
}

// Graph is the handle a client holds between operations: the lane
// table, the traits that defined it, and a pointer to the initial
// vertex record (nil for an endogenous build with no seed).
type Graph struct {
	ID uuid.UUID

	Traits Traits
	Lanes  *LaneTable

	// Initial is the graph's distinguished starting vertex, used by
	// zone-directed traversals (mutate/induce/compose) and by
	// round-trip identities between inverse operation pairs. Nil for
	// graphs built without a seed.
	Initial *VertexRecord
}

// NewGraph allocates an empty graph with n lanes governed by traits.
func NewGraph(n int, traits Traits, queueDepth int) (*Graph, error) {
	if err := traits.Validate(); err != nil {
		return nil, err
	}
	return &Graph{
		ID:     uuid.New(),
		Traits: traits,
		Lanes:  NewLaneTable(n, traits.VertexHash, traits.VertexEqual, queueDepth),
	}, nil
}

// VertexCount returns the number of live vertices across all lanes.
func (g *Graph) VertexCount() uint64 { return g.Lanes.VertexCount() }

// EdgeCount returns the number of live edges across all lanes.
func (g *Graph) EdgeCount() uint64 { return g.Lanes.EdgeCount() }

// VisitAll calls fn for every live vertex record across every lane, in
// unspecified order. fn must not insert new vertices.
func (g *Graph) VisitAll(fn func(*VertexRecord)) {
	for _, l := range g.Lanes.Lanes {
		l.Store.IterateLive(fn)
	}
}

// FreeNow destroys every live vertex and edge value via the graph's
// traits, in preparation for discarding the handle. Each edge's value
// is destroyed once even though it appears on two lists.
func (g *Graph) FreeNow() error {
	seenEdges := make(map[*EdgeNode]bool)
	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	g.VisitAll(func(rec *VertexRecord) {
		rec.Outgoing.Each(func(n *EdgeNode) {
			if seenEdges[n] || (n.mate != nil && seenEdges[n.mate]) {
				return
			}
			seenEdges[n] = true
			if g.Traits.EdgeDestroy != nil {
				record(g.Traits.EdgeDestroy(n.Label))
			}
		})
		if g.Traits.VertexDestroy != nil {
			record(g.Traits.VertexDestroy(rec.Value))
		}
	})
	return firstErr
}
