package core

import "sync"

// VertexRecord is the engine's internal representation of one live
// vertex. The graph owns every VertexRecord for the lifetime of its
// Value. Clients reach it through Graph.VisitAll, Graph.Initial and
// EdgeNode.Endpoint.
type VertexRecord struct {
	// mu guards Incident/Outgoing against concurrent AttachEdge calls
	// arriving from other lanes during DISCOVER; a record's own owning
	// lane never needs it to read its own lists within a phase.
	mu sync.Mutex

	// Value is the client-supplied vertex value.
	Value interface{}

	// Incident is the edge list of edges terminating at this vertex.
	Incident EdgeList

	// Outgoing is the edge list of edges sourced at this vertex.
	Outgoing EdgeList

	// Scratch is a per-record transient cell used by exactly one phase
	// at a time (a PROP property, a CLASSIFY key, a REDUCE accumulator).
	// Its meaning is undefined outside the phase that wrote it.
	Scratch interface{}

	// Color marks reachability/reclamation state.
	Color Color

	// lane is the lane index this record is homed in, H(Value) mod N.
	lane int

	// tentative marks a record visible only to its creating lane until
	// the next barrier promotes it to globally visible.
	tentative bool

	// removed tombstones a record pending compaction.
	removed bool
}

// Lane reports the lane index this record is homed in.
func (v *VertexRecord) Lane() int { return v.lane }

// Removed reports whether the record has been tombstoned by a filter
// deletion or a merge/deduplicate coalescence.
func (v *VertexRecord) Removed() bool { return v.removed }
