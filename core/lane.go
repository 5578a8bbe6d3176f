package core

import "sync"

// Lane is one partition of the vertex store, owned by exactly one
// worker goroutine for the duration of a phase. A connector on lane A
// declaring an edge to a vertex homed in lane B calls B's Store and
// PushPending directly (see VertexStore's doc comment). Queue is
// allocated with the lane, but no phase routes requests through it.
type Lane struct {
	// ID is this lane's index, 0..N-1.
	ID int

	// Store is the lane's private vertex table.
	Store *VertexStore

	// Queue is a bounded connection queue sized by the table's queue
	// depth; discovery does not use it (see kernel.Discover).
	Queue *ConnectionQueue

	pendingMu sync.Mutex
	pending   []*VertexRecord
}

func newLane(id int, hash Hasher, equal Equaler, queueDepth int) *Lane {
	return &Lane{
		ID:    id,
		Store: NewVertexStore(id, hash, equal),
		Queue: NewConnectionQueue(queueDepth),
	}
}

// PushPending adds rec to this lane's to-visit list for discovery.
// Callable from any lane's goroutine: a connector on a foreign lane
// routing a newly created terminus to its home lane calls this.
func (l *Lane) PushPending(rec *VertexRecord) {
	rec.Color = ColorGray
	l.pendingMu.Lock()
	l.pending = append(l.pending, rec)
	l.pendingMu.Unlock()
}

// PopPending removes and returns the next to-visit record, if any.
func (l *Lane) PopPending() (*VertexRecord, bool) {
	l.pendingMu.Lock()
	defer l.pendingMu.Unlock()
	if len(l.pending) == 0 {
		return nil, false
	}
	rec := l.pending[0]
	l.pending = l.pending[1:]
	return rec, true
}

// PendingLen reports how many records await visitation on this lane.
func (l *Lane) PendingLen() int {
	l.pendingMu.Lock()
	defer l.pendingMu.Unlock()
	return len(l.pending)
}

// LaneTable is the fixed-size partitioning of vertices across lanes.
type LaneTable struct {
	Lanes []*Lane
}

// NewLaneTable builds a table of n lanes, each with its own vertex store
// and connection queue bounded at queueDepth.
func NewLaneTable(n int, hash Hasher, equal Equaler, queueDepth int) *LaneTable {
	lanes := make([]*Lane, n)
	for i := range lanes {
		lanes[i] = newLane(i, hash, equal, queueDepth)
	}
	return &LaneTable{Lanes: lanes}
}

// N reports the number of lanes.
func (t *LaneTable) N() int { return len(t.Lanes) }

// LaneFor returns the lane a value with the given client hash is homed
// in, i.e. Lanes[Spread(clientHash) % N].
func (t *LaneTable) LaneFor(clientHash uint64) *Lane {
	return t.Lanes[LaneOf(clientHash, len(t.Lanes))]
}

// VertexCount sums live vertex records across every lane.
func (t *LaneTable) VertexCount() uint64 {
	var total uint64
	for _, l := range t.Lanes {
		total += uint64(l.Store.Len())
	}
	return total
}

// EdgeCount sums outgoing-edge counts across every live vertex, which
// equals the total number of directed edges in the graph (one outgoing
// entry per edge, regardless of how many incident entries mirror it).
func (t *LaneTable) EdgeCount() uint64 {
	var total uint64
	for _, l := range t.Lanes {
		l.Store.IterateLive(func(rec *VertexRecord) {
			total += uint64(rec.Outgoing.Len())
		})
	}
	return total
}

// PromoteAll clears the tentative flag on every lane's records, run at
// the barrier that ends a discovery round.
func (t *LaneTable) PromoteAll() {
	for _, l := range t.Lanes {
		l.Store.Promote()
	}
}

// CompactAll drops tombstoned slots on every lane, run after RECLAIM.
func (t *LaneTable) CompactAll() {
	for _, l := range t.Lanes {
		l.Store.Compact()
	}
}

// TotalPending reports the global outstanding to-visit count.
// kernel.Discover does not call it; its quiescence detector keeps its
// own atomic counter.
func (t *LaneTable) TotalPending() int {
	var total int
	for _, l := range t.Lanes {
		total += l.PendingLen()
	}
	return total
}
