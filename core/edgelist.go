package core

import "unsafe"

// EdgeNode is one entry in a vertex record's outgoing or incident edge
// list. An edge between u and v is represented by two EdgeNodes sharing
// the same Label (never cloned): one on u.Outgoing pointing at v, one on
// v.Incident pointing at u.
type EdgeNode struct {
	// Label is the client-supplied edge value; nil for unlabeled edges.
	Label interface{}

	// Endpoint is the terminus vertex record when this node lives on an
	// Outgoing list, or the source vertex record when it lives on an
	// Incident list.
	Endpoint *VertexRecord

	// mate points at this edge's sibling node in the other endpoint's
	// list, letting a rewire or deletion update both sides in O(1).
	mate *EdgeNode

	next *EdgeNode
}

// Mate returns the sibling EdgeNode on the other endpoint's list.
func (n *EdgeNode) Mate() *EdgeNode { return n.mate }

// EdgeList is a singly linked, append-ordered list of EdgeNodes. Append
// order is preserved so a vertex's outgoing-edge order matches the
// order its connector attached them in.
type EdgeList struct {
	head  *EdgeNode
	tail  *EdgeNode
	count int
}

// Len returns the number of edges currently in the list.
func (l *EdgeList) Len() int { return l.count }

// Append adds a new node to the end of the list and returns it.
func (l *EdgeList) Append(label interface{}, endpoint *VertexRecord) *EdgeNode {
	n := &EdgeNode{Label: label, Endpoint: endpoint}
	l.AppendNode(n)
	return n
}

// AppendNode appends an already-constructed node, preserving order.
func (l *EdgeList) AppendNode(n *EdgeNode) {
	n.next = nil
	if l.tail == nil {
		l.head = n
		l.tail = n
	} else {
		l.tail.next = n
		l.tail = n
	}
	l.count++
}

// Each calls fn for every node in append order. fn must not mutate the
// list it is iterating; use Filter for that.
func (l *EdgeList) Each(fn func(*EdgeNode)) {
	for n := l.head; n != nil; n = n.next {
		fn(n)
	}
}

// Slice materializes the list into a fresh, order-preserving slice.
func (l *EdgeList) Slice() []*EdgeNode {
	out := make([]*EdgeNode, 0, l.count)
	l.Each(func(n *EdgeNode) { out = append(out, n) })
	return out
}

// Filter rebuilds the list keeping only nodes for which keep returns
// true, preserving relative order. It returns the dropped nodes.
func (l *EdgeList) Filter(keep func(*EdgeNode) bool) []*EdgeNode {
	var kept, dropped []*EdgeNode
	l.Each(func(n *EdgeNode) {
		if keep(n) {
			kept = append(kept, n)
		} else {
			dropped = append(dropped, n)
		}
	})
	l.Reset()
	for _, n := range kept {
		l.AppendNode(n)
	}
	return dropped
}

// Reset empties the list without touching the nodes it held.
func (l *EdgeList) Reset() {
	l.head, l.tail, l.count = nil, nil, 0
}

// AttachEdge creates the two mated EdgeNodes for one edge from source to
// terminus and appends them to source.Outgoing and terminus.Incident
// respectively, preserving connector-call order at source. Safe to call
// concurrently for different edges sharing an endpoint: the two records
// are locked in a fixed address order to avoid deadlocking against a
// concurrent AttachEdge(terminus, source, ...) call.
func AttachEdge(source, terminus *VertexRecord, label interface{}) (out, in *EdgeNode) {
	out = &EdgeNode{Label: label, Endpoint: terminus}
	in = &EdgeNode{Label: label, Endpoint: source}
	out.mate = in
	in.mate = out

	lockPair(source, terminus)
	defer unlockPair(source, terminus)
	source.Outgoing.AppendNode(out)
	terminus.Incident.AppendNode(in)
	return out, in
}

// DetachEdge removes an outgoing EdgeNode and its mate from both lists.
// It is O(degree) on each endpoint; callers doing bulk rewiring should
// prefer EdgeList.Filter instead.
func DetachEdge(source *VertexRecord, out *EdgeNode) {
	terminus := out.Endpoint
	lockPair(source, terminus)
	defer unlockPair(source, terminus)
	source.Outgoing.Filter(func(n *EdgeNode) bool { return n != out })
	if out.mate != nil {
		terminus.Incident.Filter(func(n *EdgeNode) bool { return n != out.mate })
	}
}

// lockPair locks two (possibly identical, on a self-loop) records in a
// fixed address order.
func lockPair(a, b *VertexRecord) {
	if a == b {
		a.mu.Lock()
		return
	}
	if uintptr(unsafe.Pointer(a)) < uintptr(unsafe.Pointer(b)) {
		a.mu.Lock()
		b.mu.Lock()
	} else {
		b.mu.Lock()
		a.mu.Lock()
	}
}

func unlockPair(a, b *VertexRecord) {
	if a == b {
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()
	b.mu.Unlock()
}
