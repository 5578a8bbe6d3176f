// Package postpone implements the "postponed" operation: pushing each
// postponable outgoing edge of a vertex past another of that vertex's
// outgoing edges: a new edge runs from the postponable edge's terminus
// to the other edge's terminus, the postponable edge is dropped, and the
// other edge is kept.
package postpone
