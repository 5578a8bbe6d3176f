package core

import "errors"

// Sentinel errors for the core data model. Callers branch on these with
// errors.Is; cruerr attaches the process-wide Code and call-site context.
var (
	// ErrNilVertex indicates a nil vertex value reached connect().
	ErrNilVertex = errors.New("core: nil vertex value")

	// ErrNilHash indicates a plan was assembled without a vertex hash callback.
	ErrNilHash = errors.New("core: vertex hash callback is nil")

	// ErrNilEqual indicates a plan was assembled without a vertex equality callback.
	ErrNilEqual = errors.New("core: vertex equality callback is nil")

	// ErrLaneOutOfRange indicates a computed lane index fell outside [0,N).
	ErrLaneOutOfRange = errors.New("core: lane index out of range")

	// ErrQueueOverflow indicates a connection queue's cumulative enqueue
	// counter wrapped its address-sized range.
	ErrQueueOverflow = errors.New("core: connection queue overflow")

	// ErrStoreClosed indicates an insert was attempted on a lane store
	// that has already passed its barrier into reclamation.
	ErrStoreClosed = errors.New("core: vertex store closed")
)
