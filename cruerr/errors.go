// Package cruerr defines the engine's error taxonomy: a process-wide
// sticky Code, sentinel errors for each code, and a Channel type
// giving callers both a per-call status and one process-wide sticky
// code. Callers branch with errors.Is; call sites attach context
// with github.com/pkg/errors.Wrapf so a failing phase keeps both a
// stack trace and sentinel-matchable identity.
package cruerr

import (
	"errors"
)

// Code classifies a failure the way the original engine's error channel
// does: a small closed set of outcomes, never a free-form string.
type Code uint32

const (
	// None means success; the zero value of Code.
	None Code = iota
	// NoLanes means the caller requested zero worker lanes.
	NoLanes
	// CallbackMissing means a plan enabled a phase without the callback it needs.
	CallbackMissing
	// OutOfMemory means a record or queue entry could not be allocated.
	OutOfMemory
	// Overflow means a queue's or counter's cumulative size wrapped its range.
	Overflow
	// ContractViolation means a callback broke an invariant the engine polices
	// (nil vertex passed to connect, hash/equality inconsistency, reuse of a
	// value already released).
	ContractViolation
	// Cancelled means the killswitch tripped before completion.
	Cancelled
	// AllocationLimit means the test harness's optional allocation cap was hit.
	AllocationLimit
)

// String renders the code the way strerror does in the original API.
func (c Code) String() string {
	switch c {
	case None:
		return "ok"
	case NoLanes:
		return "no lanes"
	case CallbackMissing:
		return "callback missing"
	case OutOfMemory:
		return "out of memory"
	case Overflow:
		return "overflow"
	case ContractViolation:
		return "contract violation"
	case Cancelled:
		return "cancelled"
	case AllocationLimit:
		return "allocation limit"
	default:
		return "unknown error"
	}
}

// Sentinel errors, one per non-zero Code, for errors.Is matching.
var (
	ErrNoLanes            = errors.New("cru: no lanes")
	ErrCallbackMissing    = errors.New("cru: required callback missing")
	ErrOutOfMemory        = errors.New("cru: out of memory")
	ErrOverflow           = errors.New("cru: overflow")
	ErrContractViolation  = errors.New("cru: contract violation")
	ErrCancelled          = errors.New("cru: cancelled")
	ErrAllocationLimit    = errors.New("cru: allocation limit reached")
	ErrCyclicWithoutFixpoint = errors.New("cru: cyclic graph requires CoFix for this traversal")
)

// CodeOf maps a sentinel (or an error wrapping one) to its Code. Errors
// not recognized as one of the sentinels map to ContractViolation, since
// every other failure mode in the engine is client-reported.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return None
	case errors.Is(err, ErrNoLanes):
		return NoLanes
	case errors.Is(err, ErrCallbackMissing):
		return CallbackMissing
	case errors.Is(err, ErrOutOfMemory):
		return OutOfMemory
	case errors.Is(err, ErrOverflow):
		return Overflow
	case errors.Is(err, ErrCancelled):
		return Cancelled
	case errors.Is(err, ErrAllocationLimit):
		return AllocationLimit
	default:
		return ContractViolation
	}
}
