package kernel

import "sync/atomic"

// Killswitch is an externally-writable flag polled by every worker
// between tasks and before phase barriers. Cancellation is cooperative:
// an in-flight callback always runs to completion. A nil *Killswitch
// behaves as never-tripped, so callers that don't need cancellation can
// pass nil.
type Killswitch struct {
	flag atomic.Bool
}

// NewKillswitch returns a fresh, untripped Killswitch.
func NewKillswitch() *Killswitch { return &Killswitch{} }

// Trip sets the flag. Safe to call from any goroutine, including one
// outside the engine entirely (spec: "a client can implement [timeouts]
// by writing the killswitch from another thread").
func (k *Killswitch) Trip() {
	if k == nil {
		return
	}
	k.flag.Store(true)
}

// Tripped reports whether Trip has been called.
func (k *Killswitch) Tripped() bool {
	if k == nil {
		return false
	}
	return k.flag.Load()
}
