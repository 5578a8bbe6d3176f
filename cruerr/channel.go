package cruerr

import (
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Channel is the per-invocation error channel: every worker reports
// into it, the first error wins for the per-call result, and every
// error it sees also feeds a process-wide sticky Code. Once either is
// non-zero the engine stops issuing new client callbacks (error
// monotonicity, spec §8).
type Channel struct {
	mu    sync.Mutex
	first error
	all   *multierror.Error
}

// sticky is the process-wide code, OR-ed across every Channel that ever
// reports a failure. It never resets; a fresh process is the only way
// to clear it.
var sticky atomic.Uint32

// NewChannel creates an empty, healthy error channel.
func NewChannel() *Channel { return &Channel{} }

// Report records err (a no-op if err is nil) and OR-s its Code into the
// process-wide sticky value. Safe for concurrent use by every lane.
func (c *Channel) Report(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	if c.first == nil {
		c.first = err
	}
	c.all = multierror.Append(c.all, err)
	c.mu.Unlock()

	stickyOr(CodeOf(err))
}

// Reportf wraps fmt-style context around err (via pkg/errors, preserving
// errors.Is matching on the wrapped sentinel) before reporting it.
func (c *Channel) Reportf(err error, format string, args ...interface{}) {
	if err == nil {
		return
	}
	c.Report(errors.Wrapf(err, format, args...))
}

// Failed reports whether any error has been recorded.
func (c *Channel) Failed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.first != nil
}

// Err returns the first error reported, or nil if none was.
func (c *Channel) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.first
}

// All returns every error reported on this channel, aggregated.
func (c *Channel) All() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.all == nil {
		return nil
	}
	return c.all.ErrorOrNil()
}

func stickyOr(code Code) {
	for {
		cur := sticky.Load()
		next := cur | uint32(code)
		if next == cur {
			return
		}
		if sticky.CompareAndSwap(cur, next) {
			return
		}
	}
}

// Sticky returns the process-wide sticky value accumulated so far, as a
// bitwise OR of every Code ever reported by any Channel.
func Sticky() uint32 { return sticky.Load() }

// ResetStickyForTesting clears the process-wide sticky value. It exists
// only so package tests can run in isolation from one another; no
// production code path calls it.
func ResetStickyForTesting() { sticky.Store(0) }
