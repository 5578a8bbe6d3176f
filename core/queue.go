package core

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Connection is one pending (label, terminus) declaration emitted by a
// connector callback on source, queued for the engine to drain.
type Connection struct {
	Source   *VertexRecord
	Label    interface{}
	Terminus interface{}
}

// ConnectionQueue is the per-lane MPSC queue of pending connections: any
// lane may enqueue (targeting this lane), only this lane's worker
// dequeues. Depth is bounded by a weighted semaphore; a producer that
// would exceed the bound blocks until the owning lane drains.
type ConnectionQueue struct {
	sem   *semaphore.Weighted
	ch    chan Connection
	total uint64
}

// NewConnectionQueue creates a queue bounded at depth pending entries.
func NewConnectionQueue(depth int) *ConnectionQueue {
	if depth <= 0 {
		depth = 1
	}
	return &ConnectionQueue{
		sem: semaphore.NewWeighted(int64(depth)),
		ch:  make(chan Connection, depth),
	}
}

// Enqueue blocks until a slot is free (or ctx is done) and then pushes c.
// It reports ErrQueueOverflow if the cumulative enqueue counter wraps.
func (q *ConnectionQueue) Enqueue(ctx context.Context, c Connection) error {
	if err := q.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	if atomic.AddUint64(&q.total, 1) == 0 {
		return ErrQueueOverflow
	}
	q.ch <- c
	return nil
}

// Dequeue blocks until an entry is available or the queue is closed.
func (q *ConnectionQueue) Dequeue() (Connection, bool) {
	c, ok := <-q.ch
	if ok {
		q.sem.Release(1)
	}
	return c, ok
}

// TryDequeue returns immediately with ok=false if nothing is pending.
func (q *ConnectionQueue) TryDequeue() (Connection, bool) {
	select {
	case c, ok := <-q.ch:
		if ok {
			q.sem.Release(1)
		}
		return c, ok
	default:
		return Connection{}, false
	}
}

// Len reports the number of entries currently buffered.
func (q *ConnectionQueue) Len() int { return len(q.ch) }

// Close signals no further entries will be enqueued.
func (q *ConnectionQueue) Close() { close(q.ch) }
