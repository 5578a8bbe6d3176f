package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionQueue_EnqueueDequeue(t *testing.T) {
	q := NewConnectionQueue(4)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, Connection{Label: "L1"}))
	require.NoError(t, q.Enqueue(ctx, Connection{Label: "L2"}))

	c1, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, "L1", c1.Label)

	c2, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, "L2", c2.Label)
}

func TestConnectionQueue_BackpressureBlocksUntilDrain(t *testing.T) {
	q := NewConnectionQueue(1)
	ctx := context.Background()
	require.NoError(t, q.Enqueue(ctx, Connection{Label: 1}))

	done := make(chan struct{})
	go func() {
		_ = q.Enqueue(ctx, Connection{Label: 2})
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("second enqueue should have blocked while queue is full")
	case <-time.After(20 * time.Millisecond):
	}

	_, ok := q.Dequeue()
	require.True(t, ok)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second enqueue never unblocked after drain")
	}
}

func TestConnectionQueue_EnqueueRespectsCancellation(t *testing.T) {
	q := NewConnectionQueue(1)
	require.NoError(t, q.Enqueue(context.Background(), Connection{Label: 1}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := q.Enqueue(ctx, Connection{Label: 2})
	assert.ErrorIs(t, err, context.Canceled)
}
