package kernel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/cruerr"
	"github.com/cru-go/cru/kernel"
)

func intTraits() core.Traits {
	return core.Traits{
		VertexHash:  func(v interface{}) uint64 { return uint64(v.(int)) },
		VertexEqual: func(a, b interface{}) (bool, error) { return a.(int) == b.(int), nil },
	}
}

func TestStart_PoolMatchesGraphLaneCount(t *testing.T) {
	g, err := core.NewGraph(4, intTraits(), config.DefaultQueueDepth)
	require.NoError(t, err)
	inv, err := kernel.Start(config.New(config.WithLanes(1)), g, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 4, inv.Pool.Lanes)
	require.Equal(t, kernel.StateInit, inv.State)
}

func TestInvocation_EnterAndFailTransitionState(t *testing.T) {
	g, err := core.NewGraph(1, intTraits(), config.DefaultQueueDepth)
	require.NoError(t, err)
	inv, err := kernel.Start(config.New(), g, nil, nil)
	require.NoError(t, err)

	inv.Enter(kernel.StateDiscovering)
	require.Equal(t, kernel.StateDiscovering, inv.State)

	inv.Fail(require.AnError)
	require.Equal(t, kernel.StateFailed, inv.State)
}

func TestKillswitch_NilIsNeverTripped(t *testing.T) {
	var ks *kernel.Killswitch
	require.False(t, ks.Tripped())

	live := kernel.NewKillswitch()
	require.False(t, live.Tripped())
	live.Trip()
	require.True(t, live.Tripped())
}

func TestPool_RunPhaseStopsOnKillswitchTrip(t *testing.T) {
	pool, err := kernel.NewPool(2, nil)
	require.NoError(t, err)

	ks := kernel.NewKillswitch()
	ks.Trip()
	err = pool.RunPhase(context.Background(), ks, "test", func(ctx context.Context, lane int) error {
		t.Fatal("task must not run once the killswitch has tripped")
		return nil
	})
	require.ErrorIs(t, err, cruerr.ErrCancelled)
}
