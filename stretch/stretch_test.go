package stretch_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cru-go/cru/build"
	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/dedup"
	"github.com/cru-go/cru/kernel"
	"github.com/cru-go/cru/stretch"
)

func intTraits() core.Traits {
	return core.Traits{
		VertexHash:  func(v interface{}) uint64 { return uint64(v.(int)) },
		VertexEqual: func(a, b interface{}) (bool, error) { return a.(int) == b.(int), nil },
	}
}

// buildChain builds 0 -> 1 -> 2 -> 3.
func buildChain(t *testing.T) *core.Graph {
	t.Helper()
	plan := build.New(build.WithSeed(0), build.WithConnector(func(v interface{}, connect core.ConnectFunc) error {
		val := v.(int)
		if val < 3 {
			return connect(val, val+1)
		}
		return nil
	}))
	g, err := build.Built(context.Background(), config.New(config.WithLanes(2)), intTraits(), plan, kernel.NewKillswitch(), nil)
	require.NoError(t, err)
	return g
}

func TestStretched_InterposesOnEverySelectedEdge(t *testing.T) {
	g := buildChain(t)
	before := g.VertexCount()

	plan := stretch.New(
		stretch.WithExpander(func(_, _, _ interface{}) (bool, error) { return true, nil }),
		stretch.WithStretch(func(label interface{}) (interface{}, interface{}, interface{}, error) {
			return "in", -1, "out", nil // every interposed vertex carries the same value -1
		}),
	)
	out, err := stretch.Stretched(context.Background(), config.New(config.WithLanes(2)), g, plan, kernel.NewKillswitch(), nil)
	require.NoError(t, err)
	require.Equal(t, before+3, out.VertexCount())
}

// TestStretched_ThenDedupFormsStar demonstrates the star pattern:
// every interposed vertex carries the same value, so a default identity
// dedup afterward collapses them back to one hub.
func TestStretched_ThenDedupFormsStar(t *testing.T) {
	g := buildChain(t)

	plan := stretch.New(
		stretch.WithExpander(func(_, _, _ interface{}) (bool, error) { return true, nil }),
		stretch.WithStretch(func(label interface{}) (interface{}, interface{}, interface{}, error) {
			return "in", -1, "out", nil
		}),
	)
	out, err := stretch.Stretched(context.Background(), config.New(config.WithLanes(2)), g, plan, kernel.NewKillswitch(), nil)
	require.NoError(t, err)

	deduped, err := dedup.Deduplicated(context.Background(), config.New(config.WithLanes(2)), out, dedup.New(), kernel.NewKillswitch(), nil)
	require.NoError(t, err)
	require.EqualValues(t, 4+1, deduped.VertexCount()) // 4 originals + 1 fused hub
}

func TestStretched_RequiresCallbacks(t *testing.T) {
	g := buildChain(t)
	_, err := stretch.Stretched(context.Background(), config.New(), g, stretch.New(), nil, nil)
	require.Error(t, err)
}
