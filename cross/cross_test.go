package cross_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cru-go/cru/build"
	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/cross"
	"github.com/cru-go/cru/kernel"
)

func intTraits() core.Traits {
	return core.Traits{
		VertexHash:  func(v interface{}) uint64 { return uint64(v.(int)) },
		VertexEqual: func(a, b interface{}) (bool, error) { return a.(int) == b.(int), nil },
	}
}

// path builds a 0 -> 1 -> 2 chain labeled "x".
func path(t *testing.T) *core.Graph {
	t.Helper()
	plan := build.New(build.WithSeed(0), build.WithConnector(func(v interface{}, connect core.ConnectFunc) error {
		if v.(int) < 2 {
			return connect("x", v.(int)+1)
		}
		return nil
	}))
	g, err := build.Built(context.Background(), config.New(config.WithLanes(1)), intTraits(), plan, kernel.NewKillswitch(), nil)
	require.NoError(t, err)
	return g
}

func TestCrossed_ProductOfTwoChainsWithoutEquivalence(t *testing.T) {
	a := path(t)
	b := path(t)

	plan := cross.New(
		cross.WithSeeds(0, 0),
		cross.WithPairLabel(func(l1, l2 interface{}) (interface{}, error) { return [2]interface{}{l1, l2}, nil }),
	)
	out, err := cross.Crossed(context.Background(), config.New(config.WithLanes(1)), a, b, plan, kernel.NewKillswitch(), nil)
	require.NoError(t, err)
	// Each vertex has exactly one outgoing edge, so only the diagonal
	// pairs are reachable: (0,0) -> (1,1) -> (2,2).
	require.EqualValues(t, 3, out.VertexCount())
	require.EqualValues(t, 2, out.EdgeCount())
}

func TestCrossed_RequiresCallbacks(t *testing.T) {
	a := path(t)
	b := path(t)
	_, err := cross.Crossed(context.Background(), config.New(), a, b, cross.New(), nil, nil)
	require.Error(t, err)
}
