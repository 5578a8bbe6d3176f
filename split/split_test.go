package split_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cru-go/cru/build"
	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/kernel"
	"github.com/cru-go/cru/split"
)

func intTraits() core.Traits {
	return core.Traits{
		VertexHash:  func(v interface{}) uint64 { return uint64(v.(int)) },
		VertexEqual: func(a, b interface{}) (bool, error) { return a.(int) == b.(int), nil },
	}
}

// buildChain builds 0 -> 1 -> 2 labeled "x".
func buildChain(t *testing.T) *core.Graph {
	t.Helper()
	plan := build.New(build.WithSeed(0), build.WithConnector(func(v interface{}, connect core.ConnectFunc) error {
		if v.(int) < 2 {
			return connect("x", v.(int)+1)
		}
		return nil
	}))
	g, err := build.Built(context.Background(), config.New(config.WithLanes(2)), intTraits(), plan, kernel.NewKillswitch(), nil)
	require.NoError(t, err)
	return g
}

func TestSplit_ReplacesEachVertexWithPair(t *testing.T) {
	g := buildChain(t)
	before := g.VertexCount()

	plan := split.New(
		split.WithAna(func(v interface{}) (interface{}, error) { return v.(int)*10 + 10, nil }),
		split.WithCata(func(v interface{}) (interface{}, error) { return v.(int)*10 + 11, nil }),
		split.WithInward(split.Ctop{Labeler: func(l interface{}) (interface{}, error) { return "in:" + l.(string), nil }}),
		split.WithOutward(split.Ctop{Labeler: func(l interface{}) (interface{}, error) { return "out:" + l.(string), nil }}),
	)
	out, err := split.Split(context.Background(), config.New(config.WithLanes(2)), g, plan, kernel.NewKillswitch(), nil)
	require.NoError(t, err)
	require.Equal(t, 2*before, out.VertexCount())
	// 3 bridge edges (one per original vertex) + 2 rewired original edges.
	require.EqualValues(t, 5, out.EdgeCount())
}

func TestSplit_RequiresCallbacks(t *testing.T) {
	g := buildChain(t)
	_, err := split.Split(context.Background(), config.New(), g, split.New(), nil, nil)
	require.Error(t, err)
}
