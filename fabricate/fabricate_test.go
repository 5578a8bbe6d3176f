package fabricate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cru-go/cru/build"
	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/fabricate"
	"github.com/cru-go/cru/kernel"
)

func intTraits() core.Traits {
	return core.Traits{
		VertexHash:  func(v interface{}) uint64 { return uint64(v.(int)) },
		VertexEqual: func(a, b interface{}) (bool, error) { return a.(int) == b.(int), nil },
	}
}

func hypercubeConnector(v interface{}, connect core.ConnectFunc) error {
	val := v.(int)
	for bit := 0; bit < 4; bit++ {
		if err := connect(bit, val^(1<<uint(bit))); err != nil {
			return err
		}
	}
	return nil
}

func buildHypercube(t *testing.T) *core.Graph {
	t.Helper()
	roots := make([]interface{}, 16)
	for i := range roots {
		roots[i] = i
	}
	plan := build.New(build.WithConnector(hypercubeConnector), build.WithEndogenousVertices(roots...))
	g, err := build.Built(context.Background(), config.New(config.WithLanes(4)), intTraits(), plan, kernel.NewKillswitch(), nil)
	require.NoError(t, err)
	return g
}

func TestFabricated_IsomorphicWithIdentityCopiers(t *testing.T) {
	src := buildHypercube(t)

	plan := fabricate.New(fabricate.WithCopyVertex(func(v interface{}) (interface{}, error) { return v, nil }))
	dst, err := fabricate.Fabricated(context.Background(), config.New(config.WithLanes(4)), src, plan, kernel.NewKillswitch(), nil)
	require.NoError(t, err)

	require.Equal(t, src.VertexCount(), dst.VertexCount())
	require.Equal(t, src.EdgeCount(), dst.EdgeCount())
}

func TestFabricated_RequiresCopyVertex(t *testing.T) {
	src := buildHypercube(t)
	_, err := fabricate.Fabricated(context.Background(), config.New(), src, fabricate.New(), nil, nil)
	require.Error(t, err)
}
