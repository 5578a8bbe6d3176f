package filter_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cru-go/cru/build"
	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/filter"
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

func TestFiltered_PredicateTrueLeavesGraphUnchanged(t *testing.T) {
	g := buildHypercube(t)
	plan := filter.New(filter.WithPredicate(func(interface{}, interface{}) (bool, error) { return true, nil }))
	out, err := filter.Filtered(context.Background(), config.New(config.WithLanes(4)), g, plan, kernel.NewKillswitch(), nil)
	require.NoError(t, err)
	require.EqualValues(t, 16, out.VertexCount())
	require.EqualValues(t, 64, out.EdgeCount())
}

func TestFiltered_DropsOddVertices(t *testing.T) {
	g := buildHypercube(t)
	plan := filter.New(filter.WithPredicate(func(v interface{}, _ interface{}) (bool, error) {
		return v.(int)%2 == 0, nil
	}))
	out, err := filter.Filtered(context.Background(), config.New(config.WithLanes(4)), g, plan, kernel.NewKillswitch(), nil)
	require.NoError(t, err)
	require.EqualValues(t, 8, out.VertexCount())
	out.VisitAll(func(rec *core.VertexRecord) {
		require.Equal(t, 0, rec.Value.(int)%2)
		rec.Outgoing.Each(func(n *core.EdgeNode) {
			require.Equal(t, 0, n.Endpoint.Value.(int)%2)
		})
	})
}
