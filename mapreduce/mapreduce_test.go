package mapreduce_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cru-go/cru/build"
	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/kernel"
	"github.com/cru-go/cru/mapreduce"
)

func intTraits() core.Traits {
	return core.Traits{
		VertexHash:  func(v interface{}) uint64 { return uint64(v.(int)) },
		VertexEqual: func(a, b interface{}) (bool, error) { return a.(int) == b.(int), nil },
	}
}

func hypercube(t *testing.T, d int) *core.Graph {
	t.Helper()
	seeds := make([]interface{}, 0, 1<<uint(d))
	for i := 0; i < 1<<uint(d); i++ {
		seeds = append(seeds, i)
	}
	plan := build.New(
		build.WithEndogenousVertices(seeds...),
		build.WithConnector(func(v interface{}, connect core.ConnectFunc) error {
			val := v.(int)
			for bit := 0; bit < d; bit++ {
				neighbor := val ^ (1 << uint(bit))
				if neighbor > val {
					if err := connect(bit, neighbor); err != nil {
						return err
					}
				}
			}
			return nil
		}),
	)
	g, err := build.Built(context.Background(), config.New(config.WithLanes(4)), intTraits(), plan, kernel.NewKillswitch(), nil)
	require.NoError(t, err)
	return g
}

func TestMapreduced_SumsHypercubeValues(t *testing.T) {
	g := hypercube(t, 4)

	plan := mapreduce.New(
		mapreduce.WithMap(func(v interface{}) (interface{}, error) { return v, nil }),
		mapreduce.WithReduce(func(a, b interface{}) (interface{}, error) { return a.(int) + b.(int), nil }),
		mapreduce.WithVacuous(0),
	)
	result, err := mapreduce.Mapreduced(context.Background(), config.New(config.WithLanes(4)), g, plan, kernel.NewKillswitch(), nil)
	require.NoError(t, err)
	require.Equal(t, 120, result) // sum 0..15
	require.EqualValues(t, 16, g.VertexCount(), "mapreduce must not mutate the graph")
}

func TestMapreduced_RequiresCallbacks(t *testing.T) {
	g := hypercube(t, 1)
	_, err := mapreduce.Mapreduced(context.Background(), config.New(), g, mapreduce.New(), nil, nil)
	require.Error(t, err)
}
