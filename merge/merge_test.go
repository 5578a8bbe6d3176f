package merge_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cru-go/cru/build"
	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/kernel"
	"github.com/cru-go/cru/merge"
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

// TestMerged_HalvesHypercubeByLowBit folds a D=4 hypercube (16
// vertices, 32 edges) by value>>1, fusing each pair of vertices that
// differ only in bit 0 into one vertex.
func TestMerged_HalvesHypercubeByLowBit(t *testing.T) {
	g := hypercube(t, 4)

	plan := merge.New(
		merge.WithClassify(
			func(v interface{}) (interface{}, error) { return v.(int) >> 1, nil },
			func(k interface{}) uint64 { return uint64(k.(int)) },
			func(a, b interface{}) bool { return a.(int) == b.(int) },
		),
		merge.WithVertexMap(func(v interface{}) (interface{}, error) { return v, nil }),
		merge.WithReduce(func(a, b interface{}) (interface{}, error) { return a, nil }),
	)

	out, err := merge.Merged(context.Background(), config.New(config.WithLanes(4)), g, plan, kernel.NewKillswitch(), nil)
	require.NoError(t, err)
	require.EqualValues(t, 8, out.VertexCount())
}

func TestMerged_RequiresCallbacks(t *testing.T) {
	g := hypercube(t, 2)
	_, err := merge.Merged(context.Background(), config.New(), g, merge.New(), nil, nil)
	require.Error(t, err)
}
