package induce_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cru-go/cru/build"
	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/induce"
	"github.com/cru-go/cru/kernel"
)

func intTraits() core.Traits {
	return core.Traits{
		VertexHash:  func(v interface{}) uint64 { return uint64(v.(int)) },
		VertexEqual: func(a, b interface{}) (bool, error) { return a.(int) == b.(int), nil },
	}
}

// hypercube builds a D-dimension hypercube with edges oriented low bit
// to high bit, so it is a DAG on 2^D vertices with vertex 2^D-1 as the
// unique sink.
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

// TestInduced_CountsMonotonePaths counts monotone paths from vertex 0
// to the sink 7 in a D=3 hypercube: the sink contributes 1 (the empty
// path), and every other vertex sums its children's counts.
func TestInduced_CountsMonotonePaths(t *testing.T) {
	g := hypercube(t, 3)

	plan := induce.New(
		induce.WithMap(func(_, _, remote interface{}) (interface{}, error) { return remote, nil }),
		induce.WithReduce(func(a, b interface{}) (interface{}, error) { return a.(int) + b.(int), nil }),
		induce.WithVacuous(1),
		induce.WithZone(core.Zone{InitialVertex: 0}),
	)
	result, err := induce.Induced(context.Background(), config.New(config.WithLanes(4)), g, plan, kernel.NewKillswitch(), nil)
	require.NoError(t, err)
	// Number of monotone lattice paths from 0 to 7 in a 3-cube is 3! = 6.
	require.Equal(t, 6, result)
}

func TestInduced_CyclicWithoutCoFixFails(t *testing.T) {
	plan := build.New(build.WithSeed(0), build.WithConnector(func(v interface{}, connect core.ConnectFunc) error {
		val := v.(int)
		return connect("next", (val+1)%3)
	}))
	g, err := build.Built(context.Background(), config.New(config.WithLanes(2)), intTraits(), plan, kernel.NewKillswitch(), nil)
	require.NoError(t, err)

	ip := induce.New(
		induce.WithMap(func(_, _, remote interface{}) (interface{}, error) { return remote, nil }),
		induce.WithReduce(func(a, b interface{}) (interface{}, error) { return a, nil }),
		induce.WithVacuous(0),
		induce.WithZone(core.Zone{InitialVertex: 0}),
	)
	_, err = induce.Induced(context.Background(), config.New(config.WithLanes(2)), g, ip, kernel.NewKillswitch(), nil)
	require.Error(t, err)
}

func TestInduced_RequiresCallbacks(t *testing.T) {
	g := hypercube(t, 1)
	_, err := induce.Induced(context.Background(), config.New(), g, induce.New(), nil, nil)
	require.Error(t, err)
}
