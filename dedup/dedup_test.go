package dedup_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cru-go/cru/build"
	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/dedup"
	"github.com/cru-go/cru/kernel"
)

func intTraits() core.Traits {
	return core.Traits{
		VertexHash:  func(v interface{}) uint64 { return uint64(v.(int)) },
		VertexEqual: func(a, b interface{}) (bool, error) { return a.(int) == b.(int), nil },
	}
}

// starWithDuplicateHubs builds three leaves, each pointing at its own
// hub vertex: every leaf is an endogenous root connecting to a distinct
// hub value, and the hubs themselves declare no edges.
func starWithDuplicateHubs(t *testing.T) *core.Graph {
	t.Helper()
	// leaves 100,200,300 connect to hubs 101,201,301 respectively.
	plan := build.New(
		build.WithEndogenousVertices(100, 200, 300),
		build.WithConnector(func(v interface{}, connect core.ConnectFunc) error {
			val := v.(int)
			if val%100 == 0 {
				return connect("to-hub", val+1)
			}
			return nil
		}),
	)
	g, err := build.Built(context.Background(), config.New(config.WithLanes(4)), intTraits(), plan, kernel.NewKillswitch(), nil)
	require.NoError(t, err)
	return g
}

func TestDeduplicated_ClassifierKeyFusesHubs(t *testing.T) {
	g := starWithDuplicateHubs(t)
	require.EqualValues(t, 6, g.VertexCount())

	plan := dedup.New(dedup.WithClassify(
		func(v interface{}) (interface{}, error) {
			if v.(int)%100 == 0 {
				return v, nil // leaves (100,200,300) keep distinct identity
			}
			return "hub", nil // every hub (101,201,301) classifies together
		},
		func(k interface{}) uint64 {
			if _, ok := k.(string); ok {
				return 0
			}
			return uint64(k.(int))
		},
		func(a, b interface{}) bool { return a == b },
	))

	out, err := dedup.Deduplicated(context.Background(), config.New(config.WithLanes(4)), g, plan, kernel.NewKillswitch(), nil)
	require.NoError(t, err)
	require.EqualValues(t, 4, out.VertexCount())
}

func TestDeduplicated_IdentityNoOpWhenAllDistinct(t *testing.T) {
	g := starWithDuplicateHubs(t)
	before := g.VertexCount()
	out, err := dedup.Deduplicated(context.Background(), config.New(config.WithLanes(4)), g, dedup.New(), kernel.NewKillswitch(), nil)
	require.NoError(t, err)
	require.Equal(t, before, out.VertexCount())
}
