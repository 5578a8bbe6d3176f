package postpone_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cru-go/cru/build"
	"github.com/cru-go/cru/config"
	"github.com/cru-go/cru/core"
	"github.com/cru-go/cru/kernel"
	"github.com/cru-go/cru/postpone"
)

func intTraits() core.Traits {
	return core.Traits{
		VertexHash:  func(v interface{}) uint64 { return uint64(v.(int)) },
		VertexEqual: func(a, b interface{}) (bool, error) { return a.(int) == b.(int), nil },
	}
}

// star builds vertex 0 with two outgoing edges: "eps" to 1 (postponable)
// and "a" to 2 (not postponable).
func star(t *testing.T) *core.Graph {
	t.Helper()
	plan := build.New(build.WithSeed(0), build.WithConnector(func(v interface{}, connect core.ConnectFunc) error {
		if v.(int) == 0 {
			if err := connect("eps", 1); err != nil {
				return err
			}
			return connect("a", 2)
		}
		return nil
	}))
	g, err := build.Built(context.Background(), config.New(config.WithLanes(1)), intTraits(), plan, kernel.NewKillswitch(), nil)
	require.NoError(t, err)
	return g
}

func TestPostponed_BridgesPostponableEdge(t *testing.T) {
	g := star(t)
	before := g.EdgeCount()

	plan := postpone.New(
		postpone.WithPostponable(func(label interface{}) (bool, error) { return label == "eps", nil }),
		postpone.WithPairPred(func(_, _ interface{}) (bool, error) { return true, nil }),
		postpone.WithCombine(func(p, o interface{}) (interface{}, error) { return p.(string) + o.(string), nil }),
	)
	out, err := postpone.Postponed(context.Background(), config.New(config.WithLanes(1)), g, plan, kernel.NewKillswitch(), nil)
	require.NoError(t, err)
	// "eps" dropped, "a" kept, one new bridge edge added: net unchanged count.
	require.Equal(t, before, out.EdgeCount())
}

func TestPostponed_RequiresCallbacks(t *testing.T) {
	g := star(t)
	_, err := postpone.Postponed(context.Background(), config.New(), g, postpone.New(), nil, nil)
	require.Error(t, err)
}
