package kernel

import (
	"context"
	"sync"

	"github.com/cru-go/cru/core"
)

// MapFunc projects a vertex value to the element a REDUCE phase folds.
type MapFunc func(value interface{}) (interface{}, error)

// ReduceFunc combines two elements (or partial results) into one. It
// must be associative and commutative: elements are folded in store
// slot order within a lane and lanes are partitioned by hash, so the
// order in which elements meet is unspecified.
type ReduceFunc func(a, b interface{}) (interface{}, error)

// Reduce runs map then fold over every record in each group and returns
// one result per group. Groups are dealt out to lanes round-robin and
// each group is folded whole by the one lane task that receives it.
// vacuous is returned untouched for a group that (pathologically)
// contains zero live records by the time REDUCE runs.
func Reduce(ctx context.Context, inv *Invocation, table *ClassTable, mapFn MapFunc, reduceFn ReduceFunc, vacuous interface{}) (map[*Group]interface{}, error) {
	inv.Enter(StateReducing)
	groups := table.Groups()

	results := make(map[*Group]interface{}, len(groups))
	var mu sync.Mutex
	var once sync.Once
	var fatal error

	task := func(taskCtx context.Context, laneIdx int) error {
		for gi, g := range groups {
			if gi%inv.Pool.Lanes != laneIdx {
				continue
			}
			if inv.KS.Tripped() {
				return nil
			}
			acc, err := foldGroup(g.Records, mapFn, reduceFn, vacuous)
			if err != nil {
				once.Do(func() { fatal = err })
				return err
			}
			mu.Lock()
			results[g] = acc
			mu.Unlock()
		}
		return nil
	}

	if err := inv.Pool.RunPhase(ctx, inv.KS, "reduce", task); err != nil {
		return nil, err
	}
	if fatal != nil {
		return nil, fatal
	}
	return results, nil
}

// foldGroup maps and left-folds one group's records into a single
// value, starting from vacuous when the group is empty.
func foldGroup(records []*core.VertexRecord, mapFn MapFunc, reduceFn ReduceFunc, vacuous interface{}) (interface{}, error) {
	if len(records) == 0 {
		return vacuous, nil
	}
	acc, err := mapFn(records[0].Value)
	if err != nil {
		return nil, err
	}
	for _, rec := range records[1:] {
		elem, err := mapFn(rec.Value)
		if err != nil {
			return nil, err
		}
		acc, err = reduceFn(acc, elem)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// ReduceAll folds the entire graph into one value: every live vertex
// across every lane is mapped and combined, lane-local partial results
// folded into a process-wide accumulator at the barrier. Lanes holding
// no live vertex contribute nothing; an empty graph yields vacuous. Used
// by the standalone map-reduce operation, which has no CLASSIFY step.
func ReduceAll(ctx context.Context, inv *Invocation, mapFn MapFunc, reduceFn ReduceFunc, vacuous interface{}) (interface{}, error) {
	inv.Enter(StateReducing)
	partials := make([]interface{}, inv.Pool.Lanes)
	filled := make([]bool, inv.Pool.Lanes)

	task := func(taskCtx context.Context, laneIdx int) error {
		lane := inv.Graph.Lanes.Lanes[laneIdx]
		var recs []*core.VertexRecord
		lane.Store.IterateLive(func(rec *core.VertexRecord) { recs = append(recs, rec) })
		if len(recs) == 0 {
			return nil
		}
		acc, err := foldGroup(recs, mapFn, reduceFn, vacuous)
		if err != nil {
			return err
		}
		partials[laneIdx] = acc
		filled[laneIdx] = true
		return nil
	}

	if err := inv.Pool.RunPhase(ctx, inv.KS, "reduce", task); err != nil {
		return nil, err
	}

	total, found := vacuous, false
	for i, p := range partials {
		if !filled[i] {
			continue
		}
		if !found {
			total, found = p, true
			continue
		}
		var err error
		total, err = reduceFn(total, p)
		if err != nil {
			return nil, err
		}
	}
	return total, nil
}
