package kernel

import (
	"context"
	"sync"

	"github.com/cru-go/cru/core"
)

// ClassifyFunc computes the grouping key for a vertex. Two vertices
// with equal keys (per the keyEqual passed to Classify) land in the
// same group.
type ClassifyFunc func(value interface{}) (key interface{}, err error)

// Group is one classification bucket: a key plus every vertex record
// that mapped to it, in no guaranteed order.
type Group struct {
	Key     interface{}
	Records []*core.VertexRecord
}

// ClassTable is the result of a CLASSIFY phase: the groups produced,
// bucketed internally by key hash and read back through Groups.
type ClassTable struct {
	mu     sync.Mutex
	groups map[uint64][]*Group
}

func newClassTable() *ClassTable {
	return &ClassTable{groups: make(map[uint64][]*Group)}
}

// Groups returns every group discovered, flattened out of the internal
// hash buckets. Order is unspecified.
func (t *ClassTable) Groups() []*Group {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*Group, 0, len(t.groups))
	for _, bucket := range t.groups {
		out = append(out, bucket...)
	}
	return out
}

func (t *ClassTable) insert(keyHash func(interface{}) uint64, keyEqual func(a, b interface{}) bool, key interface{}, rec *core.VertexRecord) {
	h := keyHash(key)
	t.mu.Lock()
	defer t.mu.Unlock()
	bucket := t.groups[h]
	for _, g := range bucket {
		if keyEqual(g.Key, key) {
			g.Records = append(g.Records, rec)
			return
		}
	}
	t.groups[h] = append(bucket, &Group{Key: key, Records: []*core.VertexRecord{rec}})
}

// Classify computes fn over every live vertex, lane-parallel, and
// returns the resulting groups. keyHash/keyEqual identify a group by
// its key the same way Traits.VertexHash/VertexEqual identify a
// vertex; a classification over the vertex value itself can reuse the
// graph's own Traits.
func Classify(ctx context.Context, inv *Invocation, fn ClassifyFunc, keyHash func(interface{}) uint64, keyEqual func(a, b interface{}) bool) (*ClassTable, error) {
	inv.Enter(StateClassifying)
	table := newClassTable()

	task := func(taskCtx context.Context, laneIdx int) error {
		lane := inv.Graph.Lanes.Lanes[laneIdx]
		var firstErr error
		lane.Store.IterateLive(func(rec *core.VertexRecord) {
			if firstErr != nil || inv.KS.Tripped() {
				return
			}
			key, err := fn(rec.Value)
			if err != nil {
				firstErr = err
				return
			}
			table.insert(keyHash, keyEqual, key, rec)
		})
		return firstErr
	}

	if err := inv.Pool.RunPhase(ctx, inv.KS, "classify", task); err != nil {
		return nil, err
	}
	return table, nil
}
