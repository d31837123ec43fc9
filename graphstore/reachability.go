package graphstore

import (
	"context"
	"errors"

	"github.com/abyssgo/assembler/kmer"
)

// ErrStoreNil is returned when PathExists is called with a nil store.
var ErrStoreNil = errors.New("graphstore: store is nil")

// ReachOption customizes PathExists.
type ReachOption func(*reachConfig)

type reachConfig struct {
	maxDepth int
	ctx      context.Context
}

// WithMaxDepth bounds the walk to at most depth hops, matching the
// bubble popper's bounded search.
func WithMaxDepth(depth int) ReachOption {
	return func(c *reachConfig) { c.maxDepth = depth }
}

// WithReachContext threads a cancellation context through the walk.
func WithReachContext(ctx context.Context) ReachOption {
	return func(c *reachConfig) { c.ctx = ctx }
}

// PathExists reports whether a simple path from s to t exists in the
// store, walking both adjacency directions, within the given bound.
// Used by property tests to verify that bubble popping preserves
// reachability between a bubble's split and merge points.
func PathExists(store *Store, s, t kmer.K, opts ...ReachOption) (bool, error) {
	if store == nil {
		return false, ErrStoreNil
	}

	cfg := reachConfig{maxDepth: store.K() * 3, ctx: context.Background()}
	for _, opt := range opts {
		opt(&cfg)
	}

	type item struct {
		k     kmer.K
		depth int
	}

	visited := map[uint64]bool{s.Bits(): true}
	queue := []item{{k: s, depth: 0}}

	for len(queue) > 0 {
		select {
		case <-cfg.ctx.Done():
			return false, cfg.ctx.Err()
		default:
		}

		cur := queue[0]
		queue = queue[1:]

		if cur.k.Bits() == t.Bits() {
			return true, nil
		}
		if cur.depth >= cfg.maxDepth {
			continue
		}

		for _, dir := range [2]kmer.Direction{kmer.Sense, kmer.Antisense} {
			neighbors, err := store.Neighbors(cur.k, dir)
			if err != nil {
				continue
			}
			for _, n := range neighbors {
				if visited[n.Canonical.Bits()] {
					continue
				}
				visited[n.Canonical.Bits()] = true
				queue = append(queue, item{k: n.Canonical, depth: cur.depth + 1})
			}
		}
	}

	return false, nil
}
