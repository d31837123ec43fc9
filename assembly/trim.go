package assembly

import (
	"context"

	"github.com/abyssgo/assembler/graphstore"
	"github.com/abyssgo/assembler/kmer"
)

// Trim removes branches shorter than length vertices that terminate in
// a dead end: from each tip it walks inward along the unique
// adjacency until a branch is reached within length steps, marking
// the walked run for removal only when a branch was actually found;
// a walk that exhausts the bound or dead-ends on both sides is left
// alone. Repeats until a full pass marks nothing; converges because
// every removal strictly shrinks the graph.
func Trim(ctx context.Context, s *graphstore.Store, length int) (int, error) {
	total := 0
	for {
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		default:
		}

		removed, err := trimPass(ctx, s, length)
		if err != nil {
			return total, err
		}
		total += removed
		if removed == 0 {
			break
		}
	}
	s.Cleanup()

	return total, nil
}

func trimPass(ctx context.Context, s *graphstore.Store, length int) (int, error) {
	var tips []kmer.K
	for canon, view := range s.All() {
		if view.Tip() {
			tips = append(tips, canon)
		}
	}

	toRemove := make(map[uint64]kmer.K)
	for _, tip := range tips {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		path, branched, err := branchBoundWalk(s, tip, length)
		if err != nil {
			return 0, err
		}
		if !branched {
			continue
		}
		for _, k := range path {
			toRemove[k.Bits()] = k
		}
	}

	for _, canon := range toRemove {
		if err := removeVertex(s, canon); err != nil {
			return 0, err
		}
	}

	return len(toRemove), nil
}

// branchBoundWalk walks inward from tip along its single non-dead
// direction, returning the vertices traversed (tip included) and
// whether a branch was reached within length steps. A tip dead-ended
// in both directions, or whose inward direction is itself already
// ambiguous at the tip, has no unique inward path and is left
// untouched.
func branchBoundWalk(s *graphstore.Store, tip kmer.K, length int) ([]kmer.K, bool, error) {
	view, ok := s.Get(tip)
	if !ok || !view.Present {
		return nil, false, nil
	}

	var dir kmer.Direction
	switch {
	case view.OutDegree(kmer.Sense) == 0 && view.OutDegree(kmer.Antisense) > 0:
		dir = kmer.Antisense
	case view.OutDegree(kmer.Antisense) == 0 && view.OutDegree(kmer.Sense) > 0:
		dir = kmer.Sense
	default:
		return nil, false, nil
	}

	path := []kmer.K{tip}
	cur := tip

	for step := 0; step < length; step++ {
		neighbors, err := s.Neighbors(cur, dir)
		if err != nil {
			return nil, false, err
		}
		if len(neighbors) != 1 {
			return nil, false, nil
		}

		n := neighbors[0]
		next := n.Canonical
		nview, ok := s.Get(next)
		if !ok || !nview.Present {
			return nil, false, nil
		}

		contDir := dir
		if n.Orientation == kmer.Reverse {
			contDir = flip(dir)
		}

		// The junction's excess edges face the side the spur hangs off,
		// so the branch test must consider both of next's directions: a
		// split toward the walk (entry side) or away from it ends the
		// spur either way.
		if nview.Ambiguous() {
			return path, true, nil
		}
		if nview.OutDegree(contDir) == 0 {
			return nil, false, nil
		}

		path = append(path, next)
		cur = next
		dir = contDir
	}

	return nil, false, nil
}
