package assembly

import (
	"context"
	"sort"

	"github.com/abyssgo/assembler/bubblesink"
	"github.com/abyssgo/assembler/coverage"
	"github.com/abyssgo/assembler/graphstore"
	"github.com/abyssgo/assembler/kmer"
)

// branch is one candidate path out of a split vertex, walked up to the
// bubble length bound.
type branch struct {
	path         []kmer.K // interior vertices, oriented, excluding source and end
	end          kmer.K   // canonical form of the vertex the branch converged on
	reachedBound bool     // true iff the walk ended at an ambiguous vertex within bound
}

// PopBubbles collapses short parallel paths sharing a split (source)
// and merge (sink) vertex, each no longer than bubbleLen vertices,
// keeping the branch with the higher mean multiplicity. Ties are
// broken by the lexicographically smaller interior sequence, a
// deterministic choice. sink receives one record per
// popped bubble; pass bubblesink.NopSink{} to discard them. Returns
// the number of bubbles popped. bubbleLen <= 0 disables popping.
func PopBubbles(ctx context.Context, s *graphstore.Store, bubbleLen int, sink bubblesink.Sink) (int, error) {
	if bubbleLen <= 0 {
		return 0, nil
	}

	popped := 0
	for canon := range s.All() {
		select {
		case <-ctx.Done():
			return popped, ctx.Err()
		default:
		}

		for _, dir := range [2]kmer.Direction{kmer.Sense, kmer.Antisense} {
			// Re-fetch: an earlier resolution this pass may have removed
			// this vertex or changed its degree since All() snapshotted.
			view, ok := s.Get(canon)
			if !ok || !view.Present || view.OutDegree(dir) < 2 {
				continue
			}

			n, err := popBubblesAt(s, canon, dir, bubbleLen, sink)
			if err != nil {
				return popped, err
			}
			popped += n
		}
	}
	s.Cleanup()

	return popped, nil
}

func popBubblesAt(s *graphstore.Store, source kmer.K, dir kmer.Direction, bubbleLen int, sink bubblesink.Sink) (int, error) {
	neighbors, err := s.Neighbors(source, dir)
	if err != nil {
		return 0, err
	}

	branches := make([]branch, 0, len(neighbors))
	for _, n := range neighbors {
		b, err := walkBranch(s, source, dir, n, bubbleLen)
		if err != nil {
			return 0, err
		}
		branches = append(branches, b)
	}

	groups := make(map[uint64][]branch)
	for _, b := range branches {
		if !b.reachedBound || b.end.Bits() == source.Bits() {
			continue // exceeded bound, or re-enters source: not poppable
		}
		groups[b.end.Bits()] = append(groups[b.end.Bits()], b)
	}

	popped := 0
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		if err := resolveBubble(s, source, dir, group, sink); err != nil {
			return popped, err
		}
		popped++
	}

	return popped, nil
}

// walkBranch follows the branch leaving source via neighbor first,
// continuing while vertices stay unambiguous, up to bubbleLen steps.
func walkBranch(s *graphstore.Store, source kmer.K, dir kmer.Direction, first graphstore.Neighbor, bubbleLen int) (branch, error) {
	startOriented := shiftedCandidate(source, dir, first.Base)

	canon0, _ := kmer.Canonical(startOriented)
	view0, ok := s.Get(canon0)
	if !ok || !view0.Present {
		return branch{}, nil
	}
	if view0.Ambiguous() {
		return branch{end: canon0, reachedBound: true}, nil
	}

	path := []kmer.K{startOriented}
	cur := startOriented

	for step := 1; step < bubbleLen; step++ {
		next, ok, err := stepOriented(s, cur, dir)
		if err != nil {
			return branch{}, err
		}
		if !ok {
			return branch{reachedBound: false}, nil
		}

		canon, _ := kmer.Canonical(next)
		if canon.Bits() == source.Bits() {
			return branch{reachedBound: false}, nil // re-enters source: not poppable
		}

		view, exists := s.Get(canon)
		if !exists || !view.Present {
			return branch{reachedBound: false}, nil
		}
		if view.Ambiguous() {
			return branch{path: path, end: canon, reachedBound: true}, nil
		}

		path = append(path, next)
		cur = next
	}

	return branch{reachedBound: false}, nil
}

func shiftedCandidate(k kmer.K, dir kmer.Direction, base kmer.Base) kmer.K {
	if dir == kmer.Sense {
		return k.ShiftLeft(base)
	}

	return k.ShiftRight(base)
}

// resolveBubble keeps the branch in group with the highest mean
// multiplicity (ties broken by lexicographically smaller interior
// sequence), tombstones every other branch's interior vertices, and
// emits one bubblesink.Record per discarded branch.
func resolveBubble(s *graphstore.Store, source kmer.K, dir kmer.Direction, group []branch, sink bubblesink.Sink) error {
	sort.SliceStable(group, func(i, j int) bool {
		mi, mj := branchMean(s, group[i]), branchMean(s, group[j])
		if mi != mj {
			return mi > mj
		}

		return DecodeSequence(group[i].path) < DecodeSequence(group[j].path)
	})

	winner := group[0]
	t := winner.end

	for _, loser := range group[1:] {
		if err := discardBranch(s, source, dir, loser); err != nil {
			return err
		}

		diff := len(winner.path) - len(loser.path)
		if diff < 0 {
			diff = -diff
		}

		rec := bubblesink.Record{
			Source:            source.Decode(),
			Sink:              t.Decode(),
			RetainedSequence:  DecodeSequence(winner.path),
			DiscardedSequence: DecodeSequence(loser.path),
			LengthDifference:  diff,
		}
		if err := sink.WriteBubble(rec); err != nil {
			return err
		}
	}

	return nil
}

func branchMean(s *graphstore.Store, b branch) float64 {
	if len(b.path) == 0 {
		return 0
	}

	mults := make([]uint32, 0, len(b.path))
	for _, oriented := range b.path {
		canon, _ := kmer.Canonical(oriented)
		if view, ok := s.Get(canon); ok {
			mults = append(mults, view.Multiplicity())
		}
	}

	return coverage.MeanMultiplicity(mults)
}

// discardBranch tombstones b's interior vertices. For a zero-length
// branch (the source's neighbor is itself the merge point) there is
// nothing to tombstone; only the direct source->sink edge is cleared.
func discardBranch(s *graphstore.Store, source kmer.K, dir kmer.Direction, b branch) error {
	if len(b.path) == 0 {
		return clearSourceEdge(s, source, dir, b.end)
	}

	for _, oriented := range b.path {
		canon, _ := kmer.Canonical(oriented)
		if err := removeVertex(s, canon); err != nil {
			return err
		}
	}

	return nil
}

func clearSourceEdge(s *graphstore.Store, source kmer.K, dir kmer.Direction, target kmer.K) error {
	neighbors, err := s.Neighbors(source, dir)
	if err != nil {
		return err
	}
	for _, n := range neighbors {
		if n.Canonical.Bits() == target.Bits() {
			if err := s.DisconnectNeighbor(source, dir, n); err != nil {
				return err
			}

			return s.Disconnect(source, dir, n.Base)
		}
	}

	return nil
}
