package graphstore

import (
	"fmt"

	"github.com/abyssgo/assembler/kmer"
)

// VerifyAdjacencyInvariant checks that for every present vertex and
// every bit set in its adjacency bitset, the indicated neighbor
// exists, is present, and has the reciprocal bit set in its opposing
// direction. A violation is a programming error: it is returned
// rather than panicked so property tests can assert on it directly,
// but production callers should treat a non-nil result as fatal and
// never attempt to continue the assembly.
func VerifyAdjacencyInvariant(s *Store) error {
	for canon, view := range s.All() {
		for _, dir := range [2]kmer.Direction{kmer.Sense, kmer.Antisense} {
			for base := kmer.Base(0); base < 4; base++ {
				if !view.HasEdge(dir, base) {
					continue
				}

				cn, orient := kmer.Canonical(directionalShift(canon, dir, base))

				nview, ok := s.Get(cn)
				if !ok || !nview.Present {
					return fmt.Errorf("%w: %s has %s-edge to %s which is absent", ErrInvariant, canon, dirName(dir), cn)
				}

				rdir, rbase := ReciprocalEdge(canon, dir, orient)
				if !nview.HasEdge(rdir, rbase) {
					return fmt.Errorf("%w: %s -> %s missing reciprocal %s-edge", ErrInvariant, canon, cn, dirName(rdir))
				}
			}
		}
	}

	return nil
}

func directionalShift(k kmer.K, dir kmer.Direction, base kmer.Base) kmer.K {
	if dir == kmer.Sense {
		return k.ShiftLeft(base)
	}

	return k.ShiftRight(base)
}

func dirName(dir kmer.Direction) string {
	if dir == kmer.Sense {
		return "sense"
	}

	return "antisense"
}
