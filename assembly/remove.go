package assembly

import (
	"github.com/abyssgo/assembler/graphstore"
	"github.com/abyssgo/assembler/kmer"
)

// removeVertex clears every present neighbor's back-edge to canon in
// both directions, then tombstones canon itself, the sequencing every
// cleaning phase must follow so adjacency never points at an absent
// k-mer.
func removeVertex(s *graphstore.Store, canon kmer.K) error {
	if err := s.DisconnectAll(canon); err != nil {
		return err
	}

	return s.Remove(canon)
}

func flip(dir kmer.Direction) kmer.Direction {
	if dir == kmer.Sense {
		return kmer.Antisense
	}

	return kmer.Sense
}
