package graphstore

import "github.com/abyssgo/assembler/kmer"

// SetEdge sets or clears bit base of the adjacency bitset in direction
// dir on the vertex keyed by canon. This is the only way adjacency
// bitsets are mutated: BuildAdjacency sets bits after load, and the
// cleaning phases clear a neighbor's bit before tombstoning it.
func (s *Store) SetEdge(canon kmer.K, dir kmer.Direction, base kmer.Base, present bool) error {
	return s.withVertex(canon, func(v *Vertex) {
		bit := uint8(1) << uint(base)
		if dir == kmer.Sense {
			if present {
				v.outSense |= bit
			} else {
				v.outSense &^= bit
			}
		} else {
			if present {
				v.outAntisense |= bit
			} else {
				v.outAntisense &^= bit
			}
		}
	})
}

// Neighbor pairs the base that produced a candidate with the candidate's
// canonical k-mer and the orientation it was stored under.
type Neighbor struct {
	Base        kmer.Base
	Canonical   kmer.K
	Orientation kmer.Orientation
}

// Neighbors reconstructs, on demand, the present neighbors of canon in
// direction dir by consulting its adjacency bitset and re-deriving each
// candidate's canonical form. No back-references are ever stored;
// every lookup walks from existence outward.
func (s *Store) Neighbors(canon kmer.K, dir kmer.Direction) ([]Neighbor, error) {
	view, ok := s.Get(canon)
	if !ok {
		return nil, storeErrorf("Neighbors", ErrVertexNotFound)
	}

	var out []Neighbor
	for _, n := range kmer.Neighbors(canon, dir) {
		if !view.HasEdge(dir, n.Base) {
			continue
		}
		cn, orient := kmer.Canonical(n.K)
		out = append(out, Neighbor{Base: n.Base, Canonical: cn, Orientation: orient})
	}

	return out, nil
}

// ReciprocalEdge computes, from a neighbor reached by shifting canon in
// direction dir with base, which (direction, base) on that neighbor
// points back at canon.
//
// Derivation: a neighbor n = Canonical(shift(canon, dir, base)) is
// either the shifted k-mer itself (orient == Forward) or its reverse
// complement (orient == Reverse). Reversing a k-mer also reverses which
// end grows under which direction, so:
//   - Forward: the back-edge lives on n's opposite direction, at the
//     base that fell off canon's far end (FirstBase for a Sense shift,
//     LastBase for an Antisense shift).
//   - Reverse: the back-edge lives on n's *same* direction (the RC flip
//     already accounts for the reversal), at the complement of that
//     same far-end base.
func ReciprocalEdge(canon kmer.K, dir kmer.Direction, orient kmer.Orientation) (kmer.Direction, kmer.Base) {
	farBase := canon.FirstBase()
	if dir == kmer.Antisense {
		farBase = canon.LastBase()
	}

	if orient == kmer.Forward {
		rdir := kmer.Sense
		if dir == kmer.Sense {
			rdir = kmer.Antisense
		}

		return rdir, farBase
	}

	return dir, kmer.Complement(farBase)
}

// Disconnect clears the bit for neighbor canon in direction dir on
// vertex canon (the inverse of whichever SetEdge call first recorded
// that neighbor) without tombstoning canon itself.
func (s *Store) Disconnect(canon kmer.K, dir kmer.Direction, base kmer.Base) error {
	return s.SetEdge(canon, dir, base, false)
}

// DisconnectNeighbor clears neighbor's back-edge to canon (the edge
// that was followed in direction dir to reach it). Every cleaning phase
// calls this on each surviving neighbor of a vertex before tombstoning
// that vertex, so adjacency never points at an absent k-mer.
func (s *Store) DisconnectNeighbor(canon kmer.K, dir kmer.Direction, n Neighbor) error {
	rdir, rbase := ReciprocalEdge(canon, dir, n.Orientation)

	return s.Disconnect(n.Canonical, rdir, rbase)
}

// DisconnectAll clears every present neighbor's back-edge to canon, in
// both directions. Call this immediately before Remove(canon).
func (s *Store) DisconnectAll(canon kmer.K) error {
	for _, dir := range [2]kmer.Direction{kmer.Sense, kmer.Antisense} {
		neighbors, err := s.Neighbors(canon, dir)
		if err != nil {
			return err
		}
		for _, n := range neighbors {
			if err := s.DisconnectNeighbor(canon, dir, n); err != nil {
				return err
			}
		}
	}

	return nil
}
