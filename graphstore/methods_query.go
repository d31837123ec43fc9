package graphstore

import (
	"iter"

	"github.com/abyssgo/assembler/kmer"
)

// Get returns a read-only snapshot of the vertex keyed by canon, and
// whether it exists at all (present or tombstoned). Callers that need
// to distinguish "never existed" from "tombstoned" should check
// VertexView.Present on a true return.
func (s *Store) Get(canon kmer.K) (VertexView, bool) {
	s.muVert.RLock()
	v, ok := s.vert[canon.Bits()]
	s.muVert.RUnlock()
	if !ok {
		return VertexView{}, false
	}

	v.mu.RLock()
	view := v.view()
	v.mu.RUnlock()

	return view, true
}

// Has reports whether canon names a present (non-tombstoned) vertex.
func (s *Store) Has(canon kmer.K) bool {
	view, ok := s.Get(canon)

	return ok && view.Present
}

// Size returns the number of present (non-tombstoned) vertices.
// Complexity O(1): tracked incrementally by Add/Remove.
func (s *Store) Size() int {
	return int(s.present.Load())
}

// Empty reports Size() == 0.
func (s *Store) Empty() bool { return s.Size() == 0 }

// rawLen returns the number of map entries including tombstones,
// principally for Cleanup bookkeeping and tests.
func (s *Store) rawLen() int {
	s.muVert.RLock()
	defer s.muVert.RUnlock()

	return len(s.vert)
}

// All iterates every present vertex as (canonical k-mer, snapshot)
// pairs. The iteration order is the Go map's, which is unspecified;
// callers needing determinism should sort by K.Bits() themselves.
// Cleanup invalidates any iteration already in progress.
func (s *Store) All() iter.Seq2[kmer.K, VertexView] {
	return func(yield func(kmer.K, VertexView) bool) {
		s.muVert.RLock()
		entries := make([]*Vertex, 0, len(s.vert))
		keys := make([]uint64, 0, len(s.vert))
		for bits, v := range s.vert {
			entries = append(entries, v)
			keys = append(keys, bits)
		}
		s.muVert.RUnlock()

		for i, v := range entries {
			v.mu.RLock()
			view := v.view()
			v.mu.RUnlock()
			if !view.Present {
				continue
			}
			k := keyToK(keys[i], s.k)
			if !yield(k, view) {
				return
			}
		}
	}
}

// keyToK reconstructs a kmer.K from its packed bit pattern and length.
// graphstore keys every vertex by canon.Bits(); this is the inverse.
func keyToK(bits uint64, length int) kmer.K {
	return kmer.FromBits(bits, length)
}
