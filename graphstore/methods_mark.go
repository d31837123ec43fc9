package graphstore

import "github.com/abyssgo/assembler/kmer"

// Mark sets flag on the vertex keyed by canon. Returns ErrVertexNotFound
// if canon is absent.
func (s *Store) Mark(canon kmer.K, flag Flag) error {
	return s.withVertex(canon, func(v *Vertex) {
		v.flags |= uint8(flag)
	})
}

// Unmark clears flag on the vertex keyed by canon.
func (s *Store) Unmark(canon kmer.K, flag Flag) error {
	return s.withVertex(canon, func(v *Vertex) {
		v.flags &^= uint8(flag)
	})
}

// IsMarked reports whether flag is set on canon. Returns false (with a
// non-nil error) if the vertex is absent.
func (s *Store) IsMarked(canon kmer.K, flag Flag) (bool, error) {
	view, ok := s.Get(canon)
	if !ok {
		return false, storeErrorf("IsMarked", ErrVertexNotFound)
	}

	return view.Marked(flag), nil
}

// ClearMarks clears mark-sense and mark-antisense on every present
// vertex. Called between phases so a previous phase's markings never
// leak into the next.
func (s *Store) ClearMarks() {
	s.muVert.RLock()
	entries := make([]*Vertex, 0, len(s.vert))
	for _, v := range s.vert {
		entries = append(entries, v)
	}
	s.muVert.RUnlock()

	for _, v := range entries {
		v.mu.Lock()
		v.flags &^= uint8(FlagMarkSense | FlagMarkAntisense)
		v.mu.Unlock()
	}
}

// withVertex locates canon and applies fn under its write lock.
func (s *Store) withVertex(canon kmer.K, fn func(v *Vertex)) error {
	s.muVert.RLock()
	v, ok := s.vert[canon.Bits()]
	s.muVert.RUnlock()
	if !ok {
		return storeErrorf("withVertex", ErrVertexNotFound)
	}

	v.mu.Lock()
	fn(v)
	v.mu.Unlock()

	return nil
}
