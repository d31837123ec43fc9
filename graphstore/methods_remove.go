package graphstore

import "github.com/abyssgo/assembler/kmer"

// Remove tombstones the vertex keyed by canon: present becomes false,
// but the map slot is left in place (reclaimable by a later Cleanup).
// Callers are responsible for first clearing the corresponding bit in
// every neighbor that pointed at canon; Remove itself only flips the
// local flag.
func (s *Store) Remove(canon kmer.K) error {
	s.muVert.RLock()
	v, ok := s.vert[canon.Bits()]
	s.muVert.RUnlock()
	if !ok {
		return storeErrorf("Remove", ErrVertexNotFound)
	}

	v.mu.Lock()
	wasPresent := v.present
	v.present = false
	v.mu.Unlock()

	if wasPresent {
		s.present.Add(-1)
	}

	return nil
}

// Cleanup compacts tombstoned slots out of the backing map, reclaiming
// their storage. This invalidates any iteration cursor in progress
// (All() snapshots its key list up front, so only callers holding onto
// a stale snapshot across a Cleanup are affected). Cleanup is a
// synchronous, non-suspending compaction; it must be serialized by the
// caller with respect to any concurrent Add/SetEdge/Remove on the same
// store.
func (s *Store) Cleanup() int {
	s.muVert.Lock()
	defer s.muVert.Unlock()

	reclaimed := 0
	for bits, v := range s.vert {
		v.mu.RLock()
		present := v.present
		v.mu.RUnlock()
		if !present {
			delete(s.vert, bits)
			reclaimed++
		}
	}

	return reclaimed
}

// SetDeletedKey reserves key as a sentinel that must never collide with
// a real canonical k-mer. Go's builtin map needs no such sentinel to
// operate correctly, so this exists only to preserve an external
// configuration contract; it validates the call arrives before the
// first Add.
func (s *Store) SetDeletedKey(key kmer.K) error {
	s.muVert.Lock()
	defer s.muVert.Unlock()

	if s.deletedKeySet || len(s.vert) > 0 {
		return storeErrorf("SetDeletedKey", ErrDeletedKeySet)
	}
	s.deletedKey = key.Bits()
	s.deletedKeySet = true

	return nil
}
