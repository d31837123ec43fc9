package graphstore

import "github.com/abyssgo/assembler/kmer"

// Add canonicalizes raw and inserts or increments its multiplicity in
// the store. The orientation slot incremented (fwd vs rev) records
// which strand this particular read observed.
//
// Safe for concurrent invocation: distinct keys never contend (each
// vertex owns its own lock), and concurrent Add on the same key
// serializes on that vertex's lock rather than the whole store.
func (s *Store) Add(raw kmer.K) error {
	canon, orient := kmer.Canonical(raw)
	v := s.getOrCreate(canon)

	v.mu.Lock()
	v.present = true
	if orient == kmer.Forward {
		v.multFwd++
	} else {
		v.multRev++
	}
	v.mu.Unlock()

	return nil
}

// getOrCreate returns the Vertex for key, creating it (and bumping the
// present counter) on first observation. Uses double-checked locking:
// the common case (key already exists) only needs the map read lock.
func (s *Store) getOrCreate(key kmer.K) *Vertex {
	bits := key.Bits()

	s.muVert.RLock()
	v, ok := s.vert[bits]
	s.muVert.RUnlock()
	if ok {
		return v
	}

	s.muVert.Lock()
	defer s.muVert.Unlock()
	if v, ok = s.vert[bits]; ok {
		return v
	}
	v = &Vertex{}
	s.vert[bits] = v
	s.present.Add(1)

	return v
}
