package graphstore

import (
	"sync"
	"sync/atomic"

	"github.com/abyssgo/assembler/kmer"
)

// Flag is a per-vertex boolean bit, packed tightly alongside
// multiplicity to keep Vertex cache-friendly.
type Flag uint8

// Vertex flags. mark-sense/mark-antisense are cleared between phases;
// seen is local to a single walk.
const (
	FlagSeen Flag = 1 << iota
	FlagMarkSense
	FlagMarkAntisense
)

// Vertex is one record in the store: present/tombstoned state, the
// (fwd, rev) observation counters whose sum is coverage, two 4-bit
// adjacency bitsets (one per direction), and the flag bitfield.
//
// A Vertex's own mutex protects only its scalar fields; it never locks
// the Store's vertex map, so concurrent mutation of distinct vertices
// never contends.
type Vertex struct {
	mu sync.RWMutex

	present      bool
	multFwd      uint32
	multRev      uint32
	outSense     uint8 // low 4 bits: one per kmer.Base
	outAntisense uint8
	flags        uint8
}

// VertexView is an immutable snapshot of a Vertex returned by Get,
// decoupled from the live record's lock so callers can hold it freely.
type VertexView struct {
	Present      bool
	MultFwd      uint32
	MultRev      uint32
	OutSense     uint8
	OutAntisense uint8
	Flags        uint8
}

// Multiplicity returns MultFwd+MultRev, the vertex's total coverage.
func (v VertexView) Multiplicity() uint32 { return v.MultFwd + v.MultRev }

// OutDegree returns popcount(out[dir]), the number of bases for which
// a neighbor exists in the indicated direction.
func (v VertexView) OutDegree(dir kmer.Direction) int {
	bits := v.OutSense
	if dir == kmer.Antisense {
		bits = v.OutAntisense
	}

	return popcount4(bits)
}

// Ambiguous reports out-degree > 1 in either direction.
func (v VertexView) Ambiguous() bool {
	return v.OutDegree(kmer.Sense) > 1 || v.OutDegree(kmer.Antisense) > 1
}

// Tip reports out-degree == 0 in at least one direction.
func (v VertexView) Tip() bool {
	return v.OutDegree(kmer.Sense) == 0 || v.OutDegree(kmer.Antisense) == 0
}

// HasEdge reports whether bit base is set in direction dir.
func (v VertexView) HasEdge(dir kmer.Direction, base kmer.Base) bool {
	bits := v.OutSense
	if dir == kmer.Antisense {
		bits = v.OutAntisense
	}

	return bits&(1<<uint(base)) != 0
}

// Marked reports whether flag is set.
func (v VertexView) Marked(flag Flag) bool { return v.Flags&uint8(flag) != 0 }

func popcount4(b uint8) int {
	n := 0
	for i := 0; i < 4; i++ {
		if b&(1<<uint(i)) != 0 {
			n++
		}
	}

	return n
}

func (v *Vertex) view() VertexView {
	return VertexView{
		Present:      v.present,
		MultFwd:      v.multFwd,
		MultRev:      v.multRev,
		OutSense:     v.outSense,
		OutAntisense: v.outAntisense,
		Flags:        v.flags,
	}
}

// Store is the concurrent hash map from canonical k-mer bit pattern to
// Vertex, scoped to a single fixed k for the duration of one assembly.
type Store struct {
	k int

	muVert sync.RWMutex
	vert   map[uint64]*Vertex

	present       atomic.Int64
	deletedKey    uint64
	deletedKeySet bool
}

// Option configures a Store at construction time.
type Option func(*Store)

// NewStore creates an empty Store scoped to k. k must be >= 3 and
// <= kmer.MaxK; callers are expected to have validated this via
// config.Config before construction (ConfigInvalid is a config-layer
// concern, not a graphstore one).
func NewStore(k int, opts ...Option) *Store {
	s := &Store{
		k:    k,
		vert: make(map[uint64]*Vertex),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithCapacityHint pre-sizes the backing map to reduce rehashing during
// bulk load.
func WithCapacityHint(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.vert = make(map[uint64]*Vertex, n)
		}
	}
}

// K reports the k-mer length this store was constructed for.
func (s *Store) K() int { return s.k }
