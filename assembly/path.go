package assembly

import (
	"strings"

	"github.com/abyssgo/assembler/graphstore"
	"github.com/abyssgo/assembler/kmer"
)

// stepOriented finds the unique neighbor of oriented in direction dir,
// if out-degree is exactly one there, translating between oriented's
// own frame (which may be the reverse complement of its canonical
// form) and the canonical vertex the store actually indexes adjacency
// by. Returns ok=false when no unique neighbor exists in dir.
func stepOriented(s *graphstore.Store, oriented kmer.K, dir kmer.Direction) (kmer.K, bool, error) {
	canon, orient := kmer.Canonical(oriented)

	storeDir := dir
	if orient == kmer.Reverse {
		storeDir = flip(dir)
	}

	neighbors, err := s.Neighbors(canon, storeDir)
	if err != nil {
		return kmer.K{}, false, err
	}
	if len(neighbors) != 1 {
		return kmer.K{}, false, nil
	}

	base := neighbors[0].Base
	if orient == kmer.Reverse {
		base = kmer.Complement(base)
	}

	if dir == kmer.Sense {
		return oriented.ShiftLeft(base), true, nil
	}

	return oriented.ShiftRight(base), true, nil
}

// walkChain extends from start one step at a time in direction dir,
// stopping before a vertex that is absent, ambiguous, or already
// visited. Each consumed vertex is added to visited. The returned
// slice holds oriented k-mers in walk order (nearest to start first).
func walkChain(s *graphstore.Store, start kmer.K, dir kmer.Direction, visited map[uint64]bool) ([]kmer.K, error) {
	var out []kmer.K
	cur := start

	for {
		next, ok, err := stepOriented(s, cur, dir)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		canon, _ := kmer.Canonical(next)
		view, exists := s.Get(canon)
		if !exists || !view.Present {
			break
		}
		if view.Ambiguous() {
			break
		}
		if visited[canon.Bits()] {
			break
		}

		visited[canon.Bits()] = true
		out = append(out, next)
		cur = next
	}

	return out, nil
}

// CollectUnambiguousPath walks outward from startCanon in both
// directions while the run stays unambiguous, returning the full path
// of oriented k-mers in 5'->3' sequence order. startCanon must be
// present and unambiguous; if it is already in visited, CollectUnambiguousPath
// returns (nil, nil). visited is mutated to include every vertex the
// path consumes, including startCanon.
func CollectUnambiguousPath(s *graphstore.Store, startCanon kmer.K, visited map[uint64]bool) ([]kmer.K, error) {
	if visited[startCanon.Bits()] {
		return nil, nil
	}
	visited[startCanon.Bits()] = true

	prefix, err := walkChain(s, startCanon, kmer.Antisense, visited)
	if err != nil {
		return nil, err
	}

	suffix, err := walkChain(s, startCanon, kmer.Sense, visited)
	if err != nil {
		return nil, err
	}

	path := make([]kmer.K, 0, len(prefix)+1+len(suffix))
	for i := len(prefix) - 1; i >= 0; i-- {
		path = append(path, prefix[i])
	}
	path = append(path, startCanon)
	path = append(path, suffix...)

	return path, nil
}

// CanonicalsOf returns the canonical form of each oriented k-mer in path.
func CanonicalsOf(path []kmer.K) []kmer.K {
	out := make([]kmer.K, len(path))
	for i, k := range path {
		out[i], _ = kmer.Canonical(k)
	}

	return out
}

// multiplicitiesOf looks up the current multiplicity of every vertex
// along path, in order.
func multiplicitiesOf(s *graphstore.Store, path []kmer.K) ([]uint32, error) {
	mults := make([]uint32, len(path))
	for i, oriented := range path {
		canon, _ := kmer.Canonical(oriented)
		view, ok := s.Get(canon)
		if !ok {
			return nil, ErrVertexVanished
		}
		mults[i] = view.Multiplicity()
	}

	return mults, nil
}

// DecodeSequence renders an overlapping oriented k-mer path (each
// consecutive pair overlapping by k-1 bases) as the single assembled
// DNA string it represents.
func DecodeSequence(path []kmer.K) string {
	if len(path) == 0 {
		return ""
	}

	var sb strings.Builder
	first := path[0].String()
	sb.Grow(len(first) + len(path) - 1)
	sb.WriteString(first)
	for i := 1; i < len(path); i++ {
		s := path[i].String()
		sb.WriteByte(s[len(s)-1])
	}

	return sb.String()
}
