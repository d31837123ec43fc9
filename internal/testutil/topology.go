// Package testutil builds small, deterministic read sets whose ingested
// graphs have a known shape: a clean linear chain, a chain with one tip
// branch, two disconnected chains, a single-substitution bubble, and a
// star. Every generator searches for its reads with the same kmer
// canonicalization production code uses and verifies the candidate's
// graph shape before returning it, so a test failure can never be a
// malformed fixture.
package testutil

import (
	"context"
	"testing"

	"github.com/abyssgo/assembler/graphstore"
	"github.com/abyssgo/assembler/kmer"
	"github.com/stretchr/testify/require"
)

// Encode encodes s into a kmer.K, failing the test on error.
func Encode(t *testing.T, s string) kmer.K {
	t.Helper()
	k, err := kmer.Encode(s)
	require.NoError(t, err)

	return k
}

// BuildStore ingests reads (each added once per occurrence in the
// slice, so repeating a read raises its vertices' multiplicity) and
// returns a store with adjacency already built.
func BuildStore(t *testing.T, k int, reads []string) *graphstore.Store {
	t.Helper()
	store := graphstore.NewStore(k)

	for _, read := range reads {
		for i := 0; i+k <= len(read); i++ {
			km := Encode(t, read[i:i+k])
			require.NoError(t, store.Add(km))
		}
	}

	require.NoError(t, graphstore.BuildAdjacency(context.Background(), store, 1))

	return store
}

// RevComp returns the reverse complement of a read string.
func RevComp(s string) string {
	comp := map[byte]byte{'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A'}
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[len(s)-1-i] = comp[s[i]]
	}

	return string(out)
}

// SameStrand reports whether got equals want on either strand. Contig
// orientation depends on which end of a path the walker happened to
// start from, so assertions on assembled sequences must accept both.
func SameStrand(want, got string) bool {
	return got == want || got == RevComp(want)
}

// chainState tracks an in-progress search: the oriented windows chosen
// so far and the canonical bit patterns they occupy.
type chainState struct {
	k    int
	path []kmer.K
	used map[uint64]bool
}

// admissible reports whether oriented window w may be appended to the
// chain: its canonical form must be unused and non-palindromic, none
// of its eight shift candidates may be itself (a self-loop), and its
// candidates may touch the used set exactly once, at prev, so the
// finished chain is an induced path of the canonical graph with no
// chord anywhere.
func (c *chainState) admissible(w kmer.K, prev kmer.K, isStart bool) bool {
	cw, _ := kmer.Canonical(w)
	if c.used[cw.Bits()] {
		return false
	}
	if cw.IsPalindromic() {
		return false
	}

	hits := 0
	for _, dir := range [2]kmer.Direction{kmer.Sense, kmer.Antisense} {
		for _, n := range kmer.Neighbors(cw, dir) {
			cn, _ := kmer.Canonical(n.K)
			if cn.Bits() == cw.Bits() {
				return false
			}
			if !c.used[cn.Bits()] {
				continue
			}
			if isStart || cn.Bits() != prev.Bits() {
				return false
			}
			hits++
		}
	}
	if isStart {
		return hits == 0
	}

	return hits == 1
}

func (c *chainState) push(w kmer.K) {
	cw, _ := kmer.Canonical(w)
	c.path = append(c.path, w)
	c.used[cw.Bits()] = true
}

func (c *chainState) pop() {
	w := c.path[len(c.path)-1]
	cw, _ := kmer.Canonical(w)
	c.path = c.path[:len(c.path)-1]
	delete(c.used, cw.Bits())
}

// extend grows the chain by n further windows in direction dir via
// depth-first search, backtracking when no base is admissible.
func (c *chainState) extend(n int, dir kmer.Direction) bool {
	if n == 0 {
		return true
	}

	cur := c.path[len(c.path)-1]
	prev, _ := kmer.Canonical(cur)
	for b := kmer.Base(0); b < 4; b++ {
		var next kmer.K
		if dir == kmer.Sense {
			next = cur.ShiftLeft(b)
		} else {
			next = cur.ShiftRight(b)
		}
		if !c.admissible(next, prev, false) {
			continue
		}
		c.push(next)
		if c.extend(n-1, dir) {
			return true
		}
		c.pop()
	}

	return false
}

// newChain searches for an n-vertex induced path, seeding the used set
// with seeded (vertices of earlier chains the new one must not touch).
func newChain(k, n int, seeded map[uint64]bool) *chainState {
	c := &chainState{k: k, used: make(map[uint64]bool, len(seeded)+n)}
	for bits := range seeded {
		c.used[bits] = true
	}

	total := uint64(1) << (2 * uint(k))
	for bits := uint64(0); bits < total; bits++ {
		start := kmer.FromBits(bits, k)
		if !c.admissible(start, kmer.K{}, true) {
			continue
		}
		c.push(start)
		if c.extend(n-1, kmer.Sense) {
			return c
		}
		c.pop()
	}

	panic("testutil: no induced chain found")
}

// decode renders a slice of overlapping oriented windows back into the
// read string that produces exactly those windows.
func decode(path []kmer.K) string {
	out := []byte(path[0].String())
	for _, w := range path[1:] {
		s := w.String()
		out = append(out, s[len(s)-1])
	}

	return string(out)
}

// LinearChain returns a read producing exactly n distinct canonical
// vertices chained into a single unbranched path: no window repeats, no
// window collides with another's reverse complement, and no two
// non-consecutive windows are adjacent.
func LinearChain(k, n int) string {
	return decode(newChain(k, n, nil).path)
}

// TwoChains returns two reads whose vertex sets are disjoint and share
// no adjacency, each an n-vertex linear chain.
func TwoChains(k, n int) (string, string) {
	first := newChain(k, n, nil)
	second := newChain(k, n, first.used)

	return decode(first.path), decode(second.path)
}

// WithTip returns a main read forming an n-vertex linear chain and a
// tip read that shares one interior window of the chain (the junction,
// near index n/2) then diverges for tipLen fresh vertices before
// dead-ending. Ingesting both gives the junction out-degree 2 on one
// side; every tip vertex has the multiplicity of the tip read alone.
func WithTip(k, n, tipLen int) (main, tip string) {
	c := newChain(k, n, nil)
	main = decode(c.path)

	order := junctionOrder(n)
	for _, jIdx := range order {
		for _, dir := range [2]kmer.Direction{kmer.Sense, kmer.Antisense} {
			if t, ok := growTip(c, jIdx, dir, tipLen); ok {
				return main, t
			}
		}
	}

	panic("testutil: no tip attachment found")
}

// junctionOrder yields interior indices to try as the tip junction,
// middle first.
func junctionOrder(n int) []int {
	var order []int
	mid := n / 2
	for d := 0; mid-d >= 1 || mid+d <= n-2; d++ {
		if mid+d <= n-2 {
			order = append(order, mid+d)
		}
		if d > 0 && mid-d >= 1 {
			order = append(order, mid-d)
		}
	}

	return order
}

// growTip attempts to extend tipLen fresh windows off c.path[jIdx] in
// dir (in the junction window's own oriented frame), returning the tip
// read on success and leaving c's used set restored on failure.
func growTip(c *chainState, jIdx int, dir kmer.Direction, tipLen int) (string, bool) {
	junction := c.path[jIdx]
	sub := &chainState{k: c.k, used: c.used, path: []kmer.K{junction}}

	if !sub.extend(tipLen, dir) {
		return "", false
	}

	read := decode(sub.path)
	if dir == kmer.Antisense {
		// extend walked leftward: sub.path is ordered junction-first,
		// so the decoded string must be rebuilt in left-to-right order.
		rev := make([]kmer.K, len(sub.path))
		for i, w := range sub.path {
			rev[len(rev)-1-i] = w
		}
		read = decode(rev)
	}

	return read, true
}

// WithBubbleSequences returns reads forming a bubble: a backbone read
// of 2*armLen+k vertices and a variant read identical except for one
// substituted base in the middle, so the two diverge at a split vertex
// and remerge within k steps. strongWeight/weakWeight repeat each read
// that many times. The backbone and variant reads are returned so a
// caller can assert exactly which branch survived popping.
func WithBubbleSequences(k, armLen, strongWeight, weakWeight int) (reads []string, strongRead, weakRead string) {
	n := 2*armLen + k
	c := newChain(k, n, nil)
	strongRead = decode(c.path)

	mid := len(strongRead) / 2
	for off := 0; off <= len(strongRead)/2-k; off++ {
		for _, pos := range []int{mid + off, mid - off} {
			if pos < k || pos > len(strongRead)-k {
				continue
			}
			for _, b := range []byte{'A', 'C', 'G', 'T'} {
				if b == strongRead[pos] {
					continue
				}
				candidate := strongRead[:pos] + string(b) + strongRead[pos+1:]
				if bubbleShape(k, strongRead, candidate) {
					weakRead = candidate
					for i := 0; i < strongWeight; i++ {
						reads = append(reads, strongRead)
					}
					for i := 0; i < weakWeight; i++ {
						reads = append(reads, weakRead)
					}

					return reads, strongRead, weakRead
				}
			}
		}
	}

	panic("testutil: no bubble substitution found")
}

// bubbleShape simulates ingesting {strong, weak} and reports whether
// the combined graph is exactly one bubble: two ambiguous vertices (the
// split and the merge), everything else with at most one neighbor per
// side.
func bubbleShape(k int, strong, weak string) bool {
	used := make(map[uint64]kmer.K)
	for _, read := range []string{strong, weak} {
		for i := 0; i+k <= len(read); i++ {
			w, err := kmer.Encode(read[i : i+k])
			if err != nil {
				return false
			}
			cw, _ := kmer.Canonical(w)
			if cw.IsPalindromic() {
				return false
			}
			used[cw.Bits()] = cw
		}
	}

	splitters := make(map[uint64]bool)
	for bits, cw := range used {
		for _, dir := range [2]kmer.Direction{kmer.Sense, kmer.Antisense} {
			degree := 0
			for _, n := range kmer.Neighbors(cw, dir) {
				cn, _ := kmer.Canonical(n.K)
				if cn.Bits() == cw.Bits() {
					return false
				}
				if _, ok := used[cn.Bits()]; ok {
					degree++
				}
			}
			if degree > 2 {
				return false
			}
			if degree == 2 {
				if splitters[bits] {
					return false // split and merge must be distinct vertices
				}
				splitters[bits] = true
			}
		}
	}

	return len(splitters) == 2
}

// Star returns reads forming a hub vertex with four distinct neighbors
// on each side, none of which touch one another: the hub is ambiguous
// in both directions and each satellite's only neighbor is the hub, so
// the walker must emit exactly nine single-vertex contigs.
func Star(k int) []string {
	total := uint64(1) << (2 * uint(k))
	for bits := uint64(0); bits < total; bits++ {
		hub := kmer.FromBits(bits, k)
		if reads, ok := starReads(k, hub); ok {
			return reads
		}
	}

	panic("testutil: no star hub found")
}

func starReads(k int, hub kmer.K) ([]string, bool) {
	hubStr := hub.String()
	var reads []string
	for _, p := range []byte{'A', 'C', 'G', 'T'} {
		for _, s := range []byte{'A', 'C', 'G', 'T'} {
			reads = append(reads, string(p)+hubStr+string(s))
		}
	}

	used := make(map[uint64]kmer.K)
	for _, read := range reads {
		for i := 0; i+k <= len(read); i++ {
			w, err := kmer.Encode(read[i : i+k])
			if err != nil {
				return nil, false
			}
			cw, _ := kmer.Canonical(w)
			if cw.IsPalindromic() {
				return nil, false
			}
			used[cw.Bits()] = cw
		}
	}
	if len(used) != 9 {
		return nil, false
	}

	hubCanon, _ := kmer.Canonical(hub)
	for _, cw := range used {
		for _, dir := range [2]kmer.Direction{kmer.Sense, kmer.Antisense} {
			degree := 0
			for _, n := range kmer.Neighbors(cw, dir) {
				cn, _ := kmer.Canonical(n.K)
				if cn.Bits() == cw.Bits() {
					return nil, false
				}
				if _, ok := used[cn.Bits()]; !ok {
					continue
				}
				if cw.Bits() != hubCanon.Bits() && cn.Bits() != hubCanon.Bits() {
					return nil, false // satellites must not touch each other
				}
				degree++
			}
			if cw.Bits() == hubCanon.Bits() && degree != 4 {
				return nil, false
			}
			if cw.Bits() != hubCanon.Bits() && degree > 1 {
				return nil, false
			}
		}
	}

	return reads, true
}
