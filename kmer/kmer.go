package kmer

import "strings"

// MaxK is the largest k-mer length this codec supports: a single
// 64-bit word packs 32 bases at two bits each.
const MaxK = 32

// Base is one of the four DNA symbols, encoded as its two-bit value.
type Base uint8

// The four DNA bases. Encoding is chosen so that complement(b) == b^3:
// A(00) <-> T(11), C(01) <-> G(10).
const (
	BaseA Base = 0
	BaseC Base = 1
	BaseG Base = 2
	BaseT Base = 3
)

var baseToSymbol = [4]byte{'A', 'C', 'G', 'T'}

var symbolToBase = [256]int8{}

func init() {
	for i := range symbolToBase {
		symbolToBase[i] = -1
	}
	symbolToBase['A'] = int8(BaseA)
	symbolToBase['C'] = int8(BaseC)
	symbolToBase['G'] = int8(BaseG)
	symbolToBase['T'] = int8(BaseT)
}

// complement returns the complementary base (A<->T, C<->G).
func complement(b Base) Base { return b ^ 3 }

// K is a fixed-length DNA word, packed two bits per base into a single
// machine word (bases[0] is the leftmost/most-significant base). K is a
// value type: copying it copies the word and length, never aliasing.
type K struct {
	bits   uint64
	length int
}

// Len reports the number of bases encoded in k.
func (k K) Len() int { return k.length }

// Bits exposes the raw packed representation, principally for use as a
// map key by callers that want to avoid String() allocations.
func (k K) Bits() uint64 { return k.bits }

// FromBits reconstructs a K from a previously-obtained Bits() value and
// its length. It performs no validation: callers must only pass back
// values obtained from Bits() on a K of the same length.
func FromBits(bits uint64, length int) K {
	return K{bits: bits, length: length}
}

// Encode packs seq (length 3..MaxK, symbols in {A,C,G,T}) into a K.
// Returns ErrEmptySequence, ErrBadLength, ErrLengthTooLarge, or
// ErrInvalidBase (naming the offending index via the wrapped message).
func Encode(seq string) (K, error) {
	if len(seq) == 0 {
		return K{}, kmerErrorf("Encode", ErrEmptySequence)
	}
	if len(seq) < 3 {
		return K{}, kmerErrorf("Encode", ErrBadLength)
	}
	if len(seq) > MaxK {
		return K{}, kmerErrorf("Encode", ErrLengthTooLarge)
	}

	var bits uint64
	for i := 0; i < len(seq); i++ {
		b := symbolToBase[seq[i]]
		if b < 0 {
			return K{}, kmerErrorf("Encode", ErrInvalidBase)
		}
		bits = (bits << 2) | uint64(b)
	}

	return K{bits: bits, length: len(seq)}, nil
}

// Decode renders k back into its string form. Decode(Encode(s)) == s
// for every valid s.
func (k K) Decode() string {
	return k.String()
}

// String renders k as an uppercase ACGT string of length k.Len().
func (k K) String() string {
	var sb strings.Builder
	sb.Grow(k.length)
	buf := make([]byte, k.length)
	bits := k.bits
	for i := k.length - 1; i >= 0; i-- {
		buf[i] = baseToSymbol[bits&3]
		bits >>= 2
	}
	sb.Write(buf)

	return sb.String()
}

// baseAt returns the base at position i (0 = leftmost).
func (k K) baseAt(i int) Base {
	shift := uint((k.length - 1 - i) * 2)

	return Base((k.bits >> shift) & 3)
}

// FirstBase returns the leftmost base of k.
func (k K) FirstBase() Base { return k.baseAt(0) }

// LastBase returns the rightmost base of k.
func (k K) LastBase() Base { return k.baseAt(k.length - 1) }

// Complement returns the complementary base (A<->T, C<->G).
func Complement(b Base) Base { return complement(b) }

// ReverseComplement returns the reverse complement of k: reverse the
// base order and complement every base.
func (k K) ReverseComplement() K {
	var bits uint64
	for i := k.length - 1; i >= 0; i-- {
		b := complement(k.baseAt(i))
		bits = (bits << 2) | uint64(b)
	}

	return K{bits: bits, length: k.length}
}

// Orientation records which strand a K was read as before canonicalization.
type Orientation int

const (
	// Forward means k equals its own canonical form.
	Forward Orientation = iota
	// Reverse means k's reverse complement is the canonical form.
	Reverse
)

// Canonical returns the lexicographically smaller of k and its reverse
// complement, plus the orientation that was chosen. Canonical is
// idempotent: Canonical(Canonical(k).0) == Canonical(k).
func Canonical(k K) (K, Orientation) {
	rc := k.ReverseComplement()
	if rc.bits < k.bits {
		return rc, Reverse
	}

	return k, Forward
}

// IsPalindromic reports whether k equals its own reverse complement;
// such a k-mer is stored once, under a single orientation slot.
func (k K) IsPalindromic() bool {
	return k.ReverseComplement().bits == k.bits
}

// ShiftLeft drops the leftmost base and appends base on the right,
// representing extension of the underlying read to the right (the
// sense direction). Complexity O(1).
func (k K) ShiftLeft(base Base) K {
	mask := uint64(1)<<(uint(k.length)*2) - 1
	bits := ((k.bits << 2) | uint64(base)) & mask

	return K{bits: bits, length: k.length}
}

// ShiftRight drops the rightmost base and prepends base on the left,
// representing extension of the underlying read to the left (the
// antisense direction). Complexity O(1).
func (k K) ShiftRight(base Base) K {
	bits := (k.bits >> 2) | (uint64(base) << (uint(k.length-1) * 2))

	return K{bits: bits, length: k.length}
}

// Direction distinguishes the sense (extend right) and antisense
// (extend left) walking directions used throughout the graph.
type Direction int

const (
	Sense Direction = iota
	Antisense
)

// Neighbor pairs a successor/predecessor base with the k-mer it produces.
type Neighbor struct {
	Base Base
	K    K
}

// Neighbors returns the four candidate k-mers reachable from k in the
// given direction, one per possible base. The adjacency builder filters
// this list down to bases whose candidate actually exists in the store.
func Neighbors(k K, dir Direction) [4]Neighbor {
	var out [4]Neighbor
	for b := Base(0); b < 4; b++ {
		var next K
		if dir == Sense {
			next = k.ShiftLeft(b)
		} else {
			next = k.ShiftRight(b)
		}
		out[b] = Neighbor{Base: b, K: next}
	}

	return out
}
