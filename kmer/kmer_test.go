package kmer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	k, err := Encode("ACGTACGT")
	require.NoError(t, err)
	assert.Equal(t, "ACGTACGT", k.Decode())
	assert.Equal(t, 8, k.Len())
}

func TestEncodeErrors(t *testing.T) {
	_, err := Encode("")
	assert.ErrorIs(t, err, ErrEmptySequence)

	_, err = Encode("AC")
	assert.ErrorIs(t, err, ErrBadLength)

	_, err = Encode("ACGN")
	assert.ErrorIs(t, err, ErrInvalidBase)

	long := make([]byte, MaxK+1)
	for i := range long {
		long[i] = 'A'
	}
	_, err = Encode(string(long))
	assert.ErrorIs(t, err, ErrLengthTooLarge)
}

func TestMinimumLengthBoundary(t *testing.T) {
	k, err := Encode("ACG")
	require.NoError(t, err)
	assert.Equal(t, 3, k.Len())
	assert.Equal(t, "ACG", k.Decode())
}

func TestReverseComplement(t *testing.T) {
	k, err := Encode("ACGT")
	require.NoError(t, err)
	rc := k.ReverseComplement()
	assert.Equal(t, "ACGT", rc.Decode()) // ACGT is its own reverse complement
	assert.True(t, k.IsPalindromic())
}

func TestCanonicalPicksLexSmaller(t *testing.T) {
	k, err := Encode("TTTT")
	require.NoError(t, err)
	c, orient := Canonical(k)
	assert.Equal(t, "AAAA", c.Decode())
	assert.Equal(t, Reverse, orient)

	k2, _ := Encode("AAAA")
	c2, orient2 := Canonical(k2)
	assert.Equal(t, "AAAA", c2.Decode())
	assert.Equal(t, Forward, orient2)
}

func TestCanonicalIdempotent(t *testing.T) {
	k, err := Encode("ACGTACGT")
	require.NoError(t, err)
	c1, _ := Canonical(k)
	c2, _ := Canonical(c1)
	assert.Equal(t, c1, c2)
}

func TestShiftLeftRight(t *testing.T) {
	k, err := Encode("ACGT")
	require.NoError(t, err)

	left := k.ShiftLeft(BaseA)
	assert.Equal(t, "CGTA", left.Decode())

	right := k.ShiftRight(BaseA)
	assert.Equal(t, "AACG", right.Decode())
}

func TestNeighborsReturnsFourCandidates(t *testing.T) {
	k, err := Encode("ACG")
	require.NoError(t, err)
	ns := Neighbors(k, Sense)
	assert.Len(t, ns, 4)
	seen := map[string]bool{}
	for _, n := range ns {
		seen[n.K.Decode()] = true
	}
	assert.Equal(t, map[string]bool{"CGA": true, "CGC": true, "CGG": true, "CGT": true}, seen)
}

// TestEncodeDecodeRoundTripProperty checks that encoding then decoding
// any valid k-mer yields the original string, for arbitrary lengths/bases.
func TestEncodeDecodeRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(3, MaxK).Draw(t, "n")
		symbols := []rune{'A', 'C', 'G', 'T'}
		buf := make([]rune, n)
		for i := range buf {
			buf[i] = symbols[rapid.IntRange(0, 3).Draw(t, "base")]
		}
		seq := string(buf)

		k, err := Encode(seq)
		if err != nil {
			t.Fatalf("Encode(%q) returned unexpected error: %v", seq, err)
		}
		if k.Decode() != seq {
			t.Fatalf("round trip mismatch: got %q want %q", k.Decode(), seq)
		}
	})
}

// TestCanonicalIdempotentProperty checks that Canonical(Canonical(K)) == Canonical(K).
func TestCanonicalIdempotentProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(3, MaxK).Draw(t, "n")
		symbols := []rune{'A', 'C', 'G', 'T'}
		buf := make([]rune, n)
		for i := range buf {
			buf[i] = symbols[rapid.IntRange(0, 3).Draw(t, "base")]
		}
		k, err := Encode(string(buf))
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}

		c1, _ := Canonical(k)
		c2, _ := Canonical(c1)
		if c1 != c2 {
			t.Fatalf("canonical not idempotent: %v vs %v", c1, c2)
		}
	})
}
