package graphstore_test

import (
	"context"
	"testing"

	"github.com/abyssgo/assembler/graphstore"
	"github.com/abyssgo/assembler/kmer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func enc(t *testing.T, s string) kmer.K {
	t.Helper()
	k, err := kmer.Encode(s)
	require.NoError(t, err)

	return k
}

func TestAddAndGet(t *testing.T) {
	store := graphstore.NewStore(4)
	k := enc(t, "ACGT")

	require.NoError(t, store.Add(k))
	canon, _ := kmer.Canonical(k)

	view, ok := store.Get(canon)
	require.True(t, ok)
	assert.True(t, view.Present)
	assert.Equal(t, uint32(1), view.Multiplicity())
	assert.Equal(t, 1, store.Size())
}

func TestAddIncrementsOrientationSlot(t *testing.T) {
	store := graphstore.NewStore(4)
	fwd := enc(t, "AAAC")
	rc := fwd.ReverseComplement() // same canonical vertex, opposite orientation

	require.NoError(t, store.Add(fwd))
	require.NoError(t, store.Add(rc))

	canon, _ := kmer.Canonical(fwd)
	view, ok := store.Get(canon)
	require.True(t, ok)
	assert.Equal(t, uint32(2), view.Multiplicity())
	assert.Equal(t, uint32(1), view.MultFwd)
	assert.Equal(t, uint32(1), view.MultRev)
}

func TestMarkUnmark(t *testing.T) {
	store := graphstore.NewStore(3)
	k := enc(t, "ACG")
	require.NoError(t, store.Add(k))
	canon, _ := kmer.Canonical(k)

	require.NoError(t, store.Mark(canon, graphstore.FlagMarkSense))
	marked, err := store.IsMarked(canon, graphstore.FlagMarkSense)
	require.NoError(t, err)
	assert.True(t, marked)

	require.NoError(t, store.Unmark(canon, graphstore.FlagMarkSense))
	marked, err = store.IsMarked(canon, graphstore.FlagMarkSense)
	require.NoError(t, err)
	assert.False(t, marked)
}

func TestRemoveTombstoneThenCleanup(t *testing.T) {
	store := graphstore.NewStore(3)
	k := enc(t, "ACG")
	require.NoError(t, store.Add(k))
	canon, _ := kmer.Canonical(k)

	require.NoError(t, store.Remove(canon))
	assert.Equal(t, 0, store.Size())

	view, ok := store.Get(canon)
	require.True(t, ok) // still present as a tombstone until Cleanup
	assert.False(t, view.Present)

	reclaimed := store.Cleanup()
	assert.Equal(t, 1, reclaimed)
	_, ok = store.Get(canon)
	assert.False(t, ok)
}

func TestBuildAdjacencyLinearChain(t *testing.T) {
	// AACCG, k=3: windows AAC, ACC, CCG are three distinct canonical
	// vertices chained AAC -> ACC -> CCG.
	store := graphstore.NewStore(3)
	read := "AACCG"
	for i := 0; i+3 <= len(read); i++ {
		require.NoError(t, store.Add(enc(t, read[i:i+3])))
	}
	require.NoError(t, graphstore.BuildAdjacency(context.Background(), store, 2))
	require.NoError(t, graphstore.VerifyAdjacencyInvariant(store))

	aac, _ := kmer.Canonical(enc(t, "AAC"))
	view, ok := store.Get(aac)
	require.True(t, ok)
	assert.Equal(t, 1, view.OutDegree(kmer.Sense))
	assert.Equal(t, 0, view.OutDegree(kmer.Antisense)) // chain end: a tip
	assert.True(t, view.Tip())

	acc, _ := kmer.Canonical(enc(t, "ACC"))
	mid, ok := store.Get(acc)
	require.True(t, ok)
	assert.Equal(t, 1, mid.OutDegree(kmer.Sense))
	assert.Equal(t, 1, mid.OutDegree(kmer.Antisense))
	assert.False(t, mid.Ambiguous())
}

// TestBuildAdjacencyReciprocityProperty checks the adjacency-reciprocity
// invariant (every edge a vertex reports is reported back by its
// neighbor, in the complementary direction) holds for arbitrary k and
// read length, not just the one fixed chain
// TestBuildAdjacencyLinearChain exercises.
func TestBuildAdjacencyReciprocityProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		k := rapid.IntRange(3, 12).Draw(t, "k")
		n := rapid.IntRange(1, 40).Draw(t, "n")
		symbols := []rune{'A', 'C', 'G', 'T'}
		buf := make([]rune, k+n-1)
		for i := range buf {
			buf[i] = symbols[rapid.IntRange(0, 3).Draw(t, "base")]
		}
		read := string(buf)

		store := graphstore.NewStore(k)
		for i := 0; i+k <= len(read); i++ {
			km, err := kmer.Encode(read[i : i+k])
			if err != nil {
				t.Fatalf("Encode(%q) failed: %v", read[i:i+k], err)
			}
			if err := store.Add(km); err != nil {
				t.Fatalf("Add failed: %v", err)
			}
		}

		if err := graphstore.BuildAdjacency(context.Background(), store, 1); err != nil {
			t.Fatalf("BuildAdjacency failed: %v", err)
		}
		if err := graphstore.VerifyAdjacencyInvariant(store); err != nil {
			t.Fatalf("adjacency invariant violated: %v", err)
		}
	})
}

func TestSetDeletedKeyRejectsAfterAdd(t *testing.T) {
	store := graphstore.NewStore(3)
	require.NoError(t, store.Add(enc(t, "ACG")))
	err := store.SetDeletedKey(enc(t, "TTT"))
	assert.ErrorIs(t, err, graphstore.ErrDeletedKeySet)
}
