package graphstore_test

import (
	"sync"
	"testing"

	"github.com/abyssgo/assembler/graphstore"
	"github.com/abyssgo/assembler/kmer"
	"github.com/stretchr/testify/require"
)

var base4Symbols = [4]byte{'A', 'C', 'G', 'T'}

// base4Seq deterministically maps i to a distinct length-n ACGT string
// (base-4 digits of i), used to generate many distinct k-mers for
// concurrency tests without colliding.
func base4Seq(i, n int) string {
	buf := make([]byte, n)
	for pos := n - 1; pos >= 0; pos-- {
		buf[pos] = base4Symbols[i%4]
		i /= 4
	}

	return string(buf)
}

// TestConcurrentAddDistinctKeys verifies that concurrent Add calls on
// distinct k-mers are safe and all land in the store.
func TestConcurrentAddDistinctKeys(t *testing.T) {
	store := graphstore.NewStore(4)
	const num = 200

	var wg sync.WaitGroup
	wg.Add(num)
	for i := 0; i < num; i++ {
		go func(i int) {
			defer wg.Done()
			k, err := kmer.Encode(base4Seq(i, 4))
			require.NoError(t, err)
			require.NoError(t, store.Add(k))
		}(i)
	}
	wg.Wait()

	require.LessOrEqual(t, store.Size(), num)
	require.Greater(t, store.Size(), 0)
}

// TestConcurrentAddSameKey verifies that repeated concurrent Add calls
// on the same canonical k-mer serialize correctly: the sum of fwd+rev
// observations must equal the number of calls.
func TestConcurrentAddSameKey(t *testing.T) {
	store := graphstore.NewStore(4)
	k, err := kmer.Encode("ACGT")
	require.NoError(t, err)

	const rounds = 500
	var wg sync.WaitGroup
	wg.Add(rounds)
	for i := 0; i < rounds; i++ {
		go func() {
			defer wg.Done()
			require.NoError(t, store.Add(k))
		}()
	}
	wg.Wait()

	canon, _ := kmer.Canonical(k)
	view, ok := store.Get(canon)
	require.True(t, ok)
	require.Equal(t, uint32(rounds), view.Multiplicity())
}
