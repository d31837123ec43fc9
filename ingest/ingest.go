// Package ingest turns a sequence source into a populated, adjacency-built
// graphstore.Store: the "load -> build adjacency -> histogram"
// prefix of the per-k control flow that both cmd/assemble and the
// multi-k sweep driver need verbatim.
package ingest

import (
	"context"
	"errors"
	"io"

	"github.com/abyssgo/assembler/coverage"
	"github.com/abyssgo/assembler/graphstore"
	"github.com/abyssgo/assembler/iosupport"
	"github.com/abyssgo/assembler/kmer"
)

// ErrNoUsableSequence indicates source yielded no read long enough to
// produce a single k-mer: the store is empty after load, and the run
// cannot proceed.
var ErrNoUsableSequence = errors.New("ingest: no usable sequence")

// Result bundles the populated store with the histogram built from it,
// since both the caller's coverage.Derive and its logging need the
// vertex count and multiplicity distribution load produced.
type Result struct {
	Store        *graphstore.Store
	Histogram    *coverage.Histogram
	SkippedBases int
	ReadsLoaded  int
}

// Load reads every record from source, slides a length-k window across
// each sanitized sequence adding every resulting k-mer to a new store,
// builds adjacency, and derives the coverage histogram. Reads shorter
// than k contribute no k-mers and are silently skipped, matching the
// reader boundary's non-ACGT handling: only an entirely empty store
// after load is an error.
func Load(ctx context.Context, source iosupport.SequenceSource, k, workers int) (Result, error) {
	store := graphstore.NewStore(k)
	reads := 0

	for {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		rec, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, err
		}

		if addReadKmers(store, rec.Sequence, k) {
			reads++
		}
	}

	if store.Size() == 0 {
		return Result{}, ErrNoUsableSequence
	}

	if err := graphstore.BuildAdjacency(ctx, store, workers); err != nil {
		return Result{}, err
	}

	skipped := 0
	if counter, ok := source.(interface{ SkippedBases() int }); ok {
		skipped = counter.SkippedBases()
	}

	return Result{
		Store:        store,
		Histogram:    coverage.BuildFromStore(store),
		ReadsLoaded:  reads,
		SkippedBases: skipped,
	}, nil
}

// addReadKmers adds every k-length window of seq to store, reporting
// whether at least one k-mer was produced.
func addReadKmers(store *graphstore.Store, seq string, k int) bool {
	if len(seq) < k {
		return false
	}

	added := false
	for i := 0; i+k <= len(seq); i++ {
		km, err := kmer.Encode(seq[i : i+k])
		if err != nil {
			continue
		}
		_ = store.Add(km)
		added = true
	}

	return added
}
