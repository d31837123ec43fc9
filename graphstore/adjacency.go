package graphstore

import (
	"context"
	"runtime"
	"sync"

	"github.com/abyssgo/assembler/kmer"
)

// BuildAdjacency populates every present vertex's adjacency bitsets
// from vertex existence alone: for each of the 8 possible neighbors (4
// candidate bases x 2 directions), it looks up the candidate's
// canonical form and sets the corresponding bit iff that candidate is
// itself present.
//
// Work is partitioned into at most workers contiguous chunks of keys
// (runtime.NumCPU() when workers <= 0), one goroutine per chunk; each
// goroutine only ever writes its own vertices' bitsets (via SetEdge),
// so no two workers contend on the same write lock. ctx is checked
// before each vertex; on cancellation
// BuildAdjacency returns ctx.Err() and the store is left partially
// built and must be discarded by the caller.
func BuildAdjacency(ctx context.Context, s *Store, workers int) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	s.muVert.RLock()
	keys := make([]uint64, 0, len(s.vert))
	for bits := range s.vert {
		keys = append(keys, bits)
	}
	s.muVert.RUnlock()

	chunks := partition(keys, workers)

	var wg sync.WaitGroup
	errCh := make(chan error, len(chunks))
	for _, chunk := range chunks {
		chunk := chunk
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := buildAdjacencyChunk(ctx, s, chunk); err != nil {
				select {
				case errCh <- err:
				default:
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		return err
	}

	return nil
}

func buildAdjacencyChunk(ctx context.Context, s *Store, keys []uint64) error {
	for _, bits := range keys {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		canon := kmer.FromBits(bits, s.k)
		view, ok := s.Get(canon)
		if !ok || !view.Present {
			continue
		}

		for _, dir := range [2]kmer.Direction{kmer.Sense, kmer.Antisense} {
			for _, n := range kmer.Neighbors(canon, dir) {
				cn, _ := kmer.Canonical(n.K)
				if s.Has(cn) {
					if err := s.SetEdge(canon, dir, n.Base, true); err != nil {
						return storeErrorf("BuildAdjacency", err)
					}
				}
			}
		}
	}

	return nil
}

func partition(keys []uint64, workers int) [][]uint64 {
	if workers > len(keys) {
		workers = len(keys)
	}
	if workers <= 1 {
		return [][]uint64{keys}
	}

	chunks := make([][]uint64, 0, workers)
	size := (len(keys) + workers - 1) / workers
	for i := 0; i < len(keys); i += size {
		end := i + size
		if end > len(keys) {
			end = len(keys)
		}
		chunks = append(chunks, keys[i:end])
	}

	return chunks
}
