package assembly

import (
	"context"

	"github.com/abyssgo/assembler/coverage"
	"github.com/abyssgo/assembler/graphstore"
	"github.com/abyssgo/assembler/kmer"
)

// LowCoverageFilter removes every vertex on a maximal unambiguous path
// whose mean multiplicity falls below thresholds.Contig, leaving any
// ambiguous endpoints untouched (they remain shared with whichever
// other paths meet them). Returns the number of vertices removed. The
// caller decides whether to invoke this phase at all; see
// config.Config.CoverageFilterDisabled.
func LowCoverageFilter(ctx context.Context, s *graphstore.Store, thresholds coverage.Thresholds) (int, error) {
	visited := make(map[uint64]bool)
	var toRemove []kmer.K

	for canon, view := range s.All() {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		if visited[canon.Bits()] || view.Ambiguous() {
			continue
		}

		path, err := CollectUnambiguousPath(s, canon, visited)
		if err != nil {
			return 0, err
		}
		if len(path) == 0 {
			continue
		}

		mults, err := multiplicitiesOf(s, path)
		if err != nil {
			return 0, err
		}

		if coverage.MeanMultiplicity(mults) < thresholds.Contig {
			toRemove = append(toRemove, CanonicalsOf(path)...)
		}
	}

	for _, canon := range toRemove {
		if err := removeVertex(s, canon); err != nil {
			return 0, err
		}
	}
	s.Cleanup()

	return len(toRemove), nil
}
