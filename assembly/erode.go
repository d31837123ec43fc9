package assembly

import (
	"context"

	"github.com/abyssgo/assembler/graphstore"
	"github.com/abyssgo/assembler/kmer"
)

// Erode iteratively removes every present tip vertex (out-degree zero
// in at least one direction) whose multiplicity falls below
// threshold. A full pass that removes nothing ends the loop: the
// operation is idempotent at fixed point, so an immediate second call
// always removes zero.
func Erode(ctx context.Context, s *graphstore.Store, threshold uint32) (int, error) {
	total, err := erodeUntilFixed(ctx, s, func(v graphstore.VertexView) bool {
		return v.Tip() && v.Multiplicity() < threshold
	})
	if err != nil {
		return total, err
	}
	s.Cleanup()

	return total, nil
}

// ErodeStranded applies the stranded erosion variant: a tip is removed
// when its weaker strand's observation count (not total multiplicity)
// falls below threshold, catching vertices whose coverage is almost
// entirely one-sided, a signature of single-strand sequencing error.
func ErodeStranded(ctx context.Context, s *graphstore.Store, threshold uint32) (int, error) {
	total, err := erodeUntilFixed(ctx, s, func(v graphstore.VertexView) bool {
		weaker := v.MultFwd
		if v.MultRev < weaker {
			weaker = v.MultRev
		}

		return v.Tip() && weaker < threshold
	})
	if err != nil {
		return total, err
	}
	s.Cleanup()

	return total, nil
}

func erodeUntilFixed(ctx context.Context, s *graphstore.Store, shouldRemove func(graphstore.VertexView) bool) (int, error) {
	total := 0
	for {
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		default:
		}

		removed, err := erodePass(ctx, s, shouldRemove)
		if err != nil {
			return total, err
		}
		total += removed
		if removed == 0 {
			return total, nil
		}
	}
}

func erodePass(ctx context.Context, s *graphstore.Store, shouldRemove func(graphstore.VertexView) bool) (int, error) {
	var victims []kmer.K
	for canon, view := range s.All() {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}
		if shouldRemove(view) {
			victims = append(victims, canon)
		}
	}

	for _, canon := range victims {
		if err := removeVertex(s, canon); err != nil {
			return 0, err
		}
	}

	return len(victims), nil
}
