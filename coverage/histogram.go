package coverage

import (
	"sort"

	"github.com/abyssgo/assembler/graphstore"
)

// Operation name constants for unified error wrapping.
const (
	opErosionThreshold = "ErosionThreshold"
	opNoiseMode        = "NoiseMode"
)

// Histogram counts present vertices by total multiplicity (fwd+rev
// observation count).
type Histogram struct {
	counts map[uint32]uint64
	total  uint64
}

// NewHistogram returns an empty histogram.
func NewHistogram() *Histogram {
	return &Histogram{counts: make(map[uint32]uint64)}
}

// Observe records one vertex at the given multiplicity.
func (h *Histogram) Observe(multiplicity uint32) {
	h.counts[multiplicity]++
	h.total++
}

// BuildFromStore scans every present vertex in store and returns the
// resulting histogram. Safe to call only once adjacency-independent
// state (multiplicity) is stable, i.e. after load completes.
func BuildFromStore(store *graphstore.Store) *Histogram {
	h := NewHistogram()
	for _, view := range store.All() {
		h.Observe(view.Multiplicity())
	}

	return h
}

// Count returns the number of vertices observed at exactly multiplicity.
func (h *Histogram) Count(multiplicity uint32) uint64 {
	return h.counts[multiplicity]
}

// Total returns the total number of observations across all bins.
func (h *Histogram) Total() uint64 {
	return h.total
}

// sortedBins returns the populated multiplicities in ascending order.
func (h *Histogram) sortedBins() []uint32 {
	bins := make([]uint32, 0, len(h.counts))
	for m := range h.counts {
		bins = append(bins, m)
	}
	sort.Slice(bins, func(i, j int) bool { return bins[i] < bins[j] })

	return bins
}

// noiseMode returns the first local maximum scanning bins left to
// right: the low-multiplicity peak produced by sequencing errors,
// which always sits to the left of the true-coverage peak in a
// healthy histogram.
func (h *Histogram) noiseMode() (uint32, error) {
	bins := h.sortedBins()
	if len(bins) == 0 {
		return 0, coverageErrorf(opNoiseMode, ErrEmptyHistogram)
	}

	for i := 0; i < len(bins)-1; i++ {
		if h.counts[bins[i]] >= h.counts[bins[i+1]] {
			return bins[i], nil
		}
	}

	return bins[len(bins)-1], nil
}

// ErosionThreshold returns the lowest local minimum of the histogram
// at or to the right of the noise mode: vertices with multiplicity
// below this value are treated as error-induced. If no minimum is
// found (the histogram strictly decreases past the mode),
// the highest observed multiplicity is returned, treating the entire
// tail as a single descending slope.
func (h *Histogram) ErosionThreshold() (uint32, error) {
	bins := h.sortedBins()
	if len(bins) == 0 {
		return 0, coverageErrorf(opErosionThreshold, ErrEmptyHistogram)
	}

	mode, err := h.noiseMode()
	if err != nil {
		return 0, coverageErrorf(opErosionThreshold, err)
	}

	start := sort.Search(len(bins), func(i int) bool { return bins[i] >= mode })
	for i := start; i < len(bins)-1; i++ {
		if h.counts[bins[i]] <= h.counts[bins[i+1]] {
			return bins[i], nil
		}
	}

	return bins[len(bins)-1], nil
}
