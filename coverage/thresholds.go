package coverage

// Thresholds bundles the two process-wide, read-only coverage cutoffs
// an assembly run consults: Erosion (per-vertex multiplicity, derived
// from a histogram) and Contig (mean multiplicity across a whole
// contig, supplied directly by configuration).
type Thresholds struct {
	Erosion uint32

	// ErodeStrand is the per-strand erosion threshold the stranded
	// erosion variant consults instead of Erosion. runErode uses it
	// only when config.Config.ErodeStrand is set; otherwise it runs
	// plain erosion against Erosion.
	ErodeStrand uint32

	Contig float64
}

// Derive computes the erosion threshold from h and pairs it with the
// configured contig cutoff. contigCutoff <= 0 means the low-coverage
// filter is disabled; Derive passes it through unchanged and leaves
// that decision to the caller.
func Derive(h *Histogram, contigCutoff float64) (Thresholds, error) {
	erosion, err := h.ErosionThreshold()
	if err != nil {
		return Thresholds{}, coverageErrorf("Derive", err)
	}

	return Thresholds{Erosion: erosion, Contig: contigCutoff}, nil
}

// MeanMultiplicity returns the arithmetic mean of multiplicities over
// a contig's constituent vertices, used against Thresholds.Contig.
func MeanMultiplicity(multiplicities []uint32) float64 {
	if len(multiplicities) == 0 {
		return 0
	}

	var sum uint64
	for _, m := range multiplicities {
		sum += uint64(m)
	}

	return float64(sum) / float64(len(multiplicities))
}
