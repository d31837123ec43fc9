// Package coverage builds a k-mer multiplicity histogram over a graph
// store and derives the two read-only thresholds the cleaning phases
// consult: the erosion threshold (a local minimum found automatically
// in the histogram) and the contig-coverage cutoff (supplied directly
// by configuration).
package coverage
