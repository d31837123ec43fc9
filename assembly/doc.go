// Package assembly implements the graph-cleaning and contig-extraction
// phases that tolerate sequencing error: the eroder (erode.go), the
// trimmer (trim.go), the low-coverage filter (lowcov.go), the bubble
// popper (bubble.go), and the contig walker (walk.go), plus the phase
// scheduler (scheduler.go) and the Context (context.go) that threads
// configuration, thresholds, a logger, and sinks through all of them
// so no phase consults process-wide state.
//
// Every cleaning phase follows the same removal sequencing: disconnect
// a vertex's neighbors' back-edges to it before tombstoning it, so
// adjacency never points at an absent k-mer. The eroder and the
// trimmer repeat full passes over the store until one removes nothing;
// the low-coverage filter and the bubble popper make a single pass.
package assembly
