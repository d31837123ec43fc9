// Package graphsink defines the optional post-cleaning graph export
// contract (one node per vertex, one edge per adjacency bit) plus a
// DOTWriter implementation for Graphviz visualization.
package graphsink
