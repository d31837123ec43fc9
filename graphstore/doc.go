// Package graphstore implements the vertex store for the de Bruijn
// assembly graph: a concurrent hash map from canonical k-mer to a
// compact Vertex record (multiplicity pair, two 4-bit adjacency
// bitsets, a small flag bitfield), plus BuildAdjacency, the adjacency
// builder that populates those bitsets from vertex existence after
// load.
//
// Two locks guard the Store: muVert guards membership in the vertices
// map (insertion, tombstoning, compaction, iteration), while per-vertex
// fields (multiplicity, edge bitsets, flags) are protected by a lock
// embedded in the Vertex itself so that concurrent Add/SetEdge calls on
// distinct k-mers never contend.
//
// Edges are never stored as independent records: a neighbor is always
// reconstructed on demand by shifting the current vertex and checking
// existence of the candidate's canonical form. This is what lets the
// store own every vertex outright without reference cycles.
package graphstore
