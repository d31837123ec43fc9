// Package kmer implements the fixed-length DNA word codec: packing a
// string over {A,C,G,T} into a compact two-bit-per-base representation,
// canonicalizing it against its reverse complement, and enumerating the
// four candidate successors/predecessors in either direction.
//
// K is a run-time-parameterized type: a single process may only ever
// assemble at one k at a time, but the codec itself carries no global
// state beyond the length of the word it was built from. One 64-bit
// machine word covers MaxK (32) bases, so shifts are O(1) and
// per-base operations (reverse complement, decoding) are O(k).
package kmer
