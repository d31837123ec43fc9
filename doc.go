// Package assembler is a de Bruijn graph short-read assembler in Go.
//
// 🧬 What is assembler?
//
//	A thread-safe assembly engine that turns raw DNA short reads into
//	contigs:
//
//	  • K-mer core: two-bit packed words, canonicalized against their
//	    reverse complements, stored once
//	  • Graph cleaning: tip erosion and branch trimming run to a fixed
//	    point, then low-coverage filtering and bubble popping
//	  • Contig extraction: maximal non-branching walks with explicit
//	    ambiguity marks
//
// ✨ Why this layout?
//
//   - Explicit contracts   — every phase borrows the store, none keep it
//   - Rock-solid           — per-vertex locks make concurrent load safe
//   - Deterministic        — documented tie-breaks, stable across thread counts
//
// Under the hood, everything is organized into focused subpackages:
//
//	kmer/       — the fixed-length DNA word codec
//	graphstore/ — the canonical k-mer vertex store + adjacency builder
//	coverage/   — multiplicity histogram and threshold derivation
//	assembly/   — the cleaning phases, contig walker and phase scheduler
//	ingest/     — load -> adjacency -> histogram, shared by CLI and sweep
//	sweep/      — the outer multi-k driver
//	iosupport/  — FASTA source/sink; bubblesink/, graphsink/, telemetry/
//	              hold the remaining output contracts
//
// Quick ASCII example:
//
//	    reads ──▶ k-mers ──▶ ┌─────────┐ ──▶ contigs
//	                         │ cleaned │
//	                         │  graph  │
//	                         └─────────┘
//
// See cmd/assemble for the command-line entry point.
package assembler
