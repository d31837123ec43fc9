package assembly

import "errors"

// ErrAssemblyEmpty indicates the contig walker produced zero contigs.
// The caller must treat the run as failed rather than emit an empty
// result.
var ErrAssemblyEmpty = errors.New("assembly: no contigs assembled")

// ErrVertexVanished marks a programming-error-class invariant
// violation: a vertex referenced mid-walk (having already been
// validated as present) disappeared before its multiplicity could be
// read back. Never expected within a single-threaded phase; never
// recovered.
var ErrVertexVanished = errors.New("assembly: vertex vanished mid-walk")
