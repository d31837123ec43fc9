package graphstore

import (
	"errors"
	"fmt"
)

// Sentinel errors for store operations.
var (
	// ErrVertexNotFound indicates an operation referenced a k-mer absent from the store.
	ErrVertexNotFound = errors.New("graphstore: vertex not found")

	// ErrTombstoned indicates an operation referenced a k-mer that has been
	// removed (present=false) but not yet compacted.
	ErrTombstoned = errors.New("graphstore: vertex tombstoned")

	// ErrDeletedKeySet indicates SetDeletedKey was called more than once,
	// or after the store already observed an Add.
	ErrDeletedKeySet = errors.New("graphstore: deleted-key sentinel already configured")

	// ErrInvariant marks a programming-error-class invariant violation
	// (e.g. a neighbor bit set for a vertex the store does not contain).
	// These are never recovered.
	ErrInvariant = errors.New("graphstore: invariant violation")
)

func storeErrorf(op string, err error) error {
	return fmt.Errorf("graphstore: %s: %w", op, err)
}
