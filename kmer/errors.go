package kmer

import (
	"errors"
	"fmt"
)

// Sentinel errors for codec operations. Callers should branch with
// errors.Is, never string comparison.
var (
	// ErrEmptySequence indicates an empty string was passed to Encode.
	ErrEmptySequence = errors.New("kmer: empty sequence")

	// ErrBadLength indicates the minimum k-mer length requirement (k >= 3) was violated.
	ErrBadLength = errors.New("kmer: length below minimum (k >= 3)")

	// ErrInvalidBase indicates a symbol outside {A,C,G,T} was encountered.
	ErrInvalidBase = errors.New("kmer: invalid base")

	// ErrLengthMismatch indicates a decode/shift operation received a K
	// built for a different length than the one requested.
	ErrLengthMismatch = errors.New("kmer: length mismatch")

	// ErrLengthTooLarge indicates k exceeds MaxK (a single 64-bit word
	// packs at most 32 two-bit bases).
	ErrLengthTooLarge = errors.New("kmer: length exceeds MaxK")
)

// kmerErrorf wraps an inner error with an operation tag, preserving the
// sentinel for errors.Is via %w.
func kmerErrorf(op string, err error) error {
	return fmt.Errorf("kmer: %s: %w", op, err)
}
