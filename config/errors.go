package config

import (
	"errors"
	"fmt"
)

// ErrKOutOfRange indicates k is below 3 or above kmer.MaxK.
var ErrKOutOfRange = errors.New("config: k out of range")

// ErrMissingContigsPath indicates ContigsPath was left empty.
var ErrMissingContigsPath = errors.New("config: contigs path is required")

// ErrInvalidLengthBound indicates a negative TrimLen or BubbleLen override.
var ErrInvalidLengthBound = errors.New("config: length bound must be >= 0")

func configErrorf(op string, err error) error {
	return fmt.Errorf("config: %s: %w", op, err)
}
