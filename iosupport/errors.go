package iosupport

import (
	"errors"
	"fmt"
)

// ErrTruncatedRecord indicates a FASTA record's header line was never
// followed by a sequence line before EOF.
var ErrTruncatedRecord = errors.New("iosupport: truncated record")

// ErrMissingHeader indicates sequence data was found before any ">" header.
var ErrMissingHeader = errors.New("iosupport: sequence data before header")

func iosupportErrorf(op string, err error) error {
	return fmt.Errorf("iosupport: %s: %w", op, err)
}
