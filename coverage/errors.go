package coverage

import (
	"errors"
	"fmt"
)

// ErrEmptyHistogram is returned when a threshold is requested from a
// histogram with no observations.
var ErrEmptyHistogram = errors.New("coverage: histogram has no observations")

func coverageErrorf(op string, err error) error {
	return fmt.Errorf("coverage: %s: %w", op, err)
}
