// Package partition splits an input sequence into contiguous, nearly equal ranges, one per worker.
// Ranges are positional: they know nothing about keys, so a run of equal keys may straddle two
// workers. Those duplicates are reconciled later, when the workers' tables are merged.
package partition

import (
	"fmt"

	"github.com/go-sif/hashagg"
	"github.com/go-sif/hashagg/errors"
)

// Range is the half-open interval of positions [Begin, End) assigned to one worker
type Range struct {
	Begin int
	End   int
}

// Len returns the number of positions in this Range
func (r Range) Len() int {
	return r.End - r.Begin
}

// Slice returns the keys covered by this Range
func (r Range) Slice(keys []hashagg.Key) []hashagg.Key {
	return keys[r.Begin:r.End]
}

// String returns a textual representation of this Range
func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Begin, r.End)
}

// Ranges divides length positions among workers, assigning [length*i/workers, length*(i+1)/workers)
// to worker i. If length < workers some ranges are empty. workers must be positive.
func Ranges(length int, workers int) ([]Range, error) {
	if workers <= 0 {
		return nil, errors.ConfigurationError{Reason: fmt.Sprintf("cannot partition input among %d workers", workers)}
	}
	if length < 0 {
		return nil, errors.ConfigurationError{Reason: fmt.Sprintf("cannot partition an input of length %d", length)}
	}
	ranges := make([]Range, workers)
	// widen to 64 bits so that length*(i+1) cannot overflow on 32-bit platforms
	l, w := int64(length), int64(workers)
	for i := int64(0); i < w; i++ {
		ranges[i] = Range{
			Begin: int(l * i / w),
			End:   int(l * (i + 1) / w),
		}
	}
	return ranges, nil
}
