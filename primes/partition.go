package primes

import (
	"errors"
	"fmt"
	"math"
)

// firstOdd is the lower bound of every partitioned search.
const firstOdd = 3

// ErrInvalidWorkerCount is returned when a partition or parallel generator
// is requested with fewer than one worker.
var ErrInvalidWorkerCount = errors.New("worker count must be at least 1")

// SearchRange is the half-open interval [Start, End) scanned by one worker.
type SearchRange struct {
	Start uint64
	End   uint64
}

// Len returns the number of integers in the range.
func (r SearchRange) Len() uint64 {
	if r.End <= r.Start {
		return 0
	}

	return r.End - r.Start
}

// Empty reports whether the range contains no integers.
func (r SearchRange) Empty() bool {
	return r.Len() == 0
}

func (r SearchRange) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Partition splits [3, limit) into workers contiguous, non-overlapping
// ranges of near-equal size. The last range always ends at limit. For
// limit <= 3 every range is empty.
func Partition(limit uint64, workers int) ([]SearchRange, error) {
	if workers < 1 {
		return nil, fmt.Errorf("partition [3, %d): %w", limit, ErrInvalidWorkerCount)
	}

	ranges := make([]SearchRange, workers)

	if limit <= firstOdd {
		for i := range ranges {
			ranges[i] = SearchRange{Start: firstOdd, End: firstOdd}
		}

		return ranges, nil
	}

	step := float64(limit-firstOdd) / float64(workers)

	for i := range ranges {
		ranges[i] = SearchRange{
			Start: boundary(i, step, limit),
			End:   boundary(i+1, step, limit),
		}
	}

	ranges[workers-1].End = limit

	return ranges, nil
}

// boundary returns floor(3 + i*step) clamped to limit, so no boundary
// exceeds limit even when float rounding overshoots on very large limits.
func boundary(i int, step float64, limit uint64) uint64 {
	b := math.Floor(firstOdd + float64(i)*step)
	if b >= float64(limit) {
		return limit
	}

	return uint64(b)
}
