package primes

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// WorkerError reports a worker that failed while scanning its range.
type WorkerError struct {
	Range SearchRange
	Cause any
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker for %s failed: %v", e.Range, e.Cause)
}

// Unwrap exposes the cause when the worker panicked with an error value.
func (e *WorkerError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}

	return nil
}

// DefaultWorkers returns the worker count used by GenerateParallel.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// Parallel scans [3, limit) with a fixed number of workers. Workers are
// started and joined within each Generate call; nothing is reused across
// calls.
type Parallel struct {
	workers int

	// scan is replaced in tests to inject worker failures.
	scan func(r SearchRange, first bool) []uint64
}

// NewParallel creates a Parallel generator using the given worker count.
func NewParallel(workers int) (*Parallel, error) {
	if workers < 1 {
		return nil, fmt.Errorf("new parallel generator: %w", ErrInvalidWorkerCount)
	}

	return &Parallel{workers: workers, scan: scanRange}, nil
}

// Workers returns the configured worker count.
func (p *Parallel) Workers() int {
	return p.workers
}

// Generate returns the same primes as GenerateSequential. If any worker
// fails the whole call fails and no partial result is returned.
func (p *Parallel) Generate(limit uint64) ([]uint64, error) {
	if limit < 2 {
		return []uint64{}, nil
	}

	if limit == 2 {
		return []uint64{2}, nil
	}

	ranges, err := Partition(limit, p.workers)
	if err != nil {
		return nil, err
	}

	scan := p.scan
	if scan == nil {
		scan = scanRange
	}

	// One slot per worker. Slots are only read after Wait.
	found := make([][]uint64, len(ranges))

	var g errgroup.Group

	for i, r := range ranges {
		i, r := i, r
		g.Go(func() (err error) {
			defer func() {
				if v := recover(); v != nil {
					err = &WorkerError{Range: r, Cause: v}
				}
			}()

			found[i] = scan(r, i == 0)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parallel generate below %d: %w", limit, err)
	}

	total := 0
	for _, f := range found {
		total += len(f)
	}

	primes := make([]uint64, 0, total)
	for _, f := range found {
		primes = append(primes, f...)
	}

	return primes, nil
}

// GenerateParallel returns the primes below limit using DefaultWorkers
// workers. It panics only if a worker fails, which indicates a bug.
func GenerateParallel(limit uint64) []uint64 {
	p, err := NewParallel(DefaultWorkers())
	if err != nil {
		panic(err)
	}

	primes, err := p.Generate(limit)
	if err != nil {
		panic(err)
	}

	return primes
}

// scanRange is the worker body. The first worker, whose range starts at 3,
// also emits 2. When there are more workers than integers several empty
// ranges start at 3 too, so ownership goes by position, not by Start.
func scanRange(r SearchRange, first bool) []uint64 {
	var primes []uint64
	if first {
		primes = append(primes, 2)
	}

	return appendRange(primes, r)
}
