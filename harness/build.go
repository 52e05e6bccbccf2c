package harness

import (
	"fmt"

	"github.com/weiihann/primebench/baseline"
	"github.com/weiihann/primebench/primes"
)

//go:generate mockgen -source=build.go -destination=mocks/mocks.go -package=mocks

// Generator produces the ordered primes below a limit.
type Generator interface {
	Generate(limit uint64) ([]uint64, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(limit uint64) ([]uint64, error)

// Generate calls f(limit).
func (f GeneratorFunc) Generate(limit uint64) ([]uint64, error) {
	return f(limit)
}

// Names of the built-in generators.
const (
	BaselineName   = "baseline"
	SequentialName = "sequential"
	ParallelName   = "parallel"
)

// KnownGenerators returns the list of supported generator names.
func KnownGenerators() []string {
	return []string{BaselineName, SequentialName, ParallelName}
}

// Resolve returns the generator registered under name. workers only
// applies to the parallel generator.
func Resolve(name string, workers int) (Generator, error) {
	switch name {
	case BaselineName:
		return baseline.Oracle{}, nil
	case SequentialName:
		return primes.Sequential{}, nil
	case ParallelName:
		p, err := primes.NewParallel(workers)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", name, err)
		}

		return p, nil
	default:
		return nil, fmt.Errorf("unknown generator %q", name)
	}
}
