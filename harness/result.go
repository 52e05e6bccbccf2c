// Package harness times prime generators and checks their output against a
// baseline.
package harness

import (
	"time"

	"github.com/weiihann/primebench/verify"
)

// Result holds the outcome of one generator invocation.
type Result struct {
	Generator  string         `json:"generator"`
	Limit      uint64         `json:"limit"`
	Primes     []uint64       `json:"-"`
	PrimeCount int            `json:"prime_count"`
	Elapsed    time.Duration  `json:"-"`
	ElapsedUs  int64          `json:"elapsed_us"`
	Report     *verify.Report `json:"verification,omitempty"`
}

// Largest returns the largest prime found, or 0 when there is none.
func (r Result) Largest() uint64 {
	if len(r.Primes) == 0 {
		return 0
	}

	return r.Primes[len(r.Primes)-1]
}
