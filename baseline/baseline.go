// Package baseline supplies the trusted prime list that candidate
// generators are verified against.
package baseline

import "github.com/kavehmz/prime"

// Primes returns every prime strictly below limit in ascending order.
//
// The list comes from a segmented sieve that includes limit itself when it
// is prime, so the result is trimmed to values below limit.
func Primes(limit uint64) []uint64 {
	if limit <= 2 {
		return []uint64{}
	}

	sieved := prime.Primes(limit)

	n := len(sieved)
	for n > 0 && sieved[n-1] >= limit {
		n--
	}

	if n == 0 {
		return []uint64{}
	}

	return sieved[:n]
}

// Oracle adapts Primes to the generator shape used by the benchmark
// harness.
type Oracle struct{}

// Generate returns Primes(limit). It never fails.
func (Oracle) Generate(limit uint64) ([]uint64, error) {
	return Primes(limit), nil
}
