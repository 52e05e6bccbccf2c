// Package verify diffs a candidate prime list against a trusted baseline.
package verify

import "slices"

// Report lists the differences between a candidate and the baseline.
// Both slices are ascending and free of duplicates.
type Report struct {
	// Missing holds baseline primes the candidate did not produce.
	Missing []uint64 `json:"missing"`
	// Spurious holds candidate values absent from the baseline.
	Spurious []uint64 `json:"spurious"`
}

// OK reports whether the candidate matched the baseline exactly.
func (r Report) OK() bool {
	return len(r.Missing) == 0 && len(r.Spurious) == 0
}

// Verify compares candidate against baseline. Neither input is modified.
// Inputs that are not ascending are sorted on a copy first.
func Verify(baseline, candidate []uint64) Report {
	base := ascending(baseline)
	cand := ascending(candidate)

	report := Report{
		Missing:  []uint64{},
		Spurious: []uint64{},
	}

	i, j := 0, 0
	for i < len(base) || j < len(cand) {
		switch {
		case j == len(cand) || (i < len(base) && base[i] < cand[j]):
			report.Missing = appendUnique(report.Missing, base[i])
			i++
		case i == len(base) || cand[j] < base[i]:
			report.Spurious = appendUnique(report.Spurious, cand[j])
			j++
		default:
			v := base[i]
			for i < len(base) && base[i] == v {
				i++
			}
			for j < len(cand) && cand[j] == v {
				j++
			}
		}
	}

	return report
}

func ascending(s []uint64) []uint64 {
	if slices.IsSorted(s) {
		return s
	}

	sorted := slices.Clone(s)
	slices.Sort(sorted)

	return sorted
}

func appendUnique(dst []uint64, v uint64) []uint64 {
	if n := len(dst); n > 0 && dst[n-1] == v {
		return dst
	}

	return append(dst, v)
}
