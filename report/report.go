// Package report formats benchmark results into comparison tables.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/weiihann/primebench/harness"
)

// Run groups the results produced for one limit.
type Run struct {
	RunID   string           `json:"run_id"`
	Limit   uint64           `json:"limit"`
	Results []harness.Result `json:"results"`
}

// Generate writes a markdown comparison table for the given run.
func Generate(w io.Writer, run Run) error {
	results := run.Results
	if len(results) == 0 {
		return fmt.Errorf("no results to report")
	}

	fastest := findFastest(results)

	// Header.
	fmt.Fprintf(w, "## Benchmark Results (limit %d)\n", run.Limit)
	fmt.Fprintln(w)

	if run.RunID != "" {
		fmt.Fprintf(w, "Run: `%s`\n", run.RunID)
		fmt.Fprintln(w)
	}

	// Baseline check.
	if failed := mismatched(results); len(failed) == 0 {
		fmt.Fprintln(w, "Verification: **all match**")
	} else {
		fmt.Fprintln(w, "Verification: **MISMATCH**")

		for _, r := range failed {
			fmt.Fprintf(w, "  - %s: missing %s, spurious %s\n",
				r.Generator,
				formatSample(r.Report.Missing),
				formatSample(r.Report.Spurious),
			)
		}

		if run.Limit == 2 {
			fmt.Fprintln(w, "  - note: at limit 2 the generators emit 2 while the "+
				"baseline stops below the limit, so a spurious 2 is expected")
		}
	}

	fmt.Fprintln(w)

	// Table header.
	fmt.Fprintln(w, "| Generator | Primes | Largest | Elapsed "+
		"| Missing | Spurious | Slowdown |")
	fmt.Fprintln(w, "|-----------|--------|---------|---------"+
		"|---------|----------|----------|")

	for _, r := range results {
		slowdown := 1.0
		if fastest > 0 && r.Elapsed > 0 {
			slowdown = float64(r.Elapsed) / float64(fastest)
		}

		missing, spurious := "-", "-"
		if r.Report != nil {
			missing = fmt.Sprintf("%d", len(r.Report.Missing))
			spurious = fmt.Sprintf("%d", len(r.Report.Spurious))
		}

		fmt.Fprintf(w, "| %s | %d | %d | %s | %s | %s | %.2fx |\n",
			r.Generator,
			r.PrimeCount,
			r.Largest(),
			formatDuration(r.Elapsed),
			missing,
			spurious,
			slowdown,
		)
	}

	return nil
}

// GenerateJSON writes runs as JSON to w.
func GenerateJSON(w io.Writer, runs []Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(runs)
}

// WritePrimes lists primes perRow to a line.
func WritePrimes(w io.Writer, primes []uint64, perRow int) error {
	if perRow < 1 {
		perRow = 8
	}

	for i, p := range primes {
		sep := " "
		if i%perRow == perRow-1 || i == len(primes)-1 {
			sep = "\n"
		}

		if _, err := fmt.Fprintf(w, "%d%s", p, sep); err != nil {
			return fmt.Errorf("write primes: %w", err)
		}
	}

	return nil
}

func mismatched(results []harness.Result) []harness.Result {
	var failed []harness.Result
	for _, r := range results {
		if r.Report != nil && !r.Report.OK() {
			failed = append(failed, r)
		}
	}

	return failed
}

func findFastest(results []harness.Result) time.Duration {
	fastest := time.Duration(math.MaxInt64)
	for _, r := range results {
		if r.Elapsed > 0 && r.Elapsed < fastest {
			fastest = r.Elapsed
		}
	}

	if fastest == math.MaxInt64 {
		return 0
	}

	return fastest
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}

// formatSample renders at most five values followed by a count of the rest.
func formatSample(values []uint64) string {
	const maxShown = 5

	if len(values) == 0 {
		return "none"
	}

	if len(values) <= maxShown {
		return fmt.Sprint(values)
	}

	return fmt.Sprintf("%v (+%d more)", values[:maxShown], len(values)-maxShown)
}
