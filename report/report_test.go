package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/weiihann/primebench/harness"
	"github.com/weiihann/primebench/verify"
)

func okReport() *verify.Report {
	return &verify.Report{Missing: []uint64{}, Spurious: []uint64{}}
}

func TestGenerateAllMatch(t *testing.T) {
	run := Run{
		RunID: "run-1",
		Limit: 20,
		Results: []harness.Result{
			{
				Generator:  "baseline",
				Primes:     []uint64{2, 3, 5, 7, 11, 13, 17, 19},
				PrimeCount: 8,
				Elapsed:    time.Millisecond,
				Report:     okReport(),
			},
			{
				Generator:  "sequential",
				Primes:     []uint64{2, 3, 5, 7, 11, 13, 17, 19},
				PrimeCount: 8,
				Elapsed:    2 * time.Millisecond,
				Report:     okReport(),
			},
		},
	}

	var buf bytes.Buffer
	if err := Generate(&buf, run); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "all match") {
		t.Error("expected 'all match' for matching results")
	}
	if !strings.Contains(output, "run-1") {
		t.Error("expected run id in output")
	}
	if !strings.Contains(output, "| sequential | 8 | 19 |") {
		t.Errorf("expected sequential row, got:\n%s", output)
	}
	if !strings.Contains(output, "2.00x") {
		t.Error("expected 2.00x slowdown for sequential (twice as slow)")
	}
}

func TestGenerateMismatch(t *testing.T) {
	run := Run{
		Limit: 10,
		Results: []harness.Result{
			{Generator: "baseline", PrimeCount: 4, Elapsed: time.Millisecond, Report: okReport()},
			{
				Generator:  "broken",
				PrimeCount: 4,
				Elapsed:    time.Millisecond,
				Report:     &verify.Report{Missing: []uint64{5}, Spurious: []uint64{9}},
			},
		},
	}

	var buf bytes.Buffer
	if err := Generate(&buf, run); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "MISMATCH") {
		t.Error("expected MISMATCH for differing results")
	}
	if !strings.Contains(output, "broken: missing [5], spurious [9]") {
		t.Errorf("expected mismatch details, got:\n%s", output)
	}
}

func TestGenerateLimitTwoNote(t *testing.T) {
	run := Run{
		Limit: 2,
		Results: []harness.Result{
			{Generator: "baseline", Report: nil},
			{
				Generator:  "sequential",
				PrimeCount: 1,
				Report:     &verify.Report{Missing: []uint64{}, Spurious: []uint64{2}},
			},
		},
	}

	var buf bytes.Buffer
	if err := Generate(&buf, run); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(buf.String(), "a spurious 2 is expected") {
		t.Errorf("expected limit-2 note, got:\n%s", buf.String())
	}

	buf.Reset()
	run.Limit = 3
	if err := Generate(&buf, run); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if strings.Contains(buf.String(), "a spurious 2 is expected") {
		t.Error("limit-2 note printed for limit 3")
	}
}

func TestGenerateEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(&buf, Run{}); err == nil {
		t.Error("expected error for empty results")
	}
}

func TestGenerateJSON(t *testing.T) {
	runs := []Run{{
		RunID: "abc",
		Limit: 20,
		Results: []harness.Result{
			{Generator: "parallel", PrimeCount: 8, ElapsedUs: 1500, Report: okReport()},
		},
	}}

	var buf bytes.Buffer
	if err := GenerateJSON(&buf, runs); err != nil {
		t.Fatalf("GenerateJSON failed: %v", err)
	}

	var parsed []Run
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(parsed) != 1 || len(parsed[0].Results) != 1 {
		t.Fatalf("unexpected shape: %+v", parsed)
	}
	if parsed[0].Results[0].Generator != "parallel" {
		t.Errorf("generator = %q, want parallel", parsed[0].Results[0].Generator)
	}
	if parsed[0].Results[0].ElapsedUs != 1500 {
		t.Errorf("elapsed_us = %d, want 1500", parsed[0].Results[0].ElapsedUs)
	}
}

func TestWritePrimes(t *testing.T) {
	var buf bytes.Buffer
	primes := []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}

	if err := WritePrimes(&buf, primes, 8); err != nil {
		t.Fatalf("WritePrimes failed: %v", err)
	}

	want := "2 3 5 7 11 13 17 19\n23 29\n"
	if buf.String() != want {
		t.Errorf("WritePrimes = %q, want %q", buf.String(), want)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input time.Duration
		want  string
	}{
		{0, "0µs"},
		{500 * time.Microsecond, "500µs"},
		{time.Millisecond, "1.00ms"},
		{1500 * time.Microsecond, "1.50ms"},
		{time.Second, "1.00s"},
		{90 * time.Second, "90.00s"},
	}

	for _, tt := range tests {
		got := formatDuration(tt.input)
		if got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatSample(t *testing.T) {
	tests := []struct {
		input []uint64
		want  string
	}{
		{nil, "none"},
		{[]uint64{4}, "[4]"},
		{[]uint64{1, 2, 3, 4, 5, 6, 7}, "[1 2 3 4 5] (+2 more)"},
	}

	for _, tt := range tests {
		got := formatSample(tt.input)
		if got != tt.want {
			t.Errorf("formatSample(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
