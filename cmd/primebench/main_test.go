package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/weiihann/primebench/harness"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBenchmarkLimit(t *testing.T) {
	logger := discardLogger()

	base, err := harness.Resolve(harness.BaselineName, 1)
	if err != nil {
		t.Fatal(err)
	}

	par, err := harness.Resolve(harness.ParallelName, 3)
	if err != nil {
		t.Fatal(err)
	}

	run, err := benchmarkLimit(context.Background(),
		harness.NewRunner(harness.BaselineName, base, logger, nil),
		[]*harness.Runner{harness.NewRunner(harness.ParallelName, par, logger, nil)},
		20,
	)
	if err != nil {
		t.Fatalf("benchmarkLimit failed: %v", err)
	}

	if len(run.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(run.Results))
	}
	if run.Results[0].Generator != harness.BaselineName {
		t.Errorf("first result = %q, want baseline", run.Results[0].Generator)
	}
	if run.Results[0].Report != nil {
		t.Error("baseline should not be verified against itself")
	}
	if !run.Results[1].Report.OK() {
		t.Errorf("parallel mismatch: %+v", run.Results[1].Report)
	}
}

func TestLimits(t *testing.T) {
	if got := limits(runConfig{limit: 500}); !slices.Equal(got, []uint64{500}) {
		t.Errorf("single limit = %v, want [500]", got)
	}

	got := limits(runConfig{
		limit:             0,
		sweepTo:           100,
		sweepSteps:        5,
		sweepDistribution: "linear",
	})
	if !slices.Equal(got, []uint64{0, 25, 50, 75, 100}) {
		t.Errorf("sweep limits = %v", got)
	}
}

func TestRunBenchmarkRequiresCandidate(t *testing.T) {
	err := runBenchmark(context.Background(), discardLogger(), runConfig{
		limit:      10,
		workers:    2,
		generators: []string{harness.BaselineName},
	})
	if err == nil {
		t.Error("expected error when only the baseline is selected")
	}
}

func TestRunBenchmarkWritesMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.prom")

	err := runBenchmark(context.Background(), discardLogger(), runConfig{
		limit:       1000,
		workers:     4,
		generators:  []string{harness.SequentialName, harness.ParallelName},
		outputJSON:  true,
		metricsFile: path,
	})
	if err != nil {
		t.Fatalf("runBenchmark failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}

	if !strings.Contains(string(data), "primebench_generate_duration_seconds") {
		t.Errorf("metrics file missing duration histogram:\n%s", data)
	}
}

func TestRunBenchmarkUnknownGenerator(t *testing.T) {
	err := runBenchmark(context.Background(), discardLogger(), runConfig{
		limit:      10,
		workers:    1,
		generators: []string{"wheel"},
	})
	if err == nil {
		t.Error("expected error for unknown generator")
	}
}

func TestRunBenchmarkTracing(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	err := runBenchmark(context.Background(), discardLogger(), runConfig{
		limit:      100,
		workers:    2,
		generators: []string{harness.SequentialName},
		outputJSON: true,
		trace:      true,
	})
	if err != nil {
		t.Fatalf("runBenchmark failed: %v", err)
	}

	if _, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider); !ok {
		t.Errorf("tracer provider = %T, want *sdktrace.TracerProvider",
			otel.GetTracerProvider())
	}
}
