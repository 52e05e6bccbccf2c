package harness

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/weiihann/primebench/metrics"
	"github.com/weiihann/primebench/verify"
)

const tracerName = "github.com/weiihann/primebench/harness"

// Benchmark invokes gen once with limit and records the wall-clock time
// it took. It blocks until the generator returns.
func Benchmark(gen Generator, identifier string, limit uint64) (Result, error) {
	start := time.Now()
	found, err := gen.Generate(limit)
	elapsed := time.Since(start)

	if err != nil {
		return Result{}, fmt.Errorf("generator %s: %w", identifier, err)
	}

	return Result{
		Generator:  identifier,
		Limit:      limit,
		Primes:     found,
		PrimeCount: len(found),
		Elapsed:    elapsed,
		ElapsedUs:  elapsed.Microseconds(),
	}, nil
}

// RunConfig holds parameters for a single generator run.
type RunConfig struct {
	Limit uint64
	// Baseline is the trusted prime list. Nil skips verification.
	Baseline []uint64
}

// Runner benchmarks a single generator.
type Runner struct {
	Name      string
	Generator Generator
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Tracer    trace.Tracer
}

// NewRunner creates a Runner for the named generator. m may be nil.
func NewRunner(
	name string,
	gen Generator,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Runner {
	return &Runner{
		Name:      name,
		Generator: gen,
		Logger:    logger.With(slog.String("generator", name)),
		Metrics:   m,
		Tracer:    otel.Tracer(tracerName),
	}
}

// Run benchmarks the generator and, when a baseline is given, verifies
// its output.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	tracer := r.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	ctx, span := tracer.Start(ctx, "harness.run",
		trace.WithAttributes(
			attribute.String("generator", r.Name),
			attribute.String("limit", strconv.FormatUint(cfg.Limit, 10)),
		),
	)
	defer span.End()

	r.Logger.InfoContext(ctx, "starting generator",
		slog.Uint64("limit", cfg.Limit),
	)

	result, err := Benchmark(r.Generator, r.Name, cfg.Limit)
	if err != nil {
		r.Metrics.IncFailure(r.Name)
		span.RecordError(err)
		span.SetStatus(codes.Error, "generator failed")

		return nil, err
	}

	r.Metrics.ObserveRun(r.Name, result.Elapsed, result.PrimeCount)

	r.Logger.InfoContext(ctx, "generator finished",
		slog.Duration("elapsed", result.Elapsed),
		slog.Int("primes", result.PrimeCount),
	)

	if cfg.Baseline != nil {
		report := verify.Verify(cfg.Baseline, result.Primes)
		result.Report = &report

		r.Metrics.AddMismatches(r.Name, len(report.Missing), len(report.Spurious))
		span.SetAttributes(attribute.Bool("verified", report.OK()))

		if !report.OK() {
			r.Logger.WarnContext(ctx, "output differs from baseline",
				slog.Int("missing", len(report.Missing)),
				slog.Int("spurious", len(report.Spurious)),
			)
		}
	}

	return &result, nil
}
