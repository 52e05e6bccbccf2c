// Package main provides the CLI entry point for primebench, a tool that
// benchmarks prime generators and verifies them against a trusted baseline.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/weiihann/primebench/harness"
	"github.com/weiihann/primebench/metrics"
	"github.com/weiihann/primebench/primes"
	"github.com/weiihann/primebench/report"
	"github.com/weiihann/primebench/sweep"
)

var errVerificationFailed = errors.New("candidate output differs from baseline")

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		logger.Error("primebench failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "primebench",
		Short: "Prime generator benchmarking and verification tool",
		Long: `Primebench runs several trial-division prime generators over the same
range, times each one, and checks every result against a trusted baseline.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(logger))

	return root
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var cfg runConfig

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Benchmark prime generators below a limit",
		Long: `Generate all primes below --limit with each selected generator,
verify them against the baseline, and print a comparison table.
With --sweep-to the benchmark repeats for a sequence of limits.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBenchmark(cmd.Context(), logger, cfg)
		},
	}

	flags := cmd.Flags()
	flags.Uint64Var(&cfg.limit, "limit", 100000,
		"Exclusive upper bound of the prime search "+
			"(at 2 the candidates still emit 2, reported as spurious)")
	flags.IntVar(&cfg.workers, "workers", primes.DefaultWorkers(),
		"Worker count for the parallel generator")
	flags.StringSliceVar(&cfg.generators, "generators",
		[]string{harness.SequentialName, harness.ParallelName},
		"Candidate generators to benchmark (sequential,parallel)")
	flags.Uint64Var(&cfg.sweepTo, "sweep-to", 0,
		"Sweep limits from --limit up to this value (0 = single limit)")
	flags.IntVar(&cfg.sweepSteps, "sweep-steps", 5,
		"Number of limits in a sweep")
	flags.StringVar(&cfg.sweepDistribution, "sweep-distribution", "geometric",
		"Sweep spacing: linear, geometric, uniform")
	flags.Int64Var(&cfg.seed, "seed", 0,
		"Random seed for uniform sweeps")
	flags.BoolVar(&cfg.outputJSON, "json", false,
		"Output results as JSON instead of table")
	flags.BoolVar(&cfg.showPrimes, "show-primes", false,
		"Print the baseline primes after each table")
	flags.StringVar(&cfg.metricsFile, "metrics-file", "",
		"Write Prometheus metrics in text format to this path")
	flags.BoolVar(&cfg.trace, "trace", false,
		"Print OpenTelemetry spans for each generator run to stderr")

	return cmd
}

type runConfig struct {
	limit             uint64
	workers           int
	generators        []string
	sweepTo           uint64
	sweepSteps        int
	sweepDistribution string
	seed              int64
	outputJSON        bool
	showPrimes        bool
	metricsFile       string
	trace             bool
}

func runBenchmark(
	ctx context.Context,
	logger *slog.Logger,
	cfg runConfig,
) error {
	candidates := slices.DeleteFunc(slices.Clone(cfg.generators), func(name string) bool {
		return name == harness.BaselineName
	})
	if len(candidates) == 0 {
		return fmt.Errorf(
			"at least one candidate generator must be specified via --generators",
		)
	}

	runID := uuid.NewString()
	logger = logger.With(slog.String("run_id", runID))

	if cfg.trace {
		shutdown, err := setupTracing()
		if err != nil {
			return err
		}

		defer func() {
			if err := shutdown(context.WithoutCancel(ctx)); err != nil {
				logger.WarnContext(ctx, "failed to flush traces",
					slog.String("error", err.Error()),
				)
			}
		}()
	}

	logger.InfoContext(ctx, "starting benchmark",
		slog.Uint64("limit", cfg.limit),
		slog.Int("workers", cfg.workers),
		slog.Any("generators", candidates),
	)

	// Step 1: Resolve generators.
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	base, err := harness.Resolve(harness.BaselineName, cfg.workers)
	if err != nil {
		return err
	}

	runners := make([]*harness.Runner, 0, len(candidates))

	for _, name := range candidates {
		gen, err := harness.Resolve(name, cfg.workers)
		if err != nil {
			return err
		}

		runners = append(runners, harness.NewRunner(name, gen, logger, m))
	}

	baseRunner := harness.NewRunner(harness.BaselineName, base, logger, m)

	// Step 2: Benchmark every limit.
	runs := make([]report.Run, 0, 1)
	verified := true

	for _, limit := range limits(cfg) {
		run, err := benchmarkLimit(ctx, baseRunner, runners, limit)
		if err != nil {
			return fmt.Errorf("limit %d: %w", limit, err)
		}

		run.RunID = runID
		runs = append(runs, run)

		for _, r := range run.Results {
			if r.Report != nil && !r.Report.OK() {
				verified = false
			}
		}

		if cfg.outputJSON {
			continue
		}

		if err := report.Generate(os.Stdout, run); err != nil {
			return fmt.Errorf("generate report: %w", err)
		}

		fmt.Fprintln(os.Stdout)

		if cfg.showPrimes {
			if err := report.WritePrimes(os.Stdout, run.Results[0].Primes, 8); err != nil {
				return err
			}

			fmt.Fprintln(os.Stdout)
		}
	}

	// Step 3: Emit JSON and metrics.
	if cfg.outputJSON {
		if err := report.GenerateJSON(os.Stdout, runs); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}
	}

	if cfg.metricsFile != "" {
		if err := writeMetrics(cfg.metricsFile, reg); err != nil {
			return err
		}
	}

	if !verified {
		return errVerificationFailed
	}

	logger.InfoContext(ctx, "benchmark complete")

	return nil
}

// benchmarkLimit runs the baseline first, then every candidate against it.
func benchmarkLimit(
	ctx context.Context,
	baseRunner *harness.Runner,
	runners []*harness.Runner,
	limit uint64,
) (report.Run, error) {
	run := report.Run{Limit: limit}

	baseResult, err := baseRunner.Run(ctx, harness.RunConfig{Limit: limit})
	if err != nil {
		return run, fmt.Errorf("run baseline: %w", err)
	}

	run.Results = append(run.Results, *baseResult)

	for _, runner := range runners {
		result, err := runner.Run(ctx, harness.RunConfig{
			Limit:    limit,
			Baseline: baseResult.Primes,
		})
		if err != nil {
			return run, fmt.Errorf("run %s: %w", runner.Name, err)
		}

		run.Results = append(run.Results, *result)
	}

	return run, nil
}

func limits(cfg runConfig) []uint64 {
	if cfg.sweepTo == 0 {
		return []uint64{cfg.limit}
	}

	return sweep.NewGenerator(sweep.Config{
		From:         cfg.limit,
		To:           cfg.sweepTo,
		Steps:        cfg.sweepSteps,
		Distribution: cfg.sweepDistribution,
		Seed:         cfg.seed,
	}).Limits()
}

// setupTracing installs a global tracer provider that writes finished spans
// to stderr.
func setupTracing() (func(context.Context) error, error) {
	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(os.Stderr),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

func writeMetrics(path string, g prometheus.Gatherer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}

	if err := metrics.WriteText(f, g); err != nil {
		f.Close()

		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close metrics file: %w", err)
	}

	return nil
}
