// Package metrics records Prometheus metrics for benchmark runs.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Metrics provides observability for generator runs. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	// Generation latency by generator
	GenerateDuration *prometheus.HistogramVec

	// Primes returned by the most recent run of each generator
	PrimesFound *prometheus.GaugeVec

	// Verification differences by generator and kind (missing, spurious)
	Mismatches *prometheus.CounterVec

	// Failed runs by generator
	Failures *prometheus.CounterVec
}

// New creates a Metrics instance registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		GenerateDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "primebench_generate_duration_seconds",
			Help:    "Duration of a single prime generator invocation",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12),
		}, []string{"generator"}),

		PrimesFound: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "primebench_primes_found",
			Help: "Number of primes returned by the last run of a generator",
		}, []string{"generator"}),

		Mismatches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "primebench_verification_mismatches_total",
			Help: "Values a generator got wrong compared to the baseline",
		}, []string{"generator", "kind"}),

		Failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "primebench_generator_failures_total",
			Help: "Generator invocations that returned an error",
		}, []string{"generator"}),
	}
}

// ObserveRun records the duration and output size of a successful run.
func (m *Metrics) ObserveRun(generator string, d time.Duration, primes int) {
	if m != nil {
		m.GenerateDuration.WithLabelValues(generator).Observe(d.Seconds())
		m.PrimesFound.WithLabelValues(generator).Set(float64(primes))
	}
}

// AddMismatches records verification differences.
func (m *Metrics) AddMismatches(generator string, missing, spurious int) {
	if m != nil {
		m.Mismatches.WithLabelValues(generator, "missing").Add(float64(missing))
		m.Mismatches.WithLabelValues(generator, "spurious").Add(float64(spurious))
	}
}

// IncFailure records a failed run.
func (m *Metrics) IncFailure(generator string) {
	if m != nil {
		m.Failures.WithLabelValues(generator).Inc()
	}
}

// WriteText writes every metric family gathered from g to w in the
// Prometheus text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric family %s: %w", mf.GetName(), err)
		}
	}

	return nil
}
