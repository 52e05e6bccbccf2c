// Package sweep generates deterministic sequences of limits for
// benchmarking generators across a range of input sizes.
package sweep

import (
	"math"
	mrand "math/rand"
	"slices"
)

// Config controls sweep generation parameters.
type Config struct {
	From         uint64
	To           uint64
	Steps        int
	Distribution string
	Seed         int64
}

// Generator produces deterministic limit sequences from a Config.
type Generator struct {
	cfg Config
	rng *mrand.Rand
}

// NewGenerator creates a Generator from the given Config. From and To are
// swapped if given in the wrong order.
func NewGenerator(cfg Config) *Generator {
	if cfg.From > cfg.To {
		cfg.From, cfg.To = cfg.To, cfg.From
	}

	return &Generator{
		cfg: cfg,
		rng: mrand.New(mrand.NewSource(cfg.Seed)),
	}
}

// Limits returns up to Steps ascending, distinct limits within
// [From, To]. To is always included.
func (g *Generator) Limits() []uint64 {
	if g.cfg.Steps < 1 {
		return []uint64{}
	}

	if g.cfg.Steps == 1 || g.cfg.From == g.cfg.To {
		return []uint64{g.cfg.To}
	}

	var limits []uint64

	switch g.cfg.Distribution {
	case "geometric":
		limits = g.geometric()

	case "uniform":
		limits = g.uniform()

	default:
		// Fall back to linear if unknown distribution.
		limits = g.linear()
	}

	slices.Sort(limits)

	return slices.Compact(limits)
}

func (g *Generator) linear() []uint64 {
	span := float64(g.cfg.To - g.cfg.From)
	steps := g.cfg.Steps - 1
	limits := make([]uint64, 0, g.cfg.Steps)

	for i := 0; i < steps; i++ {
		limits = append(limits, g.cfg.From+uint64(span*float64(i)/float64(steps)))
	}

	return append(limits, g.cfg.To)
}

func (g *Generator) geometric() []uint64 {
	from := max(g.cfg.From, 1)
	ratio := math.Pow(float64(g.cfg.To)/float64(from), 1/float64(g.cfg.Steps-1))
	limits := make([]uint64, 0, g.cfg.Steps)

	v := float64(from)
	for i := 0; i < g.cfg.Steps-1; i++ {
		limits = append(limits, g.clamp(v))
		v *= ratio
	}

	return append(limits, g.cfg.To)
}

func (g *Generator) uniform() []uint64 {
	span := g.cfg.To - g.cfg.From
	limits := make([]uint64, 0, g.cfg.Steps)

	for i := 0; i < g.cfg.Steps-1; i++ {
		var offset uint64
		if span < math.MaxInt64 {
			offset = uint64(g.rng.Int63n(int64(span) + 1))
		} else {
			offset = g.rng.Uint64() % span
		}

		limits = append(limits, g.cfg.From+offset)
	}

	return append(limits, g.cfg.To)
}

func (g *Generator) clamp(v float64) uint64 {
	switch {
	case v <= float64(g.cfg.From):
		return g.cfg.From
	case v >= float64(g.cfg.To):
		return g.cfg.To
	default:
		return uint64(v)
	}
}
