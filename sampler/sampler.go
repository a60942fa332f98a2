// Package sampler implements the complexity sampler of spec.md §4.10
// (C11): empirical step/space/time measurement across an input-size
// schedule, least-squares curve fitting to a closed family of growth
// shapes, and bounded decidability sampling. It wraps turing.Simulate*
// rather than reimplementing any recognition logic.
package sampler

import (
	"time"

	"github.com/baobabgit/automata/turing"
)

// Sample is one trial's measurement at a single input size.
type Sample struct {
	InputSize         int
	Steps             int
	MaterializedCells int
	WallTime          time.Duration
	Outcome           turing.Outcome
}

// WordGenerator produces a representative input of the given size — the
// sampler measures growth across a schedule of sizes, not fixed words.
type WordGenerator func(size int) []turing.SymbolID

// Config controls sampling.
type Config struct {
	Trials int // trials per schedule point

	// Tolerance is the fit family's τ: a shape is accepted over a
	// lower-residual but higher-growth alternative only if its residual
	// is within Tolerance of the best observed residual.
	Tolerance float64
}

// DefaultConfig returns Config{Trials: 3, Tolerance: 0.15}.
func DefaultConfig() Config {
	return Config{Trials: 3, Tolerance: 0.15}
}

// Measure runs m against gen(n) for every n in sizes, cfg.Trials times
// each, returning one Sample per trial (cfg.Trials * len(sizes) total,
// in schedule order). MaterializedCells is the sum, across tapes, of each
// tape's materialized window width; for an NTM this is always zero,
// since SimulateNTM reports a ComputationTree rather than a final
// Configuration — wall time and step count (here, total explored nodes)
// remain meaningful for both flavors.
func Measure(m *turing.TM, sizes []int, gen WordGenerator, cfg Config, simCfg turing.Config) ([]Sample, error) {
	var out []Sample
	for _, n := range sizes {
		word := gen(n)
		for trial := 0; trial < cfg.Trials; trial++ {
			s, err := measureOne(m, word, n, simCfg)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
	}
	return out, nil
}

func measureOne(m *turing.TM, word []turing.SymbolID, n int, simCfg turing.Config) (Sample, error) {
	start := time.Now()
	if m.Flavor() == turing.DTM {
		outcome, cfg, err := turing.SimulateDTM(m, word, simCfg)
		if err != nil {
			return Sample{}, err
		}
		return Sample{
			InputSize:         n,
			Steps:             cfg.Steps,
			MaterializedCells: materializedCells(cfg),
			WallTime:          time.Since(start),
			Outcome:           outcome,
		}, nil
	}
	outcome, tree, err := turing.SimulateNTM(m, word, simCfg)
	if err != nil {
		return Sample{}, err
	}
	return Sample{
		InputSize: n,
		Steps:     tree.TotalNodes,
		WallTime:  time.Since(start),
		Outcome:   outcome,
	}, nil
}

func materializedCells(cfg turing.Configuration) int {
	total := 0
	for _, t := range cfg.Tapes {
		lo, hi := t.Window()
		total += hi - lo
	}
	return total
}
