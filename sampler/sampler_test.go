package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baobabgit/automata/turing"
)

// unarySweepDTM walks right across its whole input, one step per symbol,
// then accepts — a single-tape DTM whose step count is exactly n+1 for an
// n-symbol input of "a"s, i.e. linear growth.
func unarySweepDTM(t *testing.T) *turing.TM {
	t.Helper()
	m, err := turing.Build(
		[]string{"scan", "accept", "reject"},
		[]string{"a"}, []string{"a", "_"},
		[]turing.TransitionSpec{
			{From: "scan", Read: []string{"a"}, To: "scan", Write: []string{"a"}, Moves: []string{"R"}},
			{From: "scan", Read: []string{"_"}, To: "accept", Write: []string{"_"}, Moves: []string{"S"}},
		},
		"scan", "accept", "reject", []string{"_"}, 1, turing.DTM,
	)
	require.NoError(t, err)
	return m
}

func unaryWord(m *turing.TM, n int) []turing.SymbolID {
	out := make([]turing.SymbolID, n)
	a := m.InputSymbolID("a")
	for i := range out {
		out[i] = a
	}
	return out
}

func TestMeasureRecordsGrowingStepCounts(t *testing.T) {
	m := unarySweepDTM(t)
	sizes := []int{1, 2, 4, 8}
	gen := func(n int) []turing.SymbolID { return unaryWord(m, n) }

	samples, err := Measure(m, sizes, gen, Config{Trials: 2}, turing.DefaultConfig())
	require.NoError(t, err)
	require.Len(t, samples, len(sizes)*2)

	for _, s := range samples {
		assert.Equal(t, turing.Accept, s.Outcome)
		assert.Equal(t, s.InputSize+1, s.Steps)
	}
}

func TestFitGrowthPrefersLinearForLinearData(t *testing.T) {
	sizes := []int{1, 2, 4, 8, 16, 32}
	values := make([]float64, len(sizes))
	for i, n := range sizes {
		values[i] = float64(n) + 1
	}

	result := FitGrowth(sizes, values, DefaultConfig())
	assert.Equal(t, Linear, result.Best)
	assert.Greater(t, result.Confidence, 0.0)
}

func TestFitGrowthPrefersQuadraticForQuadraticData(t *testing.T) {
	sizes := []int{2, 4, 8, 16, 32}
	values := make([]float64, len(sizes))
	for i, n := range sizes {
		values[i] = 3 * float64(n) * float64(n)
	}

	result := FitGrowth(sizes, values, DefaultConfig())
	assert.Equal(t, Quadratic, result.Best)
	assert.InDelta(t, 3.0, result.Constant, 0.3)
}

func TestSampleDecidabilityAllHalt(t *testing.T) {
	m := unarySweepDTM(t)
	inputs := [][]turing.SymbolID{unaryWord(m, 0), unaryWord(m, 3), unaryWord(m, 5)}

	verdict, err := SampleDecidability(m, inputs, turing.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, Decidable, verdict)
}

// loopingDTM never halts on any non-empty input: it shuttles forever
// between two states without ever reaching accept or reject.
func loopingDTM(t *testing.T) *turing.TM {
	t.Helper()
	m, err := turing.Build(
		[]string{"left", "right", "accept", "reject"},
		[]string{"a"}, []string{"a", "_"},
		[]turing.TransitionSpec{
			{From: "left", Read: []string{"a"}, To: "right", Write: []string{"a"}, Moves: []string{"R"}},
			{From: "left", Read: []string{"_"}, To: "accept", Write: []string{"_"}, Moves: []string{"S"}},
			{From: "right", Read: []string{"a"}, To: "left", Write: []string{"a"}, Moves: []string{"L"}},
			{From: "right", Read: []string{"_"}, To: "left", Write: []string{"_"}, Moves: []string{"L"}},
		},
		"left", "accept", "reject", []string{"_"}, 1, turing.DTM,
	)
	require.NoError(t, err)
	return m
}

func TestSampleDecidabilitySemiDecidableMix(t *testing.T) {
	m := loopingDTM(t)
	cfg := turing.DefaultConfig()
	cfg.MaxSteps = 10

	inputs := [][]turing.SymbolID{unaryWord(m, 0), unaryWord(m, 1)}
	verdict, err := SampleDecidability(m, inputs, cfg)
	require.NoError(t, err)
	assert.Equal(t, SemiDecidable, verdict)
}

func TestSampleDecidabilityUndeterminedWhenAllExceedBudget(t *testing.T) {
	m := loopingDTM(t)
	cfg := turing.DefaultConfig()
	cfg.MaxSteps = 10

	inputs := [][]turing.SymbolID{unaryWord(m, 1), unaryWord(m, 2)}
	verdict, err := SampleDecidability(m, inputs, cfg)
	require.NoError(t, err)
	assert.Equal(t, Undetermined, verdict)
}
