package turingconv

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/baobabgit/automata/turing"
)

// tinyAcceptsA is the smallest useful single-tape NTM: it accepts exactly
// the one-symbol word "a" and rejects everything else reachable from its
// two-symbol alphabet.
func tinyAcceptsA(t *testing.T) *turing.TM {
	t.Helper()
	m, err := turing.Build(
		[]string{"q0", "accept", "reject"},
		[]string{"a"}, []string{"a", "_"},
		[]turing.TransitionSpec{
			{From: "q0", Read: []string{"a"}, To: "accept", Write: []string{"a"}, Moves: []string{"R"}},
			{From: "q0", Read: []string{"_"}, To: "reject", Write: []string{"_"}, Moves: []string{"S"}},
		},
		"q0", "accept", "reject", []string{"_"}, 1, turing.NTM,
	)
	require.NoError(t, err)
	return m
}

func tword(m *turing.TM, s string) []turing.SymbolID {
	out := make([]turing.SymbolID, len(s))
	for i, r := range s {
		out[i] = m.InputSymbolID(string(r))
	}
	return out
}

func TestDovetailBuildsAValidDTM(t *testing.T) {
	n := tinyAcceptsA(t)
	d, err := Dovetail(n, 2)
	require.NoError(t, err)
	require.Equal(t, turing.DTM, d.Flavor())
	require.Equal(t, 2, d.TapeCount())
	require.Greater(t, d.NumStates(), 2)
}

func TestDovetailRejectsMultiTapeSource(t *testing.T) {
	m, err := turing.Build(
		[]string{"q0", "accept", "reject"},
		[]string{"a"}, []string{"a", "_"},
		[]turing.TransitionSpec{
			{From: "q0", Read: []string{"a", "_"}, To: "accept", Write: []string{"a", "_"}, Moves: []string{"R", "S"}},
		},
		"q0", "accept", "reject", []string{"_", "_"}, 2, turing.NTM,
	)
	require.NoError(t, err)
	_, err = Dovetail(m, 2)
	require.Error(t, err)
}

func TestMultiToSingleBuildsAValidMachine(t *testing.T) {
	m, err := turing.Build(
		[]string{"q0", "accept", "reject"},
		[]string{"a"}, []string{"a", "_"},
		[]turing.TransitionSpec{
			{From: "q0", Read: []string{"a", "_"}, To: "accept", Write: []string{"a", "a"}, Moves: []string{"R", "R"}},
			{From: "q0", Read: []string{"_", "_"}, To: "reject", Write: []string{"_", "_"}, Moves: []string{"S", "S"}},
		},
		"q0", "accept", "reject", []string{"_", "_"}, 2, turing.DTM,
	)
	require.NoError(t, err)

	single, err := MultiToSingle(m, turing.DTM)
	require.NoError(t, err)
	require.Equal(t, 1, single.TapeCount())
	require.Greater(t, single.NumStates(), 2)
}

func TestMultiToSingleRejectsSingleTapeSource(t *testing.T) {
	n := tinyAcceptsA(t)
	_, err := MultiToSingle(n, turing.NTM)
	require.Error(t, err)
}

// parityDTMForMinimize has two states reachable from the initial state
// that are behaviorally identical (same write/move on every symbol, same
// successor under the refinement) and so should collapse under
// MinimizeStates: q1 and q2 both just echo the symbol and move right,
// forever, never reaching accept or reject — a deliberately simple
// redundant-state shape, not a machine meant to halt.
func parityDTMForMinimize(t *testing.T) *turing.TM {
	t.Helper()
	m, err := turing.Build(
		[]string{"q0", "q1", "q2", "accept", "reject"},
		[]string{"0", "1"}, []string{"0", "1", "_"},
		[]turing.TransitionSpec{
			{From: "q0", Read: []string{"0"}, To: "q1", Write: []string{"0"}, Moves: []string{"R"}},
			{From: "q0", Read: []string{"1"}, To: "q2", Write: []string{"1"}, Moves: []string{"R"}},
			{From: "q0", Read: []string{"_"}, To: "accept", Write: []string{"_"}, Moves: []string{"S"}},
			{From: "q1", Read: []string{"0"}, To: "q1", Write: []string{"0"}, Moves: []string{"R"}},
			{From: "q1", Read: []string{"1"}, To: "q1", Write: []string{"1"}, Moves: []string{"R"}},
			{From: "q1", Read: []string{"_"}, To: "accept", Write: []string{"_"}, Moves: []string{"S"}},
			{From: "q2", Read: []string{"0"}, To: "q2", Write: []string{"0"}, Moves: []string{"R"}},
			{From: "q2", Read: []string{"1"}, To: "q2", Write: []string{"1"}, Moves: []string{"R"}},
			{From: "q2", Read: []string{"_"}, To: "accept", Write: []string{"_"}, Moves: []string{"S"}},
		},
		"q0", "accept", "reject", []string{"_"}, 1, turing.DTM,
	)
	require.NoError(t, err)
	return m
}

func TestMinimizeStatesCollapsesEquivalentStates(t *testing.T) {
	m := parityDTMForMinimize(t)
	min, err := MinimizeStates(m)
	require.NoError(t, err)
	require.Less(t, min.NumStates(), m.NumStates())

	samples := [][]turing.SymbolID{tword(m, "0"), tword(m, "1"), tword(m, "01"), tword(m, "")}
	failure, err := VerifyEquivalence(m, min, samples, turing.DefaultConfig())
	require.NoError(t, err)
	require.Nil(t, failure)
}

func TestMinimizeSymbolsDropsUnreferencedSymbol(t *testing.T) {
	m, err := turing.Build(
		[]string{"q0", "accept", "reject"},
		[]string{"a"}, []string{"a", "_", "x"},
		[]turing.TransitionSpec{
			{From: "q0", Read: []string{"a"}, To: "accept", Write: []string{"a"}, Moves: []string{"R"}},
			{From: "q0", Read: []string{"_"}, To: "reject", Write: []string{"_"}, Moves: []string{"S"}},
			{From: "q0", Read: []string{"x"}, To: "reject", Write: []string{"x"}, Moves: []string{"S"}},
		},
		"q0", "accept", "reject", []string{"_"}, 1, turing.DTM,
	)
	require.NoError(t, err)

	trimmed, err := MinimizeSymbols(m)
	require.NoError(t, err)
	require.NotContains(t, trimmed.TapeAlphabet(), "x")
	require.Contains(t, trimmed.TapeAlphabet(), "a")

	samples := [][]turing.SymbolID{tword(m, "a"), tword(m, "")}
	failure, err := VerifyEquivalence(m, trimmed, samples, turing.DefaultConfig())
	require.NoError(t, err)
	require.Nil(t, failure)
}

func TestVerifyEquivalenceCatchesADisagreement(t *testing.T) {
	a := tinyAcceptsA(t)
	b, err := turing.Build(
		[]string{"q0", "accept", "reject"},
		[]string{"a"}, []string{"a", "_"},
		[]turing.TransitionSpec{
			{From: "q0", Read: []string{"a"}, To: "reject", Write: []string{"a"}, Moves: []string{"R"}},
			{From: "q0", Read: []string{"_"}, To: "reject", Write: []string{"_"}, Moves: []string{"S"}},
		},
		"q0", "accept", "reject", []string{"_"}, 1, turing.NTM,
	)
	require.NoError(t, err)

	failure, err := VerifyEquivalence(a, b, [][]turing.SymbolID{tword(a, "a")}, turing.DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, failure)
	require.Equal(t, turing.Accept, failure.Want)
	require.Equal(t, turing.Reject, failure.Got)
}
