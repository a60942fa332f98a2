package turing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baobabgit/automata/turing"
)

// parityDTM accepts binary strings with an even number of 1s: a
// single-pass state-tracked parity check, the simplest DTM shape that
// still exercises Start/Step/blank-triggered-halt.
func parityDTM(t *testing.T) *turing.TM {
	t.Helper()
	m, err := turing.Build(
		[]string{"even", "odd", "accept", "reject"},
		[]string{"0", "1"},
		[]string{"0", "1", "_"},
		[]turing.TransitionSpec{
			{From: "even", Read: []string{"0"}, To: "even", Write: []string{"0"}, Moves: []string{"R"}},
			{From: "even", Read: []string{"1"}, To: "odd", Write: []string{"1"}, Moves: []string{"R"}},
			{From: "odd", Read: []string{"0"}, To: "odd", Write: []string{"0"}, Moves: []string{"R"}},
			{From: "odd", Read: []string{"1"}, To: "even", Write: []string{"1"}, Moves: []string{"R"}},
			{From: "even", Read: []string{"_"}, To: "accept", Write: []string{"_"}, Moves: []string{"S"}},
			{From: "odd", Read: []string{"_"}, To: "reject", Write: []string{"_"}, Moves: []string{"S"}},
		},
		"even", "accept", "reject", []string{"_"}, 1, turing.DTM,
	)
	require.NoError(t, err)
	return m
}

func word(m *turing.TM, s string) []turing.SymbolID {
	out := make([]turing.SymbolID, len(s))
	for i, r := range s {
		out[i] = m.InputSymbolID(string(r))
	}
	return out
}

func TestSimulateDTMParityChecker(t *testing.T) {
	m := parityDTM(t)
	cfg := turing.DefaultConfig()

	cases := map[string]turing.Outcome{
		"":     turing.Accept,
		"0":    turing.Accept,
		"1":    turing.Reject,
		"11":   turing.Accept,
		"101":  turing.Accept,
		"111":  turing.Reject,
		"1001": turing.Accept,
	}
	for s, want := range cases {
		got, _, err := turing.SimulateDTM(m, word(m, s), cfg)
		require.NoError(t, err)
		assert.Equal(t, want, got, "mismatch on %q", s)
	}
}

func TestBuildRejectsSharedReadVectorForDTM(t *testing.T) {
	_, err := turing.Build(
		[]string{"q0", "accept", "reject"},
		[]string{"a"},
		[]string{"a", "_"},
		[]turing.TransitionSpec{
			{From: "q0", Read: []string{"a"}, To: "accept", Write: []string{"a"}, Moves: []string{"R"}},
			{From: "q0", Read: []string{"a"}, To: "reject", Write: []string{"a"}, Moves: []string{"R"}},
		},
		"q0", "accept", "reject", []string{"_"}, 1, turing.DTM,
	)
	require.Error(t, err)
	var conflict *turing.DeterminismConflict
	require.ErrorAs(t, err, &conflict)
}

// palindromeNTM implements spec.md §8 scenario 6: a two-tape NTM that
// nondeterministically guesses the midpoint of a palindrome over {a,b}.
// copy1 copies a guessed first half onto the scratch tape (branching at
// every cell into "keep copying", "stop here, even split", or "stop
// after skipping one middle symbol, odd split"); cmpR then walks the
// remaining input forward against the scratch tape backward.
func palindromeNTM(t *testing.T) *turing.TM {
	t.Helper()
	var transitions []turing.TransitionSpec
	for _, sym := range []string{"a", "b"} {
		transitions = append(transitions,
			turing.TransitionSpec{
				From: "copy1", Read: []string{sym, "_"}, To: "copy1",
				Write: []string{sym, sym}, Moves: []string{"R", "R"}, Weight: 0,
			},
			turing.TransitionSpec{
				From: "copy1", Read: []string{sym, "_"}, To: "cmpR",
				Write: []string{sym, "_"}, Moves: []string{"S", "L"}, Weight: 1,
			},
			turing.TransitionSpec{
				From: "copy1", Read: []string{sym, "_"}, To: "cmpR",
				Write: []string{sym, "_"}, Moves: []string{"R", "L"}, Weight: 2,
			},
		)
	}
	transitions = append(transitions, turing.TransitionSpec{
		From: "copy1", Read: []string{"_", "_"}, To: "reject",
		Write: []string{"_", "_"}, Moves: []string{"S", "S"},
	})

	for _, sym := range []string{"a", "b"} {
		transitions = append(transitions, turing.TransitionSpec{
			From: "cmpR", Read: []string{sym, sym}, To: "cmpR",
			Write: []string{sym, sym}, Moves: []string{"R", "L"},
		})
	}
	transitions = append(transitions,
		turing.TransitionSpec{From: "cmpR", Read: []string{"a", "b"}, To: "reject", Write: []string{"a", "b"}, Moves: []string{"S", "S"}},
		turing.TransitionSpec{From: "cmpR", Read: []string{"b", "a"}, To: "reject", Write: []string{"b", "a"}, Moves: []string{"S", "S"}},
		turing.TransitionSpec{From: "cmpR", Read: []string{"_", "_"}, To: "accept", Write: []string{"_", "_"}, Moves: []string{"S", "S"}},
		turing.TransitionSpec{From: "cmpR", Read: []string{"a", "_"}, To: "reject", Write: []string{"a", "_"}, Moves: []string{"S", "S"}},
		turing.TransitionSpec{From: "cmpR", Read: []string{"b", "_"}, To: "reject", Write: []string{"b", "_"}, Moves: []string{"S", "S"}},
		turing.TransitionSpec{From: "cmpR", Read: []string{"_", "a"}, To: "reject", Write: []string{"_", "a"}, Moves: []string{"S", "S"}},
		turing.TransitionSpec{From: "cmpR", Read: []string{"_", "b"}, To: "reject", Write: []string{"_", "b"}, Moves: []string{"S", "S"}},
	)

	m, err := turing.Build(
		[]string{"copy1", "cmpR", "accept", "reject"},
		[]string{"a", "b"},
		[]string{"a", "b", "_"},
		transitions,
		"copy1", "accept", "reject", []string{"_", "_"}, 2, turing.NTM,
	)
	require.NoError(t, err)
	return m
}

func TestSimulateNTMPalindromeMidpointGuess(t *testing.T) {
	m := palindromeNTM(t)
	cfg := turing.Config{MaxSteps: 1000, MaxBranches: 1000}

	outcome, tree, err := turing.SimulateNTM(m, word(m, "abba"), cfg)
	require.NoError(t, err)
	assert.Equal(t, turing.Accept, outcome)
	assert.GreaterOrEqual(t, tree.AcceptingPaths, 1)
	assert.LessOrEqual(t, tree.MaxDepthReached, 10)
	assert.Equal(t, 0, tree.TruncatedPaths)

	outcome, _, err = turing.SimulateNTM(m, word(m, "ab"), cfg)
	require.NoError(t, err)
	assert.Equal(t, turing.Reject, outcome)

	outcome, _, err = turing.SimulateNTM(m, word(m, "aa"), cfg)
	require.NoError(t, err)
	assert.Equal(t, turing.Accept, outcome)
}

func TestTapeWriteNeverMaterializesBlank(t *testing.T) {
	tape := turing.NewTape(turing.SymbolID(0))
	lo, hi := tape.Window()
	assert.Equal(t, lo, hi, "empty tape has an empty window")

	tape = tape.Write(5, turing.SymbolID(0))
	lo, hi = tape.Window()
	assert.Equal(t, lo, hi, "writing blank outside the window must not materialize it")
}

func TestAlignHeadsPreservesReads(t *testing.T) {
	m := parityDTM(t)
	cfg := turing.Start(m, word(m, "101"))
	cfg.Heads[0] = -3

	before := make([]turing.SymbolID, 6)
	for i := range before {
		before[i] = cfg.Tapes[0].Read(-3 + i)
	}

	aligned := turing.AlignHeads(cfg)
	require.Equal(t, 0, aligned.Heads[0])
	for i := range before {
		assert.Equal(t, before[i], aligned.Tapes[0].Read(i), "read at old position %d must be unchanged after translation", -3+i)
	}
}
