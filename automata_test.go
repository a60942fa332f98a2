package automata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baobabgit/automata/fa"
	"github.com/baobabgit/automata/grammar"
	"github.com/baobabgit/automata/pda"
	"github.com/baobabgit/automata/turing"
)

func TestBuildFAAndAccepts(t *testing.T) {
	m, err := BuildFA(
		[]string{"q0", "q1"}, []string{"a"},
		[]fa.EdgeSpec{{From: "q0", Symbol: "a", To: "q1"}},
		"q0", []string{"q1"}, fa.DFA,
	)
	require.NoError(t, err)

	outcome, err := Accepts(m, []string{"a"}, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, Accept, outcome)

	outcome, err = Accepts(m, []string{"a", "a"}, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, Reject, outcome)
}

// balancedParensDPDA accepts exactly the balanced-parenthesis language
// over {"(",")"} via a stack-counting DPDA: q1 keeps one X per open
// parenthesis, and an ε-move returns to the final state q0 whenever the
// bottom marker Z resurfaces.
func balancedParensDPDA(t *testing.T) *pda.PDA {
	t.Helper()
	m, err := BuildDPDA(
		[]string{"q0", "q1"}, []string{"(", ")"}, []string{"Z", "X"},
		[]pda.TransitionSpec{
			{From: "q0", Input: "(", Pop: "Z", To: "q1", Push: []string{"Z", "X"}},
			{From: "q1", Input: "(", Pop: "X", To: "q1", Push: []string{"X", "X"}},
			{From: "q1", Input: ")", Pop: "X", To: "q1", Push: nil},
			{From: "q1", Input: "", Pop: "Z", To: "q0", Push: []string{"Z"}},
		},
		"q0", "Z", []string{"q0"}, pda.AcceptFinalState,
	)
	require.NoError(t, err)
	return m
}

func TestBuildDPDAAndAccepts(t *testing.T) {
	m := balancedParensDPDA(t)

	outcome, err := Accepts(m, []string{"(", ")"}, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, Accept, outcome)

	outcome, err = Accepts(m, []string{"("}, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, Reject, outcome)
}

func TestBuildTMAndAccepts(t *testing.T) {
	m, err := BuildTM(
		[]string{"q0", "accept", "reject"},
		[]string{"a"}, []string{"a", "_"},
		[]turing.TransitionSpec{
			{From: "q0", Read: []string{"a"}, To: "accept", Write: []string{"a"}, Moves: []string{"R"}},
			{From: "q0", Read: []string{"_"}, To: "reject", Write: []string{"_"}, Moves: []string{"S"}},
		},
		"q0", "accept", "reject", []string{"_"}, 1, turing.DTM,
	)
	require.NoError(t, err)

	outcome, err := Accepts(m, []string{"a"}, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, Accept, outcome)
}

func TestAcceptsRejectsUnsupportedType(t *testing.T) {
	_, err := Accepts(42, nil, DefaultConfig())
	require.Error(t, err)
	var uae *UnsupportedAutomatonError
	assert.ErrorAs(t, err, &uae)
}

func TestConvertFAToDFAViaSubsetConstruction(t *testing.T) {
	n, err := BuildFA(
		[]string{"q0", "q1"}, []string{"a"},
		[]fa.EdgeSpec{{From: "q0", Symbol: "a", To: "q0"}, {From: "q0", Symbol: "a", To: "q1"}},
		"q0", []string{"q1"}, fa.NFA,
	)
	require.NoError(t, err)

	converted, err := Convert(n, ConvertDefault)
	require.NoError(t, err)
	d, ok := converted.(*fa.FA)
	require.True(t, ok)
	assert.Equal(t, fa.DFA, d.Flavor())
}

func TestConvertPDAToCFG(t *testing.T) {
	m := balancedParensDPDA(t)

	g, err := Convert(m, ConvertDefault)
	require.NoError(t, err)
	cfg, ok := g.(*grammar.CFG)
	require.True(t, ok)
	assert.NotEmpty(t, cfg.Vars())
}

func TestMinimizeFA(t *testing.T) {
	m, err := BuildFA(
		[]string{"q0", "q1", "q2"}, []string{"a"},
		[]fa.EdgeSpec{
			{From: "q0", Symbol: "a", To: "q1"},
			{From: "q1", Symbol: "a", To: "q2"},
			{From: "q2", Symbol: "a", To: "q2"},
		},
		"q0", []string{"q1", "q2"}, fa.DFA,
	)
	require.NoError(t, err)

	min, err := Minimize(m)
	require.NoError(t, err)
	d, ok := min.(*fa.FA)
	require.True(t, ok)
	assert.LessOrEqual(t, d.NumStates(), m.NumStates())
}

func TestNormalizeToCNF(t *testing.T) {
	g, err := BuildCFG(
		[]string{"S"}, []string{"a"},
		[]grammar.ProductionSpec{
			{Head: "S", Body: []grammar.SymbolSpec{{Terminal: true, Name: "a"}}},
		},
		"S",
	)
	require.NoError(t, err)

	normalized, err := Normalize(g, grammar.CNF)
	require.NoError(t, err)
	assert.Equal(t, grammar.CNF, normalized.Form())
}

func TestRecognizeCYKAndEarleyAgree(t *testing.T) {
	g, err := BuildCFG(
		[]string{"S"}, []string{"a"},
		[]grammar.ProductionSpec{
			{Head: "S", Body: []grammar.SymbolSpec{{Terminal: true, Name: "a"}}},
		},
		"S",
	)
	require.NoError(t, err)

	earley, err := Recognize(g, []string{"a"}, AlgorithmEarley)
	require.NoError(t, err)
	assert.Equal(t, Accept, earley.Outcome)

	cnf, err := Normalize(g, grammar.CNF)
	require.NoError(t, err)

	cyk, err := Recognize(cnf, []string{"a"}, AlgorithmCYK)
	require.NoError(t, err)
	assert.Equal(t, Accept, cyk.Outcome)
	assert.NotEmpty(t, cyk.Forest)

	rejected, err := Recognize(cnf, []string{"a", "a"}, AlgorithmCYK)
	require.NoError(t, err)
	assert.Equal(t, Reject, rejected.Outcome)
}
