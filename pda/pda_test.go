package pda_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baobabgit/automata/pda"
)

func syms(input *pda.PDA, s string) []pda.SymbolID {
	out := make([]pda.SymbolID, len(s))
	for i, r := range s {
		out[i] = input.InputSymbolID(string(r))
	}
	return out
}

// anbn builds the textbook DPDA for { aⁿbⁿ | n ≥ 0 } (spec.md §8 scenario 5).
// q0 itself accepts ε; once the first 'a' is read control moves permanently
// into qa (pushing one A per a) and then qb (popping one A per b); the
// bottom marker Z0 only resurfaces once every A has been popped, at which
// point a lone ε-move (the only move ever defined on (qb, Z0), so the
// determinism invariant holds) advances to the accepting qaccept state.
func anbn(t *testing.T) *pda.PDA {
	t.Helper()
	p, err := pda.Build(
		[]string{"q0", "qa", "qb", "qaccept"},
		[]string{"a", "b"},
		[]string{"Z0", "A"},
		[]pda.TransitionSpec{
			{From: "q0", Input: "a", Pop: "Z0", To: "qa", Push: []string{"Z0", "A"}},
			{From: "qa", Input: "a", Pop: "A", To: "qa", Push: []string{"A", "A"}},
			{From: "qa", Input: "b", Pop: "A", To: "qb", Push: nil},
			{From: "qb", Input: "b", Pop: "A", To: "qb", Push: nil},
			{From: "qb", Input: "", Pop: "Z0", To: "qaccept", Push: []string{"Z0"}},
		},
		"q0", "Z0", []string{"q0", "qaccept"}, pda.DPDA, pda.AcceptFinalState,
	)
	require.NoError(t, err)
	return p
}

func TestDPDAAnBn(t *testing.T) {
	p := anbn(t)

	accept := []string{"", "ab", "aabb", "aaabbb"}
	reject := []string{"a", "b", "abb", "aab", "ba", "aabbb"}

	for _, s := range accept {
		assert.True(t, pda.AcceptsDPDA(p, syms(p, s)), "expected accept: %q", s)
	}
	for _, s := range reject {
		assert.False(t, pda.AcceptsDPDA(p, syms(p, s)), "expected reject: %q", s)
	}
}

func TestDeterminismConflictDetected(t *testing.T) {
	_, err := pda.Build(
		[]string{"q0"},
		[]string{"a"},
		[]string{"Z0"},
		[]pda.TransitionSpec{
			{From: "q0", Input: "a", Pop: "Z0", To: "q0", Push: []string{"Z0"}},
			{From: "q0", Input: "a", Pop: "Z0", To: "q0", Push: []string{"Z0"}},
		},
		"q0", "Z0", nil, pda.DPDA, pda.AcceptFinalState,
	)
	require.Error(t, err)
	_, ok := err.(*pda.DeterminismConflict)
	assert.True(t, ok)
}

func TestNPDAAcceptsViaBFS(t *testing.T) {
	// Palindromes over {a,b} via nondeterministic midpoint guess.
	p, err := pda.Build(
		[]string{"q0", "q1", "qf"},
		[]string{"a", "b"},
		[]string{"Z0", "A", "B"},
		[]pda.TransitionSpec{
			{From: "q0", Input: "a", Pop: "Z0", To: "q0", Push: []string{"Z0", "A"}},
			{From: "q0", Input: "b", Pop: "Z0", To: "q0", Push: []string{"Z0", "B"}},
			{From: "q0", Input: "a", Pop: "A", To: "q0", Push: []string{"A", "A"}},
			{From: "q0", Input: "a", Pop: "B", To: "q0", Push: []string{"B", "A"}},
			{From: "q0", Input: "b", Pop: "A", To: "q0", Push: []string{"A", "B"}},
			{From: "q0", Input: "b", Pop: "B", To: "q0", Push: []string{"B", "B"}},
			{From: "q0", Input: "", Pop: "Z0", To: "qf", Push: []string{"Z0"}},
			{From: "q0", Input: "", Pop: "A", To: "q1", Push: []string{"A"}},
			{From: "q0", Input: "", Pop: "B", To: "q1", Push: []string{"B"}},
			{From: "q1", Input: "a", Pop: "A", To: "q1", Push: nil},
			{From: "q1", Input: "b", Pop: "B", To: "q1", Push: nil},
			{From: "q1", Input: "", Pop: "Z0", To: "qf", Push: []string{"Z0"}},
		},
		"q0", "Z0", []string{"qf"}, pda.NPDA, pda.AcceptFinalState,
	)
	require.NoError(t, err)

	ok, err := pda.Accepts(p, syms(p, "abba"), pda.DefaultConfig())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = pda.Accepts(p, syms(p, "abab"), pda.DefaultConfig())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBranchLimitExceeded(t *testing.T) {
	// q0 fans out to four distinct non-final states on ε, all popping and
	// restoring Z0 — the resulting 4-wide frontier exceeds a MaxBranches
	// of 3 before any of them can be explored further.
	p, err := pda.Build(
		[]string{"q0", "q1", "q2", "q3", "q4"},
		[]string{"a"},
		[]string{"Z0"},
		[]pda.TransitionSpec{
			{From: "q0", Input: "", Pop: "Z0", To: "q1", Push: []string{"Z0"}},
			{From: "q0", Input: "", Pop: "Z0", To: "q2", Push: []string{"Z0"}},
			{From: "q0", Input: "", Pop: "Z0", To: "q3", Push: []string{"Z0"}},
			{From: "q0", Input: "", Pop: "Z0", To: "q4", Push: []string{"Z0"}},
		},
		"q0", "Z0", nil, pda.NPDA, pda.AcceptFinalState,
	)
	require.NoError(t, err)

	_, err = pda.Accepts(p, nil, pda.Config{MaxBranches: 3})
	require.Error(t, err)
	_, ok := err.(*pda.PdaBranchLimit)
	assert.True(t, ok)
}

func TestUnionOfTwoDPDAs(t *testing.T) {
	one := singleSymbolPDA(t, "x")
	other := singleSymbolPDA(t, "y")
	u := pda.Union(one, other)

	okX, err := pda.Accepts(u, syms(u, "x"), pda.DefaultConfig())
	require.NoError(t, err)
	assert.True(t, okX)

	okY, err := pda.Accepts(u, syms(u, "y"), pda.DefaultConfig())
	require.NoError(t, err)
	assert.True(t, okY)

	okZ, err := pda.Accepts(u, syms(u, "z"), pda.DefaultConfig())
	require.NoError(t, err)
	assert.False(t, okZ)
}

// singleSymbolPDA accepts exactly the one-character string sym.
func singleSymbolPDA(t *testing.T, sym string) *pda.PDA {
	t.Helper()
	p, err := pda.Build(
		[]string{"q0", "q1"},
		[]string{sym},
		[]string{"Z0"},
		[]pda.TransitionSpec{
			{From: "q0", Input: sym, Pop: "Z0", To: "q1", Push: []string{"Z0"}},
		},
		"q0", "Z0", []string{"q1"}, pda.DPDA, pda.AcceptFinalState,
	)
	require.NoError(t, err)
	return p
}
