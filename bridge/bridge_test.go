package bridge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baobabgit/automata/bridge"
	"github.com/baobabgit/automata/grammar"
	"github.com/baobabgit/automata/pda"
)

// anbnDPDA builds the same a^n b^n DPDA used in pda/pda_test.go: states
// q0 (accepts on empty input), qa (pushing a's), qb (popping on b's),
// qaccept (reached via the sole epsilon-move once the stack bottoms out).
func anbnDPDA(t *testing.T) *pda.PDA {
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

func symWords(p *pda.PDA, s string) []pda.SymbolID {
	out := make([]pda.SymbolID, len(s))
	for i, r := range s {
		out[i] = p.InputSymbolID(string(r))
	}
	return out
}

func TestPDAToCFGPreservesLanguage(t *testing.T) {
	p := anbnDPDA(t)
	g, err := bridge.PDAToCFG(p)
	require.NoError(t, err)

	samples := map[string]bool{
		"":     true,
		"ab":   true,
		"aabb": true,
		"a":    false,
		"aab":  false,
		"ba":   false,
	}
	for s, want := range samples {
		got := derivesBrute(g, s, 200)
		assert.Equal(t, want, got, "mismatch on %q", s)
	}
}

// derivesBrute is a bounded brute-force derivation search, the same shape
// used in grammar/grammar_test.go, kept local since bridge must not
// depend on recognize.
func derivesBrute(g *grammar.CFG, s string, budget int) bool {
	target := make([]grammar.Symbol, 0, len(s))
	for _, r := range s {
		id := g.TermID(string(r))
		target = append(target, grammar.Term(id))
	}

	type form struct{ syms []grammar.Symbol }
	start := form{syms: []grammar.Symbol{grammar.Var(g.Start())}}
	queue := []form{start}
	seen := map[string]bool{formKey(start.syms): true}

	isTerminal := func(syms []grammar.Symbol) bool {
		for _, sym := range syms {
			if !sym.Terminal {
				return false
			}
		}
		return true
	}
	equal := func(a, b []grammar.Symbol) bool {
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	}

	for len(queue) > 0 && budget > 0 {
		budget--
		f := queue[0]
		queue = queue[1:]

		if isTerminal(f.syms) {
			if equal(f.syms, target) {
				return true
			}
			continue
		}
		if len(f.syms) > len(target)+len(g.Productions())+5 {
			continue
		}

		for i, sym := range f.syms {
			if sym.Terminal {
				continue
			}
			for _, p := range g.Productions() {
				if p.Head != sym.ID {
					continue
				}
				next := make([]grammar.Symbol, 0, len(f.syms)-1+len(p.Body))
				next = append(next, f.syms[:i]...)
				next = append(next, p.Body...)
				next = append(next, f.syms[i+1:]...)
				nf := form{syms: next}
				k := formKey(nf.syms)
				if !seen[k] {
					seen[k] = true
					queue = append(queue, nf)
				}
			}
		}
	}
	return false
}

func formKey(syms []grammar.Symbol) string {
	buf := make([]byte, 0, len(syms)*2)
	for _, s := range syms {
		tag := byte('t')
		if !s.Terminal {
			tag = 'v'
		}
		buf = append(buf, tag, byte(s.ID))
	}
	return string(buf)
}

func anbnGrammar(t *testing.T) *grammar.CFG {
	t.Helper()
	g, err := grammar.Build(
		[]string{"S"},
		[]string{"a", "b"},
		[]grammar.ProductionSpec{
			{Head: "S", Body: []grammar.SymbolSpec{
				{Terminal: true, Name: "a"},
				{Name: "S"},
				{Terminal: true, Name: "b"},
			}},
			{Head: "S", Body: nil},
		},
		"S",
	)
	require.NoError(t, err)
	return g
}

func TestCFGToPDAPreservesLanguage(t *testing.T) {
	g := anbnGrammar(t)
	p, err := bridge.CFGToPDA(g)
	require.NoError(t, err)
	assert.Equal(t, pda.NPDA, p.Flavor())

	cfg := pda.DefaultConfig()
	accept := []string{"", "ab", "aabb", "aaabbb"}
	reject := []string{"a", "aab", "ba", "abb"}
	for _, s := range accept {
		ok, err := pda.Accepts(p, symWords(p, s), cfg)
		require.NoError(t, err)
		assert.True(t, ok, "expected accept: %q", s)
	}
	for _, s := range reject {
		ok, err := pda.Accepts(p, symWords(p, s), cfg)
		require.NoError(t, err)
		assert.False(t, ok, "expected reject: %q", s)
	}
}

func TestMinimizeStackSymbolsPreservesLanguage(t *testing.T) {
	p := anbnDPDA(t)
	minimized := bridge.MinimizeStackSymbols(p)

	cfg := pda.DefaultConfig()
	samples := []string{"", "ab", "aabb", "a", "aab", "ba"}
	for _, s := range samples {
		want, err := pda.Accepts(p, symWords(p, s), cfg)
		require.NoError(t, err)
		got, err := pda.Accepts(minimized, symWords(minimized, s), cfg)
		require.NoError(t, err)
		assert.Equal(t, want, got, "mismatch on %q", s)
	}
}
