package rx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baobabgit/automata/fa"
	"github.com/baobabgit/automata/rx"
)

func word(a *fa.FA, s string) []fa.SymbolID {
	out := make([]fa.SymbolID, len(s))
	for i, r := range s {
		out[i] = a.SymbolID(string(r))
	}
	return out
}

// compile is the full C4 pipeline: parse -> Thompson -> subset -> minimize.
func compile(t *testing.T, pattern string) *fa.FA {
	t.Helper()
	ast, err := rx.Parse(pattern)
	require.NoError(t, err)
	nfa := rx.Thompson(ast)
	dfa := fa.SubsetConstruct(nfa)
	return fa.Minimize(dfa)
}

// TestPatternMatchesThompsonPipeline reproduces spec.md §8 scenario 3:
// (a|b)*abb compiles, via Thompson + subset construction + minimization,
// to a 4-state minimal DFA equivalent to the textbook one for this
// pattern.
func TestPatternMatchesThompsonPipeline(t *testing.T) {
	minimal := compile(t, "(a|b)*abb")
	assert.Equal(t, 4, minimal.NumStates())

	accept := []string{"abb", "aabb", "babb", "ababb", "aaabb"}
	reject := []string{"", "a", "ab", "abbb", "abab", "bbb"}

	for _, s := range accept {
		assert.True(t, fa.Accepts(minimal, word(minimal, s)), "expected accept: %q", s)
	}
	for _, s := range reject {
		assert.False(t, fa.Accepts(minimal, word(minimal, s)), "expected reject: %q", s)
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	cases := map[string]rx.SyntaxErrorKind{
		"(a":   rx.UnbalancedParens,
		"a)":   rx.UnbalancedParens,
		"*a":   rx.TrailingOperator,
		`a\q`:  rx.UnknownEscape,
		`a\`:   rx.UnexpectedEOF,
	}
	for pattern, wantKind := range cases {
		_, err := rx.Parse(pattern)
		require.Error(t, err, pattern)
		se, ok := err.(*rx.SyntaxError)
		require.True(t, ok, pattern)
		assert.Equal(t, wantKind, se.Kind, pattern)
	}
}

func TestPlusAndQuestionDesugaring(t *testing.T) {
	plus := compile(t, "ab+c")
	assert.True(t, fa.Accepts(plus, word(plus, "abc")))
	assert.True(t, fa.Accepts(plus, word(plus, "abbbc")))
	assert.False(t, fa.Accepts(plus, word(plus, "ac")))

	question := compile(t, "ab?c")
	assert.True(t, fa.Accepts(question, word(question, "ac")))
	assert.True(t, fa.Accepts(question, word(question, "abc")))
	assert.False(t, fa.Accepts(question, word(question, "abbc")))
}

func TestCharClassEscapes(t *testing.T) {
	digits := compile(t, `\d\d`)
	assert.True(t, fa.Accepts(digits, word(digits, "42")))
	assert.False(t, fa.Accepts(digits, word(digits, "4a")))
}

// TestEliminateRoundTrip checks that converting a small DFA to a regex via
// Eliminate and recompiling it via the Thompson pipeline yields an
// equivalent minimal DFA (same accept/reject behavior on a fixed sample).
func TestEliminateRoundTrip(t *testing.T) {
	original := compile(t, "ab*")
	node := rx.Eliminate(original)
	roundTripNFA := rx.Thompson(node)
	roundTrip := fa.Minimize(fa.SubsetConstruct(roundTripNFA))

	samples := []string{"", "a", "ab", "abb", "abbb", "b", "ba"}
	for _, s := range samples {
		want := fa.Accepts(original, word(original, s))
		got := fa.Accepts(roundTrip, word(roundTrip, s))
		assert.Equal(t, want, got, "mismatch on %q", s)
	}
}
