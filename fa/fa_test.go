package fa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func word(a *FA, s string) []SymbolID {
	out := make([]SymbolID, len(s))
	for i, c := range s {
		out[i] = a.SymbolID(string(c))
	}
	return out
}

// TestDFAMinimization is spec.md §8 scenario 1.
func TestDFAMinimization(t *testing.T) {
	states := []string{"q0", "q1", "q2", "q3", "q4"}
	alphabet := []string{"a", "b"}
	transitions := []EdgeSpec{
		{"q0", "a", "q1"}, {"q0", "b", "q2"},
		{"q1", "a", "q3"}, {"q1", "b", "q4"},
		{"q2", "a", "q4"}, {"q2", "b", "q3"},
		{"q3", "a", "q3"}, {"q3", "b", "q4"},
		{"q4", "a", "q4"}, {"q4", "b", "q3"},
	}
	a, err := Build(states, alphabet, transitions, "q0", []string{"q3"}, DFA)
	require.NoError(t, err)

	min := Minimize(a)
	assert.Equal(t, 2, min.NumStates())

	for _, tc := range []struct {
		in     string
		accept bool
	}{
		{"ab", true}, {"ba", true}, {"abaa", true},
		{"", false}, {"a", false}, {"aa", false}, {"bb", false},
	} {
		assert.Equal(t, tc.accept, Accepts(min, word(min, tc.in)), "input %q", tc.in)
		assert.Equal(t, tc.accept, Accepts(a, word(a, tc.in)), "original input %q", tc.in)
	}
}

// TestSubsetConstruction is spec.md §8 scenario 2.
func TestSubsetConstruction(t *testing.T) {
	states := []string{"q0", "q1", "q2"}
	alphabet := []string{"a", "b"}
	transitions := []EdgeSpec{
		{"q0", "a", "q0"}, {"q0", "a", "q1"},
		{"q0", "b", "q1"},
		{"q1", "a", "q2"},
		{"q1", "b", "q2"},
	}
	n, err := Build(states, alphabet, transitions, "q0", []string{"q2"}, NFA)
	require.NoError(t, err)

	d := SubsetConstruct(n)

	for _, tc := range []struct {
		in     string
		accept bool
	}{
		{"aaab", true}, {"b", false}, {"ab", true},
	} {
		assert.Equal(t, tc.accept, Accepts(d, word(d, tc.in)), "input %q", tc.in)
		assert.Equal(t, tc.accept, Accepts(n, word(n, tc.in)), "original NFA input %q", tc.in)
	}
}

func TestEmptyInputMatchesInitialFinality(t *testing.T) {
	a, err := Build([]string{"q0"}, nil, nil, "q0", []string{"q0"}, DFA)
	require.NoError(t, err)
	assert.True(t, Accepts(a, nil))

	b, err := Build([]string{"q0"}, nil, nil, "q0", nil, DFA)
	require.NoError(t, err)
	assert.False(t, Accepts(b, nil))
}

func TestMinimizeIdempotent(t *testing.T) {
	states := []string{"q0", "q1", "q2", "q3", "q4"}
	alphabet := []string{"a", "b"}
	transitions := []EdgeSpec{
		{"q0", "a", "q1"}, {"q0", "b", "q2"},
		{"q1", "a", "q3"}, {"q1", "b", "q4"},
		{"q2", "a", "q4"}, {"q2", "b", "q3"},
		{"q3", "a", "q3"}, {"q3", "b", "q4"},
		{"q4", "a", "q4"}, {"q4", "b", "q3"},
	}
	a, err := Build(states, alphabet, transitions, "q0", []string{"q3"}, DFA)
	require.NoError(t, err)

	once := Minimize(a)
	twice := Minimize(once)
	assert.Equal(t, once.NumStates(), twice.NumStates())
}

func TestUnionIntersectionComplement(t *testing.T) {
	// a: accepts strings containing "a"; b: accepts strings containing "b"
	a, err := Build([]string{"s0", "s1"}, []string{"a", "b"}, []EdgeSpec{
		{"s0", "a", "s1"}, {"s0", "b", "s0"}, {"s1", "a", "s1"}, {"s1", "b", "s1"},
	}, "s0", []string{"s1"}, DFA)
	require.NoError(t, err)

	b, err := Build([]string{"t0", "t1"}, []string{"a", "b"}, []EdgeSpec{
		{"t0", "b", "t1"}, {"t0", "a", "t0"}, {"t1", "a", "t1"}, {"t1", "b", "t1"},
	}, "t0", []string{"t1"}, DFA)
	require.NoError(t, err)

	union := Union(a, b)
	inter := Intersection(a, b)
	comp := Complement(a)

	assert.True(t, Accepts(union, word(union, "a")))
	assert.True(t, Accepts(union, word(union, "b")))
	assert.False(t, Accepts(union, word(union, "")))

	assert.True(t, Accepts(inter, word(inter, "ab")))
	assert.False(t, Accepts(inter, word(inter, "a")))

	assert.True(t, Accepts(comp, word(comp, "")))
	assert.False(t, Accepts(comp, word(comp, "a")))
}
