// Package recognize implements the CYK and Earley recognizers over
// grammar.CFG values, plus bounded ambiguity detection, per spec.md §4.6
// (C7).
package recognize

import "github.com/baobabgit/automata/grammar"

// Outcome is the uniform recognition result, mirroring the tagged-result
// convention used by fa.Accepts and pda.Accepts.
type Outcome int

const (
	Reject Outcome = iota
	Accept
)

func (o Outcome) String() string {
	if o == Accept {
		return "accept"
	}
	return "reject"
}

// Span is a half-open range [Lo, Hi) over the input word.
type Span struct {
	Lo, Hi int
}
