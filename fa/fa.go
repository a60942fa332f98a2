// Package fa implements the finite-automaton kernel: the DFA/NFA/εNFA data
// model, recognition, ε-closure, subset construction, Hopcroft
// minimization, and the boolean/product language operations, per spec.md
// §4.2 (C3).
//
// Following the teacher's (coregx/nfa) convention, state and symbol
// identity is a dense, zero-based integer ID with no back-pointers — an FA
// is a flat value built once and never mutated; every operation returns a
// fresh FA.
package fa

import "github.com/baobabgit/automata/internal/symtab"

// StateID identifies a state within a single FA.
type StateID = symtab.ID

// SymbolID identifies an alphabet symbol within a single FA.
type SymbolID = symtab.ID

// Epsilon is the reserved symbol ID denoting the empty transition. It is
// never a member of an FA's declared alphabet (spec.md §3.1).
const Epsilon SymbolID = 0

// InvalidState marks the absence of a state, mirroring nfa.InvalidState in
// the teacher.
const InvalidState StateID = symtab.Invalid

// Flavor tags which of the three finite-automaton families an FA is.
// A small tagged union replaces the deep class hierarchy the source
// language used (spec.md §9 "Deep class hierarchies ... Replaced by a
// small tagged union per machine family").
type Flavor uint8

const (
	DFA Flavor = iota
	NFA
	EpsilonNFA
)

// String returns a human-readable flavor name.
func (f Flavor) String() string {
	switch f {
	case DFA:
		return "DFA"
	case NFA:
		return "NFA"
	case EpsilonNFA:
		return "EpsilonNFA"
	default:
		return "Unknown"
	}
}

// Transition is a single (from, symbol, to) edge. symbol == Epsilon is only
// legal when the owning FA's flavor is EpsilonNFA.
type Transition struct {
	From   StateID
	Symbol SymbolID
	To     StateID
}

// FA is the tuple (Q, Σ, δ, q₀, F, flavor) of spec.md §3.1. It is
// immutable after construction; every exported operation on it returns a
// new FA rather than mutating the receiver.
type FA struct {
	flavor    Flavor
	numStates int
	alphabet  *symtab.Table // symbol name table; ID 0 reserved for Epsilon
	byFrom    map[StateID]map[SymbolID][]StateID
	initial   StateID
	finals    map[StateID]bool
}

// NumStates returns |Q|.
func (a *FA) NumStates() int { return a.numStates }

// Flavor returns the automaton's flavor.
func (a *FA) Flavor() Flavor { return a.flavor }

// Initial returns q₀.
func (a *FA) Initial() StateID { return a.initial }

// IsFinal reports whether q ∈ F.
func (a *FA) IsFinal(q StateID) bool { return a.finals[q] }

// Alphabet returns the symbol names declared for this FA, in ID order.
// Epsilon (ID 0) is never included.
func (a *FA) Alphabet() []string { return a.alphabet.Names()[1:] }

// AlphabetSize returns |Σ| (excluding ε).
func (a *FA) AlphabetSize() int { return a.alphabet.Len() - 1 }

// SymbolID returns the dense ID for a declared alphabet symbol, or
// symtab.Invalid if name was never declared.
func (a *FA) SymbolID(name string) SymbolID { return a.alphabet.Lookup(name) }

// Targets returns δ(from, symbol). For a DFA this has at most one element;
// for NFA/εNFA it may have several.
func (a *FA) Targets(from StateID, symbol SymbolID) []StateID {
	row, ok := a.byFrom[from]
	if !ok {
		return nil
	}
	return row[symbol]
}

// Finals returns the set of accepting states.
func (a *FA) Finals() map[StateID]bool {
	out := make(map[StateID]bool, len(a.finals))
	for q := range a.finals {
		out[q] = true
	}
	return out
}

// Snapshot is the canonical structured representation of an FA, the
// contract collaborators round-trip against (spec.md §6).
type Snapshot struct {
	Flavor      string
	States      []StateID
	Alphabet    []string
	Transitions []SnapshotTransition
	Initial     StateID
	Finals      []StateID
}

// SnapshotTransition is a single edge in a Snapshot. Symbol is "" for an
// epsilon transition.
type SnapshotTransition struct {
	From   StateID
	Symbol string
	To     StateID
}

// Snapshot renders the FA into its canonical structured value.
func (a *FA) Snapshot() Snapshot {
	s := Snapshot{
		Flavor:   a.flavor.String(),
		Alphabet: a.Alphabet(),
		Initial:  a.initial,
	}
	for q := StateID(0); int(q) < a.numStates; q++ {
		s.States = append(s.States, q)
		if a.finals[q] {
			s.Finals = append(s.Finals, q)
		}
	}
	for from, row := range a.byFrom {
		for sym, tos := range row {
			name := ""
			if sym != Epsilon {
				name = a.alphabet.Name(sym)
			}
			for _, to := range tos {
				s.Transitions = append(s.Transitions, SnapshotTransition{from, name, to})
			}
		}
	}
	return s
}
