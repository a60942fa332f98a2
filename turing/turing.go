// Package turing implements the Turing kernel: the DTM/NTM/multi-tape
// data model, the shared step semantics, and bounded DFS/BFS simulation,
// per spec.md §4.8 (C9).
package turing

import "github.com/baobabgit/automata/internal/symtab"

// StateID identifies a state within a single TM.
type StateID = symtab.ID

// SymbolID identifies a symbol within either the input alphabet Σ or the
// tape alphabet Γ, depending on which table it was interned against.
type SymbolID = symtab.ID

// InvalidState marks the absence of a state.
const InvalidState StateID = symtab.Invalid

// Move is one of the three head motions a transition may apply to a tape.
type Move uint8

const (
	Left Move = iota
	Right
	Stay
)

func (m Move) String() string {
	switch m {
	case Left:
		return "L"
	case Right:
		return "R"
	default:
		return "S"
	}
}

// Flavor tags whether a TM's transition function is known-deterministic
// (single applicable rule per (state, read-vector)) or general
// nondeterministic, mirroring fa.Flavor and pda.Flavor's tagged-union
// approach.
type Flavor uint8

const (
	DTM Flavor = iota
	NTM
)

func (f Flavor) String() string {
	if f == NTM {
		return "NTM"
	}
	return "DTM"
}

// Transition is one element of δ(q, read) = (to, write, moves), vectorized
// over TapeCount tapes — TapeCount == 1 recovers the ordinary single-tape
// machine. Weight orders, but never suppresses, alternatives during NTM
// exploration (spec.md §4.8's "Ordering").
type Transition struct {
	From   StateID
	Read   []SymbolID
	To     StateID
	Write  []SymbolID
	Moves  []Move
	Weight float64
}

// TM is the tuple (Q, Σ, Γ, δ, q₀, q_accept, q_reject, b, tape_count) of
// spec.md §3.2. Immutable after construction.
type TM struct {
	flavor    Flavor
	tapeCount int
	numStates int
	states    *symtab.Table
	input     *symtab.Table
	tape      *symtab.Table
	byFrom    map[StateID][]Transition
	initial   StateID
	accept    StateID
	reject    StateID
	blanks    []SymbolID
}

func (m *TM) NumStates() int     { return m.numStates }
func (m *TM) Flavor() Flavor     { return m.flavor }
func (m *TM) TapeCount() int     { return m.tapeCount }
func (m *TM) Initial() StateID   { return m.initial }
func (m *TM) Accept() StateID    { return m.accept }
func (m *TM) Reject() StateID    { return m.reject }
func (m *TM) Blank(tape int) SymbolID { return m.blanks[tape] }

// States returns every declared state name, in interning order.
func (m *TM) States() []string { return m.states.Names() }

// StateName resolves a state ID back to its declared name.
func (m *TM) StateName(id StateID) string { return m.states.Name(id) }

// StateID resolves a state name to its dense ID.
func (m *TM) StateID(name string) StateID { return m.states.Lookup(name) }

func (m *TM) InputAlphabet() []string { return m.input.Names() }
func (m *TM) TapeAlphabet() []string  { return m.tape.Names() }

// InputSymbolID resolves an input-alphabet name to its dense ID.
func (m *TM) InputSymbolID(name string) SymbolID { return m.input.Lookup(name) }

// TapeSymbolID resolves a tape-alphabet name to its dense ID.
func (m *TM) TapeSymbolID(name string) SymbolID { return m.tape.Lookup(name) }

// Transitions returns every transition out of q, in construction order.
func (m *TM) Transitions(q StateID) []Transition { return m.byFrom[q] }

// Lookup returns every transition out of q whose Read vector exactly
// matches read. A DTM-flavored TM is guaranteed by Build to return at
// most one.
func (m *TM) Lookup(q StateID, read []SymbolID) []Transition {
	var out []Transition
	for _, t := range m.byFrom[q] {
		if equalIDs(t.Read, read) {
			out = append(out, t)
		}
	}
	return out
}

func equalIDs(a, b []SymbolID) bool {
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

// Snapshot is the canonical structured representation of a TM (spec.md
// §6's "canonical structured value" contract).
type Snapshot struct {
	Flavor        string
	States        []StateID
	InputAlphabet []string
	TapeAlphabets []string
	BlankSymbols  []string
	Transitions   []Transition
	Initial       StateID
	Accept        StateID
	Reject        StateID
}

// Snapshot renders the TM into its canonical structured value.
func (m *TM) Snapshot() Snapshot {
	s := Snapshot{
		Flavor:        m.flavor.String(),
		InputAlphabet: m.InputAlphabet(),
		TapeAlphabets: m.TapeAlphabet(),
		Initial:       m.initial,
		Accept:        m.accept,
		Reject:        m.reject,
	}
	for _, b := range m.blanks {
		s.BlankSymbols = append(s.BlankSymbols, m.tape.Name(b))
	}
	for q := StateID(0); int(q) < m.numStates; q++ {
		s.States = append(s.States, q)
		s.Transitions = append(s.Transitions, m.byFrom[q]...)
	}
	return s
}
