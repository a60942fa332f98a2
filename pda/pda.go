// Package pda implements the pushdown kernel: the PDA/DPDA/NPDA data
// model, bounded BFS simulation, the DPDA determinism static check, and
// the textbook language operations (union, concatenation, Kleene star),
// per spec.md §4.4 (C5).
package pda

import "github.com/baobabgit/automata/internal/symtab"

// StateID identifies a state within a single PDA.
type StateID = symtab.ID

// SymbolID identifies either an input-alphabet symbol or a stack-alphabet
// symbol, depending on which table it was interned against — the two
// tables are kept separate so one automaton's Σ and Γ never collide.
type SymbolID = symtab.ID

// Epsilon is the reserved input-symbol ID for an ε-move. It is never a
// member of the declared input alphabet.
const Epsilon SymbolID = 0

// InvalidState marks the absence of a state.
const InvalidState StateID = symtab.Invalid

// Flavor tags whether a PDA is known-deterministic or general
// nondeterministic, mirroring fa.Flavor's tagged-union approach in place
// of a class hierarchy.
type Flavor uint8

const (
	NPDA Flavor = iota
	DPDA
)

func (f Flavor) String() string {
	if f == DPDA {
		return "DPDA"
	}
	return "NPDA"
}

// AcceptMode selects how acceptance is judged at the end of input.
type AcceptMode uint8

const (
	AcceptFinalState AcceptMode = iota
	AcceptEmptyStack
)

// Transition is one element of δ(q, a|ε, Z): on reading a (or ε) with Z on
// top of the stack, pop Z and push Push (in bottom-to-top order, so
// Push[len(Push)-1] ends up on top), moving to To. Weight orders — but
// never suppresses — branches during NPDA simulation (spec.md §4.4
// "Ordering").
type Transition struct {
	From   StateID
	Input  SymbolID // Epsilon for an ε-move
	Pop    SymbolID
	To     StateID
	Push   []SymbolID
	Weight float64
}

// PDA is the tuple (Q, Σ, Γ, δ, q₀, Z₀, F, determinism) of spec.md §3.1.
// Immutable after construction.
type PDA struct {
	flavor    Flavor
	numStates int
	input     *symtab.Table
	stack     *symtab.Table
	byFrom    map[StateID][]Transition
	initial   StateID
	bottom    SymbolID
	finals    map[StateID]bool
	accept    AcceptMode
}

func (p *PDA) NumStates() int          { return p.numStates }
func (p *PDA) Flavor() Flavor          { return p.flavor }
func (p *PDA) Initial() StateID        { return p.initial }
func (p *PDA) Bottom() SymbolID        { return p.bottom }
func (p *PDA) IsFinal(q StateID) bool  { return p.finals[q] }
func (p *PDA) AcceptMode() AcceptMode  { return p.accept }
func (p *PDA) InputAlphabet() []string { return p.input.Names()[1:] }
func (p *PDA) StackAlphabet() []string { return p.stack.Names() }

// InputSymbolID resolves an input-alphabet name to its dense ID.
func (p *PDA) InputSymbolID(name string) SymbolID { return p.input.Lookup(name) }

// StackSymbolID resolves a stack-alphabet name to its dense ID.
func (p *PDA) StackSymbolID(name string) SymbolID { return p.stack.Lookup(name) }

// Transitions returns every transition out of q, in construction order.
func (p *PDA) Transitions(q StateID) []Transition { return p.byFrom[q] }

// Snapshot is the canonical structured representation of a PDA (spec.md
// §6's "canonical structured value" contract).
type Snapshot struct {
	Flavor        string
	States        []StateID
	InputAlphabet []string
	StackAlphabet []string
	Transitions   []Transition
	Initial       StateID
	Bottom        string
	Finals        []StateID
	AcceptMode    string
}

func (a AcceptMode) String() string {
	if a == AcceptEmptyStack {
		return "AcceptEmptyStack"
	}
	return "AcceptFinalState"
}

// Snapshot renders the PDA into its canonical structured value.
func (p *PDA) Snapshot() Snapshot {
	s := Snapshot{
		Flavor:        p.flavor.String(),
		InputAlphabet: p.InputAlphabet(),
		StackAlphabet: p.StackAlphabet(),
		Initial:       p.initial,
		Bottom:        p.stack.Name(p.bottom),
		AcceptMode:    p.accept.String(),
	}
	for q := StateID(0); int(q) < p.numStates; q++ {
		s.States = append(s.States, q)
		if p.finals[q] {
			s.Finals = append(s.Finals, q)
		}
		s.Transitions = append(s.Transitions, p.byFrom[q]...)
	}
	return s
}
