package fa

import "github.com/baobabgit/automata/internal/symtab"

// Builder constructs an εNFA incrementally using a low-level,
// single-entry/single-exit fragment style, mirroring the teacher's
// nfa.Builder. It is the construction primitive the rx package's Thompson
// compiler is built on (spec.md §4.3: "Single-entry single-exit ε-NFA
// fragments composed inductively").
type Builder struct {
	alphabet *symtab.Table
	byFrom   map[StateID]map[SymbolID][]StateID
	count    int
}

// NewBuilder creates an empty Builder over the given alphabet symbol names.
func NewBuilder(alphabetNames []string) *Builder {
	t := symtab.New()
	t.Intern("\x00epsilon")
	for _, name := range alphabetNames {
		t.Intern(name)
	}
	return &Builder{alphabet: t, byFrom: make(map[StateID]map[SymbolID][]StateID)}
}

// Symbol interns (or looks up) an alphabet symbol name, returning its ID.
func (b *Builder) Symbol(name string) SymbolID {
	return b.alphabet.Intern(name)
}

// AddState allocates a fresh state with no outgoing transitions and
// returns its ID.
func (b *Builder) AddState() StateID {
	id := StateID(b.count)
	b.count++
	return id
}

// AddEdge installs a transition from -sym-> to. sym == Epsilon is always
// legal (the builder's product is always an εNFA).
func (b *Builder) AddEdge(from StateID, sym SymbolID, to StateID) {
	row, ok := b.byFrom[from]
	if !ok {
		row = make(map[SymbolID][]StateID)
		b.byFrom[from] = row
	}
	row[sym] = append(row[sym], to)
}

// Finish renders the builder's states into an εNFA with the given initial
// state and final-state set.
func (b *Builder) Finish(initial StateID, finals []StateID) *FA {
	finalSet := make(map[StateID]bool, len(finals))
	for _, f := range finals {
		finalSet[f] = true
	}
	return &FA{
		flavor:    EpsilonNFA,
		numStates: b.count,
		alphabet:  b.alphabet,
		byFrom:    b.byFrom,
		initial:   initial,
		finals:    finalSet,
	}
}
