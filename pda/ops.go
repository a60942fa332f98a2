package pda

import "github.com/baobabgit/automata/internal/symtab"

// Language operations follow spec.md §4.4's textbook new-initial-state
// construction and always produce an NPDA, even when both operands are
// DPDAs (the DPDA constructor may reject the result, which the spec
// permits). They assume AcceptFinalState semantics; callers combining
// AcceptEmptyStack automata should convert to AcceptFinalState first.

func mergedInputTable(a, b *PDA) *symtab.Table {
	t := symtab.New()
	t.Intern("\x00epsilon")
	seen := map[string]bool{}
	for _, name := range a.input.Names()[1:] {
		if !seen[name] {
			seen[name] = true
			t.Intern(name)
		}
	}
	for _, name := range b.input.Names()[1:] {
		if !seen[name] {
			seen[name] = true
			t.Intern(name)
		}
	}
	return t
}

func mergedStackTable(a, b *PDA) *symtab.Table {
	t := symtab.New()
	seen := map[string]bool{}
	for _, name := range a.stack.Names() {
		if !seen[name] {
			seen[name] = true
			t.Intern(name)
		}
	}
	for _, name := range b.stack.Names() {
		if !seen[name] {
			seen[name] = true
			t.Intern(name)
		}
	}
	return t
}

// shiftedCopy relabels every transition of p with states offset by
// stateOffset and symbols remapped by name into the combined tables.
func shiftedCopy(p *PDA, stateOffset int, input, stack *symtab.Table) map[StateID][]Transition {
	out := make(map[StateID][]Transition, p.numStates)
	for q := StateID(0); int(q) < p.numStates; q++ {
		for _, t := range p.byFrom[q] {
			newInput := Epsilon
			if t.Input != Epsilon {
				newInput = input.Lookup(p.input.Name(t.Input))
			}
			newPush := make([]SymbolID, len(t.Push))
			for i, sym := range t.Push {
				newPush[i] = stack.Lookup(p.stack.Name(sym))
			}
			nt := Transition{
				From:   StateID(stateOffset) + t.From,
				Input:  newInput,
				Pop:    stack.Lookup(p.stack.Name(t.Pop)),
				To:     StateID(stateOffset) + t.To,
				Push:   newPush,
				Weight: t.Weight,
			}
			out[nt.From] = append(out[nt.From], nt)
		}
	}
	return out
}

func merge(into map[StateID][]Transition, from map[StateID][]Transition) {
	for q, ts := range from {
		into[q] = append(into[q], ts...)
	}
}

// Union returns an NPDA accepting L(a) ∪ L(b).
func Union(a, b *PDA) *PDA {
	input := mergedInputTable(a, b)
	stack := mergedStackTable(a, b)
	newBottom := stack.Intern("\x00bottom-union")

	offsetB := a.numStates
	newStart := StateID(offsetB + b.numStates)

	byFrom := shiftedCopy(a, 0, input, stack)
	merge(byFrom, shiftedCopy(b, offsetB, input, stack))

	aBottom := stack.Lookup(a.stack.Name(a.bottom))
	bBottom := stack.Lookup(b.stack.Name(b.bottom))
	byFrom[newStart] = []Transition{
		{From: newStart, Input: Epsilon, Pop: newBottom, To: a.initial, Push: []SymbolID{aBottom}},
		{From: newStart, Input: Epsilon, Pop: newBottom, To: StateID(offsetB) + b.initial, Push: []SymbolID{bBottom}},
	}

	finals := make(map[StateID]bool, len(a.finals)+len(b.finals))
	for q := range a.finals {
		finals[q] = true
	}
	for q := range b.finals {
		finals[StateID(offsetB)+q] = true
	}

	return &PDA{
		flavor:    NPDA,
		numStates: a.numStates + b.numStates + 1,
		input:     input,
		stack:     stack,
		byFrom:    byFrom,
		initial:   newStart,
		bottom:    newBottom,
		finals:    finals,
		accept:    AcceptFinalState,
	}
}

// Concatenation returns an NPDA accepting L(a)·L(b): every accepting
// state of a gets an ε-move that, with a's bottom marker on top, replaces
// it by b's bottom marker and enters b's initial state.
func Concatenation(a, b *PDA) *PDA {
	input := mergedInputTable(a, b)
	stack := mergedStackTable(a, b)

	offsetB := a.numStates
	byFrom := shiftedCopy(a, 0, input, stack)
	merge(byFrom, shiftedCopy(b, offsetB, input, stack))

	bBottom := stack.Lookup(b.stack.Name(b.bottom))
	aBottom := stack.Lookup(a.stack.Name(a.bottom))
	for q := range a.finals {
		byFrom[q] = append(byFrom[q], Transition{
			From: q, Input: Epsilon, Pop: aBottom, To: StateID(offsetB) + b.initial, Push: []SymbolID{bBottom},
		})
	}

	finals := make(map[StateID]bool, len(b.finals))
	for q := range b.finals {
		finals[StateID(offsetB)+q] = true
	}

	return &PDA{
		flavor:    NPDA,
		numStates: a.numStates + b.numStates,
		input:     input,
		stack:     stack,
		byFrom:    byFrom,
		initial:   a.initial,
		bottom:    aBottom,
		finals:    finals,
		accept:    AcceptFinalState,
	}
}

// KleeneStar returns an NPDA accepting L(a)*: a fresh start state, also
// final, that either does nothing (matching ε) or hands off to a's start;
// a's accepting states loop back to a's own start (by an ε-move that pops
// and re-pushes a's bottom marker).
func KleeneStar(a *PDA) *PDA {
	stack := symtab.New()
	for _, name := range a.stack.Names() {
		stack.Intern(name)
	}
	newBottom := stack.Intern("\x00bottom-star")

	byFrom := shiftedCopy(a, 0, a.input, stack)
	newStart := StateID(a.numStates)
	aBottom := stack.Lookup(a.stack.Name(a.bottom))

	byFrom[newStart] = []Transition{
		{From: newStart, Input: Epsilon, Pop: newBottom, To: a.initial, Push: []SymbolID{aBottom}},
	}
	for q := range a.finals {
		byFrom[q] = append(byFrom[q], Transition{
			From: q, Input: Epsilon, Pop: aBottom, To: a.initial, Push: []SymbolID{aBottom},
		})
	}

	finals := map[StateID]bool{newStart: true}
	for q := range a.finals {
		finals[q] = true
	}

	return &PDA{
		flavor:    NPDA,
		numStates: a.numStates + 1,
		input:     a.input,
		stack:     stack,
		byFrom:    byFrom,
		initial:   newStart,
		bottom:    newBottom,
		finals:    finals,
		accept:    AcceptFinalState,
	}
}
