package pda

import "github.com/baobabgit/automata/internal/symtab"

// TransitionSpec names a single transition by external state/symbol names,
// for use with Build — mirroring fa.EdgeSpec.
type TransitionSpec struct {
	From  string
	Input string // "" for an ε-move
	Pop   string
	To    string
	Push  []string // bottom-to-top; empty pops without pushing
}

// Build constructs a PDA from external names, resolving them through fresh
// symbol tables. flavor selects whether the static determinism check runs;
// build fails with *DeterminismConflict if flavor == DPDA and the check
// fails.
func Build(states, inputAlphabet, stackAlphabet []string, transitions []TransitionSpec,
	initial, bottom string, finals []string, flavor Flavor, mode AcceptMode) (*PDA, error) {

	stateTab := symtab.New()
	for _, s := range states {
		stateTab.Intern(s)
	}
	if stateTab.Lookup(initial) == symtab.Invalid {
		return nil, &InvalidAutomatonError{Reason: "initial state not declared"}
	}

	inputTab := symtab.New()
	inputTab.Intern("\x00epsilon")
	for _, s := range inputAlphabet {
		inputTab.Intern(s)
	}

	stackTab := symtab.New()
	for _, s := range stackAlphabet {
		stackTab.Intern(s)
	}
	bottomID := stackTab.Lookup(bottom)
	if bottomID == symtab.Invalid {
		return nil, &InvalidAutomatonError{Reason: "bottom stack symbol not declared"}
	}

	finalSet := make(map[StateID]bool, len(finals))
	for _, f := range finals {
		id := stateTab.Lookup(f)
		if id == symtab.Invalid {
			return nil, &InvalidAutomatonError{Reason: "final state not declared: " + f}
		}
		finalSet[id] = true
	}

	byFrom := make(map[StateID][]Transition)
	for _, t := range transitions {
		from := stateTab.Lookup(t.From)
		to := stateTab.Lookup(t.To)
		if from == symtab.Invalid || to == symtab.Invalid {
			return nil, &InvalidAutomatonError{Reason: "transition references undeclared state"}
		}
		input := Epsilon
		if t.Input != "" {
			input = inputTab.Lookup(t.Input)
			if input == symtab.Invalid {
				return nil, &InvalidAutomatonError{Reason: "transition references undeclared input symbol: " + t.Input}
			}
		}
		pop := stackTab.Lookup(t.Pop)
		if pop == symtab.Invalid {
			return nil, &InvalidAutomatonError{Reason: "transition references undeclared stack symbol: " + t.Pop}
		}
		push := make([]SymbolID, len(t.Push))
		for i, sym := range t.Push {
			id := stackTab.Lookup(sym)
			if id == symtab.Invalid {
				return nil, &InvalidAutomatonError{Reason: "transition pushes undeclared stack symbol: " + sym}
			}
			push[i] = id
		}
		byFrom[from] = append(byFrom[from], Transition{From: from, Input: input, Pop: pop, To: to, Push: push})
	}

	p := &PDA{
		flavor:    flavor,
		numStates: stateTab.Len(),
		input:     inputTab,
		stack:     stackTab,
		byFrom:    byFrom,
		initial:   stateTab.Lookup(initial),
		bottom:    bottomID,
		finals:    finalSet,
		accept:    mode,
	}

	if flavor == DPDA {
		if conflict := checkDeterminism(p); conflict != nil {
			return nil, conflict
		}
	}

	return p, nil
}
