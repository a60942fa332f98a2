package fa

import "github.com/baobabgit/automata/internal/symtab"

// EdgeSpec is a single named transition as supplied by a caller building an
// FA from external names. Symbol == "" denotes ε and is only legal when
// flavor == EpsilonNFA.
type EdgeSpec struct {
	From   string
	Symbol string
	To     string
}

// Build constructs an FA from external names, interning states and
// alphabet symbols into dense IDs (spec.md §6 build_fa).
//
// Validation performed here, each failure returning *InvalidAutomatonError:
//   - initial must be present in states
//   - every symbol used in transitions (other than ε) must appear in
//     alphabet
//   - every state referenced by a transition, by initial, or by finals
//     must appear in states
//   - ε-symbols are rejected unless flavor == EpsilonNFA
//   - for flavor == DFA, at most one target per (state, symbol) pair
//
// For flavor == DFA, δ is completed with an implicit sink state for any
// (state, symbol) pair with no declared transition, per spec.md §3.1.
func Build(states, alphabet []string, transitions []EdgeSpec, initial string, finals []string, flavor Flavor) (*FA, error) {
	stateTab := symtab.New()
	for _, s := range states {
		stateTab.Intern(s)
	}
	if stateTab.Lookup(initial) == symtab.Invalid {
		return nil, &InvalidAutomatonError{Reason: "initial state " + initial + " not declared"}
	}

	symTab := symtab.New()
	symTab.Intern("\x00epsilon") // reserve ID 0 == Epsilon
	for _, s := range alphabet {
		symTab.Intern(s)
	}

	byFrom := make(map[StateID]map[SymbolID][]StateID)
	for _, e := range transitions {
		fromID := stateTab.Lookup(e.From)
		if fromID == symtab.Invalid {
			return nil, &InvalidAutomatonError{Reason: "transition references undeclared state " + e.From}
		}
		toID := stateTab.Lookup(e.To)
		if toID == symtab.Invalid {
			return nil, &InvalidAutomatonError{Reason: "transition references undeclared state " + e.To}
		}

		var symID SymbolID
		if e.Symbol == "" {
			if flavor != EpsilonNFA {
				return nil, &InvalidAutomatonError{Reason: "epsilon transition in non-epsilon automaton"}
			}
			symID = Epsilon
		} else {
			symID = symTab.Lookup(e.Symbol)
			if symID == symtab.Invalid {
				return nil, &InvalidAutomatonError{Reason: "transition references undeclared symbol " + e.Symbol}
			}
		}

		if flavor == DFA {
			if existing := byFrom[fromID][symID]; len(existing) > 0 {
				return nil, &InvalidAutomatonError{Reason: "DFA has multiple targets for the same (state, symbol) pair"}
			}
		}

		row, ok := byFrom[fromID]
		if !ok {
			row = make(map[SymbolID][]StateID)
			byFrom[fromID] = row
		}
		row[symID] = append(row[symID], toID)
	}

	finalSet := make(map[StateID]bool, len(finals))
	for _, f := range finals {
		id := stateTab.Lookup(f)
		if id == symtab.Invalid {
			return nil, &InvalidAutomatonError{Reason: "final state " + f + " not declared"}
		}
		finalSet[id] = true
	}

	numStates := stateTab.Len()

	if flavor == DFA {
		completeSink(stateTab, symTab, byFrom, &numStates)
	}

	return &FA{
		flavor:    flavor,
		numStates: numStates,
		alphabet:  symTab,
		byFrom:    byFrom,
		initial:   stateTab.Lookup(initial),
		finals:    finalSet,
	}, nil
}

// completeSink adds a single dead-end sink state and routes every missing
// (state, symbol) pair to it, making δ total as spec.md §3.1 requires.
func completeSink(stateTab, symTab *symtab.Table, byFrom map[StateID]map[SymbolID][]StateID, numStates *int) {
	alphabetSize := symTab.Len() - 1 // exclude Epsilon
	if alphabetSize == 0 {
		return
	}

	missing := false
outer:
	for q := StateID(0); int(q) < *numStates; q++ {
		for a := SymbolID(1); int(a) <= alphabetSize; a++ {
			if len(byFrom[q][a]) == 0 {
				missing = true
				break outer
			}
		}
	}
	if !missing {
		return
	}

	sink := stateTab.Intern("\x00sink")
	*numStates = stateTab.Len()

	for q := StateID(0); int(q) < *numStates; q++ {
		for a := SymbolID(1); int(a) <= alphabetSize; a++ {
			if len(byFrom[q][a]) == 0 {
				row, ok := byFrom[q]
				if !ok {
					row = make(map[SymbolID][]StateID)
					byFrom[q] = row
				}
				row[a] = []StateID{sink}
			}
		}
	}
}
