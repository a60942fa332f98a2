package fa

import "github.com/baobabgit/automata/internal/symtab"

// mergedAlphabet returns the union, by name, of a's and b's declared
// alphabets (Epsilon excluded from both, re-reserved once in the result).
func mergedAlphabet(a, b *FA) *symtab.Table {
	t := symtab.New()
	t.Intern("\x00epsilon")
	for _, name := range a.Alphabet() {
		t.Intern(name)
	}
	for _, name := range b.Alphabet() {
		t.Intern(name)
	}
	return t
}

// alignToAlphabet returns a DFA equivalent to a (which must already be
// total over its own alphabet) re-expressed over combined: symbols outside
// a's original alphabet are treated as undefined and routed to a fresh
// sink state, and a's own symbols are remapped to combined's IDs.
func alignToAlphabet(a *FA, combined *symtab.Table) *FA {
	total := ensureTotal(a)

	localToCombined := make(map[SymbolID]SymbolID)
	for _, name := range total.Alphabet() {
		localToCombined[total.SymbolID(name)] = combined.Lookup(name)
	}

	byFrom := make(map[StateID]map[SymbolID][]StateID, total.numStates)
	for from, row := range total.byFrom {
		newRow := make(map[SymbolID][]StateID, len(row))
		for sym, tos := range row {
			newRow[localToCombined[sym]] = append([]StateID(nil), tos...)
		}
		byFrom[from] = newRow
	}

	numStates := total.numStates
	combinedSize := combined.Len() - 1
	missing := false
	for q := 0; q < numStates && !missing; q++ {
		for sym := SymbolID(1); int(sym) <= combinedSize; sym++ {
			if len(byFrom[StateID(q)][sym]) == 0 {
				missing = true
				break
			}
		}
	}
	if missing {
		sink := StateID(numStates)
		numStates++
		for q := 0; q < numStates; q++ {
			row := byFrom[StateID(q)]
			if row == nil {
				row = make(map[SymbolID][]StateID)
				byFrom[StateID(q)] = row
			}
			for sym := SymbolID(1); int(sym) <= combinedSize; sym++ {
				if len(row[sym]) == 0 {
					row[sym] = []StateID{sink}
				}
			}
		}
	}

	finals := make(map[StateID]bool, len(total.finals))
	for q := range total.finals {
		finals[q] = true
	}

	return &FA{
		flavor:    DFA,
		numStates: numStates,
		alphabet:  combined,
		byFrom:    byFrom,
		initial:   total.initial,
		finals:    finals,
	}
}
