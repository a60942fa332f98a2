package fa

import "github.com/baobabgit/automata/internal/symtab"

// Homomorphism applies h, mapping each of a's alphabet symbols to a
// (possibly empty, possibly multi-symbol) word over a new alphabet, by
// substituting every edge labeled a with h(a), threading through freshly
// introduced intermediate states whenever |h(a)| != 1 (spec.md §4.2). h
// maps symbol names to sequences of output symbol names; a symbol absent
// from h is left unmapped (treated as h(a) = [a]).
func Homomorphism(a *FA, h map[string][]string) *FA {
	alphabet := symtab.New()
	alphabet.Intern("\x00epsilon")
	for _, word := range h {
		for _, sym := range word {
			alphabet.Intern(sym)
		}
	}
	for _, name := range a.Alphabet() {
		if _, mapped := h[name]; !mapped {
			alphabet.Intern(name)
		}
	}

	byFrom := make(map[StateID]map[SymbolID][]StateID)
	nextState := StateID(a.numStates)
	addEdge := func(from StateID, sym SymbolID, to StateID) {
		if byFrom[from] == nil {
			byFrom[from] = make(map[SymbolID][]StateID)
		}
		byFrom[from][sym] = append(byFrom[from][sym], to)
	}

	for from, row := range a.byFrom {
		for sym, tos := range row {
			for _, to := range tos {
				if sym == Epsilon {
					addEdge(from, Epsilon, to)
					continue
				}
				word, mapped := h[a.alphabet.Name(sym)]
				if !mapped {
					addEdge(from, alphabet.Lookup(a.alphabet.Name(sym)), to)
					continue
				}
				switch len(word) {
				case 0:
					addEdge(from, Epsilon, to)
				case 1:
					addEdge(from, alphabet.Lookup(word[0]), to)
				default:
					cur := from
					for i := 0; i < len(word)-1; i++ {
						mid := nextState
						nextState++
						addEdge(cur, alphabet.Lookup(word[i]), mid)
						cur = mid
					}
					addEdge(cur, alphabet.Lookup(word[len(word)-1]), to)
				}
			}
		}
	}

	finals := make(map[StateID]bool, len(a.finals))
	for q := range a.finals {
		finals[q] = true
	}

	return &FA{
		flavor:    EpsilonNFA,
		numStates: int(nextState),
		alphabet:  alphabet,
		byFrom:    byFrom,
		initial:   a.initial,
		finals:    finals,
	}
}

// walk returns the set of states reachable from start by consuming word
// exactly (for an εNFA, with the ε-closure taken before the first symbol
// and after each step), used internally by InverseHomomorphism to trace
// h(a) through a.
func walk(a *FA, start StateID, word []SymbolID) map[StateID]bool {
	frontier := map[StateID]bool{start: true}
	if a.flavor == EpsilonNFA {
		frontier = epsilonClosure(a, frontier)
	}
	for _, sym := range word {
		next := make(map[StateID]bool)
		for q := range frontier {
			for _, to := range a.Targets(q, sym) {
				next[to] = true
			}
		}
		if a.flavor == EpsilonNFA {
			next = epsilonClosure(a, next)
		}
		frontier = next
		if len(frontier) == 0 {
			break
		}
	}
	return frontier
}

// InverseHomomorphism builds the NFA recognizing h⁻¹(L(a)): a new
// alphabet Σ (the domain of h) over a's original states, with an edge
// q -a-> q' whenever tracing h(a) through a from q can end in q'
// (spec.md §4.2).
func InverseHomomorphism(a *FA, h map[string][]string) *FA {
	alphabet := symtab.New()
	alphabet.Intern("\x00epsilon")
	for name := range h {
		alphabet.Intern(name)
	}

	byFrom := make(map[StateID]map[SymbolID][]StateID)
	for from := StateID(0); int(from) < a.numStates; from++ {
		for name, word := range h {
			symIDs := make([]SymbolID, len(word))
			for i, s := range word {
				symIDs[i] = a.SymbolID(s)
			}
			reached := walk(a, from, symIDs)
			if len(reached) == 0 {
				continue
			}
			sym := alphabet.Lookup(name)
			for to := range reached {
				if byFrom[from] == nil {
					byFrom[from] = make(map[SymbolID][]StateID)
				}
				byFrom[from][sym] = append(byFrom[from][sym], to)
			}
		}
	}

	finals := make(map[StateID]bool, len(a.finals))
	for q := range a.finals {
		finals[q] = true
	}

	return &FA{
		flavor:    NFA,
		numStates: a.numStates,
		alphabet:  alphabet,
		byFrom:    byFrom,
		initial:   a.initial,
		finals:    finals,
	}
}
