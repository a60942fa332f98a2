package fa

import "github.com/baobabgit/automata/internal/symtab"

// product builds the synchronous product of two total, alphabet-aligned
// DFAs, tagging each reachable pair-state final according to accept, which
// inspects (aFinal, bFinal) and decides whether the combined state should
// be accepting. This single helper backs Union, Intersection, Difference,
// and SymmetricDifference (spec.md §4.2).
func product(a, b *FA, accept func(aFinal, bFinal bool) bool) *FA {
	combinedAlphabet := mergedAlphabet(a, b)
	ta := alignToAlphabet(a, combinedAlphabet)
	tb := alignToAlphabet(b, combinedAlphabet)
	alphabetSize := combinedAlphabet.Len() - 1

	type pair struct{ a, b StateID }
	idOf := map[pair]StateID{{ta.initial, tb.initial}: 0}
	order := []pair{{ta.initial, tb.initial}}
	byFrom := make(map[StateID]map[SymbolID][]StateID)
	finals := make(map[StateID]bool)

	for i := 0; i < len(order); i++ {
		cur := order[i]
		curID := idOf[cur]
		if accept(ta.IsFinal(cur.a), tb.IsFinal(cur.b)) {
			finals[curID] = true
		}
		for sym := SymbolID(1); int(sym) <= alphabetSize; sym++ {
			aTargets, bTargets := ta.Targets(cur.a, sym), tb.Targets(cur.b, sym)
			if len(aTargets) == 0 || len(bTargets) == 0 {
				continue
			}
			nextPair := pair{aTargets[0], bTargets[0]}
			id, ok := idOf[nextPair]
			if !ok {
				id = StateID(len(order))
				idOf[nextPair] = id
				order = append(order, nextPair)
			}
			if byFrom[curID] == nil {
				byFrom[curID] = make(map[SymbolID][]StateID)
			}
			byFrom[curID][sym] = []StateID{id}
		}
	}

	alphabet := symtab.New()
	for _, name := range combinedAlphabet.Names() {
		alphabet.Intern(name)
	}

	return &FA{
		flavor:    DFA,
		numStates: len(order),
		alphabet:  alphabet,
		byFrom:    byFrom,
		initial:   0,
		finals:    finals,
	}
}

// Union returns a DFA accepting L(a) ∪ L(b).
func Union(a, b *FA) *FA {
	return product(a, b, func(af, bf bool) bool { return af || bf })
}

// Intersection returns a DFA accepting L(a) ∩ L(b) via product construction.
func Intersection(a, b *FA) *FA {
	return product(a, b, func(af, bf bool) bool { return af && bf })
}

// Difference returns a DFA accepting L(a) \ L(b), defined as
// Intersection(a, Complement(b)) (spec.md §4.2).
func Difference(a, b *FA) *FA {
	return Intersection(a, Complement(b))
}

// SymmetricDifference returns a DFA accepting (L(a) ∪ L(b)) \ (L(a) ∩ L(b)).
func SymmetricDifference(a, b *FA) *FA {
	return product(a, b, func(af, bf bool) bool { return af != bf })
}

// Complement returns a DFA accepting Σ* \ L(a). a is completed to a total
// DFA first (spec.md §9 open question: silently adding a sink to an
// intentionally-partial DFA is surprising, so completion is explicit and
// always happens here rather than being assumed by the caller).
func Complement(a *FA) *FA {
	total := ensureTotal(a)
	alphabet := symtab.New()
	for _, name := range total.alphabet.Names() {
		alphabet.Intern(name)
	}
	byFrom := make(map[StateID]map[SymbolID][]StateID, len(total.byFrom))
	for from, row := range total.byFrom {
		newRow := make(map[SymbolID][]StateID, len(row))
		for sym, tos := range row {
			newRow[sym] = append([]StateID(nil), tos...)
		}
		byFrom[from] = newRow
	}
	finals := make(map[StateID]bool)
	for q := 0; q < total.numStates; q++ {
		if !total.IsFinal(StateID(q)) {
			finals[StateID(q)] = true
		}
	}
	return &FA{
		flavor:    DFA,
		numStates: total.numStates,
		alphabet:  alphabet,
		byFrom:    byFrom,
		initial:   total.initial,
		finals:    finals,
	}
}

// Concatenation returns an εNFA accepting L(a)·L(b), joining every
// accepting state of a to b's initial state by an ε-transition.
func Concatenation(a, b *FA) *FA {
	return concatMany(a, b)
}

func concatMany(a, b *FA) *FA {
	alphabet := mergedSymbolNames(a, b)
	offsetB := a.numStates

	byFrom := shiftedCopy(a, 0, alphabet)
	bCopy := shiftedCopy(b, offsetB, alphabet)
	for from, row := range bCopy {
		byFrom[from] = row
	}

	for q := range a.finals {
		from := q
		if byFrom[from] == nil {
			byFrom[from] = make(map[SymbolID][]StateID)
		}
		byFrom[from][Epsilon] = append(byFrom[from][Epsilon], StateID(offsetB)+b.initial)
	}

	finals := make(map[StateID]bool, len(b.finals))
	for q := range b.finals {
		finals[StateID(offsetB)+q] = true
	}
	// a·b accepts ε-from-a iff a accepts ε and b accepts ε; the ε-edges
	// above already let recognition fall through a's final states into b,
	// so no extra final-state bookkeeping for a is required.

	return &FA{
		flavor:    EpsilonNFA,
		numStates: a.numStates + b.numStates,
		alphabet:  alphabet,
		byFrom:    byFrom,
		initial:   a.initial,
		finals:    finals,
	}
}

// KleeneStar returns an εNFA accepting L(a)*: a fresh start/accept state
// that is also final (matches ε), ε-linked into a's start, with a's
// accepting states ε-linked back to the fresh start for repetition.
func KleeneStar(a *FA) *FA {
	alphabet := symtab.New()
	for _, name := range a.alphabet.Names() {
		alphabet.Intern(name)
	}
	byFrom := shiftedCopy(a, 0, alphabet)
	newStart := StateID(a.numStates)

	if byFrom[newStart] == nil {
		byFrom[newStart] = make(map[SymbolID][]StateID)
	}
	byFrom[newStart][Epsilon] = append(byFrom[newStart][Epsilon], a.initial)

	for q := range a.finals {
		if byFrom[q] == nil {
			byFrom[q] = make(map[SymbolID][]StateID)
		}
		byFrom[q][Epsilon] = append(byFrom[q][Epsilon], newStart)
	}

	finals := map[StateID]bool{newStart: true}
	return &FA{
		flavor:    EpsilonNFA,
		numStates: a.numStates + 1,
		alphabet:  alphabet,
		byFrom:    byFrom,
		initial:   newStart,
		finals:    finals,
	}
}

// Power returns an FA accepting L(a)ⁿ via binary exponentiation of
// Concatenation (spec.md §4.2). Power(a, 0) accepts only ε.
func Power(a *FA, n int) *FA {
	if n == 0 {
		return emptyWordFA(a)
	}
	result := a
	acc := (*FA)(nil)
	k := n
	for k > 0 {
		if k&1 == 1 {
			if acc == nil {
				acc = result
			} else {
				acc = Concatenation(acc, result)
			}
		}
		k >>= 1
		if k > 0 {
			result = Concatenation(result, result)
		}
	}
	return acc
}

func emptyWordFA(a *FA) *FA {
	alphabet := symtab.New()
	for _, name := range a.alphabet.Names() {
		alphabet.Intern(name)
	}
	return &FA{
		flavor:    EpsilonNFA,
		numStates: 1,
		alphabet:  alphabet,
		byFrom:    map[StateID]map[SymbolID][]StateID{},
		initial:   0,
		finals:    map[StateID]bool{0: true},
	}
}

func mergedSymbolNames(a, b *FA) *symtab.Table {
	t := symtab.New()
	t.Intern("\x00epsilon")
	seen := map[string]bool{}
	for _, name := range a.alphabet.Names()[1:] {
		if !seen[name] {
			seen[name] = true
			t.Intern(name)
		}
	}
	for _, name := range b.alphabet.Names()[1:] {
		if !seen[name] {
			seen[name] = true
			t.Intern(name)
		}
	}
	return t
}

// shiftedCopy copies a's transitions into a fresh map with every state ID
// shifted by offset, with symbols remapped into the target alphabet table
// by name (used when composing automata that may have distinct alphabet
// tables but share symbol names).
func shiftedCopy(a *FA, offset int, target *symtab.Table) map[StateID]map[SymbolID][]StateID {
	out := make(map[StateID]map[SymbolID][]StateID, len(a.byFrom))
	for from, row := range a.byFrom {
		newRow := make(map[SymbolID][]StateID, len(row))
		for sym, tos := range row {
			var newSym SymbolID
			if sym == Epsilon {
				newSym = Epsilon
			} else {
				newSym = target.Lookup(a.alphabet.Name(sym))
			}
			shiftedTos := make([]StateID, len(tos))
			for i, to := range tos {
				shiftedTos[i] = StateID(offset) + to
			}
			newRow[newSym] = append(newRow[newSym], shiftedTos...)
		}
		out[StateID(offset)+from] = newRow
	}
	return out
}
