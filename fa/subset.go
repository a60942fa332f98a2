package fa

import (
	"sort"

	"github.com/baobabgit/automata/internal/symtab"
)

// SubsetConstruct converts an εNFA (or NFA) into its canonical subset DFA
// (spec.md §4.2). States of the output are ε-closed subsets of the input's
// states; construction is BFS-frontiered and memoized on the subset's
// sorted member list so that identical subsets collapse to one output
// state. The output alphabet equals the input's (minus ε). Dead states
// (states from which no final state is reachable) and unreachable states
// never appear in the output: BFS only ever visits reachable subsets, and
// a final pass drops subsets that cannot reach acceptance.
func SubsetConstruct(a *FA) *FA {
	alphabetSize := a.AlphabetSize()

	keyOf := func(subset map[StateID]bool) string {
		ids := make([]int, 0, len(subset))
		for q := range subset {
			ids = append(ids, int(q))
		}
		sort.Ints(ids)
		buf := make([]byte, 0, len(ids)*5)
		for _, id := range ids {
			buf = append(buf, byte(id), byte(id>>8), byte(id>>16), byte(id>>24), ',')
		}
		return string(buf)
	}

	startSubset := epsilonClosure(a, map[StateID]bool{a.initial: true})
	startKey := keyOf(startSubset)

	idByKey := map[string]StateID{startKey: 0}
	var order []StateID
	subsetOf := map[StateID]map[StateID]bool{0: startSubset}
	order = append(order, 0)
	transitions := make(map[StateID]map[SymbolID]StateID)

	for i := 0; i < len(order); i++ {
		curID := order[i]
		cur := subsetOf[curID]
		for sym := SymbolID(1); int(sym) <= alphabetSize; sym++ {
			next := make(map[StateID]bool)
			for q := range cur {
				for _, to := range a.Targets(q, sym) {
					next[to] = true
				}
			}
			if a.flavor == EpsilonNFA {
				next = epsilonClosure(a, next)
			}
			if len(next) == 0 {
				continue // missing transition == implicit reject, no need to materialize a trap state
			}
			key := keyOf(next)
			id, ok := idByKey[key]
			if !ok {
				id = StateID(len(order))
				idByKey[key] = id
				subsetOf[id] = next
				order = append(order, id)
			}
			if transitions[curID] == nil {
				transitions[curID] = make(map[SymbolID]StateID)
			}
			transitions[curID][sym] = id
		}
	}

	finals := make(map[StateID]bool)
	for _, id := range order {
		for q := range subsetOf[id] {
			if a.IsFinal(q) {
				finals[id] = true
				break
			}
		}
	}

	live := backwardReachable(transitions, finals)
	live[0] = true // keep the start state even if it cannot reach acceptance

	alphabet := symtab.New()
	for _, name := range a.alphabet.Names() {
		alphabet.Intern(name)
	}

	out := &FA{
		flavor:   DFA,
		alphabet: alphabet,
		byFrom:   make(map[StateID]map[SymbolID][]StateID),
		finals:   make(map[StateID]bool),
	}

	remap := make(map[StateID]StateID)
	next := StateID(0)
	for _, id := range order {
		if !live[id] {
			continue
		}
		remap[id] = next
		next++
	}
	out.numStates = int(next)
	out.initial = remap[0]

	for from, row := range transitions {
		if !live[from] {
			continue
		}
		for sym, to := range row {
			if !live[to] {
				continue
			}
			newFrom, newTo := remap[from], remap[to]
			if out.byFrom[newFrom] == nil {
				out.byFrom[newFrom] = make(map[SymbolID][]StateID)
			}
			out.byFrom[newFrom][sym] = []StateID{newTo}
		}
	}
	for q := range finals {
		if live[q] {
			out.finals[remap[q]] = true
		}
	}

	return out
}

// backwardReachable returns the set of DFA-state IDs that can reach some
// final state, computed by BFS over the reverse transition graph.
func backwardReachable(transitions map[StateID]map[SymbolID]StateID, finals map[StateID]bool) map[StateID]bool {
	rev := make(map[StateID][]StateID)
	for from, row := range transitions {
		for _, to := range row {
			rev[to] = append(rev[to], from)
		}
	}
	live := make(map[StateID]bool, len(finals))
	var stack []StateID
	for q := range finals {
		if !live[q] {
			live[q] = true
			stack = append(stack, q)
		}
	}
	for len(stack) > 0 {
		q := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range rev[q] {
			if !live[p] {
				live[p] = true
				stack = append(stack, p)
			}
		}
	}
	return live
}
