package fa

import (
	"sort"

	"github.com/baobabgit/automata/internal/partition"
	"github.com/baobabgit/automata/internal/symtab"
)

// Minimize returns the minimum-state DFA accepting the same language as a,
// using the default Config's size threshold to pick between table-filling
// and Hopcroft refinement (spec.md §4.2, §9). a must be a DFA; callers
// converting from NFA/εNFA should call SubsetConstruct first.
func Minimize(a *FA) *FA {
	return MinimizeWithConfig(a, DefaultConfig())
}

// MinimizeWithConfig is Minimize with an explicit Config.
func MinimizeWithConfig(a *FA, cfg Config) *FA {
	complete := ensureTotal(a)
	reachable := forwardReachable(complete)

	var blocks map[StateID]int // state -> equivalence-class index
	if len(reachable) < cfg.HopcroftThreshold {
		blocks = tableFillEquivalence(complete, reachable)
	} else {
		blocks = hopcroftEquivalence(complete, reachable)
	}

	return rebuildFromClasses(complete, reachable, blocks)
}

func forwardReachable(a *FA) map[StateID]bool {
	reachable := map[StateID]bool{a.initial: true}
	stack := []StateID{a.initial}
	alphabetSize := a.AlphabetSize()
	for len(stack) > 0 {
		q := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for sym := SymbolID(1); int(sym) <= alphabetSize; sym++ {
			for _, to := range a.Targets(q, sym) {
				if !reachable[to] {
					reachable[to] = true
					stack = append(stack, to)
				}
			}
		}
	}
	return reachable
}

// tableFillEquivalence implements the classic O(n²·|Σ|) marking algorithm:
// two states are distinguishable if one is final and the other isn't, or
// if some symbol takes them to already-distinguishable states. Iterates to
// a fixed point.
func tableFillEquivalence(a *FA, reachable map[StateID]bool) map[StateID]int {
	var states []StateID
	for q := range reachable {
		states = append(states, q)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })

	distinguishable := make(map[[2]StateID]bool)
	pairKey := func(p, q StateID) [2]StateID {
		if p > q {
			p, q = q, p
		}
		return [2]StateID{p, q}
	}

	for i, p := range states {
		for _, q := range states[i+1:] {
			if a.IsFinal(p) != a.IsFinal(q) {
				distinguishable[pairKey(p, q)] = true
			}
		}
	}

	alphabetSize := a.AlphabetSize()
	changed := true
	for changed {
		changed = false
		for i, p := range states {
			for _, q := range states[i+1:] {
				key := pairKey(p, q)
				if distinguishable[key] {
					continue
				}
				for sym := SymbolID(1); int(sym) <= alphabetSize; sym++ {
					pt, qt := firstOrInvalid(a.Targets(p, sym)), firstOrInvalid(a.Targets(q, sym))
					if pt == InvalidState && qt == InvalidState {
						continue
					}
					if pt == InvalidState || qt == InvalidState || distinguishable[pairKey(pt, qt)] {
						distinguishable[key] = true
						changed = true
						break
					}
				}
			}
		}
	}

	classOf := make(map[StateID]int)
	nextClass := 0
	for _, p := range states {
		if _, done := classOf[p]; done {
			continue
		}
		classOf[p] = nextClass
		for _, q := range states {
			if q == p || distinguishable[pairKey(p, q)] {
				continue
			}
			if _, done := classOf[q]; !done {
				classOf[q] = nextClass
			}
		}
		nextClass++
	}
	return classOf
}

func firstOrInvalid(ids []StateID) StateID {
	if len(ids) == 0 {
		return InvalidState
	}
	return ids[0]
}

// hopcroftEquivalence runs the partition package's Hopcroft driver over the
// reachable sub-automaton.
func hopcroftEquivalence(a *FA, reachable map[StateID]bool) map[StateID]int {
	var finals, nonFinals []partition.StateID
	for q := range reachable {
		if a.IsFinal(q) {
			finals = append(finals, partition.StateID(q))
		} else {
			nonFinals = append(nonFinals, partition.StateID(q))
		}
	}

	preimage := func(block []partition.StateID, symbol int) []partition.StateID {
		blockSet := make(map[StateID]bool, len(block))
		for _, s := range block {
			blockSet[StateID(s)] = true
		}
		var result []partition.StateID
		for q := range reachable {
			for _, to := range a.Targets(q, SymbolID(symbol+1)) {
				if blockSet[to] {
					result = append(result, partition.StateID(q))
					break
				}
			}
		}
		return result
	}

	p := partition.Hopcroft([][]partition.StateID{finals, nonFinals}, a.AlphabetSize(), preimage)

	classOf := make(map[StateID]int)
	for classIdx, blockID := range p.Blocks() {
		for _, s := range p.Block(blockID) {
			classOf[StateID(s)] = classIdx
		}
	}
	return classOf
}

// rebuildFromClasses constructs the minimized FA from an equivalence-class
// assignment, renumbering classes [0..k) in BFS order from the class
// containing the original initial state (spec.md §3.1 canonical
// renumbering), and discarding classes with no reachable representative.
func rebuildFromClasses(a *FA, reachable map[StateID]bool, classOf map[StateID]int) *FA {
	repOfClass := make(map[int]StateID)
	for q := range reachable {
		if _, ok := repOfClass[classOf[q]]; !ok {
			repOfClass[classOf[q]] = q
		}
	}

	startClass := classOf[a.initial]
	order := []int{startClass}
	seen := map[int]bool{startClass: true}
	alphabetSize := a.AlphabetSize()
	renumber := map[int]StateID{startClass: 0}

	for i := 0; i < len(order); i++ {
		rep := repOfClass[order[i]]
		for sym := SymbolID(1); int(sym) <= alphabetSize; sym++ {
			targets := a.Targets(rep, sym)
			if len(targets) == 0 {
				continue
			}
			nextClass := classOf[targets[0]]
			if !seen[nextClass] {
				seen[nextClass] = true
				renumber[nextClass] = StateID(len(order))
				order = append(order, nextClass)
			}
		}
	}

	alphabet := symtab.New()
	for _, name := range a.alphabet.Names() {
		alphabet.Intern(name)
	}

	out := &FA{
		flavor:    DFA,
		numStates: len(order),
		alphabet:  alphabet,
		byFrom:    make(map[StateID]map[SymbolID][]StateID),
		initial:   0,
		finals:    make(map[StateID]bool),
	}

	for _, class := range order {
		rep := repOfClass[class]
		newFrom := renumber[class]
		if a.IsFinal(rep) {
			out.finals[newFrom] = true
		}
		for sym := SymbolID(1); int(sym) <= alphabetSize; sym++ {
			targets := a.Targets(rep, sym)
			if len(targets) == 0 {
				continue
			}
			newTo, ok := renumber[classOf[targets[0]]]
			if !ok {
				continue // target class unreachable from start, drop the edge
			}
			if out.byFrom[newFrom] == nil {
				out.byFrom[newFrom] = make(map[SymbolID][]StateID)
			}
			out.byFrom[newFrom][sym] = []StateID{newTo}
		}
	}

	return out
}

// ensureTotal returns a in its original state if it is already total, or a
// copy completed with an implicit sink otherwise. Complement (ops.go) and
// Minimize both require a total DFA; spec.md's open-question resolution
// (§9) is that completion happens here explicitly rather than silently
// inside an operation that might have intended a partial DFA.
func ensureTotal(a *FA) *FA {
	alphabet := symtab.New()
	for _, name := range a.alphabet.Names() {
		alphabet.Intern(name)
	}
	byFrom := make(map[StateID]map[SymbolID][]StateID, len(a.byFrom))
	for from, row := range a.byFrom {
		newRow := make(map[SymbolID][]StateID, len(row))
		for sym, tos := range row {
			cp := make([]StateID, len(tos))
			copy(cp, tos)
			newRow[sym] = cp
		}
		byFrom[from] = newRow
	}
	finals := make(map[StateID]bool, len(a.finals))
	for q := range a.finals {
		finals[q] = true
	}
	numStates := a.numStates

	completeSink(stateNameTable(a), alphabet, byFrom, &numStates)

	return &FA{
		flavor:    DFA,
		numStates: numStates,
		alphabet:  alphabet,
		byFrom:    byFrom,
		initial:   a.initial,
		finals:    finals,
	}
}

// stateNameTable reconstructs a symtab.Table populated with placeholder
// state names "0".."n-1" plus room for one extra synthetic state, so that
// completeSink (shared with build.go) can intern a sink without needing
// access to a's original external state names (which FA does not retain).
func stateNameTable(a *FA) *symtab.Table {
	t := symtab.New()
	for i := 0; i < a.numStates; i++ {
		t.Intern(syntheticName(i))
	}
	return t
}

func syntheticName(i int) string {
	// Minimal, allocation-light integer-to-string without strconv import
	// duplication elsewhere in the package.
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[pos:])
}
