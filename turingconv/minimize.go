package turingconv

import (
	"fmt"

	"github.com/baobabgit/automata/internal/partition"
	"github.com/baobabgit/automata/turing"
)

// MinimizeStates collapses equivalent states of a single-tape TM, reusing
// the same Hopcroft partition-refinement engine fa.Minimize and
// bridge.MinimizeStackSymbols already drive. Two states are merged only
// if every symbol they read produces an identical (write, move) pair and
// leads to states that are themselves merged — the usual DFA-state
// bisimulation, refined here to also respect a transition's write/move
// payload (a TM transition, unlike an FA edge, carries output), computed
// as the initial partition Hopcroft then refines by reachable target.
//
// Scoped to single-tape machines: Hopcroft's Preimage is indexed by one
// symbol per call, which matches a vectorized multi-tape Read directly
// only when the vector has length 1. A multi-tape source should go
// through MultiToSingle first.
func MinimizeStates(m *turing.TM) (*turing.TM, error) {
	if m.TapeCount() != 1 {
		return nil, &turing.InvalidAutomatonError{Reason: "MinimizeStates requires a single-tape machine; run MultiToSingle first"}
	}

	alphabet := m.TapeAlphabet()
	alphabetSize := len(alphabet)

	signature := func(q turing.StateID) string {
		switch q {
		case m.Accept():
			return "ACCEPT"
		case m.Reject():
			return "REJECT"
		}
		sig := ""
		for _, s := range alphabet {
			alts := m.Lookup(q, []turing.SymbolID{m.TapeSymbolID(s)})
			sig += fmt.Sprintf("|%d:", len(alts))
			for _, a := range alts {
				sig += fmt.Sprintf("%s/%s;", alphabet[a.Write[0]], a.Moves[0].String())
			}
		}
		return sig
	}

	buckets := make(map[string][]partition.StateID)
	for i := 0; i < m.NumStates(); i++ {
		q := turing.StateID(i)
		sig := signature(q)
		buckets[sig] = append(buckets[sig], partition.StateID(q))
	}
	var initialBlocks [][]partition.StateID
	for _, b := range buckets {
		initialBlocks = append(initialBlocks, b)
	}

	preimage := func(block []partition.StateID, symbol int) []partition.StateID {
		blockSet := make(map[turing.StateID]bool, len(block))
		for _, s := range block {
			blockSet[turing.StateID(s)] = true
		}
		var result []partition.StateID
		sym := m.TapeSymbolID(alphabet[symbol])
		for i := 0; i < m.NumStates(); i++ {
			q := turing.StateID(i)
			for _, a := range m.Lookup(q, []turing.SymbolID{sym}) {
				if blockSet[a.To] {
					result = append(result, partition.StateID(q))
					break
				}
			}
		}
		return result
	}

	p := partition.Hopcroft(initialBlocks, alphabetSize, preimage)

	classOf := make(map[turing.StateID]int)
	for classIdx, blockID := range p.Blocks() {
		for _, s := range p.Block(blockID) {
			classOf[turing.StateID(s)] = classIdx
		}
	}

	return rebuildFromStateClasses(m, classOf)
}

// rebuildFromStateClasses constructs the quotient machine from an
// equivalence-class assignment, renumbering classes in BFS order from
// the class containing m's initial state (spec.md §3.1's canonical
// renumbering).
func rebuildFromStateClasses(m *turing.TM, classOf map[turing.StateID]int) (*turing.TM, error) {
	repOfClass := make(map[int]turing.StateID)
	for i := 0; i < m.NumStates(); i++ {
		q := turing.StateID(i)
		if _, ok := repOfClass[classOf[q]]; !ok {
			repOfClass[classOf[q]] = q
		}
	}

	startClass := classOf[m.Initial()]
	order := []int{startClass}
	seen := map[int]bool{startClass: true}
	name := func(class int) string { return fmt.Sprintf("q%d", class) }

	alphabet := m.TapeAlphabet()
	var transitions []turing.TransitionSpec
	var states []string

	for i := 0; i < len(order); i++ {
		class := order[i]
		rep := repOfClass[class]
		states = append(states, name(class))
		for _, s := range alphabet {
			for _, a := range m.Lookup(rep, []turing.SymbolID{m.TapeSymbolID(s)}) {
				toClass := classOf[a.To]
				if !seen[toClass] {
					seen[toClass] = true
					order = append(order, toClass)
				}
				transitions = append(transitions, turing.TransitionSpec{
					From: name(class), Read: []string{s}, To: name(toClass),
					Write: []string{alphabet[a.Write[0]]}, Moves: []string{a.Moves[0].String()}, Weight: a.Weight,
				})
			}
		}
	}

	blankName := alphabet[m.Blank(0)]
	return turing.Build(
		dedupeStrings(append(states, name(classOf[m.Accept()]), name(classOf[m.Reject()]))),
		m.InputAlphabet(), alphabet, transitions,
		name(startClass), name(classOf[m.Accept()]), name(classOf[m.Reject()]),
		[]string{blankName}, 1, m.Flavor(),
	)
}

// MinimizeSymbols drops every tape-alphabet symbol that no transition
// ever reads or writes and that is neither a declared blank nor an input
// symbol — spec.md §4.9's symbol minimization.
func MinimizeSymbols(m *turing.TM) (*turing.TM, error) {
	used := make(map[string]bool)
	for i := 0; i < m.TapeCount(); i++ {
		used[m.TapeAlphabet()[m.Blank(i)]] = true
	}
	for i := 0; i < m.NumStates(); i++ {
		for _, t := range m.Transitions(turing.StateID(i)) {
			for _, r := range t.Read {
				used[m.TapeAlphabet()[r]] = true
			}
			for _, w := range t.Write {
				used[m.TapeAlphabet()[w]] = true
			}
		}
	}
	for _, s := range m.InputAlphabet() {
		used[s] = true
	}

	var keep []string
	for _, s := range m.TapeAlphabet() {
		if used[s] {
			keep = append(keep, s)
		}
	}

	var transitions []turing.TransitionSpec
	for i := 0; i < m.NumStates(); i++ {
		from := m.StateName(turing.StateID(i))
		for _, t := range m.Transitions(turing.StateID(i)) {
			read := make([]string, len(t.Read))
			write := make([]string, len(t.Write))
			moves := make([]string, len(t.Moves))
			for j := range t.Read {
				read[j] = m.TapeAlphabet()[t.Read[j]]
				write[j] = m.TapeAlphabet()[t.Write[j]]
				moves[j] = t.Moves[j].String()
			}
			transitions = append(transitions, turing.TransitionSpec{
				From: from, Read: read, To: m.StateName(t.To), Write: write, Moves: moves, Weight: t.Weight,
			})
		}
	}

	blanks := make([]string, m.TapeCount())
	for i := range blanks {
		blanks[i] = m.TapeAlphabet()[m.Blank(i)]
	}

	return turing.Build(
		m.States(), m.InputAlphabet(), keep, transitions,
		m.StateName(m.Initial()), m.StateName(m.Accept()), m.StateName(m.Reject()),
		blanks, m.TapeCount(), m.Flavor(),
	)
}
