package bridge

import (
	"fmt"
	"sort"

	"github.com/baobabgit/automata/internal/partition"
	"github.com/baobabgit/automata/pda"
)

// MinimizeStackSymbols implements spec.md §4.7's stack-symbol
// minimization: collapse pairs of stack symbols that are indistinguishable
// in every transition, via the same partition-refinement engine (C2) that
// backs fa.Minimize, keyed here by transition "signature" (origin state,
// input symbol, destination state, and the equivalence classes of
// anything else pushed alongside) instead of by accept/reject.
func MinimizeStackSymbols(p *pda.PDA) *pda.PDA {
	n := p.NumStates()
	stackNames := p.StackAlphabet()
	m := len(stackNames)

	all := make([]partition.StateID, m)
	for i := range all {
		all[i] = partition.StateID(i)
	}
	part := partition.New()
	block := part.Insert(all)

	type trans struct {
		from  int
		input pda.SymbolID
		to    int
		push  []pda.SymbolID
	}
	byPop := make(map[pda.SymbolID][]trans)
	for from := pda.StateID(0); int(from) < n; from++ {
		for _, t := range p.Transitions(from) {
			byPop[t.Pop] = append(byPop[t.Pop], trans{from: int(from), input: t.Input, to: int(t.To), push: t.Push})
		}
	}

	signature := func(sym int) string {
		ts := byPop[pda.SymbolID(sym)]
		keys := make([]string, 0, len(ts))
		for _, t := range ts {
			pushClasses := make([]partition.BlockID, len(t.push))
			for i, s := range t.push {
				pushClasses[i] = part.Find(partition.StateID(s))
			}
			keys = append(keys, fmt.Sprintf("%d|%d|%d|%v", t.from, t.input, t.to, pushClasses))
		}
		sort.Strings(keys)
		out := ""
		for _, k := range keys {
			out += k + ";"
		}
		return out
	}

	changed := true
	for changed {
		changed = false
		for _, b := range part.Blocks() {
			members := part.Block(b)
			if len(members) <= 1 {
				continue
			}
			groups := map[string][]partition.StateID{}
			for _, s := range members {
				sig := signature(int(s))
				groups[sig] = append(groups[sig], s)
			}
			if len(groups) <= 1 {
				continue
			}
			first := true
			for _, group := range groups {
				if first {
					first = false
					continue
				}
				peel := make(map[partition.StateID]bool, len(group))
				for _, s := range group {
					peel[s] = true
				}
				splitter := make(map[partition.StateID]bool, len(members))
				for _, s := range members {
					splitter[s] = !peel[s]
				}
				part.Split(b, splitter)
				changed = true
			}
		}
	}

	// Pick one representative stack-symbol name per block.
	repName := make(map[partition.BlockID]string)
	classOf := make([]string, m)
	for i := 0; i < m; i++ {
		b := part.Find(partition.StateID(i))
		if _, ok := repName[b]; !ok {
			repName[b] = stackNames[i]
		}
	}
	for i := 0; i < m; i++ {
		classOf[i] = repName[part.Find(partition.StateID(i))]
	}

	newStackAlphabet := make([]string, 0, len(repName))
	seenRep := map[string]bool{}
	for _, name := range classOf {
		if !seenRep[name] {
			seenRep[name] = true
			newStackAlphabet = append(newStackAlphabet, name)
		}
	}

	stateName := func(i int) string { return fmt.Sprintf("s%d", i) }
	states := make([]string, n)
	for i := range states {
		states[i] = stateName(i)
	}

	var transitions []pda.TransitionSpec
	seenTransition := map[string]bool{}
	inputAlphabet := p.InputAlphabet()
	inputName := func(id pda.SymbolID) string {
		if id == pda.Epsilon {
			return ""
		}
		return inputAlphabet[id-1]
	}
	for from := pda.StateID(0); int(from) < n; from++ {
		for _, t := range p.Transitions(from) {
			push := make([]string, len(t.Push))
			for i, s := range t.Push {
				push[i] = classOf[s]
			}
			// Merging behaviorally-identical stack symbols can produce
			// literal duplicate transitions; collapse them here rather
			// than let checkDeterminism mistake a duplicate for a second,
			// conflicting move.
			key := fmt.Sprintf("%s|%s|%s|%s|%v", stateName(int(from)), inputName(t.Input), classOf[t.Pop], stateName(int(t.To)), push)
			if seenTransition[key] {
				continue
			}
			seenTransition[key] = true
			transitions = append(transitions, pda.TransitionSpec{
				From:  stateName(int(from)),
				Input: inputName(t.Input),
				Pop:   classOf[t.Pop],
				To:    stateName(int(t.To)),
				Push:  push,
			})
		}
	}

	var finals []string
	for q := 0; q < n; q++ {
		if p.IsFinal(pda.StateID(q)) {
			finals = append(finals, stateName(q))
		}
	}

	out, err := pda.Build(
		states, inputAlphabet, newStackAlphabet, transitions,
		stateName(int(p.Initial())), classOf[p.Bottom()], finals,
		p.Flavor(), p.AcceptMode(),
	)
	if err != nil {
		// A well-formed input PDA can only yield a well-formed output: the
		// rebuild is a symbol-renaming of the same transition structure, so
		// a build error here indicates a bug in this function, not bad
		// input.
		panic(err)
	}
	return out
}
