// Package bridge implements the pushdown-kernel <-> grammar-engine
// conversions per spec.md §4.7 (C8): the PDA-to-CFG triple construction,
// the CFG-to-PDA construction (one working state plus a start state),
// and stack-symbol
// minimization via partition refinement.
package bridge

import (
	"fmt"

	"github.com/baobabgit/automata/grammar"
	"github.com/baobabgit/automata/pda"
)

// PDAToCFG implements spec.md §4.7's triple construction: for every
// triple (p, A, q) introduce a variable [p,A,q] generating exactly the
// strings that take the PDA from state p with A on top to state q with A
// (and everything below it) popped. Productions are generated by
// case-splitting every PDA transition; the start symbol unions
// [q0, Z0, q] over every q the automaton accepts in. In AcceptFinalState
// mode the grammar also uses a virtual "drain" index one past the last
// state: [f, X, drain] -> ε for every final f and [drain, X, drain] -> ε
// let a run that ends in a final state pop whatever is left on its stack,
// and the start symbol also derives [q0, Z0, drain].
//
// The output has O(|Q|^k * |delta|) productions where k is the longest
// push among p's transitions; spec.md's O(|Q|^2 * |delta|) bound holds
// for the common case of transitions that push at most two symbols (the
// shape a CFGToPDA-produced PDA has when its grammar is in CNF).
func PDAToCFG(p *pda.PDA) (*grammar.CFG, error) {
	n := p.NumStates()
	drain := n // virtual state index used only in AcceptFinalState mode
	stackNames := p.StackAlphabet()
	inputNames := p.InputAlphabet()

	varName := func(from int, stackSym string, to int) string {
		return fmt.Sprintf("[%d,%s,%d]", from, stackSym, to)
	}
	inputName := func(id pda.SymbolID) string {
		if id == pda.Epsilon {
			return ""
		}
		return inputNames[id-1]
	}

	var vars []string
	for from := 0; from <= drain; from++ {
		for _, sym := range stackNames {
			for to := 0; to <= drain; to++ {
				vars = append(vars, varName(from, sym, to))
			}
		}
	}
	const start = "S"
	vars = append(vars, start)

	var prods []grammar.ProductionSpec
	for from := pda.StateID(0); int(from) < n; from++ {
		for _, t := range p.Transitions(from) {
			x := stackNames[t.Pop]
			a := inputName(t.Input)

			var terminalBody []grammar.SymbolSpec
			if a != "" {
				terminalBody = []grammar.SymbolSpec{{Terminal: true, Name: a}}
			}

			if len(t.Push) == 0 {
				head := varName(int(from), x, int(t.To))
				prods = append(prods, grammar.ProductionSpec{Head: head, Body: terminalBody})
				continue
			}

			topToBottom := make([]string, len(t.Push))
			for i, sym := range t.Push {
				topToBottom[len(t.Push)-1-i] = stackNames[sym]
			}

			choices := make([]int, len(topToBottom))
			var rec func(i int)
			rec = func(i int) {
				if i == len(topToBottom) {
					body := append([]grammar.SymbolSpec(nil), terminalBody...)
					prev := int(t.To)
					for j, sym := range topToBottom {
						next := choices[j]
						body = append(body, grammar.SymbolSpec{Name: varName(prev, sym, next)})
						prev = next
					}
					head := varName(int(from), x, choices[len(topToBottom)-1])
					prods = append(prods, grammar.ProductionSpec{Head: head, Body: body})
					return
				}
				for s := 0; s <= drain; s++ {
					choices[i] = s
					rec(i + 1)
				}
			}
			rec(0)
		}
	}

	bottomName := stackNames[p.Bottom()]
	q0 := int(p.Initial())
	if p.AcceptMode() == pda.AcceptEmptyStack {
		for q := 0; q < n; q++ {
			prods = append(prods, grammar.ProductionSpec{
				Head: start,
				Body: []grammar.SymbolSpec{{Name: varName(q0, bottomName, q)}},
			})
		}
	} else {
		for q := 0; q < n; q++ {
			if !p.IsFinal(pda.StateID(q)) {
				continue
			}
			prods = append(prods, grammar.ProductionSpec{
				Head: start,
				Body: []grammar.SymbolSpec{{Name: varName(q0, bottomName, q)}},
			})
		}
		for _, sym := range stackNames {
			prods = append(prods, grammar.ProductionSpec{Head: varName(drain, sym, drain)})
			for q := 0; q < n; q++ {
				if p.IsFinal(pda.StateID(q)) {
					prods = append(prods, grammar.ProductionSpec{Head: varName(q, sym, drain)})
				}
			}
		}
		prods = append(prods, grammar.ProductionSpec{
			Head: start,
			Body: []grammar.SymbolSpec{{Name: varName(q0, bottomName, drain)}},
		})
		// [p,A,p] never derives epsilon by construction (popping A always
		// takes at least one transition), so a start state that is already
		// final needs its own zero-move base case.
		if p.IsFinal(pda.StateID(q0)) {
			prods = append(prods, grammar.ProductionSpec{Head: start, Body: nil})
		}
	}

	g, err := grammar.Build(vars, inputNames, prods, start)
	if err != nil {
		return nil, err
	}
	g = grammar.ReachabilityPrune(g)
	g = grammar.ProductivityPrune(g)
	return g, nil
}
