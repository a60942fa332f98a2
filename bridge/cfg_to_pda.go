package bridge

import (
	"github.com/baobabgit/automata/grammar"
	"github.com/baobabgit/automata/pda"
)

// CFGToPDA implements spec.md §4.7's single-state non-deterministic
// construction: every production becomes an epsilon-move that pops its
// head and pushes its body (left symbol ending on top, so it is matched
// next), every terminal becomes a move that pops its own placeholder on
// a matching input symbol, and acceptance is by empty stack once the
// start variable and every terminal it expanded to have been consumed.
// The result is always an NPDA (spec.md: "always an NPDA even when
// converted from an unambiguous grammar").
//
// A second state ("loop") past the single push-start move ("start")
// keeps the initial "push S onto the bottom marker" transition from
// being reusable mid-derivation as a spurious restart, and lets the
// final "pop the bottom marker" transition (required for true empty-
// stack acceptance under this package's always-present bottom symbol)
// fire only once a derivation has actually emptied the stack down to it.
func CFGToPDA(g *grammar.CFG) (*pda.PDA, error) {
	const (
		stateStart = "start"
		stateLoop  = "loop"
		bottom     = "Z0"
	)

	varSym := func(name string) string { return "V:" + name }
	termSym := func(name string) string { return "T:" + name }

	terms := g.Terms()
	vars := g.Vars()

	stackAlphabet := []string{bottom}
	for _, v := range vars {
		stackAlphabet = append(stackAlphabet, varSym(v))
	}
	for _, t := range terms {
		stackAlphabet = append(stackAlphabet, termSym(t))
	}

	var transitions []pda.TransitionSpec
	transitions = append(transitions, pda.TransitionSpec{
		From: stateStart, Input: "", Pop: bottom, To: stateLoop,
		Push: []string{bottom, varSym(g.VarName(g.Start()))},
	})
	transitions = append(transitions, pda.TransitionSpec{
		From: stateLoop, Input: "", Pop: bottom, To: stateLoop, Push: nil,
	})

	for _, p := range g.Productions() {
		push := make([]string, len(p.Body))
		for i, sym := range p.Body {
			var name string
			if sym.Terminal {
				name = termSym(g.TermName(sym.ID))
			} else {
				name = varSym(g.VarName(sym.ID))
			}
			push[len(p.Body)-1-i] = name
		}
		transitions = append(transitions, pda.TransitionSpec{
			From: stateLoop, Input: "", Pop: varSym(g.VarName(p.Head)), To: stateLoop, Push: push,
		})
	}

	for _, t := range terms {
		transitions = append(transitions, pda.TransitionSpec{
			From: stateLoop, Input: t, Pop: termSym(t), To: stateLoop, Push: nil,
		})
	}

	return pda.Build(
		[]string{stateStart, stateLoop},
		terms,
		stackAlphabet,
		transitions,
		stateStart,
		bottom,
		nil,
		pda.NPDA,
		pda.AcceptEmptyStack,
	)
}
