package grammar

import "fmt"

// ToCNF runs the required CNF pipeline of spec.md §4.5 in order: reachability
// prune, productivity prune, ε-elimination, unit-elimination, then
// binarize/terminal-factor.
func ToCNF(g *CFG) *CFG {
	g = ReachabilityPrune(g)
	g = ProductivityPrune(g)
	g = EliminateEpsilon(g)
	g = EliminateUnit(g)
	g = binarizeAndFactor(g)
	g.form = CNF
	return g
}

// binarizeAndFactor implements spec.md §4.5 step 5: replace every
// right-hand side of length ≥ 3 with a cascade of length-2 productions via
// fresh variables, and replace every mixed-length-≥2 right-hand side
// containing a terminal with a fresh variable standing for that terminal.
func binarizeAndFactor(g *CFG) *CFG {
	vars := symtabClone(g.vars)
	counter := 0
	freshVar := func() VarID {
		for {
			name := fmt.Sprintf("X%d", counter)
			counter++
			if vars.Lookup(name) == invalidID {
				return vars.Intern(name)
			}
		}
	}

	var out []Production
	terminalVarCache := map[TermID]VarID{}
	termVar := func(t TermID) VarID {
		if v, ok := terminalVarCache[t]; ok {
			return v
		}
		v := freshVar()
		out = append(out, Production{Head: v, Body: []Symbol{Term(t)}})
		terminalVarCache[t] = v
		return v
	}

	for _, p := range g.productions {
		body := p.Body
		if len(body) <= 1 {
			out = append(out, p)
			continue
		}

		factored := make([]Symbol, len(body))
		for i, s := range body {
			if s.Terminal {
				factored[i] = Var(termVar(s.ID))
			} else {
				factored[i] = s
			}
		}

		if len(factored) == 2 {
			out = append(out, Production{Head: p.Head, Body: factored})
			continue
		}

		head := p.Head
		for len(factored) > 2 {
			v := freshVar()
			out = append(out, Production{Head: head, Body: []Symbol{factored[0], Var(v)}})
			head = v
			factored = factored[1:]
		}
		out = append(out, Production{Head: head, Body: factored})
	}

	return &CFG{vars: vars, terms: g.terms, productions: out, start: g.start, form: General}
}

const invalidID = ^VarID(0)
