package grammar

// ToGNF implements spec.md §4.5's GNF pipeline: run ToCNF, order variables
// A₁..Aₙ (declaration order), eliminate indirect left recursion by
// expanding Aᵢ → Aⱼγ for j < i, eliminate immediate left recursion via the
// standard Aᵢ → βA′ᵢ, A′ᵢ → αA′ᵢ | ε transform, then collapse leading
// variables into leading terminals by substitution.
func ToGNF(g *CFG) *CFG {
	g = ToCNF(g)

	order := make([]VarID, 0, len(g.Vars()))
	for _, name := range g.Vars() {
		order = append(order, g.VarID(name))
	}
	rank := make(map[VarID]int, len(order))
	for i, v := range order {
		rank[v] = i
	}

	byHead := map[VarID][]Production{}
	for _, p := range g.productions {
		byHead[p.Head] = append(byHead[p.Head], p)
	}

	vars := symtabClone(g.vars)
	counter := 0
	freshVar := func(base string) VarID {
		for {
			name := base
			if counter > 0 {
				name = base + "p"
			}
			counter++
			if vars.Lookup(name) == invalidID {
				return vars.Intern(name)
			}
		}
	}

	for idx, ai := range order {
		// Expand Aᵢ → Aⱼγ for j < idx by substitution until every production's
		// leading symbol (if a variable) has rank ≥ idx.
		changed := true
		for changed {
			changed = false
			var expanded []Production
			for _, p := range byHead[ai] {
				if len(p.Body) > 0 && !p.Body[0].Terminal && rank[p.Body[0].ID] < idx {
					aj := p.Body[0].ID
					rest := p.Body[1:]
					for _, q := range byHead[aj] {
						expanded = append(expanded, Production{Head: ai, Body: append(append([]Symbol(nil), q.Body...), rest...)})
					}
					changed = true
				} else {
					expanded = append(expanded, p)
				}
			}
			byHead[ai] = expanded
		}

		// Eliminate immediate left recursion: split Aᵢ → Aᵢα (recursive) from
		// Aᵢ → β (non-recursive, β not starting with Aᵢ).
		var recursive, nonRecursive []Production
		for _, p := range byHead[ai] {
			if len(p.Body) > 0 && !p.Body[0].Terminal && p.Body[0].ID == ai {
				recursive = append(recursive, p)
			} else {
				nonRecursive = append(nonRecursive, p)
			}
		}
		if len(recursive) > 0 {
			aPrime := freshVar(g.VarName(ai) + "'")
			var newNonRec []Production
			for _, p := range nonRecursive {
				newNonRec = append(newNonRec, Production{Head: ai, Body: append(append([]Symbol(nil), p.Body...), Var(aPrime))})
			}
			var primeProds []Production
			for _, p := range recursive {
				alpha := p.Body[1:]
				primeProds = append(primeProds, Production{Head: aPrime, Body: append(append([]Symbol(nil), alpha...), Var(aPrime))})
			}
			primeProds = append(primeProds, Production{Head: aPrime, Body: nil})
			byHead[ai] = newNonRec
			byHead[aPrime] = primeProds
			order = append(order, aPrime)
			rank[aPrime] = len(order) - 1
		}
	}

	// Collapse leading variables into leading terminals: repeatedly
	// substitute until every production starts with a terminal or is empty.
	changedGlobal := true
	for changedGlobal {
		changedGlobal = false
		for _, ai := range order {
			var fixed []Production
			for _, p := range byHead[ai] {
				if len(p.Body) > 0 && !p.Body[0].Terminal {
					aj := p.Body[0].ID
					rest := p.Body[1:]
					for _, q := range byHead[aj] {
						fixed = append(fixed, Production{Head: ai, Body: append(append([]Symbol(nil), q.Body...), rest...)})
					}
					changedGlobal = true
				} else {
					fixed = append(fixed, p)
				}
			}
			byHead[ai] = fixed
		}
	}

	var productions []Production
	for _, ai := range order {
		productions = append(productions, byHead[ai]...)
	}

	return &CFG{vars: vars, terms: g.terms, productions: productions, start: g.start, form: GNF}
}
