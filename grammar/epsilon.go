package grammar

import "github.com/baobabgit/automata/internal/symtab"

// EliminateEpsilon implements spec.md §4.5 step 3: compute Nullable as a
// least fixed point, then for each production add every production
// obtainable by independently deleting any subset of nullable occurrences
// from the right-hand side, and drop all A → ε productions except
// (conditionally) the start symbol's.
func EliminateEpsilon(g *CFG) *CFG {
	nullable := nullableSet(g)
	derivesEmpty := nullable[g.start]

	out := &CFG{vars: g.vars, terms: g.terms, start: g.start, form: General}

	for _, p := range g.productions {
		for _, body := range nonEmptySubsets(p.Body, nullable) {
			out.productions = append(out.productions, Production{Head: p.Head, Body: body})
		}
	}

	if derivesEmpty {
		// Preserve ε at the start symbol without letting the start symbol
		// appear on any right-hand side (spec.md §4.5 step 3): introduce a
		// fresh start variable S' → S | ε.
		freshVars := append([]string(nil), g.Vars()...)
		freshName := uniqueName(freshVars, "S0")
		newVars := symtabClone(g.vars)
		newStart := newVars.Intern(freshName)

		out2 := &CFG{vars: newVars, terms: g.terms, start: newStart, form: General}
		out2.productions = append(out2.productions, out.productions...)
		out2.productions = append(out2.productions,
			Production{Head: newStart, Body: []Symbol{Var(g.start)}},
			Production{Head: newStart, Body: nil},
		)
		return out2
	}

	return out
}

// nullableSet computes Nullable ⊆ V as the least fixed point: A is
// nullable if A → ε is a production, or A → X₁..Xₖ with every Xᵢ nullable.
func nullableSet(g *CFG) map[VarID]bool {
	nullable := map[VarID]bool{}
	changed := true
	for changed {
		changed = false
		for _, p := range g.productions {
			if nullable[p.Head] {
				continue
			}
			allNullable := true
			for _, sym := range p.Body {
				if sym.Terminal || !nullable[sym.ID] {
					allNullable = false
					break
				}
			}
			if allNullable {
				nullable[p.Head] = true
				changed = true
			}
		}
	}
	return nullable
}

// nonEmptySubsets enumerates, for a production body, every variant
// obtainable by independently deleting any subset of nullable-variable
// occurrences, excluding the all-deleted (empty) variant.
func nonEmptySubsets(body []Symbol, nullable map[VarID]bool) [][]Symbol {
	var nullablePositions []int
	for i, sym := range body {
		if !sym.Terminal && nullable[sym.ID] {
			nullablePositions = append(nullablePositions, i)
		}
	}

	var out [][]Symbol
	n := len(nullablePositions)
	for mask := 0; mask < (1 << n); mask++ {
		drop := make(map[int]bool, n)
		for i, pos := range nullablePositions {
			if mask&(1<<i) != 0 {
				drop[pos] = true
			}
		}
		var variant []Symbol
		for i, sym := range body {
			if !drop[i] {
				variant = append(variant, sym)
			}
		}
		if len(variant) > 0 {
			out = append(out, variant)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return dedupeBodies(out)
}

func dedupeBodies(in [][]Symbol) [][]Symbol {
	seen := map[string]bool{}
	var out [][]Symbol
	for _, body := range in {
		key := bodyKey(body)
		if !seen[key] {
			seen[key] = true
			out = append(out, body)
		}
	}
	return out
}

func bodyKey(body []Symbol) string {
	buf := make([]byte, 0, len(body)*5)
	for _, s := range body {
		tag := byte(0)
		if s.Terminal {
			tag = 1
		}
		buf = append(buf, tag, byte(s.ID), byte(s.ID>>8), byte(s.ID>>16), byte(s.ID>>24))
	}
	return string(buf)
}

func uniqueName(existing []string, base string) string {
	seen := map[string]bool{}
	for _, e := range existing {
		seen[e] = true
	}
	name := base
	for seen[name] {
		name += "'"
	}
	return name
}

func symtabClone(t *symtab.Table) *symtab.Table {
	out := symtab.New()
	for _, name := range t.Names() {
		out.Intern(name)
	}
	return out
}
