package grammar

import (
	"github.com/baobabgit/automata/internal/symtab"
	"github.com/katalvlaran/lvlath/core"
)

// ReachabilityPrune removes every variable not reachable from the start
// symbol (spec.md §4.5 step 1), expressed as a graph-reachability query:
// one vertex per variable, one directed edge A→B per production A → αBβ.
func ReachabilityPrune(g *CFG) *CFG {
	graph := variableGraph(g)
	reachable := map[string]bool{}
	visit := func(id string) { reachable[id] = true }
	bfsFrom(graph, g.VarName(g.start), visit)

	var kept []Production
	for _, p := range g.productions {
		if reachable[g.VarName(p.Head)] {
			kept = append(kept, p)
		}
	}
	return rebuildVars(g, kept, reachable)
}

// ProductivityPrune removes every variable that derives no terminal
// string (spec.md §4.5 step 2): a variable is productive if it has some
// production whose body is entirely terminals or productive variables,
// computed as a least fixed point over the productions (no graph is
// built for this pass).
func ProductivityPrune(g *CFG) *CFG {
	productive := map[VarID]bool{}
	changed := true
	for changed {
		changed = false
		for _, p := range g.productions {
			if productive[p.Head] {
				continue
			}
			ok := true
			for _, sym := range p.Body {
				if !sym.Terminal && !productive[sym.ID] {
					ok = false
					break
				}
			}
			if ok {
				productive[p.Head] = true
				changed = true
			}
		}
	}

	var kept []Production
	for _, p := range g.productions {
		if !productive[p.Head] {
			continue
		}
		allProductive := true
		for _, sym := range p.Body {
			if !sym.Terminal && !productive[sym.ID] {
				allProductive = false
				break
			}
		}
		if allProductive {
			kept = append(kept, p)
		}
	}

	keepName := map[string]bool{}
	for id := range productive {
		keepName[g.VarName(id)] = true
	}
	return rebuildVars(g, kept, keepName)
}

// variableGraph builds a directed graph with one vertex per declared
// variable and one edge A→B for every production A → αBβ, via
// lvlath/core (the pack's graph library) rather than a hand-rolled
// adjacency map, since both pruning passes are literally graph-reachability
// problems (spec.md's own framing).
func variableGraph(g *CFG) *core.Graph {
	graph := core.NewGraph(core.WithDirected(true))
	for _, name := range g.Vars() {
		_, _ = graph.AddVertex(name)
	}
	for _, p := range g.productions {
		head := g.VarName(p.Head)
		for _, sym := range p.Body {
			if !sym.Terminal {
				_, _ = graph.AddEdge(head, g.VarName(sym.ID), 1)
			}
		}
	}
	return graph
}

// bfsFrom walks graph from start, calling visit on every reached vertex
// (start included).
func bfsFrom(graph *core.Graph, start string, visit func(string)) {
	seen := map[string]bool{start: true}
	queue := []string{start}
	visit(start)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		neighbors, err := graph.Neighbors(cur)
		if err != nil {
			continue
		}
		for _, n := range neighbors {
			if !seen[n] {
				seen[n] = true
				visit(n)
				queue = append(queue, n)
			}
		}
	}
}

// rebuildVars constructs a fresh CFG retaining only the variables in keep
// (by name) and the given surviving productions.
func rebuildVars(g *CFG, productions []Production, keep map[string]bool) *CFG {
	var keptNames []string
	for _, name := range g.Vars() {
		if keep[name] {
			keptNames = append(keptNames, name)
		}
	}
	if !keep[g.VarName(g.start)] {
		// The start symbol is always reachable/productive in a well-formed
		// grammar with a nonempty language; if pruning would drop it, the
		// grammar derives nothing; keep it as a lone unproductive variable
		// so the result is still well-formed rather than panicking.
		keptNames = append([]string{g.VarName(g.start)}, keptNames...)
	}

	out := &CFG{
		vars:  rebuildTable(g.vars, keptNames),
		terms: g.terms,
		form:  g.form,
	}
	out.start = out.vars.Lookup(g.VarName(g.start))
	for _, p := range productions {
		out.productions = append(out.productions, Production{
			Head: out.vars.Lookup(g.VarName(p.Head)),
			Body: remapBody(g, out, p.Body),
		})
	}
	return out
}

func remapBody(old, new *CFG, body []Symbol) []Symbol {
	out := make([]Symbol, len(body))
	for i, s := range body {
		if s.Terminal {
			out[i] = s
			continue
		}
		out[i] = Var(new.vars.Lookup(old.VarName(s.ID)))
	}
	return out
}

func rebuildTable(old *symtab.Table, names []string) *symtab.Table {
	t := symtab.New()
	for _, n := range names {
		t.Intern(n)
	}
	return t
}
