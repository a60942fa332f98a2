package recognize

import (
	"github.com/baobabgit/automata/grammar"
	"github.com/baobabgit/automata/internal/symtab"
)

// CykError reports that CYK was invoked on a grammar not in CNF
// (spec.md §4.6: "Precondition: grammar is in CNF").
type CykError struct {
	Reason string
}

func (e *CykError) Error() string { return "cyk: " + e.Reason }

// CykTable is T[i][j] from spec.md §4.6: the set of variables that derive
// the substring of length j+1 starting at position i, with each
// contributing split point retained for parse-forest reconstruction.
type CykTable struct {
	n     int
	cells [][]map[grammar.VarID][]cykSplit
}

// cykSplit records one way a variable derived a span: either a terminal
// production (unit set) or a binary split at mid into (left, right).
type cykSplit struct {
	unit       bool
	production grammar.Production
	mid        int
	left       grammar.VarID
	right      grammar.VarID
}

func newCykTable(n int) *CykTable {
	cells := make([][]map[grammar.VarID][]cykSplit, n)
	for i := range cells {
		cells[i] = make([]map[grammar.VarID][]cykSplit, n)
		for j := range cells[i] {
			cells[i][j] = map[grammar.VarID][]cykSplit{}
		}
	}
	return &CykTable{n: n, cells: cells}
}

func (t *CykTable) at(i, j int) map[grammar.VarID][]cykSplit { return t.cells[i][j] }

// Cyk runs the CYK recognizer over g (which must be in CNF) and word, a
// sequence of terminal names. Returns Accept/Reject and, when accepted,
// the filled table for parse-forest reconstruction via CykForest.
func Cyk(g *grammar.CFG, word []string) (Outcome, *CykTable, error) {
	if g.Form() != grammar.CNF {
		return Reject, nil, &CykError{Reason: "grammar is not in CNF"}
	}

	n := len(word)
	if n == 0 {
		// The only way CNF derives epsilon is a direct A -> epsilon
		// production on the start symbol (spec.md §4.5 step 3's preserved
		// start-symbol case); CNF's length-1/length-2 shape otherwise
		// never derives epsilon, so check that directly.
		for _, p := range g.Productions() {
			if p.Head == g.Start() && len(p.Body) == 0 {
				return Accept, newCykTable(0), nil
			}
		}
		return Reject, newCykTable(0), nil
	}

	termIDs := make([]grammar.TermID, n)
	for i, w := range word {
		id := g.TermID(w)
		if id == symtab.Invalid {
			return Reject, newCykTable(n), nil
		}
		termIDs[i] = id
	}

	byUnitTerm := map[grammar.TermID][]grammar.Production{}
	byBinary := map[[2]grammar.VarID][]grammar.Production{}
	for _, p := range g.Productions() {
		switch len(p.Body) {
		case 1:
			if p.Body[0].Terminal {
				byUnitTerm[p.Body[0].ID] = append(byUnitTerm[p.Body[0].ID], p)
			}
		case 2:
			key := [2]grammar.VarID{p.Body[0].ID, p.Body[1].ID}
			byBinary[key] = append(byBinary[key], p)
		}
	}

	table := newCykTable(n)
	for i := 0; i < n; i++ {
		for _, p := range byUnitTerm[termIDs[i]] {
			table.at(i, 0)[p.Head] = append(table.at(i, 0)[p.Head], cykSplit{unit: true, production: p})
		}
	}

	for length := 2; length <= n; length++ {
		for i := 0; i+length <= n; i++ {
			j := length - 1
			cell := table.at(i, j)
			for split := 1; split < length; split++ {
				left := table.at(i, split-1)
				right := table.at(i+split, length-split-1)
				for a := range left {
					for b := range right {
						for _, p := range byBinary[[2]grammar.VarID{a, b}] {
							cell[p.Head] = append(cell[p.Head], cykSplit{mid: i + split, left: a, right: b})
						}
					}
				}
			}
		}
	}

	if _, ok := table.at(0, n-1)[g.Start()]; ok {
		return Accept, table, nil
	}
	return Reject, table, nil
}
