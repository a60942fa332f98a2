package recognize

import "github.com/baobabgit/automata/grammar"

// Tree is one concrete parse tree: a variable node with either a single
// terminal child (leaf) or exactly two variable-tree children (binary
// CNF production), or no children at all (a direct A -> epsilon
// derivation).
type Tree struct {
	Var      grammar.VarID
	Terminal string
	Children []*Tree
}

// CykForest enumerates every parse tree for word against the table
// produced by Cyk, rooted at g's start symbol. Ambiguous grammars can
// produce exponentially many trees; callers that only need a witness
// should take Trees[0].
func CykForest(g *grammar.CFG, word []string, table *CykTable) []*Tree {
	if table == nil || table.n == 0 {
		for _, p := range g.Productions() {
			if p.Head == g.Start() && len(p.Body) == 0 {
				return []*Tree{{Var: g.Start()}}
			}
		}
		return nil
	}
	return buildTrees(g, word, table, 0, table.n-1, g.Start())
}

func buildTrees(g *grammar.CFG, word []string, table *CykTable, i, j int, want grammar.VarID) []*Tree {
	var out []*Tree
	for _, split := range table.at(i, j)[want] {
		if split.unit {
			out = append(out, &Tree{Var: want, Terminal: word[i]})
			continue
		}
		leftLen := split.mid - i - 1
		rightStart := split.mid
		lefts := buildTrees(g, word, table, i, leftLen, split.left)
		rights := buildTrees(g, word, table, rightStart, j-(split.mid-i), split.right)
		for _, l := range lefts {
			for _, r := range rights {
				out = append(out, &Tree{Var: want, Children: []*Tree{l, r}})
			}
		}
	}
	return out
}
