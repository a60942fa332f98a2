package rx

import (
	"sort"

	"github.com/baobabgit/automata/fa"
)

// Eliminate converts an automaton back into a regex AST by the classical
// state-elimination algorithm (spec.md §4.3): states other than a single
// new start and single new accept are removed one at a time, each removal
// folding its in/out/self edges into the regex labels of its neighbors,
// until only start and accept remain and the label on that last edge is
// the answer.
//
// Elimination proceeds in increasing order of total (in + out) degree,
// computed once before the first removal, so that cheap states are folded
// first, keeping intermediate expressions small. States
// are eliminated from an arc-labeled copy of the graph; a's own
// representation is left untouched.
func Eliminate(a *fa.FA) *Node {
	g := newArcGraph(a)
	order := g.byIncreasingDegree()
	for _, q := range order {
		g.eliminate(q)
	}
	label := g.labels[arcKey{g.start, g.accept}]
	if label == nil {
		return emptyLanguage() // no path start->accept: the empty language
	}
	return label
}

type arcKey struct{ from, to int }

// arcGraph is a regex-labeled complete digraph over {start, accept} ∪
// (a's original states), used only as elimination scratch space.
type arcGraph struct {
	start, accept int
	alive         map[int]bool
	labels        map[arcKey]*Node // nil entry == no arc
}

func newArcGraph(a *fa.FA) *arcGraph {
	n := a.NumStates()
	g := &arcGraph{
		start:  n,
		accept: n + 1,
		alive:  make(map[int]bool, n+2),
		labels: make(map[arcKey]*Node),
	}
	g.alive[g.start] = true
	g.alive[g.accept] = true
	for q := fa.StateID(0); int(q) < n; q++ {
		g.alive[int(q)] = true
	}
	g.addEdge(g.start, epsilonNode(), int(a.Initial()))
	for q := fa.StateID(0); int(q) < n; q++ {
		if a.IsFinal(q) {
			g.addEdge(int(q), epsilonNode(), g.accept)
		}
	}
	for from := fa.StateID(0); int(from) < n; from++ {
		for _, symName := range append([]string{""}, a.Alphabet()...) {
			var sym fa.SymbolID
			var label *Node
			if symName == "" {
				sym = fa.Epsilon
				label = epsilonNode()
			} else {
				sym = a.SymbolID(symName)
				label = lit([]rune(symName)[0])
			}
			for _, to := range a.Targets(from, sym) {
				g.addEdge(int(from), label, int(to))
			}
		}
	}
	return g
}

func epsilonNode() *Node { return class() }

// addEdge unions label into the existing arc from->to, if any.
func (g *arcGraph) addEdge(from int, label *Node, to int) {
	k := arcKey{from, to}
	if existing, ok := g.labels[k]; ok && existing != nil {
		g.labels[k] = union(existing, label)
		return
	}
	g.labels[k] = label
}

// byIncreasingDegree orders every state except start/accept by ascending
// (in-degree + out-degree) among currently-alive arcs, breaking ties by
// state index for determinism.
func (g *arcGraph) byIncreasingDegree() []int {
	var states []int
	for q := range g.alive {
		if q != g.start && q != g.accept {
			states = append(states, q)
		}
	}
	// g.alive is a map, so the loop above visits states in random order;
	// sort by index first so the stable insertion sort below only ever
	// breaks degree ties by state index, never by map iteration order.
	sort.Ints(states)
	degree := func(q int) int {
		d := 0
		for k, v := range g.labels {
			if v == nil {
				continue
			}
			if k.from == q || k.to == q {
				d++
			}
		}
		return d
	}
	for i := 1; i < len(states); i++ {
		for j := i; j > 0 && degree(states[j]) < degree(states[j-1]); j-- {
			states[j], states[j-1] = states[j-1], states[j]
		}
	}
	return states
}

// eliminate removes state q, folding it into every (pred, succ) pair via
// pred->q->q->...->q->succ, applying the simplification rules of
// spec.md §4.3 as it rebuilds labels.
func (g *arcGraph) eliminate(q int) {
	self := g.labels[arcKey{q, q}]
	loop := self
	if loop != nil {
		loop = simplify(star(loop)) // (α*)* -> α*, folded inside simplify
	}

	var preds, succs []int
	for k, v := range g.labels {
		if v == nil {
			continue
		}
		if k.to == q && k.from != q {
			preds = append(preds, k.from)
		}
		if k.from == q && k.to != q {
			succs = append(succs, k.to)
		}
	}

	for _, p := range preds {
		in := g.labels[arcKey{p, q}]
		for _, s := range succs {
			out := g.labels[arcKey{q, s}]
			through := in
			if loop != nil {
				through = simplify(concat(through, loop))
			}
			through = simplify(concat(through, out))
			k := arcKey{p, s}
			if existing, ok := g.labels[k]; ok && existing != nil {
				g.labels[k] = simplify(union(existing, through))
			} else {
				g.labels[k] = through
			}
		}
	}

	for k := range g.labels {
		if k.from == q || k.to == q {
			delete(g.labels, k)
		}
	}
	delete(g.alive, q)
}

// simplify applies the rewrite rules of spec.md §4.3:
//
//	ε·α -> α,  α·ε -> α,  ∅·α -> ∅,  α·∅ -> ∅,
//	α|α -> α,  α|ε -> α?,  (α*)* -> α*
func simplify(n *Node) *Node {
	switch n.Kind {
	case Concat:
		l, r := simplify(n.Children[0]), simplify(n.Children[1])
		if isEmptyString(l) {
			return r
		}
		if isEmptyString(r) {
			return l
		}
		if isEmptyLanguage(l) || isEmptyLanguage(r) {
			return emptyLanguage()
		}
		return concat(l, r)
	case Union:
		l, r := simplify(n.Children[0]), simplify(n.Children[1])
		if isEmptyLanguage(l) {
			return r
		}
		if isEmptyLanguage(r) {
			return l
		}
		if astEqual(l, r) {
			return l
		}
		if isEmptyString(r) {
			return &Node{Kind: Question, Children: []*Node{l}}
		}
		if isEmptyString(l) {
			return &Node{Kind: Question, Children: []*Node{r}}
		}
		return union(l, r)
	case Star:
		inner := simplify(n.Children[0])
		if inner.Kind == Star {
			return inner
		}
		if isEmptyString(inner) || isEmptyLanguage(inner) {
			return epsilonNode()
		}
		return star(inner)
	default:
		return n
	}
}

// isEmptyString reports whether n is the ε marker (a CharClass with no
// ranges, as produced by the parser's empty-concatenation case and this
// file's epsilonNode).
func isEmptyString(n *Node) bool { return n.Kind == CharClass && len(n.Ranges) == 0 }

// emptyLanguage is ∅, represented as a CharClass whose single range is
// inverted (Lo > Hi) and so matches nothing; Thompson compiles it to a
// fragment with no edge from start to accept. Eliminate returns it when
// no path leads from start to accept.
func emptyLanguage() *Node { return &Node{Kind: CharClass, Ranges: []RuneRange{{Lo: 1, Hi: 0}}} }

func isEmptyLanguage(n *Node) bool {
	return n.Kind == CharClass && len(n.Ranges) == 1 && n.Ranges[0].Lo > n.Ranges[0].Hi
}

func astEqual(a, b *Node) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Literal:
		return a.Char == b.Char
	case CharClass:
		if len(a.Ranges) != len(b.Ranges) {
			return false
		}
		for i := range a.Ranges {
			if a.Ranges[i] != b.Ranges[i] {
				return false
			}
		}
		return true
	default:
		if len(a.Children) != len(b.Children) {
			return false
		}
		for i := range a.Children {
			if !astEqual(a.Children[i], b.Children[i]) {
				return false
			}
		}
		return true
	}
}
