package rx

import (
	"fmt"

	"github.com/baobabgit/automata/fa"
)

// fragment is a single-entry, single-exit ε-NFA fragment (spec.md §4.3):
// exactly one initial state with no incoming edges from within the
// fragment, and one distinguished accepting state with no outgoing edges
// from within the fragment. Composing operators may add edges leaving
// accept (e.g. Star's loop-back) — the invariant binds the fragment as
// returned by compile, not forever after.
type fragment struct {
	start, accept fa.StateID
}

// Thompson compiles an AST into an ε-NFA via the classic syntax-directed
// Thompson construction (spec.md §4.3), producing O(|regex|) states.
func Thompson(root *Node) *fa.FA {
	b := fa.NewBuilder(alphabetOf(root))
	frag := compile(b, root)
	return b.Finish(frag.start, []fa.StateID{frag.accept})
}

// alphabetOf collects every literal rune the AST can ever consume, in
// first-encounter order, for declaring the builder's alphabet up front.
func alphabetOf(n *Node) []string {
	seen := map[rune]bool{}
	var order []string
	var walk func(*Node)
	walk = func(n *Node) {
		switch n.Kind {
		case Literal:
			if !seen[n.Char] {
				seen[n.Char] = true
				order = append(order, string(n.Char))
			}
		case CharClass:
			for _, rr := range n.Ranges {
				for r := rr.Lo; r <= rr.Hi; r++ {
					if !seen[r] {
						seen[r] = true
						order = append(order, string(r))
					}
				}
			}
		default:
			for _, c := range n.Children {
				walk(c)
			}
		}
	}
	walk(n)
	return order
}

func compile(b *fa.Builder, n *Node) fragment {
	switch n.Kind {
	case Literal:
		return compileLiteral(b, n.Char)
	case CharClass:
		return compileCharClass(b, n.Ranges)
	case Concat:
		return compileConcat(b, n.Children[0], n.Children[1])
	case Union:
		return compileUnion(b, n.Children[0], n.Children[1])
	case Star:
		return compileStar(b, n.Children[0])
	case Plus:
		return compilePlus(b, n.Children[0])
	case Question:
		return compileQuestion(b, n.Children[0])
	default:
		panic(fmt.Sprintf("rx: unknown AST node kind %d", n.Kind))
	}
}

func compileLiteral(b *fa.Builder, r rune) fragment {
	start, accept := b.AddState(), b.AddState()
	b.AddEdge(start, b.Symbol(string(r)), accept)
	return fragment{start, accept}
}

func compileCharClass(b *fa.Builder, ranges []RuneRange) fragment {
	start, accept := b.AddState(), b.AddState()
	if len(ranges) == 0 {
		b.AddEdge(start, fa.Epsilon, accept) // ε fragment
		return fragment{start, accept}
	}
	for _, rr := range ranges {
		for r := rr.Lo; r <= rr.Hi; r++ {
			b.AddEdge(start, b.Symbol(string(r)), accept)
		}
	}
	return fragment{start, accept}
}

func compileConcat(b *fa.Builder, left, right *Node) fragment {
	l := compile(b, left)
	r := compile(b, right)
	b.AddEdge(l.accept, fa.Epsilon, r.start)
	return fragment{l.start, r.accept}
}

func compileUnion(b *fa.Builder, left, right *Node) fragment {
	l := compile(b, left)
	r := compile(b, right)
	start, accept := b.AddState(), b.AddState()
	b.AddEdge(start, fa.Epsilon, l.start)
	b.AddEdge(start, fa.Epsilon, r.start)
	b.AddEdge(l.accept, fa.Epsilon, accept)
	b.AddEdge(r.accept, fa.Epsilon, accept)
	return fragment{start, accept}
}

func compileStar(b *fa.Builder, inner *Node) fragment {
	f := compile(b, inner)
	start, accept := b.AddState(), b.AddState()
	b.AddEdge(start, fa.Epsilon, f.start)
	b.AddEdge(start, fa.Epsilon, accept)
	b.AddEdge(f.accept, fa.Epsilon, f.start)
	b.AddEdge(f.accept, fa.Epsilon, accept)
	return fragment{start, accept}
}

// compilePlus desugars A+ to AA* (spec.md §4.3) using a single copy of A's
// fragment with a loop-back edge, rather than literally duplicating the
// subtree, to keep the construction O(|regex|).
func compilePlus(b *fa.Builder, inner *Node) fragment {
	f := compile(b, inner)
	accept := b.AddState()
	b.AddEdge(f.accept, fa.Epsilon, f.start)
	b.AddEdge(f.accept, fa.Epsilon, accept)
	return fragment{f.start, accept}
}

// compileQuestion desugars A? to A|ε (spec.md §4.3).
func compileQuestion(b *fa.Builder, inner *Node) fragment {
	f := compile(b, inner)
	start, accept := b.AddState(), b.AddState()
	b.AddEdge(start, fa.Epsilon, f.start)
	b.AddEdge(start, fa.Epsilon, accept)
	b.AddEdge(f.accept, fa.Epsilon, accept)
	return fragment{start, accept}
}
