package recognize

import (
	"github.com/coregx/ahocorasick"

	"github.com/baobabgit/automata/grammar"
)

// item is (A -> alpha . beta, origin), spec.md §4.6's Earley item: Prod
// identifies the production, Dot is the position of the bullet within its
// body, and Origin is the index of the item set the item entered at.
type item struct {
	prod   int
	dot    int
	origin int
}

// completion records, for a completed item, which (causeSet, causeItem)
// pair of a matching predicted item and which child parse (terminal or
// completed sub-item) produced it, enough to reconstruct an SPPF node.
type completion struct {
	causeItem int // index into the item set at causeSet
	child     sppfChild
}

type sppfChild struct {
	terminal string
	isTerm   bool
	set      int // item set index the child's completion landed in
	item     int // item index within that set, if !isTerm
}

// EarleyChart is the full S0..Sn sequence of item sets produced by Earley,
// retained for parse-forest reconstruction and ambiguity counting.
type EarleyChart struct {
	g           *grammar.CFG
	word        []string
	sets        [][]item
	completions [][][]completion // completions[set][itemIndex] = ways this item completed
}

// Earley runs the Earley recognizer over g (any CFG) and word, a sequence
// of terminal names, per spec.md §4.6.
func Earley(g *grammar.CFG, word []string) (Outcome, *EarleyChart) {
	n := len(word)
	prods := g.Productions()

	chart := &EarleyChart{g: g, word: word, sets: make([][]item, n+1), completions: make([][][]completion, n+1)}

	// scanCandidate[i] is a fast, sound pre-filter for the scan step: if it
	// is false, no terminal in g can equal word[i], so every waiting item
	// at set i can skip straight to prediction/completion without calling
	// g.TermID. Built once per call by running a single Aho-Corasick
	// automaton over every terminal name against each word[i], rather than
	// the per-item equality check the scan step used to do in isolation —
	// the same "one pass over the alphabet instead of one comparison per
	// candidate" batching meta.Engine.ahoCorasick applies during literal
	// prefiltering. If the automaton fails to build (e.g. g has no
	// terminals), the filter degrades to "always maybe" rather than
	// silently skipping scan.
	scanCandidate := scanFilter(g, word)

	seen := make([]map[item]int, n+1)
	for i := range seen {
		seen[i] = map[item]int{}
	}

	addItem := func(set int, it item) int {
		if idx, ok := seen[set][it]; ok {
			return idx
		}
		idx := len(chart.sets[set])
		chart.sets[set] = append(chart.sets[set], it)
		chart.completions[set] = append(chart.completions[set], nil)
		seen[set][it] = idx
		return idx
	}

	bodyLen := func(p int) int { return len(prods[p].Body) }
	symAt := func(p, dot int) (grammar.Symbol, bool) {
		if dot >= bodyLen(p) {
			return grammar.Symbol{}, false
		}
		return prods[p].Body[dot], true
	}

	for p, prod := range prods {
		if prod.Head == g.Start() {
			addItem(0, item{prod: p, dot: 0, origin: 0})
		}
	}

	for i := 0; i <= n; i++ {
		for idx := 0; idx < len(chart.sets[i]); idx++ {
			it := chart.sets[i][idx]
			sym, hasSym := symAt(it.prod, it.dot)

			if !hasSym {
				// complete: for every item in set `it.origin` waiting on
				// prods[it.prod].Head, advance the dot and record the
				// completion edge.
				for j, waiting := range chart.sets[it.origin] {
					if it.origin == i && j > idx {
						break // later items advance over it when predicted
					}
					wsym, ok := symAt(waiting.prod, waiting.dot)
					if !ok || wsym.Terminal || wsym.ID != prods[it.prod].Head {
						continue
					}
					advanced := item{prod: waiting.prod, dot: waiting.dot + 1, origin: waiting.origin}
					newIdx := addItem(i, advanced)
					chart.completions[i][newIdx] = append(chart.completions[i][newIdx], completion{
						causeItem: j,
						child:     sppfChild{isTerm: false, set: i, item: idx},
					})
				}
				continue
			}

			if !sym.Terminal {
				// predict: add (B -> .gamma, i) for every B-production.
				for p, prod := range prods {
					if prod.Head == sym.ID {
						addItem(i, item{prod: p, dot: 0, origin: i})
					}
				}
				// An ε-completion of sym processed earlier in this set did
				// not see this item; advance over it here.
				for j := 0; j < idx; j++ {
					done := chart.sets[i][j]
					if done.origin == i && done.dot == bodyLen(done.prod) && prods[done.prod].Head == sym.ID {
						newIdx := addItem(i, item{prod: it.prod, dot: it.dot + 1, origin: it.origin})
						chart.completions[i][newIdx] = append(chart.completions[i][newIdx], completion{
							causeItem: idx,
							child:     sppfChild{isTerm: false, set: i, item: j},
						})
					}
				}
				continue
			}

			// scan: if word[i] == sym, add the advanced item to set i+1.
			if i < n && scanCandidate[i] && g.TermID(word[i]) == sym.ID {
				advanced := item{prod: it.prod, dot: it.dot + 1, origin: it.origin}
				newIdx := addItem(i+1, advanced)
				chart.completions[i+1][newIdx] = append(chart.completions[i+1][newIdx], completion{
					causeItem: idx,
					child:     sppfChild{isTerm: true, terminal: word[i]},
				})
			}
		}
	}

	for _, it := range chart.sets[n] {
		if it.origin == 0 && prods[it.prod].Head == g.Start() && it.dot == bodyLen(it.prod) {
			return Accept, chart
		}
	}
	return Reject, chart
}

// scanFilter builds an Aho-Corasick automaton over g's terminal alphabet
// and runs it once against each word position, returning, per position,
// whether any terminal could possibly equal word[i]. A false entry lets
// the scan step above skip every waiting item at that position without
// touching the symtab; a true entry (or a failed automaton build) falls
// back to the exact per-item g.TermID comparison, so this is purely a
// batching speedup and can never reject a real match: if some terminal t
// equals word[i] exactly, the automaton holds a pattern for t, and
// scanning word[i] from position 0 necessarily reports some occurrence of
// some registered pattern ending by the time it reaches word[i]'s last
// byte, whether or not that occurrence happens to be t itself.
func scanFilter(g *grammar.CFG, word []string) []bool {
	candidate := make([]bool, len(word))

	terms := g.Terms()
	if len(terms) == 0 {
		return candidate
	}

	builder := ahocorasick.NewBuilder()
	for _, name := range terms {
		builder.AddPattern([]byte(name))
	}
	auto, err := builder.Build()
	if err != nil {
		for i := range candidate {
			candidate[i] = true
		}
		return candidate
	}

	for i, w := range word {
		candidate[i] = auto.Find([]byte(w), 0) != nil
	}
	return candidate
}
