package recognize

import "github.com/baobabgit/automata/grammar"

// AmbiguityLabel is the bounded-check verdict of spec.md §4.6: ambiguity
// is undecidable in general, so the report names the limit of what a
// finite search established rather than claiming a definite no.
type AmbiguityLabel int

const (
	Unambiguous AmbiguityLabel = iota
	Ambiguous
	AmbiguityUndetermined
)

func (l AmbiguityLabel) String() string {
	switch l {
	case Ambiguous:
		return "ambiguous"
	case Unambiguous:
		return "unambiguous"
	default:
		return "ambiguity_undetermined"
	}
}

// AmbiguityReport is the result of DetectAmbiguity.
type AmbiguityReport struct {
	Label    AmbiguityLabel
	Witness  string // the shortest string found with >1 derivation, if Label == Ambiguous
	MaxLen   int
	Checked  int
}

// DetectAmbiguity implements spec.md §4.6's bounded ambiguity check:
// generate every terminal string up to length maxLen, count its distinct
// leftmost derivations, and report Ambiguous on the first string with more
// than one; if none is found within the bound, report
// AmbiguityUndetermined rather than claiming unambiguity (the problem is
// undecidable in general).
func DetectAmbiguity(g *grammar.CFG, maxLen int) AmbiguityReport {
	report := AmbiguityReport{Label: AmbiguityUndetermined, MaxLen: maxLen}

	for _, s := range stringsUpTo(g, maxLen) {
		report.Checked++
		count := countDerivations(g, s, maxLen*4+20)
		if count > 1 {
			report.Label = Ambiguous
			report.Witness = joinTerms(g, s)
			return report
		}
	}
	return report
}

// stringsUpTo enumerates every terminal string derivable by g of length
// at most maxLen, via bounded leftmost expansion (shared with
// countDerivations's search, but collecting terminal yields instead of
// counting repeats).
func stringsUpTo(g *grammar.CFG, maxLen int) [][]grammar.TermID {
	seenYield := map[string]bool{}
	var out [][]grammar.TermID

	type form struct{ syms []grammar.Symbol }
	start := form{syms: []grammar.Symbol{grammar.Var(g.Start())}}
	queue := []form{start}
	seenForm := map[string]bool{formKey(start.syms): true}
	steps := maxLen*len(g.Productions())*4 + 50

	for len(queue) > 0 && steps > 0 {
		steps--
		f := queue[0]
		queue = queue[1:]

		if allTerminal(f.syms) {
			if len(f.syms) <= maxLen {
				ids := make([]grammar.TermID, len(f.syms))
				for i, s := range f.syms {
					ids[i] = s.ID
				}
				key := joinTerms(g, ids)
				if !seenYield[key] {
					seenYield[key] = true
					out = append(out, ids)
				}
			}
			continue
		}
		if len(f.syms) > maxLen+len(g.Productions()) {
			continue
		}

		for i, sym := range f.syms {
			if sym.Terminal {
				continue
			}
			for _, p := range g.Productions() {
				if p.Head != sym.ID {
					continue
				}
				next := make([]grammar.Symbol, 0, len(f.syms)-1+len(p.Body))
				next = append(next, f.syms[:i]...)
				next = append(next, p.Body...)
				next = append(next, f.syms[i+1:]...)
				if countTerminals(next) > maxLen {
					continue
				}
				nf := form{syms: next}
				k := formKey(nf.syms)
				if !seenForm[k] {
					seenForm[k] = true
					queue = append(queue, nf)
				}
			}
			break // leftmost: only expand the first nonterminal
		}
	}
	return out
}

// countDerivations counts distinct leftmost-derivation sequences of g that
// yield exactly word, bounded by a step budget to guarantee termination on
// grammars with infinite expansion paths (e.g. unproductive-but-present
// recursive variables).
func countDerivations(g *grammar.CFG, word []grammar.TermID, budget int) int {
	target := make([]grammar.Symbol, len(word))
	for i, id := range word {
		target[i] = grammar.Term(id)
	}

	var count int
	var rec func(syms []grammar.Symbol, remaining int)
	rec = func(syms []grammar.Symbol, remaining int) {
		if remaining <= 0 {
			return
		}
		if allTerminal(syms) {
			if equalSyms(syms, target) {
				count++
			}
			return
		}
		if countTerminals(syms) > len(target) || len(syms) > len(target)+8 {
			return
		}
		for i, sym := range syms {
			if sym.Terminal {
				continue
			}
			for _, p := range g.Productions() {
				if p.Head != sym.ID {
					continue
				}
				next := make([]grammar.Symbol, 0, len(syms)-1+len(p.Body))
				next = append(next, syms[:i]...)
				next = append(next, p.Body...)
				next = append(next, syms[i+1:]...)
				rec(next, remaining-1)
			}
			break // leftmost derivation: expand only the first nonterminal
		}
	}
	rec([]grammar.Symbol{grammar.Var(g.Start())}, budget)
	return count
}

func allTerminal(syms []grammar.Symbol) bool {
	for _, s := range syms {
		if !s.Terminal {
			return false
		}
	}
	return true
}

func countTerminals(syms []grammar.Symbol) int {
	n := 0
	for _, s := range syms {
		if s.Terminal {
			n++
		}
	}
	return n
}

func equalSyms(a, b []grammar.Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func formKey(syms []grammar.Symbol) string {
	buf := make([]byte, 0, len(syms)*5)
	for _, s := range syms {
		tag := byte(0)
		if s.Terminal {
			tag = 1
		}
		buf = append(buf, tag, byte(s.ID), byte(s.ID>>8), byte(s.ID>>16), byte(s.ID>>24))
	}
	return string(buf)
}

func joinTerms(g *grammar.CFG, ids []grammar.TermID) string {
	out := make([]byte, 0, len(ids)*2)
	for i, id := range ids {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, g.TermName(id)...)
	}
	return string(out)
}
