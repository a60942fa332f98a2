// Package automata is the root facade of a classical-automata-theory
// engine: finite automata, pushdown automata, Turing machines, and
// context-free grammars, built as immutable values via typed Build*
// constructors and driven through a handful of uniform operations
// (Accepts, Convert, Minimize, Normalize, Recognize) rather than one
// method set per automaton family. It composes the per-family packages
// (fa, pda, turing, grammar, bridge, turingconv, recognize) the way
// meta.Engine composed coregex's nfa/dfa/prefilter internals: the
// packages here do the work, this one dispatches to them by the
// concrete type of automaton a caller hands back in.
//
// Basic usage:
//
//	m, err := automata.BuildFA(
//	    []string{"q0", "q1"}, []string{"a"},
//	    []fa.EdgeSpec{{From: "q0", Symbol: "a", To: "q1"}},
//	    "q0", []string{"q1"}, fa.DFA,
//	)
//	outcome, err := automata.Accepts(m, []string{"a"}, automata.DefaultConfig())
//	// outcome == automata.Accept
package automata

import (
	"fmt"

	"github.com/baobabgit/automata/bridge"
	"github.com/baobabgit/automata/fa"
	"github.com/baobabgit/automata/grammar"
	"github.com/baobabgit/automata/pda"
	"github.com/baobabgit/automata/recognize"
	"github.com/baobabgit/automata/turing"
	"github.com/baobabgit/automata/turingconv"
)

// Outcome is the facade-wide recognition verdict (spec.md §6:
// "accepts(automaton, input) -> Accept | Reject | BudgetExceeded |
// Cancelled"), uniform across every automaton family Accepts dispatches
// over.
type Outcome uint8

const (
	Reject Outcome = iota
	Accept
	BudgetExceeded
	// Cancelled is reserved for a cooperative cancellation token
	// threaded through a long-running simulation. None of fa/pda/turing
	// currently plumbs one (their Config structs bound only step/branch
	// counts), so no code path in this module produces it yet — see
	// DESIGN.md for why that wiring is deferred rather than faked.
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Accept:
		return "Accept"
	case BudgetExceeded:
		return "BudgetExceeded"
	case Cancelled:
		return "Cancelled"
	default:
		return "Reject"
	}
}

// Config bundles the per-family simulation bounds Accepts needs for a
// pushdown or Turing automaton; it is unused (and harmless to leave at
// its zero value) when m is an *fa.FA, since DFA/NFA/εNFA recognition is
// unconditional.
type Config struct {
	PDA    pda.Config
	Turing turing.Config
}

// DefaultConfig returns each family's own default bounds.
func DefaultConfig() Config {
	return Config{PDA: pda.DefaultConfig(), Turing: turing.DefaultConfig()}
}

// UnsupportedAutomatonError reports a facade call given a value that is
// not one of the automaton types it dispatches over.
type UnsupportedAutomatonError struct {
	Operation string
	Type      string
}

func (e *UnsupportedAutomatonError) Error() string {
	return fmt.Sprintf("automata: %s does not support %s", e.Operation, e.Type)
}

// BuildFA constructs a finite automaton (DFA, NFA, or epsilon-NFA),
// spec.md §6's build_fa.
func BuildFA(states, alphabet []string, transitions []fa.EdgeSpec, initial string, finals []string, flavor fa.Flavor) (*fa.FA, error) {
	return fa.Build(states, alphabet, transitions, initial, finals, flavor)
}

// BuildPDA constructs a general (possibly nondeterministic) pushdown
// automaton, spec.md §6's build_pda.
func BuildPDA(states, inputAlphabet, stackAlphabet []string, transitions []pda.TransitionSpec, initial, bottom string, finals []string, mode pda.AcceptMode) (*pda.PDA, error) {
	return pda.Build(states, inputAlphabet, stackAlphabet, transitions, initial, bottom, finals, pda.NPDA, mode)
}

// BuildDPDA constructs a pushdown automaton with the static determinism
// check spec.md §6's build_dpda requires, failing with
// *pda.DeterminismConflict if the transitions are not actually
// deterministic.
func BuildDPDA(states, inputAlphabet, stackAlphabet []string, transitions []pda.TransitionSpec, initial, bottom string, finals []string, mode pda.AcceptMode) (*pda.PDA, error) {
	return pda.Build(states, inputAlphabet, stackAlphabet, transitions, initial, bottom, finals, pda.DPDA, mode)
}

// BuildTM constructs a Turing machine, spec.md §6's build_tm — tapeCount
// > 1 is the "multi-tape variant with per-tape blanks" the spec calls
// out, expressed here as the same constructor with a longer blanks slice
// rather than a separate entry point.
func BuildTM(states, inputAlphabet, tapeAlphabet []string, transitions []turing.TransitionSpec, initial, accept, reject string, blanks []string, tapeCount int, flavor turing.Flavor) (*turing.TM, error) {
	return turing.Build(states, inputAlphabet, tapeAlphabet, transitions, initial, accept, reject, blanks, tapeCount, flavor)
}

// BuildCFG constructs a context-free grammar, spec.md §6's build_cfg.
func BuildCFG(vars, terms []string, productions []grammar.ProductionSpec, start string) (*grammar.CFG, error) {
	return grammar.Build(vars, terms, productions, start)
}

// Accepts runs the recognition operation appropriate to m's concrete
// type — *fa.FA, *pda.PDA, or *turing.TM — against word, given as
// external symbol names rather than each package's own interned IDs:
// the facade's purpose is to let a caller work in names throughout,
// leaving interning to the Build call that already owns it. cfg supplies
// the pushdown/Turing simulation bounds; it is ignored for an *fa.FA.
func Accepts(m any, word []string, cfg Config) (Outcome, error) {
	switch a := m.(type) {
	case *fa.FA:
		ids := make([]fa.SymbolID, len(word))
		for i, w := range word {
			ids[i] = a.SymbolID(w)
		}
		if fa.Accepts(a, ids) {
			return Accept, nil
		}
		return Reject, nil

	case *pda.PDA:
		ids := make([]pda.SymbolID, len(word))
		for i, w := range word {
			ids[i] = a.InputSymbolID(w)
		}
		var ok bool
		var err error
		if a.Flavor() == pda.DPDA {
			ok = pda.AcceptsDPDA(a, ids)
		} else {
			ok, err = pda.AcceptsNPDA(a, ids, cfg.PDA)
		}
		if err != nil {
			return Reject, err
		}
		if ok {
			return Accept, nil
		}
		return Reject, nil

	case *turing.TM:
		ids := make([]turing.SymbolID, len(word))
		for i, w := range word {
			ids[i] = a.InputSymbolID(w)
		}
		outcome, err := turing.Simulate(a, ids, cfg.Turing)
		if err != nil {
			return Reject, err
		}
		switch outcome {
		case turing.Accept:
			return Accept, nil
		case turing.BudgetExceeded:
			return BudgetExceeded, nil
		default:
			return Reject, nil
		}

	default:
		return Reject, &UnsupportedAutomatonError{Operation: "Accepts", Type: fmt.Sprintf("%T", m)}
	}
}

// ConvertTarget disambiguates Convert when a source type has more than
// one possible conversion target — currently only *turing.TM, which can
// be dovetailed into a single-tape DTM or track-encoded into a
// single-tape machine of its own flavor.
type ConvertTarget uint8

const (
	// ConvertDefault picks each source type's one canonical conversion:
	// NFA/epsilon-NFA -> DFA (subset construction), PDA -> CFG, CFG ->
	// PDA, and for a TM, dovetail (NTM -> DTM) if it is multi-tape-free,
	// otherwise track-encode it to a single-tape machine (which is returned
	// as is, not dovetailed).
	ConvertDefault ConvertTarget = iota
	// ConvertDovetail forces NTM -> DTM dovetailing (turingconv.Dovetail).
	ConvertDovetail
	// ConvertSingleTape forces multi-tape -> single-tape track encoding
	// (turingconv.MultiToSingle).
	ConvertSingleTape
)

// DefaultDovetailDepth is the maxDepth Convert passes to
// turingconv.Dovetail when the caller does not need a different bound;
// exported so a caller that calls Dovetail directly through Convert can
// see what "default" means without reading turingconv's source.
const DefaultDovetailDepth = 4

// Convert runs the conversion appropriate to src's concrete type, per
// spec.md §6's convert(automaton, target_kind, options). target
// disambiguates among multiple valid conversions for the same source
// type (only *turing.TM currently has more than one).
func Convert(src any, target ConvertTarget) (any, error) {
	switch s := src.(type) {
	case *fa.FA:
		return fa.SubsetConstruct(s), nil
	case *pda.PDA:
		return bridge.PDAToCFG(s)
	case *grammar.CFG:
		return bridge.CFGToPDA(s)
	case *turing.TM:
		if target == ConvertSingleTape || (target == ConvertDefault && s.TapeCount() > 1) {
			return turingconv.MultiToSingle(s, s.Flavor())
		}
		return turingconv.Dovetail(s, DefaultDovetailDepth)
	default:
		return nil, &UnsupportedAutomatonError{Operation: "Convert", Type: fmt.Sprintf("%T", src)}
	}
}

// Minimize runs the equivalence-collapsing minimization appropriate to
// src's concrete type, per spec.md §6's minimize(automaton) -> automaton.
// Only *fa.FA's variant is guaranteed optimal (Hopcroft on a DFA); the
// *pda.PDA and *turing.TM variants minimize stack/tape-alphabet and state
// redundancy but carry no such optimality guarantee (spec.md's own
// "FA only for the guaranteed-optimal variant" caveat).
func Minimize(src any) (any, error) {
	switch s := src.(type) {
	case *fa.FA:
		return fa.Minimize(s), nil
	case *pda.PDA:
		return bridge.MinimizeStackSymbols(s), nil
	case *turing.TM:
		states, err := turingconv.MinimizeStates(s)
		if err != nil {
			return nil, err
		}
		return turingconv.MinimizeSymbols(states)
	default:
		return nil, &UnsupportedAutomatonError{Operation: "Minimize", Type: fmt.Sprintf("%T", src)}
	}
}

// Normalize rewrites g into the requested normal form, spec.md §6's
// normalize(grammar, form) -> grammar. form == grammar.General returns g
// unchanged (there is nothing to normalize to).
func Normalize(g *grammar.CFG, form grammar.FormTag) (*grammar.CFG, error) {
	switch form {
	case grammar.CNF:
		return grammar.ToCNF(g), nil
	case grammar.GNF:
		return grammar.ToGNF(g), nil
	default:
		return g, nil
	}
}

// Algorithm selects the recognizer Recognize runs.
type Algorithm uint8

const (
	AlgorithmCYK Algorithm = iota
	AlgorithmEarley
)

// RecognizeResult is recognize(grammar, input, algorithm)'s result:
// Accept{parse_forest?} | Reject. Forest is only ever populated for
// AlgorithmCYK (recognize.CykForest); AlgorithmEarley reports only the
// verdict, consistent with the deferred SPPF-extraction decision
// recorded in DESIGN.md's recognize section.
type RecognizeResult struct {
	Outcome Outcome
	Forest  []*recognize.Tree
}

// Recognize runs grammar recognition over word (terminal names) with the
// requested algorithm, spec.md §6's recognize(grammar, input, algorithm).
func Recognize(g *grammar.CFG, word []string, algo Algorithm) (RecognizeResult, error) {
	if algo == AlgorithmEarley {
		outcome, _ := recognize.Earley(g, word)
		return RecognizeResult{Outcome: mapRecognizeOutcome(outcome)}, nil
	}

	outcome, table, err := recognize.Cyk(g, word)
	if err != nil {
		return RecognizeResult{}, err
	}
	result := RecognizeResult{Outcome: mapRecognizeOutcome(outcome)}
	if outcome == recognize.Accept {
		result.Forest = recognize.CykForest(g, word, table)
	}
	return result, nil
}

func mapRecognizeOutcome(o recognize.Outcome) Outcome {
	if o == recognize.Accept {
		return Accept
	}
	return Reject
}
