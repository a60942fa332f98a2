// Package grammar implements the context-free grammar engine: the CFG
// data model, reachability/productivity pruning, ε/unit-production
// elimination, Chomsky and Greibach normal form conversion, per spec.md
// §4.5 (C6).
package grammar

import "github.com/baobabgit/automata/internal/symtab"

// VarID identifies a variable (nonterminal) within a single grammar.
type VarID = symtab.ID

// TermID identifies a terminal within a single grammar.
type TermID = symtab.ID

// Symbol is one element of a production's right-hand side: either a
// variable or a terminal, tagged rather than split into two slice types,
// following the same tagged-union convention as fa.Flavor.
type Symbol struct {
	Terminal bool
	ID       symtab.ID
}

// Var constructs a variable Symbol.
func Var(id VarID) Symbol { return Symbol{Terminal: false, ID: id} }

// Term constructs a terminal Symbol.
func Term(id TermID) Symbol { return Symbol{Terminal: true, ID: id} }

// Production is A → α.
type Production struct {
	Head VarID
	Body []Symbol
}

// FormTag records the grammar's normalization state (spec.md §3.1: "a
// grammar carries a form tag ∈ {general, CNF, GNF} set by the last
// normalization step").
type FormTag uint8

const (
	General FormTag = iota
	CNF
	GNF
)

func (f FormTag) String() string {
	switch f {
	case CNF:
		return "CNF"
	case GNF:
		return "GNF"
	default:
		return "general"
	}
}

// CFG is the tuple (V, T, P, S) of spec.md §3.1. Immutable after
// construction; every exported transform returns a new CFG.
type CFG struct {
	vars        *symtab.Table
	terms       *symtab.Table
	productions []Production
	start       VarID
	form        FormTag
}

func (g *CFG) Vars() []string         { return g.vars.Names() }
func (g *CFG) Terms() []string        { return g.terms.Names() }
func (g *CFG) Start() VarID           { return g.start }
func (g *CFG) Form() FormTag          { return g.form }
func (g *CFG) Productions() []Production { return g.productions }

// VarName resolves a variable ID to its external name.
func (g *CFG) VarName(id VarID) string { return g.vars.Name(id) }

// TermName resolves a terminal ID to its external name.
func (g *CFG) TermName(id TermID) string { return g.terms.Name(id) }

// VarID resolves an external variable name to its dense ID.
func (g *CFG) VarID(name string) VarID { return g.vars.Lookup(name) }

// TermID resolves an external terminal name to its dense ID.
func (g *CFG) TermID(name string) TermID { return g.terms.Lookup(name) }

// Snapshot is the canonical structured representation of a CFG.
type Snapshot struct {
	Vars        []string
	Terms       []string
	Productions []Production
	Start       VarID
	Form        string
}

// Snapshot renders the grammar into its canonical structured value.
func (g *CFG) Snapshot() Snapshot {
	return Snapshot{
		Vars:        g.Vars(),
		Terms:       g.Terms(),
		Productions: append([]Production(nil), g.productions...),
		Start:       g.start,
		Form:        g.form.String(),
	}
}
