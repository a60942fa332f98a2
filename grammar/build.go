package grammar

import "github.com/baobabgit/automata/internal/symtab"

// SymbolSpec names a single production-body symbol by its external
// variable/terminal name. A body element with Terminal == true resolves
// against terms; otherwise against vars.
type SymbolSpec struct {
	Terminal bool
	Name     string
}

// ProductionSpec is A → α named externally, for use with Build.
type ProductionSpec struct {
	Head string
	Body []SymbolSpec
}

// Build constructs a CFG from external names.
func Build(vars, terms []string, productions []ProductionSpec, start string) (*CFG, error) {
	varTab := symtab.New()
	for _, v := range vars {
		varTab.Intern(v)
	}
	if varTab.Lookup(start) == symtab.Invalid {
		return nil, &GrammarError{Reason: "start symbol not declared as a variable"}
	}

	termTab := symtab.New()
	for _, t := range terms {
		termTab.Intern(t)
	}

	var ps []Production
	for _, spec := range productions {
		head := varTab.Lookup(spec.Head)
		if head == symtab.Invalid {
			return nil, &GrammarError{Reason: "production head not declared: " + spec.Head}
		}
		body := make([]Symbol, len(spec.Body))
		for i, s := range spec.Body {
			if s.Terminal {
				id := termTab.Lookup(s.Name)
				if id == symtab.Invalid {
					return nil, &GrammarError{Reason: "production body references undeclared terminal: " + s.Name}
				}
				body[i] = Term(id)
			} else {
				id := varTab.Lookup(s.Name)
				if id == symtab.Invalid {
					return nil, &GrammarError{Reason: "production body references undeclared variable: " + s.Name}
				}
				body[i] = Var(id)
			}
		}
		ps = append(ps, Production{Head: head, Body: body})
	}

	return &CFG{
		vars:        varTab,
		terms:       termTab,
		productions: ps,
		start:       varTab.Lookup(start),
		form:        General,
	}, nil
}
