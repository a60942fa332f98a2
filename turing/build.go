package turing

import "github.com/baobabgit/automata/internal/symtab"

// TransitionSpec names a single transition by external state/symbol
// names, for use with Build — mirroring pda.TransitionSpec. Read, Write,
// and Moves must each have length TapeCount.
type TransitionSpec struct {
	From   string
	Read   []string
	To     string
	Write  []string
	Moves  []string // "L", "R", or "S" per tape
	Weight float64
}

// Build constructs a TM from external names, resolving them through
// fresh symbol tables. blanks names the per-tape blank symbol (length
// tapeCount); every blank must be declared in tapeAlphabet and must not
// appear in inputAlphabet (spec.md §3.2: "b ∈ Γ \ Σ"). flavor selects
// whether the static determinism check runs; Build fails with a
// *DeterminismConflict if flavor == DTM and two transitions share a
// (state, read-vector) key.
func Build(states, inputAlphabet, tapeAlphabet []string, transitions []TransitionSpec,
	initial, accept, reject string, blanks []string, tapeCount int, flavor Flavor) (*TM, error) {

	if tapeCount < 1 {
		return nil, &InvalidAutomatonError{Reason: "tape_count must be at least 1"}
	}
	if len(blanks) != tapeCount {
		return nil, &InvalidAutomatonError{Reason: "blanks must have one entry per tape"}
	}
	if accept == reject {
		return nil, &InvalidAutomatonError{Reason: "accept and reject states must differ"}
	}

	stateTab := symtab.New()
	for _, s := range states {
		stateTab.Intern(s)
	}
	initialID := stateTab.Lookup(initial)
	if initialID == symtab.Invalid {
		return nil, &InvalidAutomatonError{Reason: "initial state not declared"}
	}
	acceptID := stateTab.Lookup(accept)
	if acceptID == symtab.Invalid {
		return nil, &InvalidAutomatonError{Reason: "accept state not declared"}
	}
	rejectID := stateTab.Lookup(reject)
	if rejectID == symtab.Invalid {
		return nil, &InvalidAutomatonError{Reason: "reject state not declared"}
	}

	inputTab := symtab.New()
	for _, s := range inputAlphabet {
		inputTab.Intern(s)
	}

	tapeTab := symtab.New()
	for _, s := range tapeAlphabet {
		tapeTab.Intern(s)
	}
	for _, s := range inputAlphabet {
		if tapeTab.Lookup(s) == symtab.Invalid {
			return nil, &InvalidAutomatonError{Reason: "input symbol not present in tape alphabet: " + s}
		}
	}

	blankIDs := make([]SymbolID, tapeCount)
	for i, b := range blanks {
		id := tapeTab.Lookup(b)
		if id == symtab.Invalid {
			return nil, &InvalidAutomatonError{Reason: "blank symbol not declared in tape alphabet: " + b}
		}
		if inputTab.Lookup(b) != symtab.Invalid {
			return nil, &InvalidAutomatonError{Reason: "blank symbol must not belong to the input alphabet: " + b}
		}
		blankIDs[i] = id
	}

	byFrom := make(map[StateID][]Transition)
	for _, spec := range transitions {
		if len(spec.Read) != tapeCount || len(spec.Write) != tapeCount || len(spec.Moves) != tapeCount {
			return nil, &InvalidAutomatonError{Reason: "transition tape-vector length mismatch"}
		}
		from := stateTab.Lookup(spec.From)
		to := stateTab.Lookup(spec.To)
		if from == symtab.Invalid || to == symtab.Invalid {
			return nil, &InvalidAutomatonError{Reason: "transition references undeclared state"}
		}

		read := make([]SymbolID, tapeCount)
		write := make([]SymbolID, tapeCount)
		moves := make([]Move, tapeCount)
		for i := 0; i < tapeCount; i++ {
			r := tapeTab.Lookup(spec.Read[i])
			if r == symtab.Invalid {
				return nil, &InvalidAutomatonError{Reason: "transition reads undeclared tape symbol: " + spec.Read[i]}
			}
			w := tapeTab.Lookup(spec.Write[i])
			if w == symtab.Invalid {
				return nil, &InvalidAutomatonError{Reason: "transition writes undeclared tape symbol: " + spec.Write[i]}
			}
			read[i] = r
			write[i] = w
			switch spec.Moves[i] {
			case "L":
				moves[i] = Left
			case "R":
				moves[i] = Right
			case "S":
				moves[i] = Stay
			default:
				return nil, &InvalidAutomatonError{Reason: "unknown move symbol: " + spec.Moves[i]}
			}
		}
		byFrom[from] = append(byFrom[from], Transition{
			From: from, Read: read, To: to, Write: write, Moves: moves, Weight: spec.Weight,
		})
	}

	m := &TM{
		flavor:    flavor,
		tapeCount: tapeCount,
		numStates: stateTab.Len(),
		states:    stateTab,
		input:     inputTab,
		tape:      tapeTab,
		byFrom:    byFrom,
		initial:   initialID,
		accept:    acceptID,
		reject:    rejectID,
		blanks:    blankIDs,
	}

	if flavor == DTM {
		if conflict := checkDeterminism(m); conflict != nil {
			return nil, conflict
		}
	}

	return m, nil
}

func checkDeterminism(m *TM) *DeterminismConflict {
	seen := make(map[StateID]map[string]bool)
	for q, ts := range m.byFrom {
		for _, t := range ts {
			key := readKey(t.Read)
			if seen[q] == nil {
				seen[q] = make(map[string]bool)
			}
			if seen[q][key] {
				return &DeterminismConflict{State: q, Read: t.Read}
			}
			seen[q][key] = true
		}
	}
	return nil
}

func readKey(read []SymbolID) string {
	buf := make([]byte, 0, len(read)*4)
	for _, r := range read {
		buf = append(buf, byte(r), byte(r>>8), byte(r>>16), byte(r>>24))
	}
	return string(buf)
}
