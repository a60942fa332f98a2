package pda

import "fmt"

// InvalidAutomatonError reports a structurally malformed PDA at
// construction (missing initial state, undefined state/symbol references).
type InvalidAutomatonError struct {
	Reason string
}

func (e *InvalidAutomatonError) Error() string {
	return fmt.Sprintf("pda: invalid automaton: %s", e.Reason)
}

// DeterminismConflict reports a violation of the DPDA invariant (spec.md
// §3.1, §4.4): for some (q, Z), neither of the two permitted shapes holds.
type DeterminismConflict struct {
	State  StateID
	Input  SymbolID // Epsilon if the conflict doesn't pin a specific input symbol
	HasInput bool
	Stack  SymbolID
}

func (e *DeterminismConflict) Error() string {
	if e.HasInput {
		return fmt.Sprintf("pda: determinism conflict at state %d, input %d, stack %d", e.State, e.Input, e.Stack)
	}
	return fmt.Sprintf("pda: determinism conflict at state %d, stack %d", e.State, e.Stack)
}

// PdaBranchLimit is returned (not as an accept/reject verdict) when NPDA
// simulation exceeds the configured branch budget without resolving.
type PdaBranchLimit struct {
	Limit int
}

func (e *PdaBranchLimit) Error() string {
	return fmt.Sprintf("pda: branch limit %d exceeded", e.Limit)
}
