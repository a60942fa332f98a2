package turing

import "fmt"

// InvalidAutomatonError reports a structurally malformed TM at
// construction (missing initial/accept/reject state, undeclared symbol
// references, mismatched tape-vector lengths).
type InvalidAutomatonError struct {
	Reason string
}

func (e *InvalidAutomatonError) Error() string {
	return fmt.Sprintf("turing: invalid automaton: %s", e.Reason)
}

// DeterminismConflict reports two transitions sharing the same (state,
// read-vector) key in a machine built with flavor DTM.
type DeterminismConflict struct {
	State StateID
	Read  []SymbolID
}

func (e *DeterminismConflict) Error() string {
	return fmt.Sprintf("turing: determinism conflict at state %d, read %v", e.State, e.Read)
}

// TuringBudgetExceeded describes a step or branch budget overrun as an
// error value. The simulators in this package do not return it: they
// report an overrun as the BudgetExceeded Outcome.
type TuringBudgetExceeded struct {
	Kind  string // "steps" or "branches"
	Limit int
}

func (e *TuringBudgetExceeded) Error() string {
	return fmt.Sprintf("turing: %s budget %d exceeded", e.Kind, e.Limit)
}
