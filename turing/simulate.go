package turing

import "sort"

// Outcome is the three-way verdict of a bounded simulation (spec.md §4.8),
// mirroring fa.Accepts/pda.Accepts's Outcome-free boolean shape widened
// with a third "ran out of budget" case, since TM simulation — unlike FA
// or DPDA — is not guaranteed to halt.
type Outcome uint8

const (
	Reject Outcome = iota
	Accept
	BudgetExceeded
)

func (o Outcome) String() string {
	switch o {
	case Accept:
		return "Accept"
	case BudgetExceeded:
		return "BudgetExceeded"
	default:
		return "Reject"
	}
}

// SimulateDTM runs m's deterministic step loop (spec.md §4.8's "Step
// semantics"): look up δ(q, head_symbol); write, move, update state.
// Undefined transitions reject immediately; halting happens iff the
// machine reaches q_accept or q_reject. Exceeding cfg.MaxSteps without
// halting reports BudgetExceeded rather than a verdict.
func SimulateDTM(m *TM, word []SymbolID, cfg Config) (Outcome, Configuration, error) {
	if m.flavor != DTM {
		return Reject, Configuration{}, &InvalidAutomatonError{Reason: "SimulateDTM requires a DTM-flavored TM"}
	}
	if err := cfg.Validate(); err != nil {
		return Reject, Configuration{}, err
	}

	state := Start(m, word)
	for step := 0; step < cfg.MaxSteps; step++ {
		if state.State == m.accept {
			return Accept, state, nil
		}
		if state.State == m.reject {
			return Reject, state, nil
		}
		trans := m.Lookup(state.State, readVector(state))
		if len(trans) == 0 {
			return Reject, state, nil
		}
		state = apply(state, trans[0])
	}
	switch state.State {
	case m.accept:
		return Accept, state, nil
	case m.reject:
		return Reject, state, nil
	}
	return BudgetExceeded, state, nil
}

// ComputationTree summarizes a bounded NTM simulation's exploration
// (spec.md §4.8: "total_nodes, accepting_paths, rejecting_paths,
// truncated_paths, max_depth_reached").
type ComputationTree struct {
	TotalNodes      int
	AcceptingPaths  int
	RejectingPaths  int
	TruncatedPaths  int
	MaxDepthReached int
}

type frontierNode struct {
	cfg   Configuration
	depth int
}

// SimulateNTM explores m's computation tree breadth-first (spec.md §4.8's
// "NTM simulation"), bounded by cfg.MaxBranches total visited nodes and
// cfg.MaxSteps per individual branch. A visited set over (state,
// tape-fingerprint, head) dedupes cycles. Accept iff any branch reaches
// q_accept within the bounds; reject iff every branch halts in q_reject
// or dead-ends (no applicable transition); BudgetExceeded otherwise.
func SimulateNTM(m *TM, word []SymbolID, cfg Config) (Outcome, ComputationTree, error) {
	if m.flavor != NTM {
		return Reject, ComputationTree{}, &InvalidAutomatonError{Reason: "SimulateNTM requires an NTM-flavored TM"}
	}
	if err := cfg.Validate(); err != nil {
		return Reject, ComputationTree{}, err
	}

	var tree ComputationTree
	queue := []frontierNode{{cfg: Start(m, word), depth: 0}}
	visited := make(map[string]bool)
	accepted := false

	for len(queue) > 0 {
		if tree.TotalNodes >= cfg.MaxBranches {
			tree.TruncatedPaths += len(queue)
			break
		}
		node := queue[0]
		queue = queue[1:]
		tree.TotalNodes++
		if node.depth > tree.MaxDepthReached {
			tree.MaxDepthReached = node.depth
		}

		if node.cfg.State == m.accept {
			tree.AcceptingPaths++
			accepted = true
			continue
		}
		if node.cfg.State == m.reject {
			tree.RejectingPaths++
			continue
		}
		if node.cfg.Steps >= cfg.MaxSteps {
			tree.TruncatedPaths++
			continue
		}

		key := fingerprint(node.cfg)
		if visited[key] {
			continue
		}
		visited[key] = true

		trans := m.Lookup(node.cfg.State, readVector(node.cfg))
		if len(trans) == 0 {
			tree.RejectingPaths++
			continue
		}
		trans = sortedByWeight(trans)
		for _, t := range trans {
			queue = append(queue, frontierNode{cfg: apply(node.cfg, t), depth: node.depth + 1})
		}
	}

	if accepted {
		return Accept, tree, nil
	}
	if tree.TruncatedPaths > 0 {
		return BudgetExceeded, tree, nil
	}
	return Reject, tree, nil
}

// sortedByWeight returns a stable copy of ts ordered by ascending Weight,
// the "weight-ordered tie-break" spec.md's Ordering guarantees section
// requires for reproducible exploration order.
func sortedByWeight(ts []Transition) []Transition {
	out := append([]Transition(nil), ts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Weight < out[j].Weight })
	return out
}

// Simulate dispatches to SimulateDTM or SimulateNTM by m's flavor,
// discarding the detailed trace/tree for callers that only need the
// verdict — mirroring fa.Accepts's single-entry-point shape.
func Simulate(m *TM, word []SymbolID, cfg Config) (Outcome, error) {
	if m.flavor == DTM {
		outcome, _, err := SimulateDTM(m, word, cfg)
		return outcome, err
	}
	outcome, _, err := SimulateNTM(m, word, cfg)
	return outcome, err
}
