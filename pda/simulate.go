package pda

import "sort"

// configuration is the (state, remaining_input, stack) tuple of spec.md
// §3.1, with remaining_input represented as a position index into the
// fixed input word (so that two configurations at the same position share
// the same "remaining_input_suffix_id" for visited-set purposes, per
// spec.md §4.4).
type configuration struct {
	state StateID
	pos   int
	stack *Stack
}

type visitedKey struct {
	state StateID
	pos   int
	stack uint64
}

// AcceptsDPDA runs the single-configuration deterministic trace. ε-moves
// are taken eagerly whenever they are the unique applicable transition
// (spec.md §4.4). p must have been built with flavor == DPDA.
func AcceptsDPDA(p *PDA, word []SymbolID) bool {
	pool := newStackPool()
	stack := pool.push(nil, p.bottom)
	state := p.initial
	pos := 0

	for {
		if eps, ok := findEpsilon(p, state, stack); ok {
			state, stack = apply(pool, eps, stack)
			continue
		}
		if pos < len(word) {
			if t, ok := findOnInput(p, state, stack, word[pos]); ok {
				state, stack = apply(pool, t, stack)
				pos++
				continue
			}
		}
		break
	}

	if pos != len(word) {
		return false
	}
	return acceptingConfig(p, state, stack)
}

func findEpsilon(p *PDA, state StateID, stack *Stack) (Transition, bool) {
	top, ok := stack.Top()
	for _, t := range p.Transitions(state) {
		if t.Input != Epsilon {
			continue
		}
		if ok && t.Pop == top {
			return t, true
		}
	}
	return Transition{}, false
}

func findOnInput(p *PDA, state StateID, stack *Stack, sym SymbolID) (Transition, bool) {
	top, ok := stack.Top()
	if !ok {
		return Transition{}, false
	}
	for _, t := range p.Transitions(state) {
		if t.Input == sym && t.Pop == top {
			return t, true
		}
	}
	return Transition{}, false
}

func apply(pool *stackPool, t Transition, stack *Stack) (StateID, *Stack) {
	_, rest, _ := pool.pop(stack)
	return t.To, pool.pushAll(rest, t.Push)
}

func acceptingConfig(p *PDA, state StateID, stack *Stack) bool {
	if p.accept == AcceptEmptyStack {
		return stack.Empty()
	}
	return p.IsFinal(state)
}

// AcceptsNPDA runs the bounded BFS over configurations described in
// spec.md §4.4: each level enqueues every reachable successor (ε and
// input-consuming alike), pruning recurring (state, pos, stack) triples.
// Returns (true, nil) on acceptance, (false, nil) on exhaustion, or
// (false, *PdaBranchLimit) if cfg.MaxBranches is exceeded first.
func AcceptsNPDA(p *PDA, word []SymbolID, cfg Config) (bool, error) {
	pool := newStackPool()
	start := configuration{state: p.initial, pos: 0, stack: pool.push(nil, p.bottom)}

	visited := map[visitedKey]bool{key(start): true}
	frontier := []configuration{start}

	for len(frontier) > 0 {
		if len(frontier) > cfg.MaxBranches {
			return false, &PdaBranchLimit{Limit: cfg.MaxBranches}
		}

		var next []configuration
		for _, c := range frontier {
			if c.pos == len(word) && acceptingConfig(p, c.state, c.stack) {
				return true, nil
			}

			succs := successors(p, pool, c, word)
			for _, s := range succs {
				k := key(s)
				if visited[k] {
					continue
				}
				visited[k] = true
				next = append(next, s)
			}
		}
		frontier = next
	}
	return false, nil
}

func key(c configuration) visitedKey {
	return visitedKey{state: c.state, pos: c.pos, stack: c.stack.ID()}
}

// successors enumerates every ε-successor and, when input remains, every
// successor consuming the current symbol, ordered by descending weight
// (spec.md §4.4 "Ordering") with ties broken by declaration order.
func successors(p *PDA, pool *stackPool, c configuration, word []SymbolID) []configuration {
	top, ok := c.stack.Top()
	if !ok {
		return nil
	}

	type candidate struct {
		t        Transition
		consumes bool
	}
	var cands []candidate
	for _, t := range p.Transitions(c.state) {
		if t.Pop != top {
			continue
		}
		if t.Input == Epsilon {
			cands = append(cands, candidate{t, false})
		} else if c.pos < len(word) && t.Input == word[c.pos] {
			cands = append(cands, candidate{t, true})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].t.Weight > cands[j].t.Weight })

	out := make([]configuration, 0, len(cands))
	for _, cd := range cands {
		newState, newStack := apply(pool, cd.t, c.stack)
		newPos := c.pos
		if cd.consumes {
			newPos++
		}
		out = append(out, configuration{state: newState, pos: newPos, stack: newStack})
	}
	return out
}
