package partition

// Preimage computes, for a block of states and an alphabet symbol, the set
// of states that have a transition on symbol landing inside the block
// (δ⁻¹(block, symbol) in spec.md §4.1). Callers supply this over their own
// transition representation; the partition engine stays transition-model
// agnostic.
type Preimage func(block []StateID, symbol int) []StateID

// Hopcroft runs Hopcroft's partition-refinement algorithm (spec.md §4.1)
// starting from initialBlocks (typically {accepting, non-accepting}) over
// an alphabet of size alphabetSize, using preimage to compute δ⁻¹.
//
// Worklist discipline: seed with every (block, symbol) pair; on each pop,
// split every block intersecting the preimage and push the smaller side of
// any split that produced two non-empty blocks. This bounds the algorithm
// to O(|Σ|·n·log n) because a state can only be re-enqueued O(log n) times
// (it is always on the smaller side of its own splits).
func Hopcroft(initialBlocks [][]StateID, alphabetSize int, preimage Preimage) *Partition {
	p := New()

	type workItem struct {
		block  BlockID
		symbol int
	}

	var worklist []workItem
	for _, b := range initialBlocks {
		if len(b) == 0 {
			continue
		}
		id := p.Insert(b)
		for a := 0; a < alphabetSize; a++ {
			worklist = append(worklist, workItem{id, a})
		}
	}

	for len(worklist) > 0 {
		w := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		// The block named in w may have been split or removed since it
		// was enqueued; skip work items referring to stale blocks.
		members := p.Block(w.block)
		if members == nil {
			continue
		}

		x := preimage(members, w.symbol)
		if len(x) == 0 {
			continue
		}
		xSet := make(map[StateID]bool, len(x))
		for _, s := range x {
			xSet[s] = true
		}

		for _, y := range p.Blocks() {
			yMembers := p.Block(y)
			if !anyIn(yMembers, xSet) {
				continue
			}
			inID, outID := p.Split(y, xSet)
			if inID == InvalidBlock || outID == InvalidBlock {
				// One side was empty: y is unchanged, nothing to enqueue.
				continue
			}
			smaller, larger := inID, outID
			if len(p.Block(outID)) < len(p.Block(inID)) {
				smaller, larger = outID, inID
			}
			_ = larger
			for a := 0; a < alphabetSize; a++ {
				worklist = append(worklist, workItem{smaller, a})
			}
		}
	}

	return p
}

func anyIn(members []StateID, set map[StateID]bool) bool {
	for _, s := range members {
		if set[s] {
			return true
		}
	}
	return false
}
