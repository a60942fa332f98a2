// Package partition implements the balanced-tree partition-refinement
// engine that backs DFA minimization (fa package) and the equivalence-class
// refinement used by the pushdown bridge (bridge package), per spec.md
// §4.1 (C2).
//
// State-to-block membership is kept in a github.com/tidwall/btree.BTreeG,
// giving the O(log n) find/insert spec.md requires without hand-rolling a
// balanced tree — the one place the spec names the data structure
// explicitly ("self-balancing search tree"), and the reference corpus
// carries a real generic B-tree (pulled in indirectly by
// projectdiscovery/alterx) for exactly this shape of problem.
package partition

import "github.com/tidwall/btree"

// StateID identifies a state being partitioned. The partition engine is
// agnostic to what a state represents; callers (fa, bridge) supply dense
// integer IDs from their own symbol tables.
type StateID = uint32

// BlockID identifies a partition block. Block identity is stable across
// splits that do not touch that block, and across splits where the block
// loses no members to the complement side.
type BlockID uint32

// InvalidBlock is returned when a query has no answer (an unknown state,
// or the complement side of a split that turned out empty).
const InvalidBlock BlockID = 0xFFFFFFFF

type entry struct {
	state StateID
	block BlockID
}

func entryLess(a, b entry) bool { return a.state < b.state }

// Partition is a set of disjoint, non-empty blocks whose union is the
// universe of states inserted into it so far.
type Partition struct {
	tree      *btree.BTreeG[entry]
	blocks    map[BlockID][]StateID
	nextBlock BlockID
}

// New returns an empty Partition.
func New() *Partition {
	return &Partition{
		tree:   btree.NewBTreeG[entry](entryLess),
		blocks: make(map[BlockID][]StateID),
	}
}

// Insert adds a new block containing the given states and returns its ID.
// Precondition: states is disjoint from every block already present.
// Violating this precondition is a contract bug, not a runtime error
// (spec.md §4.1: "only error condition is a precondition violation ...
// which is a contract bug and fails loudly").
func (p *Partition) Insert(states []StateID) BlockID {
	id := p.nextBlock
	p.nextBlock++
	members := make([]StateID, len(states))
	copy(members, states)
	for _, s := range states {
		if _, ok := p.tree.Get(entry{state: s}); ok {
			panic("partition: Insert violates disjointness precondition")
		}
		p.tree.Set(entry{state: s, block: id})
	}
	p.blocks[id] = members
	return id
}

// Find returns the block currently containing q, or InvalidBlock if q has
// not been inserted into any block.
func (p *Partition) Find(q StateID) BlockID {
	e, ok := p.tree.Get(entry{state: q})
	if !ok {
		return InvalidBlock
	}
	return e.block
}

// Block returns the (unordered) member list of a block. The returned slice
// must not be mutated.
func (p *Partition) Block(id BlockID) []StateID {
	return p.blocks[id]
}

// Blocks returns the current block IDs in unspecified order.
func (p *Partition) Blocks() []BlockID {
	out := make([]BlockID, 0, len(p.blocks))
	for id := range p.blocks {
		out = append(out, id)
	}
	return out
}

// Len returns the number of blocks currently in the partition.
func (p *Partition) Len() int {
	return len(p.blocks)
}

// Split partitions block into the subset intersecting splitter and the
// subset that does not. If one side is empty, that side's BlockID is
// InvalidBlock and the non-empty side keeps block's original identity —
// no new block is allocated, matching spec.md's "block identity is stable
// across unrelated splits". If both sides are non-empty, the "in" side
// keeps the original identity and the "out" side is allocated a fresh one.
func (p *Partition) Split(block BlockID, splitter map[StateID]bool) (in, out BlockID) {
	members := p.blocks[block]
	if members == nil {
		return InvalidBlock, InvalidBlock
	}

	var inMembers, outMembers []StateID
	for _, s := range members {
		if splitter[s] {
			inMembers = append(inMembers, s)
		} else {
			outMembers = append(outMembers, s)
		}
	}

	switch {
	case len(outMembers) == 0:
		return block, InvalidBlock
	case len(inMembers) == 0:
		return InvalidBlock, block
	}

	outID := p.nextBlock
	p.nextBlock++
	for _, s := range outMembers {
		p.tree.Set(entry{state: s, block: outID})
	}
	p.blocks[block] = inMembers
	p.blocks[outID] = outMembers
	return block, outID
}

// Remove deletes a block and every membership entry it owns.
func (p *Partition) Remove(id BlockID) {
	for _, s := range p.blocks[id] {
		p.tree.Delete(entry{state: s})
	}
	delete(p.blocks, id)
}
