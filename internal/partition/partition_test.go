package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertFind(t *testing.T) {
	p := New()
	id := p.Insert([]StateID{0, 1, 2})
	assert.Equal(t, id, p.Find(0))
	assert.Equal(t, id, p.Find(1))
	assert.Equal(t, InvalidBlock, p.Find(99))
}

func TestInsertDisjointnessPanics(t *testing.T) {
	p := New()
	p.Insert([]StateID{0, 1})
	assert.Panics(t, func() {
		p.Insert([]StateID{1, 2})
	})
}

func TestSplitBothNonEmpty(t *testing.T) {
	p := New()
	block := p.Insert([]StateID{0, 1, 2, 3})
	in, out := p.Split(block, map[StateID]bool{0: true, 1: true})

	require.NotEqual(t, InvalidBlock, in)
	require.NotEqual(t, InvalidBlock, out)
	assert.Equal(t, block, in, "the intersecting side keeps the original identity")
	assert.ElementsMatch(t, []StateID{0, 1}, p.Block(in))
	assert.ElementsMatch(t, []StateID{2, 3}, p.Block(out))
	assert.Equal(t, in, p.Find(0))
	assert.Equal(t, out, p.Find(2))
}

func TestSplitOneSideEmptyKeepsIdentity(t *testing.T) {
	p := New()
	block := p.Insert([]StateID{0, 1})
	in, out := p.Split(block, map[StateID]bool{0: true, 1: true})
	assert.Equal(t, block, in)
	assert.Equal(t, InvalidBlock, out)
	assert.Equal(t, 1, p.Len())
}

func TestRemove(t *testing.T) {
	p := New()
	block := p.Insert([]StateID{5, 6})
	p.Remove(block)
	assert.Equal(t, InvalidBlock, p.Find(5))
	assert.Equal(t, 0, p.Len())
}

func TestHopcroftSplitsAcceptingFromRejecting(t *testing.T) {
	// q0 -a-> q1, q0 -b-> q0 ; q1 -a-> q1, q1 -b-> q0 ; F = {q1}
	// Already minimal: expect two surviving blocks.
	delta := map[StateID][2]StateID{
		0: {1, 0},
		1: {1, 0},
	}
	preimage := func(block []StateID, symbol int) []StateID {
		blockSet := make(map[StateID]bool, len(block))
		for _, s := range block {
			blockSet[s] = true
		}
		var result []StateID
		for q, row := range delta {
			if blockSet[row[symbol]] {
				result = append(result, q)
			}
		}
		return result
	}

	p := Hopcroft([][]StateID{{1}, {0}}, 2, preimage)
	assert.Equal(t, 2, p.Len())
	assert.NotEqual(t, p.Find(0), p.Find(1))
}
