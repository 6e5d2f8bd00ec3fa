package datastructure

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeapExtractOrder(t *testing.T) {
	for _, d := range []int{2, 4} {
		h := NewdAryHeap[int](d)
		rng := rand.New(rand.NewSource(int64(d)))

		ranks := make([]float64, 200)
		for i := range ranks {
			ranks[i] = float64(rng.Intn(50))
			h.Insert(NewPriorityQueueNode(ranks[i], i, i))
		}
		sort.Float64s(ranks)

		for i := 0; i < len(ranks); i++ {
			assert.Equal(t, ranks[i], h.GetMinRank())
			node, err := h.ExtractMin()
			require.NoError(t, err)
			assert.Equal(t, ranks[i], node.GetRank())
			assert.Equal(t, -1, node.GetPos())
		}
		assert.True(t, h.IsEmpty())
	}
}

func TestMinHeapTieBreak(t *testing.T) {
	h := NewFourAryHeap[string]()
	h.Insert(NewPriorityQueueNode(1.0, 8, "c"))
	h.Insert(NewPriorityQueueNode(1.0, 5, "b"))
	h.Insert(NewPriorityQueueNode(1.0, 2, "a"))
	h.Insert(NewPriorityQueueNode(0.5, 9, "first"))

	var got []string
	for !h.IsEmpty() {
		node, err := h.ExtractMin()
		require.NoError(t, err)
		got = append(got, node.GetItem())
	}
	assert.Equal(t, []string{"first", "a", "b", "c"}, got)
}

func TestMinHeapDecreaseKey(t *testing.T) {
	h := NewBinaryHeap[int]()
	nodes := make([]*PriorityQueueNode[int], 5)
	for i := range nodes {
		nodes[i] = NewPriorityQueueNode(float64(10+i), i, i)
		h.Insert(nodes[i])
	}

	require.NoError(t, h.DecreaseKey(nodes[4], 1))
	min, err := h.GetMin()
	require.NoError(t, err)
	assert.Equal(t, 4, min.GetItem())

	assert.ErrorIs(t, h.DecreaseKey(nodes[0], 100), ErrInvalidDecrease)

	_, err = h.ExtractMin()
	require.NoError(t, err)
	assert.ErrorIs(t, h.DecreaseKey(nodes[4], 0), ErrInvalidDecrease)
}

func TestMinHeapEmpty(t *testing.T) {
	h := NewFourAryHeap[int]()
	_, err := h.ExtractMin()
	assert.ErrorIs(t, err, ErrHeapEmpty)
	_, err = h.GetMin()
	assert.ErrorIs(t, err, ErrHeapEmpty)

	h.Insert(NewPriorityQueueNode(1.0, 0, 1))
	h.Clear()
	assert.Equal(t, 0, h.Size())
}
