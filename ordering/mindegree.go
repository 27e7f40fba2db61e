// SPDX-License-Identifier: MIT

package ordering

import (
	"container/heap"

	"github.com/katalvlaran/cholup/sparse"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// OrderMinimumDegree computes a minimum-degree ordering of a square pattern.
//
// Implementation:
//   - Stage 1: build the undirected graph of the symmetrized pattern.
//   - Stage 2: pop the vertex of smallest current degree (ties: smallest
//     index) from a lazily updated heap, connect its neighbours pairwise and
//     remove it. Neighbours are re-queued with their new degree.
//   - Stage 3: the elimination sequence is the inverse permutation.
//
// Complexity: O(Σ d² log n) over the neighbourhood sizes d at elimination.
func OrderMinimumDegree[T sparse.Float](pattern *sparse.Store[T]) (Permutation, error) {
	return Compute(MinimumDegree, pattern)
}

func minimumDegree(g *simple.UndirectedGraph, n int) Permutation {
	h := make(degreeHeap, 0, n)
	for i := 0; i < n; i++ {
		h = append(h, vertexDegree{deg: g.From(int64(i)).Len(), id: i})
	}
	heap.Init(&h)

	done := make([]bool, n)
	inv := make([]int, 0, n)
	for h.Len() > 0 {
		top := heap.Pop(&h).(vertexDegree)
		if done[top.id] {
			continue
		}
		nbrs := graph.NodesOf(g.From(int64(top.id)))
		if len(nbrs) != top.deg {
			continue // stale entry, a fresher one is queued
		}

		done[top.id] = true
		inv = append(inv, top.id)
		g.RemoveNode(int64(top.id))
		for a := 0; a < len(nbrs); a++ {
			for b := a + 1; b < len(nbrs); b++ {
				link(g, int(nbrs[a].ID()), int(nbrs[b].ID()))
			}
		}
		for _, u := range nbrs {
			heap.Push(&h, vertexDegree{deg: g.From(u.ID()).Len(), id: int(u.ID())})
		}
	}

	return fromInverse(inv)
}

type vertexDegree struct {
	deg, id int
}

// degreeHeap is a min-heap of vertices keyed by (degree, index).
type degreeHeap []vertexDegree

func (h degreeHeap) Len() int { return len(h) }
func (h degreeHeap) Less(i, j int) bool {
	if h[i].deg != h[j].deg {
		return h[i].deg < h[j].deg
	}
	return h[i].id < h[j].id
}
func (h degreeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *degreeHeap) Push(x any) { *h = append(*h, x.(vertexDegree)) }
func (h *degreeHeap) Pop() any {
	old := *h
	x := old[len(old)-1]
	*h = old[:len(old)-1]

	return x
}
