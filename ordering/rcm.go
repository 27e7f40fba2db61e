// SPDX-License-Identifier: MIT

package ordering

import (
	"cmp"
	"slices"

	"github.com/katalvlaran/cholup/sparse"
	"gonum.org/v1/gonum/graph/simple"
)

// OrderReverseCuthillMcKee computes a bandwidth-reducing ordering: a breadth-first
// traversal of every connected component, started at its vertex of smallest
// degree and visiting neighbours by ascending (degree, index), reversed.
func OrderReverseCuthillMcKee[T sparse.Float](pattern *sparse.Store[T]) (Permutation, error) {
	return Compute(ReverseCuthillMcKee, pattern)
}

func rcm(g *simple.UndirectedGraph, n int) Permutation {
	deg := make([]int, n)
	starts := make([]int, n)
	for i := range deg {
		deg[i] = g.From(int64(i)).Len()
		starts[i] = i
	}
	byDegree := func(a, b int) int {
		if c := cmp.Compare(deg[a], deg[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	}
	slices.SortFunc(starts, byDegree)

	visited := make([]bool, n)
	seq := make([]int, 0, n)
	var level []int
	for _, s := range starts {
		if visited[s] {
			continue
		}
		visited[s] = true
		seq = append(seq, s)
		for head := len(seq) - 1; head < len(seq); head++ {
			level = level[:0]
			nodes := g.From(int64(seq[head]))
			for nodes.Next() {
				u := int(nodes.Node().ID())
				if !visited[u] {
					visited[u] = true
					level = append(level, u)
				}
			}
			slices.SortFunc(level, byDegree)
			seq = append(seq, level...)
		}
	}
	slices.Reverse(seq)

	return fromInverse(seq)
}
