// SPDX-License-Identifier: MIT

package ordering

import (
	"github.com/katalvlaran/cholup/sparse"
	"gonum.org/v1/gonum/graph/simple"
)

// Method selects an ordering algorithm. The zero value is MinimumDegree.
type Method int

const (
	// MinimumDegree is the explicit elimination-graph minimum-degree ordering.
	MinimumDegree Method = iota
	// Natural keeps the input order.
	Natural
	// ReverseCuthillMcKee is the bandwidth-reducing RCM ordering.
	ReverseCuthillMcKee
)

// String implements fmt.Stringer.
func (m Method) String() string {
	switch m {
	case MinimumDegree:
		return "minimum-degree"
	case Natural:
		return "natural"
	case ReverseCuthillMcKee:
		return "reverse-cuthill-mckee"
	default:
		return "unknown"
	}
}

// Valid reports whether m names a supported method.
func (m Method) Valid() bool {
	return m >= MinimumDegree && m <= ReverseCuthillMcKee
}

// Compute orders the structurally symmetrized pattern of a square matrix
// with the given method.
func Compute[T sparse.Float](method Method, pattern *sparse.Store[T]) (Permutation, error) {
	if !method.Valid() {
		return Permutation{}, orderErrorf(opCompute, ErrUnknownMethod)
	}
	g, err := patternGraph(pattern)
	if err != nil {
		return Permutation{}, orderErrorf(opCompute, err)
	}
	n, _ := pattern.Dims()

	return order(method, g, n), nil
}

func order(method Method, g *simple.UndirectedGraph, n int) Permutation {
	switch method {
	case Natural:
		return Identity(n)
	case ReverseCuthillMcKee:
		return rcm(g, n)
	default:
		return minimumDegree(g, n)
	}
}

// patternGraph builds the undirected adjacency graph of a square pattern.
// Every index is a node, including isolated ones.
func patternGraph[T sparse.Float](a *sparse.Store[T]) (*simple.UndirectedGraph, error) {
	if a == nil {
		return nil, ErrNilPattern
	}
	r, c := a.Dims()
	if r != c {
		return nil, ErrNonSquare
	}
	g := newGraph(c)
	colPtr, rowIdx := a.ColPtr(), a.RowIdx()
	for j := 0; j < c; j++ {
		for k := colPtr[j]; k < colPtr[j+1]; k++ {
			link(g, rowIdx[k], j)
		}
	}

	return g, nil
}

func newGraph(n int) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}

	return g
}

// link adds the edge {i, j} unless it is a loop or already present.
func link(g *simple.UndirectedGraph, i, j int) {
	if i == j || g.HasEdgeBetween(int64(i), int64(j)) {
		return
	}
	g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
}

// Permute returns the owned matrix B = PᵀAP, i.e. B[p(i), p(j)] = A[i, j],
// with sorted columns.
func Permute[T sparse.Float](a *sparse.Store[T], p Permutation) (*sparse.Store[T], error) {
	if a == nil {
		return nil, orderErrorf(opPermute, ErrNilPattern)
	}
	r, c := a.Dims()
	if r != c {
		return nil, orderErrorf(opPermute, ErrNonSquare)
	}
	if p.Len() != c {
		return nil, orderErrorf(opPermute, ErrInvalidPermutation)
	}
	if a.NNZ() == 0 {
		return sparse.New[T](r, c)
	}

	ts := a.Triplets()
	for k := range ts {
		ts[k].Row, ts[k].Col = p.fwd[ts[k].Row], p.fwd[ts[k].Col]
	}

	return sparse.FromTripletsRect(ts, r, c)
}

// PermuteSymmetric returns the lower triangle of PᵀAP for a symmetric A of
// which only the lower triangle (row ≥ col) is read. Entries that the
// permutation moves above the diagonal are reflected below it, so both full
// and lower-only storage of A give the same result.
func PermuteSymmetric[T sparse.Float](a *sparse.Store[T], p Permutation) (*sparse.Store[T], error) {
	if a == nil {
		return nil, orderErrorf(opPermute, ErrNilPattern)
	}
	r, c := a.Dims()
	if r != c {
		return nil, orderErrorf(opPermute, ErrNonSquare)
	}
	if p.Len() != c {
		return nil, orderErrorf(opPermute, ErrInvalidPermutation)
	}

	ts := make([]sparse.Triplet[T], 0, a.NNZ())
	for _, t := range a.Triplets() {
		if t.Row < t.Col {
			continue
		}
		i, j := p.fwd[t.Row], p.fwd[t.Col]
		if i < j {
			i, j = j, i
		}
		ts = append(ts, sparse.Triplet[T]{Row: i, Col: j, Val: t.Val})
	}
	if len(ts) == 0 {
		return sparse.New[T](r, c)
	}

	return sparse.FromTripletsRect(ts, r, c)
}

// PermutedFromTriplets assembles the N×N matrix described by triplets,
// N = 1 + max(row, col), in the order chosen by method. The caller's slice is
// left untouched; the returned permutation maps original ids to positions.
func PermutedFromTriplets[T sparse.Float](triplets []sparse.Triplet[T], method Method) (*sparse.Store[T], Permutation, error) {
	if len(triplets) == 0 {
		return nil, Permutation{}, orderErrorf(opTriplets, sparse.ErrEmptyTriplets)
	}
	if !method.Valid() {
		return nil, Permutation{}, orderErrorf(opTriplets, ErrUnknownMethod)
	}
	n := 0
	for _, t := range triplets {
		if t.Row < 0 || t.Col < 0 {
			return nil, Permutation{}, orderErrorf(opTriplets, ErrOutOfRange)
		}
		n = max(n, t.Row+1, t.Col+1)
	}

	g := newGraph(n)
	for _, t := range triplets {
		link(g, t.Row, t.Col)
	}
	p := order(method, g, n)

	ts := make([]sparse.Triplet[T], len(triplets))
	for k, t := range triplets {
		ts[k] = sparse.Triplet[T]{Row: p.fwd[t.Row], Col: p.fwd[t.Col], Val: t.Val}
	}
	s, err := sparse.FromTripletsRect(ts, n, n)
	if err != nil {
		return nil, Permutation{}, orderErrorf(opTriplets, err)
	}

	return s, p, nil
}
