// SPDX-License-Identifier: MIT

package cholesky

import (
	"slices"

	"github.com/katalvlaran/cholup/sparse"
)

// layout describes supernodal storage of a lower-triangular factor.
//
// Supernode s owns columns super[s] ≤ j < super[s+1]. Its row structure is
// rows[rowPtr[s]:rowPtr[s+1]], ascending, and starts with its own columns.
// Values form a dense row-major block of nr×nc at vals[valPtr[s]:], where
// element (r, c) is L[rows[rowPtr[s]+r], super[s]+c].
type layout struct {
	n        int
	super    []int
	colSuper []int
	rowPtr   []int
	rows     []int
	valPtr   []int
	sparent  []int
	spost    []int
	maxBelow int
}

func (l *layout) numSupernodes() int { return len(l.super) - 1 }

// dims returns the row and column counts of supernode s.
func (l *layout) dims(s int) (nr, nc int) {
	return l.rowPtr[s+1] - l.rowPtr[s], l.super[s+1] - l.super[s]
}

// finish derives supernodal parents, postorder and block offsets from
// super, colSuper, rowPtr and rows.
func (l *layout) finish() {
	ns := l.numSupernodes()
	l.sparent = make([]int, ns)
	l.valPtr = make([]int, ns+1)
	l.maxBelow = 0
	for s := 0; s < ns; s++ {
		nr, nc := l.dims(s)
		l.valPtr[s+1] = l.valPtr[s] + nr*nc
		l.maxBelow = max(l.maxBelow, nr-nc)
		l.sparent[s] = -1
		if nr > nc {
			l.sparent[s] = l.colSuper[l.rows[l.rowPtr[s]+nc]]
		}
	}
	l.spost = postorder(l.sparent)
}

// Symbolic is the structural analysis of a square matrix: elimination tree,
// column counts and supernode partition of its Cholesky factor. It depends
// only on the sparsity pattern and can be reused for any matrix with the same
// lower-triangular pattern.
type Symbolic struct {
	layout

	parent []int
	post   []int
	counts []int
	nnz    int

	// lower-triangular pattern of the analyzed matrix
	aColPtr []int
	aRowIdx []int
}

// Analyze performs the symbolic analysis of the lower triangle of a.
//
// Implementation:
//   - Stage 1: transpose the lower pattern to get, per row k, the columns
//     j < k with A[k,j] ≠ 0.
//   - Stage 2: elimination tree with ancestor path compression, postorder.
//   - Stage 3: row subtrees (ereach) give column counts and the row
//     structure of each supernode's first column.
//   - Stage 4: fundamental supernodes, supernodal tree and postorder.
//
// Complexity: O(nnz(L)) time, O(n + nnz(L) index) memory.
func Analyze(a *sparse.Store[float64]) (*Symbolic, error) {
	if err := validateSquare(a); err != nil {
		return nil, cholErrorf(opAnalyze, err)
	}
	low := a.Lower()
	n, _ := low.Dims()
	colPtr, rowIdx := low.ColPtr(), low.RowIdx()

	// Stage 1: rows of the strict lower triangle.
	upPtr := make([]int, n+1)
	for j := 0; j < n; j++ {
		for k := colPtr[j]; k < colPtr[j+1]; k++ {
			if i := rowIdx[k]; i > j {
				upPtr[i+1]++
			}
		}
	}
	for i := 0; i < n; i++ {
		upPtr[i+1] += upPtr[i]
	}
	up := make([]int, upPtr[n])
	next := slices.Clone(upPtr[:n])
	for j := 0; j < n; j++ {
		for k := colPtr[j]; k < colPtr[j+1]; k++ {
			if i := rowIdx[k]; i > j {
				up[next[i]] = j
				next[i]++
			}
		}
	}

	// Stage 2: elimination tree.
	parent := make([]int, n)
	ancestor := make([]int, n)
	for k := 0; k < n; k++ {
		parent[k], ancestor[k] = -1, -1
		for _, i := range up[upPtr[k]:upPtr[k+1]] {
			for i != -1 && i < k {
				inext := ancestor[i]
				ancestor[i] = k
				if inext == -1 {
					parent[i] = k
				}
				i = inext
			}
		}
	}

	// Stage 3: column counts from row subtrees.
	counts := make([]int, n)
	mark := make([]int, n)
	for i := range mark {
		mark[i] = -1
	}
	reach := make([][]int, n) // reach[k] = columns j < k with L[k,j] ≠ 0
	var buf []int
	for k := 0; k < n; k++ {
		mark[k] = k
		buf = buf[:0]
		for _, i := range up[upPtr[k]:upPtr[k+1]] {
			for ; mark[i] != k; i = parent[i] {
				mark[i] = k
				buf = append(buf, i)
				counts[i]++
			}
		}
		counts[k]++
		reach[k] = slices.Clone(buf)
	}

	// Stage 4: supernodes.
	sym := &Symbolic{
		parent:  parent,
		post:    postorder(parent),
		counts:  counts,
		aColPtr: slices.Clone(colPtr),
		aRowIdx: slices.Clone(rowIdx),
	}
	sym.n = n
	sym.colSuper = make([]int, n)
	sym.super = []int{0}
	for j := 1; j < n; j++ {
		if parent[j-1] != j || counts[j-1] != counts[j]+1 {
			sym.super = append(sym.super, j)
		}
		sym.colSuper[j] = len(sym.super) - 1
	}
	sym.super = append(sym.super, n)

	ns := sym.numSupernodes()
	sym.rowPtr = make([]int, ns+1)
	for s := 0; s < ns; s++ {
		sym.rowPtr[s+1] = sym.rowPtr[s] + counts[sym.super[s]]
	}
	sym.rows = make([]int, sym.rowPtr[ns])
	fill := slices.Clone(sym.rowPtr[:ns])
	for k := 0; k < n; k++ {
		for _, j := range reach[k] {
			if s := sym.colSuper[j]; sym.super[s] == j {
				sym.rows[fill[s]] = k
				fill[s]++
			}
		}
		if s := sym.colSuper[k]; sym.super[s] == k {
			sym.rows[fill[s]] = k
			fill[s]++
		}
	}
	for _, c := range counts {
		sym.nnz += c
	}
	sym.finish()

	return sym, nil
}

// postorder returns a postorder of the forest given by parent (-1 = root).
// Children are visited in ascending index order.
func postorder(parent []int) []int {
	n := len(parent)
	head := make([]int, n)
	next := make([]int, n)
	for i := range head {
		head[i] = -1
	}
	for j := n - 1; j >= 0; j-- {
		if p := parent[j]; p != -1 {
			next[j] = head[p]
			head[p] = j
		}
	}

	post := make([]int, 0, n)
	stack := make([]int, 0, n)
	for root := 0; root < n; root++ {
		if parent[root] != -1 {
			continue
		}
		stack = append(stack, root)
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			if c := head[p]; c != -1 {
				head[p] = next[c]
				stack = append(stack, c)
				continue
			}
			stack = stack[:len(stack)-1]
			post = append(post, p)
		}
	}

	return post
}

func validateSquare(a *sparse.Store[float64]) error {
	if a == nil {
		return ErrNilMatrix
	}
	r, c := a.Dims()
	if r != c {
		return ErrNonSquare
	}
	if c == 0 || a.NNZ() == 0 {
		return ErrEmptyMatrix
	}

	return nil
}

// matches reports whether the lower triangle of a has the analyzed pattern.
func (s *Symbolic) matches(low *sparse.Store[float64]) bool {
	return slices.Equal(low.ColPtr(), s.aColPtr) && slices.Equal(low.RowIdx(), s.aRowIdx)
}

// N returns the matrix dimension.
func (s *Symbolic) N() int { return s.n }

// Parent returns a copy of the elimination tree (-1 marks roots).
func (s *Symbolic) Parent() []int { return slices.Clone(s.parent) }

// Postorder returns a copy of a postorder of the elimination tree.
func (s *Symbolic) Postorder() []int { return slices.Clone(s.post) }

// ColumnCounts returns, per column, the number of entries of L including
// the diagonal.
func (s *Symbolic) ColumnCounts() []int { return slices.Clone(s.counts) }

// Supernodes returns the first column of every supernode followed by N.
func (s *Symbolic) Supernodes() []int { return slices.Clone(s.super) }

// SupernodeParent returns a copy of the supernodal elimination tree.
func (s *Symbolic) SupernodeParent() []int { return slices.Clone(s.sparent) }

// NNZ returns the number of structural nonzeros of L, diagonal included.
func (s *Symbolic) NNZ() int { return s.nnz }
