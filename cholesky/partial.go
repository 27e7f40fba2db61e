// SPDX-License-Identifier: MIT

package cholesky

import (
	"github.com/katalvlaran/cholup/sparse"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// PartialFactor is the Cholesky factor of A_FF, the submatrix of A on a set
// F of free ids, together with the coupling block A_FB to the remaining
// (boundary) ids. It owns all of its data and shares nothing with the Factor
// it was derived from.
//
// Solve treats the boundary rows of the right-hand side as prescribed values
// x_B and returns x_F = A_FF⁻¹·(b_F − A_FB·x_B) in the free rows; boundary
// rows of the result are copies of b's.
type PartialFactor struct {
	lay   layout
	vals  []float64
	n     int
	free  []int // local → original id, ascending in factor order
	bound []int // boundary local → original id, ascending in factor order
	afb   *sparse.Store[float64]
}

// Partial derives the factor of the submatrix on the free ids (original ids,
// duplicates allowed) without refactoring from scratch.
//
// Implementation:
//   - Stage 1: restrict every supernode to its free columns and rows. Free
//     columns of a supernode are consecutive in factor order, so the
//     restricted blocks are again supernodes of a valid pattern.
//   - Stage 2: A_FF = L_FF·L_FFᵀ + Σ_b L[F,b]·L[F,b]ᵀ over boundary columns b.
//     Each term is folded in by a rank-1 update that rotates w = L[F,b]
//     into the columns on its elimination path. By the fill property, w and
//     the path stay inside the pattern of L_FF.
//   - Stage 3: extract A_FB from the factored matrix.
//
// The full free set performs no update and reproduces the full factor.
func (f *Factor) Partial(free []int) (*PartialFactor, error) {
	if !f.ok {
		return nil, cholErrorf(opPartial, ErrNotFactored)
	}
	if len(free) == 0 {
		return nil, cholErrorf(opPartial, ErrEmptyFreeSet)
	}
	n := f.sym.n
	pos, err := f.perm.MapIndices(free)
	if err != nil {
		return nil, cholErrorf(opPartial, ErrOutOfRange)
	}

	isFree := make([]bool, n)
	for _, p := range pos {
		isFree[p] = true
	}
	// local[p] is the rank of free position p, or -1 for boundary positions.
	local := make([]int, n)
	bidx := make([]int, n)
	pf := &PartialFactor{n: n}
	for p := 0; p < n; p++ {
		if isFree[p] {
			local[p] = len(pf.free)
			pf.free = append(pf.free, f.perm.Inverse(p))
		} else {
			local[p] = -1
			bidx[p] = len(pf.bound)
			pf.bound = append(pf.bound, f.perm.Inverse(p))
		}
	}

	pf.restrict(&f.sym.layout, f.vals, local)
	pf.foldBoundary(&f.sym.layout, f.vals, local)
	pf.afb = coupling(f.low, local, bidx, len(pf.free), len(pf.bound))

	return pf, nil
}

// restrict builds the layout and values of L_FF.
func (pf *PartialFactor) restrict(full *layout, vals []float64, local []int) {
	m := len(pf.free)
	lay := layout{n: m, super: []int{}, colSuper: make([]int, m), rowPtr: []int{0}}
	var (
		keepRows []int // positions in the parent supernode's row list
		keepCols []int
	)
	for s := 0; s < full.numSupernodes(); s++ {
		rows := full.rows[full.rowPtr[s]:full.rowPtr[s+1]]
		_, nc := full.dims(s)
		keepRows, keepCols = keepRows[:0], keepCols[:0]
		for r, i := range rows {
			if local[i] < 0 {
				continue
			}
			keepRows = append(keepRows, r)
			if r < nc {
				keepCols = append(keepCols, r)
			}
		}
		if len(keepCols) == 0 {
			continue
		}

		t := len(lay.super)
		first := local[rows[keepCols[0]]]
		lay.super = append(lay.super, first)
		for c := range keepCols {
			lay.colSuper[first+c] = t
		}
		for _, r := range keepRows {
			lay.rows = append(lay.rows, local[rows[r]])
		}
		lay.rowPtr = append(lay.rowPtr, len(lay.rows))

		blk := full.block(vals, s)
		for _, r := range keepRows {
			for _, c := range keepCols {
				pf.vals = append(pf.vals, blk[r*nc+c])
			}
		}
	}
	lay.super = append(lay.super, m)
	lay.finish()
	pf.lay = lay
}

// foldBoundary applies the rank-1 updates of every boundary column.
func (pf *PartialFactor) foldBoundary(full *layout, vals []float64, local []int) {
	m := len(pf.free)
	w := make([]float64, m)
	gathered := make([]float64, m)
	for s := 0; s < full.numSupernodes(); s++ {
		nr, nc := full.dims(s)
		rows := full.rows[full.rowPtr[s]:full.rowPtr[s+1]]
		blk := full.block(vals, s)
		for c := 0; c < nc; c++ {
			if local[rows[c]] >= 0 {
				continue
			}
			first := -1
			for r := c + 1; r < nr; r++ {
				if i := local[rows[r]]; i >= 0 && blk[r*nc+c] != 0 {
					w[i] = blk[r*nc+c]
					if first < 0 {
						first = i
					}
				}
			}
			if first >= 0 {
				pf.update(w, first, gathered)
			}
		}
	}
}

// update replaces L_FF by the factor of L_FF·L_FFᵀ + w·wᵀ, where the first
// nonzero of w is at local index k. w is consumed (left zero).
func (pf *PartialFactor) update(w []float64, k int, gathered []float64) {
	l := &pf.lay
	for k >= 0 {
		t := l.colSuper[k]
		nr, nc := l.dims(t)
		c := k - l.super[t]
		blk := l.block(pf.vals, t)
		rows := l.rows[l.rowPtr[t]+c+1 : l.rowPtr[t+1]]

		cs, sn, r, _ := blas64.Rotg(blk[c*nc+c], w[k])
		if r < 0 {
			cs, sn, r = -cs, -sn, -r
		}
		blk[c*nc+c] = r
		w[k] = 0

		below := nr - c - 1
		if below == 0 {
			return
		}
		g := gathered[:below]
		for p, i := range rows {
			g[p] = w[i]
		}
		blas64.Rot(
			blas64.Vector{N: below, Inc: nc, Data: blk[(c+1)*nc+c:]},
			blas64.Vector{N: below, Inc: 1, Data: g},
			cs, sn,
		)
		for p, i := range rows {
			w[i] = g[p]
		}
		k = rows[0]
	}
}

// coupling builds A_FB (free local × boundary local) from the lower
// triangle of the factored matrix.
func coupling(low *sparse.Store[float64], local, bidx []int, m, nb int) *sparse.Store[float64] {
	var ts []sparse.Triplet[float64]
	colPtr, rowIdx, v := low.ColPtr(), low.RowIdx(), low.Vals()
	for j := 0; j+1 < len(colPtr); j++ {
		for k := colPtr[j]; k < colPtr[j+1]; k++ {
			i := rowIdx[k]
			switch {
			case local[i] >= 0 && local[j] < 0:
				ts = append(ts, sparse.Triplet[float64]{Row: local[i], Col: bidx[j], Val: v[k]})
			case local[i] < 0 && local[j] >= 0:
				ts = append(ts, sparse.Triplet[float64]{Row: local[j], Col: bidx[i], Val: v[k]})
			}
		}
	}
	if len(ts) == 0 {
		out, _ := sparse.New[float64](m, nb)
		return out
	}
	out, err := sparse.FromTripletsRect(ts, m, nb)
	if err != nil {
		// indices are ranks inside [0, m) × [0, nb)
		panic(err)
	}

	return out
}

// N returns the dimension of the full system.
func (pf *PartialFactor) N() int { return pf.n }

// Free returns the free original ids in factor order.
func (pf *PartialFactor) Free() []int { return append([]int(nil), pf.free...) }

// Boundary returns the boundary original ids in factor order.
func (pf *PartialFactor) Boundary() []int { return append([]int(nil), pf.bound...) }

// NNZ returns the number of structural nonzeros of L_FF.
func (pf *PartialFactor) NNZ() int {
	nnz := 0
	for s := 0; s < pf.lay.numSupernodes(); s++ {
		nr, nc := pf.lay.dims(s)
		nnz += nc*nr - nc*(nc-1)/2
	}

	return nnz
}

// L returns L_FF as an owned lower-triangular Store indexed by local rank.
func (pf *PartialFactor) L() *sparse.Store[float64] { return pf.lay.toStore(pf.vals) }

// Coupling returns a copy of A_FB: rows are free ranks, columns boundary ranks.
func (pf *PartialFactor) Coupling() *sparse.Store[float64] { return pf.afb.Clone() }

func (pf *PartialFactor) check(b *mat.Dense) error {
	if b == nil || b.IsEmpty() {
		return cholErrorf(opSolve, ErrNilMatrix)
	}
	if r, _ := b.Dims(); r != pf.n {
		return cholErrorf(opSolve, ErrDimensionMismatch)
	}

	return nil
}

// apply runs fn on the free rows of b and returns a copy of b whose free
// rows hold the result.
func (pf *PartialFactor) apply(b *mat.Dense, fn func(x []float64, k int)) (*mat.Dense, error) {
	if err := pf.check(b); err != nil {
		return nil, err
	}
	x, k := gather(b, pf.free)
	fn(x, k)
	out := mat.DenseCopyOf(b)
	scatterRows(out, pf.free, x, k)

	return out, nil
}

// SolveForward applies L_FF⁻¹ to the free rows of b.
func (pf *PartialFactor) SolveForward(b *mat.Dense) (*mat.Dense, error) {
	return pf.apply(b, func(x []float64, k int) { pf.lay.forward(pf.vals, x, k) })
}

// SolveBackward applies L_FF⁻ᵀ to the free rows of b.
func (pf *PartialFactor) SolveBackward(b *mat.Dense) (*mat.Dense, error) {
	return pf.apply(b, func(x []float64, k int) { pf.lay.backward(pf.vals, x, k) })
}

// Solve returns the Dirichlet solution: free rows solve
// A_FF·x_F = b_F − A_FB·x_B with x_B read from the boundary rows of b, which
// are returned unchanged.
func (pf *PartialFactor) Solve(b *mat.Dense) (*mat.Dense, error) {
	return pf.apply(b, func(x []float64, k int) {
		if len(pf.bound) > 0 {
			xb, _ := gather(b, pf.bound)
			colPtr, rowIdx, v := pf.afb.ColPtr(), pf.afb.RowIdx(), pf.afb.Vals()
			for q := 0; q < len(pf.bound); q++ {
				xq := xb[q*k : (q+1)*k]
				for e := colPtr[q]; e < colPtr[q+1]; e++ {
					row := x[rowIdx[e]*k : (rowIdx[e]+1)*k]
					for c := range row {
						row[c] -= v[e] * xq[c]
					}
				}
			}
		}
		pf.lay.forward(pf.vals, x, k)
		pf.lay.backward(pf.vals, x, k)
	})
}

// SolveVec is Solve for one right-hand side.
func (pf *PartialFactor) SolveVec(b []float64) ([]float64, error) {
	return solveVec(pf, b)
}
