// SPDX-License-Identifier: MIT

package cholesky

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// Solver is implemented by Factor and PartialFactor. Right-hand sides are
// N×k matrices indexed by original ids; results are new matrices and b is
// never modified.
type Solver interface {
	// SolveForward applies L⁻¹ (in factor order) to b.
	SolveForward(b *mat.Dense) (*mat.Dense, error)
	// SolveBackward applies L⁻ᵀ (in factor order) to b.
	SolveBackward(b *mat.Dense) (*mat.Dense, error)
	// Solve returns the solution of the factored system.
	Solve(b *mat.Dense) (*mat.Dense, error)
	// SolveVec is Solve for a single right-hand side.
	SolveVec(b []float64) ([]float64, error)
}

var (
	_ Solver = (*Factor)(nil)
	_ Solver = (*PartialFactor)(nil)
)

// forward overwrites x (n×k row-major, factor order) with L⁻¹x.
func (l *layout) forward(vals, x []float64, k int) {
	tmp := make([]float64, l.maxBelow*k)
	for _, s := range l.spost {
		nr, nc := l.dims(s)
		nb := nr - nc
		blk := l.block(vals, s)
		f := l.super[s]
		x1 := blas64.General{Rows: nc, Cols: k, Stride: k, Data: x[f*k : (f+nc)*k]}
		blas64.Trsm(blas.Left, blas.NoTrans, 1, diagBlock(blk, nc), x1)
		if nb == 0 {
			continue
		}
		t := blas64.General{Rows: nb, Cols: k, Stride: k, Data: tmp[:nb*k]}
		blas64.Gemm(blas.NoTrans, blas.NoTrans, 1, belowBlock(blk, nr, nc), x1, 0, t)
		for p, i := range l.rows[l.rowPtr[s]+nc : l.rowPtr[s+1]] {
			row := x[i*k : (i+1)*k]
			for c := range row {
				row[c] -= t.Data[p*k+c]
			}
		}
	}
}

// backward overwrites x (n×k row-major, factor order) with L⁻ᵀx.
func (l *layout) backward(vals, x []float64, k int) {
	tmp := make([]float64, l.maxBelow*k)
	for q := len(l.spost) - 1; q >= 0; q-- {
		s := l.spost[q]
		nr, nc := l.dims(s)
		nb := nr - nc
		blk := l.block(vals, s)
		f := l.super[s]
		x1 := blas64.General{Rows: nc, Cols: k, Stride: k, Data: x[f*k : (f+nc)*k]}
		if nb > 0 {
			t := blas64.General{Rows: nb, Cols: k, Stride: k, Data: tmp[:nb*k]}
			for p, i := range l.rows[l.rowPtr[s]+nc : l.rowPtr[s+1]] {
				copy(t.Data[p*k:(p+1)*k], x[i*k:(i+1)*k])
			}
			blas64.Gemm(blas.Trans, blas.NoTrans, -1, belowBlock(blk, nr, nc), t, 1, x1)
		}
		blas64.Trsm(blas.Left, blas.Trans, 1, diagBlock(blk, nc), x1)
	}
}

func diagBlock(blk []float64, nc int) blas64.Triangular {
	return blas64.Triangular{Uplo: blas.Lower, Diag: blas.NonUnit, N: nc, Stride: nc, Data: blk[:nc*nc]}
}

func belowBlock(blk []float64, nr, nc int) blas64.General {
	return blas64.General{Rows: nr - nc, Cols: nc, Stride: nc, Data: blk[nc*nc:]}
}

// gather copies the rows ids[p] of b into x row p (x is len(ids)×k).
func gather(b *mat.Dense, ids []int) (x []float64, k int) {
	raw := b.RawMatrix()
	k = raw.Cols
	x = make([]float64, len(ids)*k)
	for p, i := range ids {
		copy(x[p*k:(p+1)*k], raw.Data[i*raw.Stride:i*raw.Stride+k])
	}

	return x, k
}

// scatterRows writes row p of x into row ids[p] of dst.
func scatterRows(dst *mat.Dense, ids []int, x []float64, k int) {
	raw := dst.RawMatrix()
	for p, i := range ids {
		copy(raw.Data[i*raw.Stride:i*raw.Stride+k], x[p*k:(p+1)*k])
	}
}

func (f *Factor) check(b *mat.Dense) error {
	if !f.ok {
		return cholErrorf(opSolve, ErrNotFactored)
	}
	if b == nil || b.IsEmpty() {
		return cholErrorf(opSolve, ErrNilMatrix)
	}
	if r, _ := b.Dims(); r != f.sym.n {
		return cholErrorf(opSolve, ErrDimensionMismatch)
	}

	return nil
}

// apply runs fn on b gathered into factor order and returns the result in
// original order.
func (f *Factor) apply(b *mat.Dense, fn func(x []float64, k int)) (*mat.Dense, error) {
	if err := f.check(b); err != nil {
		return nil, err
	}
	inv := f.perm.InverseSlice()
	x, k := gather(b, inv)
	fn(x, k)
	out := mat.NewDense(f.sym.n, k, nil)
	scatterRows(out, inv, x, k)

	return out, nil
}

// SolveForward returns Pᵀ·L⁻¹·P·b.
func (f *Factor) SolveForward(b *mat.Dense) (*mat.Dense, error) {
	return f.apply(b, func(x []float64, k int) { f.sym.forward(f.vals, x, k) })
}

// SolveBackward returns Pᵀ·L⁻ᵀ·P·b.
func (f *Factor) SolveBackward(b *mat.Dense) (*mat.Dense, error) {
	return f.apply(b, func(x []float64, k int) { f.sym.backward(f.vals, x, k) })
}

// Solve returns X with A·X = b.
func (f *Factor) Solve(b *mat.Dense) (*mat.Dense, error) {
	return f.apply(b, func(x []float64, k int) {
		f.sym.forward(f.vals, x, k)
		f.sym.backward(f.vals, x, k)
	})
}

// SolveVec returns x with A·x = b.
func (f *Factor) SolveVec(b []float64) ([]float64, error) {
	return solveVec(f, b)
}

func solveVec(s Solver, b []float64) ([]float64, error) {
	if len(b) == 0 {
		return nil, cholErrorf(opSolve, ErrNilMatrix)
	}
	x, err := s.Solve(mat.NewDense(len(b), 1, b))
	if err != nil {
		return nil, err
	}

	return x.RawMatrix().Data, nil
}
