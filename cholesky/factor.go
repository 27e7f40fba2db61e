// SPDX-License-Identifier: MIT

package cholesky

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/cholup/ordering"
	"github.com/katalvlaran/cholup/sparse"
)

// Factor is the numeric Cholesky factor PᵀAP = L·Lᵀ of a permuted matrix.
// Solves accept and return right-hand sides indexed by original ids.
// A Factor is safe for concurrent solves; Refactorize must not overlap them.
type Factor struct {
	sym  *Symbolic
	perm ordering.Permutation
	low  *sparse.Store[float64] // lower triangle of the permuted, shifted matrix
	vals []float64
	opts Options
	ok   bool
}

// Factorize orders a (WithOrdering, minimum degree by default), permutes it,
// analyzes the permuted pattern and computes the numeric factor.
func Factorize(a *sparse.Store[float64], opts ...Option) (*Factor, error) {
	if err := validateSquare(a); err != nil {
		return nil, cholErrorf(opFactorize, err)
	}
	o := gatherOptions(opts...)
	perm, err := ordering.Compute(o.method, a)
	if err != nil {
		return nil, cholErrorf(opFactorize, err)
	}
	pa, err := ordering.PermuteSymmetric(a, perm)
	if err != nil {
		return nil, cholErrorf(opFactorize, err)
	}
	sym, err := Analyze(pa)
	if err != nil {
		return nil, err
	}

	return sym.factor(pa, perm, o)
}

// FactorizePermuted factors a matrix already permuted with perm, such as the
// output of ordering.PermutedFromTriplets. A zero Permutation means identity.
func FactorizePermuted(a *sparse.Store[float64], perm ordering.Permutation, opts ...Option) (*Factor, error) {
	sym, err := Analyze(a)
	if err != nil {
		return nil, err
	}

	return sym.Factorize(a, perm, opts...)
}

// Factorize computes the numeric factor of a, which must have the analyzed
// lower-triangular pattern and be permuted with perm (zero value: identity).
func (s *Symbolic) Factorize(a *sparse.Store[float64], perm ordering.Permutation, opts ...Option) (*Factor, error) {
	if err := validateSquare(a); err != nil {
		return nil, cholErrorf(opFactorize, err)
	}
	if n, _ := a.Dims(); n != s.n {
		return nil, cholErrorf(opFactorize, ErrPatternMismatch)
	}
	if perm.Len() == 0 {
		perm = ordering.Identity(s.n)
	}
	if perm.Len() != s.n {
		return nil, cholErrorf(opFactorize, ErrDimensionMismatch)
	}

	return s.factor(a, perm, gatherOptions(opts...))
}

func (s *Symbolic) factor(pa *sparse.Store[float64], perm ordering.Permutation, o Options) (*Factor, error) {
	low := pa.Lower()
	if !s.matches(low) {
		return nil, cholErrorf(opFactorize, ErrPatternMismatch)
	}
	f := &Factor{
		sym:  s,
		perm: perm,
		vals: make([]float64, s.valPtr[s.numSupernodes()]),
		opts: o,
	}
	if err := f.numeric(low); err != nil {
		return nil, cholErrorf(opFactorize, err)
	}

	return f, nil
}

// numeric loads low into the blocks and runs the factorization.
func (f *Factor) numeric(low *sparse.Store[float64]) error {
	if f.opts.shift != 0 {
		low.AddToDiagonal(f.opts.shift)
	}
	f.low = low
	l := &f.sym.layout
	ws := newWorkspace(l)
	l.load(low, f.vals, ws)

	var err error
	if f.opts.workers > 1 {
		err = l.factorParallel(context.Background(), f.vals, f.opts.workers)
	} else {
		err = l.factorSequential(f.vals, ws)
	}
	f.ok = err == nil

	return err
}

// Refactorize recomputes the numeric values for a new matrix with the same
// pattern, given in original ids like the input of Factorize. The symbolic
// analysis and the permutation are reused. On failure the factor is
// invalidated and later solves return ErrNotFactored.
func (f *Factor) Refactorize(a *sparse.Store[float64]) error {
	if err := validateSquare(a); err != nil {
		return cholErrorf(opRefactorize, err)
	}
	if n, _ := a.Dims(); n != f.sym.n {
		return cholErrorf(opRefactorize, ErrPatternMismatch)
	}
	pa, err := ordering.PermuteSymmetric(a, f.perm)
	if err != nil {
		return cholErrorf(opRefactorize, err)
	}
	low := pa.Lower()
	if !f.sym.matches(low) {
		return cholErrorf(opRefactorize, ErrPatternMismatch)
	}
	if err = f.numeric(low); err != nil {
		return cholErrorf(opRefactorize, err)
	}

	return nil
}

// N returns the matrix dimension.
func (f *Factor) N() int { return f.sym.n }

// Symbolic returns the analysis the factor was computed with.
func (f *Factor) Symbolic() *Symbolic { return f.sym }

// Permutation returns the ordering; Forward(id) is the row of L for id.
func (f *Factor) Permutation() ordering.Permutation { return f.perm }

// NNZ returns the number of structural nonzeros of L.
func (f *Factor) NNZ() int { return f.sym.nnz }

// Supernodes returns the first column of every supernode followed by N.
func (f *Factor) Supernodes() []int { return slices.Clone(f.sym.super) }

// L returns the factor in permuted order as an owned lower-triangular Store.
func (f *Factor) L() (*sparse.Store[float64], error) {
	if !f.ok {
		return nil, cholErrorf(opFactorize, ErrNotFactored)
	}

	return f.sym.layout.toStore(f.vals), nil
}

// LogDet returns log(det(A)) = 2·Σ log L[j,j].
func (f *Factor) LogDet() (float64, error) {
	if !f.ok {
		return 0, cholErrorf(opFactorize, ErrNotFactored)
	}
	l := &f.sym.layout
	var sum float64
	for s := 0; s < l.numSupernodes(); s++ {
		_, nc := l.dims(s)
		blk := l.block(f.vals, s)
		for c := 0; c < nc; c++ {
			sum += math.Log(blk[c*nc+c])
		}
	}

	return 2 * sum, nil
}

// String summarizes the factor.
func (f *Factor) String() string {
	return fmt.Sprintf("cholesky.Factor{n: %d, nnz(L): %d, supernodes: %d}",
		f.sym.n, f.sym.nnz, f.sym.numSupernodes())
}

// toStore expands supernodal blocks into a lower-triangular CSC store.
func (l *layout) toStore(vals []float64) *sparse.Store[float64] {
	ts := make([]sparse.Triplet[float64], 0, len(vals))
	for s := 0; s < l.numSupernodes(); s++ {
		nr, nc := l.dims(s)
		rows := l.rows[l.rowPtr[s]:l.rowPtr[s+1]]
		blk := l.block(vals, s)
		for c := 0; c < nc; c++ {
			for r := c; r < nr; r++ {
				ts = append(ts, sparse.Triplet[float64]{Row: rows[r], Col: l.super[s] + c, Val: blk[r*nc+c]})
			}
		}
	}
	out, err := sparse.FromTripletsRect(ts, l.n, l.n)
	if err != nil {
		// every layout has at least one diagonal entry in range
		panic(err)
	}

	return out
}
