// SPDX-License-Identifier: MIT

package cholesky_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/cholup/sparse"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// tridiag returns the n×n matrix with d on the diagonal and off on both
// neighbouring diagonals.
func tridiag(t *testing.T, n int, d, off float64) *sparse.Store[float64] {
	t.Helper()
	ts := make([]sparse.Triplet[float64], 0, 3*n)
	for i := 0; i < n; i++ {
		ts = append(ts, sparse.Triplet[float64]{Row: i, Col: i, Val: d})
		if i+1 < n {
			ts = append(ts,
				sparse.Triplet[float64]{Row: i + 1, Col: i, Val: off},
				sparse.Triplet[float64]{Row: i, Col: i + 1, Val: off})
		}
	}
	a, err := sparse.FromTriplets(ts, n)
	require.NoError(t, err)

	return a
}

// randomSPD returns a symmetric, strictly diagonally dominant matrix with
// off-diagonal density roughly p.
func randomSPD(t *testing.T, rng *rand.Rand, n int, p float64) *sparse.Store[float64] {
	t.Helper()
	var ts []sparse.Triplet[float64]
	rowAbs := make([]float64, n)
	for j := 0; j < n; j++ {
		for i := j + 1; i < n; i++ {
			if rng.Float64() >= p {
				continue
			}
			v := 2*rng.Float64() - 1
			ts = append(ts,
				sparse.Triplet[float64]{Row: i, Col: j, Val: v},
				sparse.Triplet[float64]{Row: j, Col: i, Val: v})
			rowAbs[i] += math.Abs(v)
			rowAbs[j] += math.Abs(v)
		}
	}
	for i := 0; i < n; i++ {
		ts = append(ts, sparse.Triplet[float64]{Row: i, Col: i, Val: rowAbs[i] + 1})
	}
	a, err := sparse.FromTriplets(ts, n)
	require.NoError(t, err)

	return a
}

func randomDense(rng *rand.Rand, r, c int) *mat.Dense {
	data := make([]float64, r*c)
	for i := range data {
		data[i] = 2*rng.Float64() - 1
	}

	return mat.NewDense(r, c, data)
}

// denseCholesky factors a dense symmetric matrix with gonum.
func denseCholesky(t *testing.T, a mat.Matrix) *mat.Cholesky {
	t.Helper()
	n, _ := a.Dims()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, a.At(i, j))
		}
	}
	var ch mat.Cholesky
	require.True(t, ch.Factorize(sym), "reference matrix must be SPD")

	return &ch
}

func denseSolve(t *testing.T, a mat.Matrix, b *mat.Dense) *mat.Dense {
	t.Helper()
	var x mat.Dense
	require.NoError(t, denseCholesky(t, a).SolveTo(&x, b))

	return &x
}

// submatrix returns A[rows, cols] as a dense matrix.
func submatrix(a *mat.Dense, rows, cols []int) *mat.Dense {
	out := mat.NewDense(len(rows), len(cols), nil)
	for p, i := range rows {
		for q, j := range cols {
			out.Set(p, q, a.At(i, j))
		}
	}

	return out
}

// pickRows returns b[rows, :].
func pickRows(b *mat.Dense, rows []int) *mat.Dense {
	_, k := b.Dims()
	cols := make([]int, k)
	for c := range cols {
		cols[c] = c
	}

	return submatrix(b, rows, cols)
}

func requireClose(t *testing.T, want, got mat.Matrix, tol float64) {
	t.Helper()
	require.True(t, mat.EqualApprox(want, got, tol),
		"want\n%v\ngot\n%v", mat.Formatted(want), mat.Formatted(got))
}
