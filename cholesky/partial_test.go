// SPDX-License-Identifier: MIT

package cholesky_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/cholup/cholesky"
	"github.com/katalvlaran/cholup/mesh"
	"github.com/katalvlaran/cholup/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// dirichletReference solves A_FF·x_F = b_F − A_FB·b_B densely.
func dirichletReference(t *testing.T, a *sparse.Store[float64], free, bound []int, b *mat.Dense) *mat.Dense {
	t.Helper()
	ad := a.Dense()
	rhs := pickRows(b, free)
	if len(bound) > 0 {
		var coupled mat.Dense
		coupled.Mul(submatrix(ad, free, bound), pickRows(b, bound))
		rhs.Sub(rhs, &coupled)
	}

	return denseSolve(t, submatrix(ad, free, free), rhs)
}

func requireEcho(t *testing.T, b, x *mat.Dense, bound []int) {
	t.Helper()
	_, k := b.Dims()
	for _, i := range bound {
		for c := 0; c < k; c++ {
			require.Equal(t, b.At(i, c), x.At(i, c), "boundary row %d must be echoed", i)
		}
	}
}

func TestPartial_GridDirichlet(t *testing.T) {
	for _, conn := range []mesh.Connectivity{mesh.Conn4, mesh.Conn8} {
		g, err := mesh.NewGrid(7, 6, conn)
		require.NoError(t, err)
		a, err := g.Matrix(0.01)
		require.NoError(t, err)
		f, err := cholesky.Factorize(a)
		require.NoError(t, err)

		pf, err := f.Partial(g.Interior())
		require.NoError(t, err)
		assert.ElementsMatch(t, g.Interior(), pf.Free())
		assert.ElementsMatch(t, g.Boundary(), pf.Boundary())
		assert.Equal(t, g.Len(), pf.N())

		b := randomDense(rand.New(rand.NewSource(int64(conn)+1)), g.Len(), 2)
		x, err := pf.Solve(b)
		require.NoError(t, err)

		want := dirichletReference(t, a, pf.Free(), pf.Boundary(), b)
		requireClose(t, want, pickRows(x, pf.Free()), 1e-10)
		requireEcho(t, b, x, pf.Boundary())
	}
}

func TestPartial_FactorIsCholeskyOfSubmatrix(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	a := randomSPD(t, rng, 35, 0.12)
	f, err := cholesky.Factorize(a)
	require.NoError(t, err)

	var free []int
	for i := 0; i < 35; i++ {
		if rng.Float64() < 0.6 {
			free = append(free, i)
		}
	}
	pf, err := f.Partial(free)
	require.NoError(t, err)

	local := pf.Free()
	l := pf.L()
	assert.Equal(t, pf.NNZ(), l.NNZ())
	ld := l.Dense()
	var llt mat.Dense
	llt.Mul(ld, ld.T())
	requireClose(t, submatrix(a.Dense(), local, local), &llt, 1e-10)
	for j := range local {
		assert.Greater(t, ld.At(j, j), 0.0)
	}

	requireClose(t, submatrix(a.Dense(), local, pf.Boundary()), pf.Coupling().Dense(), 0)

	b := randomDense(rng, 35, 3)
	x, err := pf.Solve(b)
	require.NoError(t, err)
	requireClose(t, dirichletReference(t, a, local, pf.Boundary(), b), pickRows(x, local), 1e-10)
	requireEcho(t, b, x, pf.Boundary())
}

func TestPartial_FullSetReproducesFactor(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	a := randomSPD(t, rng, 20, 0.2)
	f, err := cholesky.Factorize(a)
	require.NoError(t, err)

	all := make([]int, 20)
	for i := range all {
		all[i] = 19 - i
	}
	pf, err := f.Partial(all)
	require.NoError(t, err)
	assert.Empty(t, pf.Boundary())
	assert.Equal(t, f.NNZ(), pf.NNZ())
	_, cols := pf.Coupling().Dims()
	assert.Zero(t, cols)

	b := randomDense(rng, 20, 2)
	want, err := f.Solve(b)
	require.NoError(t, err)
	got, err := pf.Solve(b)
	require.NoError(t, err)
	requireClose(t, want, got, 1e-13)
}

func TestPartial_SingleFreeId(t *testing.T) {
	a := tridiag(t, 5, 4, -1)
	f, err := cholesky.Factorize(a)
	require.NoError(t, err)
	pf, err := f.Partial([]int{2, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, pf.Free())

	b := []float64{1, 2, 3, 4, 5}
	x, err := pf.SolveVec(b)
	require.NoError(t, err)
	// 4·x2 − x1 − x3 = b2 with x1, x3 prescribed
	assert.InDelta(t, (3.0+2+4)/4, x[2], 1e-12)
	assert.Equal(t, []float64{1, 2, 4}, []float64{x[0], x[1], x[3]})
}

func TestPartial_ForwardBackward(t *testing.T) {
	g, err := mesh.NewGrid(5, 5, mesh.Conn4)
	require.NoError(t, err)
	a, err := g.Matrix(0.5)
	require.NoError(t, err)
	f, err := cholesky.Factorize(a)
	require.NoError(t, err)
	pf, err := f.Partial(g.Interior())
	require.NoError(t, err)

	b := randomDense(rand.New(rand.NewSource(4)), g.Len(), 1)
	for _, i := range g.Boundary() {
		b.Set(i, 0, 0)
	}
	y, err := pf.SolveForward(b)
	require.NoError(t, err)
	requireEcho(t, b, y, g.Boundary())
	x1, err := pf.SolveBackward(y)
	require.NoError(t, err)
	x2, err := pf.Solve(b)
	require.NoError(t, err)
	requireClose(t, x2, x1, 1e-13)
}

func TestPartial_Errors(t *testing.T) {
	f, err := cholesky.Factorize(tridiag(t, 4, 4, -1))
	require.NoError(t, err)

	_, err = f.Partial(nil)
	require.ErrorIs(t, err, cholesky.ErrEmptyFreeSet)
	_, err = f.Partial([]int{4})
	require.ErrorIs(t, err, cholesky.ErrOutOfRange)
	_, err = f.Partial([]int{-1})
	require.ErrorIs(t, err, cholesky.ErrOutOfRange)

	pf, err := f.Partial([]int{1, 2})
	require.NoError(t, err)
	_, err = pf.Solve(mat.NewDense(3, 1, nil))
	require.ErrorIs(t, err, cholesky.ErrDimensionMismatch)
	_, err = pf.Solve(nil)
	require.ErrorIs(t, err, cholesky.ErrNilMatrix)
}

func TestPartial_IndependentOfParent(t *testing.T) {
	g, err := mesh.NewGrid(4, 4, mesh.Conn4)
	require.NoError(t, err)
	a, err := g.Matrix(1)
	require.NoError(t, err)
	f, err := cholesky.Factorize(a)
	require.NoError(t, err)
	pf, err := f.Partial(g.Interior())
	require.NoError(t, err)

	b := randomDense(rand.New(rand.NewSource(9)), g.Len(), 1)
	before, err := pf.Solve(b)
	require.NoError(t, err)

	a2, err := g.Matrix(5)
	require.NoError(t, err)
	require.NoError(t, f.Refactorize(a2))
	after, err := pf.Solve(b)
	require.NoError(t, err)
	assert.True(t, mat.Equal(before, after))
}
