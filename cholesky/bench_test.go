// SPDX-License-Identifier: MIT

package cholesky_test

import (
	"testing"

	"github.com/katalvlaran/cholup/cholesky"
	"github.com/katalvlaran/cholup/mesh"
	"github.com/katalvlaran/cholup/sparse"
	"gonum.org/v1/gonum/mat"
)

// benchPlate returns the shifted 5-point Laplacian of an n×n grid.
func benchPlate(b *testing.B, n int) (*mesh.Grid, *sparse.Store[float64]) {
	g, err := mesh.NewGrid(n, n, mesh.Conn4)
	if err != nil {
		b.Fatalf("setup NewGrid failed: %v", err)
	}
	a, err := g.Matrix(1e-3)
	if err != nil {
		b.Fatalf("setup Matrix failed: %v", err)
	}

	return g, a
}

// benchmarkFactorize factors a 100×100 plate with the given worker count.
// Complexity: O(nnz(L)) memory, dominated by the largest separators.
func benchmarkFactorize(b *testing.B, workers int) {
	_, a := benchPlate(b, 100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := cholesky.Factorize(a, cholesky.WithWorkers(workers)); err != nil {
			b.Fatalf("Factorize failed: %v", err)
		}
	}
}

func BenchmarkFactorize_Sequential(b *testing.B) { benchmarkFactorize(b, 1) }

func BenchmarkFactorize_Parallel4(b *testing.B) { benchmarkFactorize(b, 4) }

// BenchmarkRefactorize reuses the symbolic analysis and permutation.
func BenchmarkRefactorize(b *testing.B) {
	_, a := benchPlate(b, 100)
	f, err := cholesky.Factorize(a)
	if err != nil {
		b.Fatalf("setup Factorize failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err = f.Refactorize(a); err != nil {
			b.Fatalf("Refactorize failed: %v", err)
		}
	}
}

// BenchmarkPartial derives the interior factor of a 100×100 plate.
func BenchmarkPartial(b *testing.B) {
	g, a := benchPlate(b, 100)
	f, err := cholesky.Factorize(a)
	if err != nil {
		b.Fatalf("setup Factorize failed: %v", err)
	}
	free := g.Interior()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = f.Partial(free); err != nil {
			b.Fatalf("Partial failed: %v", err)
		}
	}
}

// BenchmarkSolve_MultiRHS solves eight right-hand sides at once.
func BenchmarkSolve_MultiRHS(b *testing.B) {
	g, a := benchPlate(b, 100)
	f, err := cholesky.Factorize(a)
	if err != nil {
		b.Fatalf("setup Factorize failed: %v", err)
	}
	rhs := mat.NewDense(g.Len(), 8, nil)
	for i := 0; i < g.Len(); i++ {
		for c := 0; c < 8; c++ {
			rhs.Set(i, c, float64((i+c)%7))
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = f.Solve(rhs); err != nil {
			b.Fatalf("Solve failed: %v", err)
		}
	}
}
