// SPDX-License-Identifier: MIT

package cholesky_test

import (
	"fmt"

	"github.com/katalvlaran/cholup/cholesky"
	"github.com/katalvlaran/cholup/sparse"
)

// pathMatrix builds tridiag(-1, d, -1) of size n.
func pathMatrix(n int, d float64) *sparse.Store[float64] {
	var ts []sparse.Triplet[float64]
	for i := 0; i < n; i++ {
		ts = append(ts, sparse.Triplet[float64]{Row: i, Col: i, Val: d})
		if i > 0 {
			ts = append(ts,
				sparse.Triplet[float64]{Row: i, Col: i - 1, Val: -1},
				sparse.Triplet[float64]{Row: i - 1, Col: i, Val: -1})
		}
	}
	a, _ := sparse.FromTriplets(ts, n)

	return a
}

// ExampleFactorize factors a small SPD matrix and solves one system.
func ExampleFactorize() {
	f, err := cholesky.Factorize(pathMatrix(4, 4))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	x, err := f.SolveVec([]float64{1, 0, 0, 0})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, v := range x {
		fmt.Printf("%.6f\n", v)
	}

	// Output:
	// 0.267943
	// 0.071770
	// 0.019139
	// 0.004785
}

// ExampleFactor_Partial solves a 1-D Dirichlet problem: the end points are
// prescribed and the interior follows the discrete Laplace equation.
func ExampleFactor_Partial() {
	f, err := cholesky.Factorize(pathMatrix(5, 2))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	pf, err := f.Partial([]int{1, 2, 3})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	// rows 0 and 4 carry the boundary values, rows 1..3 the load
	x, err := pf.SolveVec([]float64{0, 0, 0, 0, 1})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%.2f\n", x)

	// Output:
	// [0.00 0.25 0.50 0.75 1.00]
}
