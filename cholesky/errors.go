// SPDX-License-Identifier: MIT

package cholesky

import (
	"errors"
	"fmt"
)

// Sentinel errors. Match with errors.Is; messages carry the operation tag.
var (
	// ErrNilMatrix indicates a nil matrix or right-hand side.
	ErrNilMatrix = errors.New("cholesky: nil matrix")

	// ErrNonSquare indicates a non-square input matrix.
	ErrNonSquare = errors.New("cholesky: matrix is not square")

	// ErrEmptyMatrix indicates a matrix without rows or stored entries.
	ErrEmptyMatrix = errors.New("cholesky: empty matrix")

	// ErrNotPositiveDefinite indicates a non-positive pivot during factorization.
	ErrNotPositiveDefinite = errors.New("cholesky: matrix is not positive definite")

	// ErrNotFactored indicates use of a factor whose last refactorization failed.
	ErrNotFactored = errors.New("cholesky: factor is not valid")

	// ErrEmptyFreeSet indicates a partial factorization with no free ids.
	ErrEmptyFreeSet = errors.New("cholesky: empty free set")

	// ErrOutOfRange indicates an id outside [0, N).
	ErrOutOfRange = errors.New("cholesky: index out of range")

	// ErrDimensionMismatch indicates a right-hand side of the wrong size.
	ErrDimensionMismatch = errors.New("cholesky: dimension mismatch")

	// ErrPatternMismatch indicates the matrix pattern differs from the analyzed one.
	ErrPatternMismatch = errors.New("cholesky: sparsity pattern differs from analysis")
)

const (
	opAnalyze     = "Analyze"
	opFactorize   = "Factorize"
	opRefactorize = "Refactorize"
	opPartial     = "Partial"
	opSolve       = "Solve"
)

func cholErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
