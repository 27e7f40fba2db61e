// SPDX-License-Identifier: MIT

// Package cholesky implements a supernodal sparse Cholesky factorization
// A = L·Lᵀ of symmetric positive-definite matrices, multi-column
// forward/backward solves, and partial factors for Dirichlet problems in
// which a subset of unknowns is prescribed.
//
// Lifecycle:
//
//	Analyze(a)           → *Symbolic  (elimination tree, supernodes, L pattern)
//	(*Symbolic).Factorize → *Factor   (numeric values of L)
//	(*Factor).Partial(ids) → *PartialFactor (factor of A_FF, coupling A_FB)
//
// Factorize runs all three steps after ordering the matrix; the Factor keeps
// the permutation and every solve takes and returns right-hand sides indexed
// by the caller's original ids.
//
// Input convention: only the lower triangle (row ≥ col) of the matrix is
// read. Both full symmetric storage and lower-only storage are accepted.
//
// Algorithm outline:
//
//   - Symbolic: elimination tree with path compression, postorder, row
//     subtrees for column counts, fundamental supernodes (column j+1 joins
//     column j when parent(j) = j+1 and their patterns coincide), supernodal
//     tree and its postorder.
//   - Numeric: supernodes in postorder. Each supernode is a dense row-major
//     block: Potrf factors the diagonal block, Trsm the rows below it, Syrk
//     forms the Schur update which is scattered into ancestor supernodes.
//     With WithWorkers(n > 1) independent subtrees run concurrently.
//   - Partial: L is restricted to the free rows and columns and every
//     boundary column b contributes a rank-1 update L[F,b]·L[F,b]ᵀ applied
//     with Givens rotations along the elimination path. The result is the
//     Cholesky factor of A_FF in the inherited order.
//
// Errors:
//
//   - ErrNilMatrix, ErrNonSquare, ErrEmptyMatrix: invalid input.
//   - ErrNotPositiveDefinite: a non-positive pivot was met; no factor is returned.
//   - ErrPatternMismatch: the matrix does not match an existing analysis.
//   - ErrNotFactored: the factor was invalidated by a failed Refactorize.
//   - ErrEmptyFreeSet, ErrOutOfRange: invalid free id set.
//   - ErrDimensionMismatch: right-hand side with the wrong number of rows.
package cholesky
