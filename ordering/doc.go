// SPDX-License-Identifier: MIT

// Package ordering computes fill-reducing symmetric permutations of sparse
// matrices and applies them (B = PᵀAP).
//
// What:
//
//   - Permutation keeps both directions: Forward(i) is the position of
//     original index i in the permuted matrix, Inverse(p) the original index
//     placed at position p.
//   - Methods are selected by Method constants (MinimumDegree, Natural,
//     ReverseCuthillMcKee) through Compute; OrderMinimumDegree and
//     OrderReverseCuthillMcKee are shorthands.
//   - MinimumDegree eliminates, one vertex at a time, the vertex of smallest
//     degree in the elimination graph and turns its neighbourhood into a
//     clique. Ties are broken by the smallest original index, so the result
//     is deterministic.
//   - ReverseCuthillMcKee produces a bandwidth-reducing ordering.
//   - PermutedFromTriplets builds the pattern of a triplet list, orders it and
//     assembles the permuted matrix in one step.
//
// The pattern is always symmetrized structurally: a stored (i, j) implies the
// edge {i, j}. Diagonal entries are ignored.
//
// Complexity:
//
//   - MinimumDegree: O(Σ d²·log n) in the clique sizes d met during
//     elimination; Memory O(|E_fill|).
//   - ReverseCuthillMcKee: O(|E| log Δ).
//   - Permute: O(nnz log k) for columns of at most k entries.
//
// Errors:
//
//   - ErrNilPattern:         nil input store.
//   - ErrNonSquare:          pattern is not square.
//   - ErrInvalidPermutation: forward array is not a bijection.
//   - ErrOutOfRange:         an id does not address the permutation.
//   - ErrUnknownMethod:      Compute got an unsupported Method.
package ordering
