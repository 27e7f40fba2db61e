// SPDX-License-Identifier: MIT

// Package sparse provides Store, a compressed sparse-column (CSC) container
// for real-valued matrices, together with triplet assembly, diagonal access
// and matrix-market / spy-plot export.
//
// What:
//
//   - Store[T] keeps column offsets, row indices and values in three flat
//     slices. Column j occupies RowIdx()[ColPtr()[j]:ColPtr()[j+1]].
//   - FromTriplets assembles (row, col, value) triplets: entries are sorted by
//     (col, row) and duplicates are summed, never overwritten.
//   - Borrow wraps CSC arrays owned by someone else. A borrowed Store never
//     reallocates those arrays; Clone always produces an owned deep copy and
//     Move hands the payload (and its ownership tag) to a new Store.
//
// Complexity:
//
//   - FromTriplets: O(t log t) for t triplets, Memory O(t).
//   - DiagonalIndices: O(nnz) on first call, cached afterwards.
//   - At: O(log k) where k is the number of entries of the column.
//
// Errors:
//
//   - ErrEmptyTriplets:  assembly from an empty triplet list.
//   - ErrOutOfRange:     an index lies outside the declared dimensions.
//   - ErrBadShape:       negative dimensions or malformed CSC arrays.
//   - ErrUnsortedColumn: borrowed row indices not ascending in a column.
//   - ErrBadMarket:      unparsable matrix-market input.
//   - ErrEmptyMatrix:    an operation needs at least one stored entry.
package sparse
