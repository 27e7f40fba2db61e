// SPDX-License-Identifier: MIT

package sparse

import (
	"errors"
	"fmt"
)

// Sentinel errors for sparse storage. Callers match them with errors.Is;
// kernels wrap them with an operation tag via storeErrorf.
var (
	// ErrEmptyTriplets is returned when assembly is requested from no triplets.
	ErrEmptyTriplets = errors.New("sparse: empty triplet list")

	// ErrOutOfRange indicates a row or column index outside the matrix.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrBadShape indicates negative dimensions or inconsistent CSC arrays.
	ErrBadShape = errors.New("sparse: invalid shape")

	// ErrUnsortedColumn indicates row indices that are not strictly ascending
	// within a column of borrowed CSC arrays.
	ErrUnsortedColumn = errors.New("sparse: column row indices not strictly ascending")

	// ErrBadMarket indicates malformed matrix-market text.
	ErrBadMarket = errors.New("sparse: malformed matrix market data")

	// ErrEmptyMatrix indicates the operation needs at least one stored entry.
	ErrEmptyMatrix = errors.New("sparse: matrix has no entries")

	// ErrDimensionMismatch indicates operands of incompatible size.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")
)

// Operation tags used in wrapped errors.
const (
	opSetTriplets = "SetTriplets"
	opBorrow      = "Borrow"
	opMulVec      = "MulVec"
	opReadMarket  = "ReadMarket"
	opWriteMarket = "WriteMarket"
	opSpy         = "SpyPlot"
)

// storeErrorf wraps err with an operation tag. err must be non-nil.
func storeErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
