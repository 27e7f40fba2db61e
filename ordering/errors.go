// SPDX-License-Identifier: MIT

package ordering

import (
	"errors"
	"fmt"
)

// Sentinel errors for ordering. Match with errors.Is.
var (
	// ErrNilPattern indicates a nil matrix was passed as pattern.
	ErrNilPattern = errors.New("ordering: nil pattern")

	// ErrNonSquare indicates the pattern is not square.
	ErrNonSquare = errors.New("ordering: pattern is not square")

	// ErrInvalidPermutation indicates the forward array is not a bijection on [0, n).
	ErrInvalidPermutation = errors.New("ordering: invalid permutation")

	// ErrOutOfRange indicates an index outside [0, n).
	ErrOutOfRange = errors.New("ordering: index out of range")

	// ErrUnknownMethod indicates an unsupported ordering method.
	ErrUnknownMethod = errors.New("ordering: unknown method")
)

const (
	opCompute  = "Compute"
	opPermute  = "Permute"
	opNewPerm  = "NewPermutation"
	opMap      = "MapIndices"
	opTriplets = "PermutedFromTriplets"
)

func orderErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
