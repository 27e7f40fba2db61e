// SPDX-License-Identifier: MIT

package mesh

import "errors"

var (
	// ErrEmptyGrid indicates a grid without rows or columns.
	ErrEmptyGrid = errors.New("mesh: grid must have at least one row and one column")
)
