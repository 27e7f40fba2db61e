// SPDX-License-Identifier: MIT

package ordering

// Permutation is a bijection on [0, n) stored in both directions.
// The zero value is the empty permutation.
type Permutation struct {
	fwd []int // original index → permuted position
	inv []int // permuted position → original index
}

// NewPermutation validates fwd as a bijection and returns the permutation
// mapping original index i to position fwd[i]. fwd is copied.
func NewPermutation(fwd []int) (Permutation, error) {
	n := len(fwd)
	inv := make([]int, n)
	for i := range inv {
		inv[i] = -1
	}
	for i, p := range fwd {
		if p < 0 || p >= n || inv[p] != -1 {
			return Permutation{}, orderErrorf(opNewPerm, ErrInvalidPermutation)
		}
		inv[p] = i
	}

	return Permutation{fwd: append([]int(nil), fwd...), inv: inv}, nil
}

// fromInverse builds a Permutation from its elimination sequence, which is
// a bijection by construction.
func fromInverse(inv []int) Permutation {
	fwd := make([]int, len(inv))
	for p, i := range inv {
		fwd[i] = p
	}

	return Permutation{fwd: fwd, inv: inv}
}

// Identity returns the identity permutation on n elements.
func Identity(n int) Permutation {
	fwd := make([]int, n)
	inv := make([]int, n)
	for i := range fwd {
		fwd[i], inv[i] = i, i
	}

	return Permutation{fwd: fwd, inv: inv}
}

// Len returns n.
func (p Permutation) Len() int { return len(p.fwd) }

// Forward returns the permuted position of original index i.
// It panics if i is out of range.
func (p Permutation) Forward(i int) int { return p.fwd[i] }

// Inverse returns the original index at permuted position q.
// It panics if q is out of range.
func (p Permutation) Inverse(q int) int { return p.inv[q] }

// ForwardSlice returns a copy of the forward map.
func (p Permutation) ForwardSlice() []int { return append([]int(nil), p.fwd...) }

// InverseSlice returns a copy of the inverse map.
func (p Permutation) InverseSlice() []int { return append([]int(nil), p.inv...) }

// Inverted returns the inverse permutation.
func (p Permutation) Inverted() Permutation { return Permutation{fwd: p.inv, inv: p.fwd} }

// MapIndices translates original ids to permuted positions.
func (p Permutation) MapIndices(ids []int) ([]int, error) {
	out := make([]int, len(ids))
	for k, i := range ids {
		if i < 0 || i >= len(p.fwd) {
			return nil, orderErrorf(opMap, ErrOutOfRange)
		}
		out[k] = p.fwd[i]
	}

	return out, nil
}

// IsIdentity reports whether p maps every index to itself.
func (p Permutation) IsIdentity() bool {
	for i, q := range p.fwd {
		if i != q {
			return false
		}
	}

	return true
}
