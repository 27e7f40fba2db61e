// SPDX-License-Identifier: MIT

package sparse

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Float is the set of value types a Store can hold. Values must support +, *
// and a total order, and the zero value must be the additive identity.
type Float interface {
	~float32 | ~float64
}

// NoDiagonal marks a column without a stored diagonal entry in the slice
// returned by DiagonalIndices.
const NoDiagonal = -1

// Ownership records who owns the backing arrays of a Store.
type Ownership uint8

const (
	// Owned arrays were allocated by the Store and are released with it.
	Owned Ownership = iota
	// Borrowed arrays belong to an external matrix that outlives the Store.
	Borrowed
)

// String implements fmt.Stringer.
func (o Ownership) String() string {
	if o == Borrowed {
		return "borrowed"
	}
	return "owned"
}

// Store is a compressed sparse-column matrix.
//
// Invariants:
//   - len(colPtr) == cols+1, colPtr[0] == 0, colPtr[cols] == nnz, non-decreasing.
//   - len(rowIdx) == len(vals) == nnz.
//   - diag, when non-nil, has min(rows, cols) entries and matches the pattern.
//
// The zero value is an empty 0×0 owned matrix.
type Store[T Float] struct {
	rows, cols int
	colPtr     []int
	rowIdx     []int
	vals       []T
	diag       []int
	own        Ownership
}

// New returns an empty owned rows×cols matrix with no stored entries.
func New[T Float](rows, cols int) (*Store[T], error) {
	if rows < 0 || cols < 0 {
		return nil, ErrBadShape
	}

	return &Store[T]{
		rows:   rows,
		cols:   cols,
		colPtr: make([]int, cols+1),
	}, nil
}

// Borrow wraps externally owned CSC arrays without copying them.
// The arrays are validated (offsets monotone and consistent, row indices in
// range and strictly ascending within each column) and the diagonal offsets
// are cached immediately.
// The caller must keep the arrays alive and unmodified in pattern for as long
// as the Store is used.
func Borrow[T Float](rows, cols int, colPtr, rowIdx []int, vals []T) (*Store[T], error) {
	if rows < 0 || cols < 0 || len(colPtr) != cols+1 {
		return nil, storeErrorf(opBorrow, ErrBadShape)
	}
	if colPtr[0] != 0 || colPtr[cols] != len(rowIdx) || len(rowIdx) != len(vals) {
		return nil, storeErrorf(opBorrow, ErrBadShape)
	}
	for j := 0; j < cols; j++ {
		if colPtr[j] > colPtr[j+1] {
			return nil, storeErrorf(opBorrow, ErrBadShape)
		}
	}
	for _, i := range rowIdx {
		if i < 0 || i >= rows {
			return nil, storeErrorf(opBorrow, ErrOutOfRange)
		}
	}
	for j := 0; j < cols; j++ {
		for k := colPtr[j] + 1; k < colPtr[j+1]; k++ {
			if rowIdx[k-1] >= rowIdx[k] {
				return nil, storeErrorf(opBorrow, ErrUnsortedColumn)
			}
		}
	}

	s := &Store[T]{
		rows:   rows,
		cols:   cols,
		colPtr: colPtr,
		rowIdx: rowIdx,
		vals:   vals,
		own:    Borrowed,
	}
	s.DiagonalIndices()

	return s, nil
}

// FromDense builds an owned Store from a gonum matrix, keeping entries with
// |v| > tol.
func FromDense(m mat.Matrix, tol float64) *Store[float64] {
	r, c := m.Dims()
	s := &Store[float64]{rows: r, cols: c, colPtr: make([]int, c+1)}
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			v := m.At(i, j)
			if v > tol || v < -tol {
				s.rowIdx = append(s.rowIdx, i)
				s.vals = append(s.vals, v)
			}
		}
		s.colPtr[j+1] = len(s.rowIdx)
	}

	return s
}

// Dims returns the number of rows and columns.
func (s *Store[T]) Dims() (rows, cols int) { return s.rows, s.cols }

// NNZ returns the number of stored entries.
func (s *Store[T]) NNZ() int { return len(s.rowIdx) }

// Ownership reports whether the backing arrays are owned or borrowed.
func (s *Store[T]) Ownership() Ownership { return s.own }

// ColPtr returns the column offsets. The slice aliases the Store.
func (s *Store[T]) ColPtr() []int { return s.colPtr }

// RowIdx returns the row indices. The slice aliases the Store.
func (s *Store[T]) RowIdx() []int { return s.rowIdx }

// Vals returns the stored values. The slice aliases the Store; writing
// through it invalidates nothing but values, which callers own.
func (s *Store[T]) Vals() []T { return s.vals }

// Col returns views of the row indices and values stored in column j.
// It panics if j is out of range.
func (s *Store[T]) Col(j int) (rows []int, vals []T) {
	lo, hi := s.colPtr[j], s.colPtr[j+1]
	return s.rowIdx[lo:hi], s.vals[lo:hi]
}

// At returns the value stored at (i, j), or zero when no entry is stored.
// Columns are expected to be sorted by row, which assembly guarantees.
func (s *Store[T]) At(i, j int) (T, error) {
	var zero T
	if i < 0 || i >= s.rows || j < 0 || j >= s.cols {
		return zero, ErrOutOfRange
	}
	rows, vals := s.Col(j)
	k := sort.SearchInts(rows, i)
	if k < len(rows) && rows[k] == i {
		return vals[k], nil
	}

	return zero, nil
}

// Clone returns an owned deep copy, including the diagonal cache.
func (s *Store[T]) Clone() *Store[T] {
	c := &Store[T]{
		rows:   s.rows,
		cols:   s.cols,
		colPtr: append([]int(nil), s.colPtr...),
		rowIdx: append([]int(nil), s.rowIdx...),
		vals:   append([]T(nil), s.vals...),
	}
	if s.diag != nil {
		c.diag = append([]int(nil), s.diag...)
	}
	if c.colPtr == nil {
		c.colPtr = make([]int, s.cols+1)
	}

	return c
}

// Move transfers the payload and its ownership tag into a new Store and
// leaves s as an empty 0×0 matrix.
func (s *Store[T]) Move() *Store[T] {
	out := *s
	*s = Store[T]{colPtr: make([]int, 1)}

	return &out
}

// Reset drops the arrays. Borrowed arrays are left untouched for their owner.
func (s *Store[T]) Reset() {
	*s = Store[T]{colPtr: make([]int, 1)}
}

// DiagonalIndices returns, for each of the first min(rows, cols) columns,
// the storage offset of its diagonal entry or NoDiagonal. The result is
// cached until the pattern or the values change; it must not be modified.
func (s *Store[T]) DiagonalIndices() []int {
	if s.diag != nil {
		return s.diag
	}
	n := min(s.rows, s.cols)
	diag := make([]int, n)
	for j := 0; j < n; j++ {
		diag[j] = NoDiagonal
		for k := s.colPtr[j]; k < s.colPtr[j+1]; k++ {
			if s.rowIdx[k] == j {
				diag[j] = k
				break
			}
		}
	}
	s.diag = diag

	return diag
}

// AddToDiagonal adds v to every stored diagonal entry. Columns without a
// diagonal entry are left unchanged; their count is returned so callers
// relying on regularization can detect a pattern without full diagonal.
func (s *Store[T]) AddToDiagonal(v T) (missing int) {
	for _, k := range s.DiagonalIndices() {
		if k == NoDiagonal {
			missing++
			continue
		}
		s.vals[k] += v
	}
	s.diag = nil

	return missing
}

// Lower returns an owned copy holding only the entries with row >= col.
func (s *Store[T]) Lower() *Store[T] {
	out := &Store[T]{rows: s.rows, cols: s.cols, colPtr: make([]int, s.cols+1)}
	for j := 0; j < s.cols; j++ {
		for k := s.colPtr[j]; k < s.colPtr[j+1]; k++ {
			if s.rowIdx[k] >= j {
				out.rowIdx = append(out.rowIdx, s.rowIdx[k])
				out.vals = append(out.vals, s.vals[k])
			}
		}
		out.colPtr[j+1] = len(out.rowIdx)
	}

	return out
}

// MulVec computes dst = A·x.
func (s *Store[T]) MulVec(dst, x []T) error {
	if len(x) != s.cols || len(dst) != s.rows {
		return storeErrorf(opMulVec, ErrDimensionMismatch)
	}
	clear(dst)
	for j := 0; j < s.cols; j++ {
		xj := x[j]
		for k := s.colPtr[j]; k < s.colPtr[j+1]; k++ {
			dst[s.rowIdx[k]] += s.vals[k] * xj
		}
	}

	return nil
}

// Dense expands the matrix into a gonum *mat.Dense. An empty shape yields a
// zero-value Dense.
func (s *Store[T]) Dense() *mat.Dense {
	if s.rows == 0 || s.cols == 0 {
		return &mat.Dense{}
	}
	d := mat.NewDense(s.rows, s.cols, nil)
	for j := 0; j < s.cols; j++ {
		for k := s.colPtr[j]; k < s.colPtr[j+1]; k++ {
			d.Set(s.rowIdx[k], j, d.At(s.rowIdx[k], j)+float64(s.vals[k]))
		}
	}

	return d
}
