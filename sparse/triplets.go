// SPDX-License-Identifier: MIT

package sparse

import (
	"cmp"
	"slices"
)

// Triplet is one unaggregated (row, col, value) input entry. Triplets that
// share a position are summed during assembly.
type Triplet[T Float] struct {
	Row, Col int
	Val      T
}

// FromTriplets assembles an owned cols×cols Store from triplets. A row index
// at or beyond cols is ErrOutOfRange; use FromTripletsRect for an explicit
// rectangular shape.
func FromTriplets[T Float](triplets []Triplet[T], cols int) (*Store[T], error) {
	s := &Store[T]{}
	if err := s.SetTriplets(triplets, cols); err != nil {
		return nil, err
	}

	return s, nil
}

// FromTripletsRect assembles an owned rows×cols Store from triplets.
func FromTripletsRect[T Float](triplets []Triplet[T], rows, cols int) (*Store[T], error) {
	if rows <= 0 {
		return nil, storeErrorf(opSetTriplets, ErrBadShape)
	}
	s := &Store[T]{}
	if err := s.assemble(triplets, rows, cols); err != nil {
		return nil, err
	}

	return s, nil
}

// SetTriplets replaces the contents of s with the assembly of triplets.
//
// Implementation:
//   - Stage 1: validate indices against cols×cols; the caller's slice is copied,
//     never reordered in place.
//   - Stage 2: sort by (col, row) and merge runs of equal positions by summation.
//   - Stage 3: build offsets so that colPtr[c] counts entries in columns < c.
//
// Previously held arrays are dropped (borrowed ones are left to their owner)
// and s becomes owned. The diagonal cache is invalidated.
func (s *Store[T]) SetTriplets(triplets []Triplet[T], cols int) error {
	return s.assemble(triplets, cols, cols)
}

// assemble implements SetTriplets for an explicit shape.
func (s *Store[T]) assemble(triplets []Triplet[T], rows, cols int) error {
	if len(triplets) == 0 {
		return storeErrorf(opSetTriplets, ErrEmptyTriplets)
	}
	if cols <= 0 {
		return storeErrorf(opSetTriplets, ErrBadShape)
	}
	for _, t := range triplets {
		if t.Col < 0 || t.Col >= cols || t.Row < 0 || t.Row >= rows {
			return storeErrorf(opSetTriplets, ErrOutOfRange)
		}
	}

	sorted := slices.Clone(triplets)
	slices.SortFunc(sorted, func(a, b Triplet[T]) int {
		if c := cmp.Compare(a.Col, b.Col); c != 0 {
			return c
		}
		return cmp.Compare(a.Row, b.Row)
	})

	colPtr := make([]int, cols+1)
	rowIdx := make([]int, 0, len(sorted))
	vals := make([]T, 0, len(sorted))
	for k := 0; k < len(sorted); {
		t := sorted[k]
		sum := t.Val
		for k++; k < len(sorted) && sorted[k].Row == t.Row && sorted[k].Col == t.Col; k++ {
			sum += sorted[k].Val
		}
		rowIdx = append(rowIdx, t.Row)
		vals = append(vals, sum)
		colPtr[t.Col+1]++
	}
	for j := 0; j < cols; j++ {
		colPtr[j+1] += colPtr[j]
	}

	*s = Store[T]{
		rows:   rows,
		cols:   cols,
		colPtr: colPtr,
		rowIdx: rowIdx,
		vals:   vals,
		own:    Owned,
	}

	return nil
}

// Triplets expands the stored entries back into triplets, column-major in
// storage order.
func (s *Store[T]) Triplets() []Triplet[T] {
	out := make([]Triplet[T], 0, len(s.rowIdx))
	for j := 0; j < s.cols; j++ {
		for k := s.colPtr[j]; k < s.colPtr[j+1]; k++ {
			out = append(out, Triplet[T]{Row: s.rowIdx[k], Col: j, Val: s.vals[k]})
		}
	}

	return out
}
