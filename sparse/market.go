// SPDX-License-Identifier: MIT

package sparse

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	marketBanner    = "%%MatrixMarket"
	marketHeader    = "%%MatrixMarket matrix coordinate real "
	marketSymmetric = "symmetric"
	marketGeneral   = "general"
)

// WriteMarket serializes s in matrix-market coordinate format: the header
// line, then "rows cols nnz", then one 1-indexed "row col value" line per
// stored entry in column-major storage order with 20 fractional digits.
// The symmetric flag only selects the format tag; every stored entry is
// written. An empty matrix produces the header line alone.
func (s *Store[T]) WriteMarket(w io.Writer, symmetric bool) error {
	bw := bufio.NewWriter(w)
	tag := marketGeneral
	if symmetric {
		tag = marketSymmetric
	}
	if _, err := fmt.Fprintf(bw, "%s%s\n", marketHeader, tag); err != nil {
		return storeErrorf(opWriteMarket, err)
	}
	if s.NNZ() > 0 && s.cols > 0 {
		fmt.Fprintf(bw, "%d %d %d\n", s.rows, s.cols, s.NNZ())
		for j := 0; j < s.cols; j++ {
			for k := s.colPtr[j]; k < s.colPtr[j+1]; k++ {
				fmt.Fprintf(bw, "%d %d %.20f\n", s.rowIdx[k]+1, j+1, float64(s.vals[k]))
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return storeErrorf(opWriteMarket, err)
	}

	return nil
}

// WriteMarketFile writes s to path; see WriteMarket.
func (s *Store[T]) WriteMarketFile(path string, symmetric bool) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return storeErrorf(opWriteMarket, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = storeErrorf(opWriteMarket, cerr)
		}
	}()

	return s.WriteMarket(f, symmetric)
}

// ReadMarket parses matrix-market coordinate text as produced by
// WriteMarket. Entries are taken exactly as listed (a symmetric tag does not
// mirror them) and duplicates are summed. Header-only input yields an empty
// 0×0 matrix.
func ReadMarket(r io.Reader) (*Store[float64], error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, storeErrorf(opReadMarket, err)
		}
		return nil, storeErrorf(opReadMarket, ErrBadMarket)
	}
	header := strings.Fields(sc.Text())
	if len(header) < 4 || header[0] != marketBanner || header[2] != "coordinate" {
		return nil, storeErrorf(opReadMarket, ErrBadMarket)
	}

	var (
		rows, cols, nnz int
		sized           bool
		triplets        []Triplet[float64]
	)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		f := strings.Fields(line)
		if !sized {
			if len(f) != 3 {
				return nil, storeErrorf(opReadMarket, ErrBadMarket)
			}
			var err error
			if rows, err = strconv.Atoi(f[0]); err != nil {
				return nil, storeErrorf(opReadMarket, ErrBadMarket)
			}
			if cols, err = strconv.Atoi(f[1]); err != nil {
				return nil, storeErrorf(opReadMarket, ErrBadMarket)
			}
			if nnz, err = strconv.Atoi(f[2]); err != nil {
				return nil, storeErrorf(opReadMarket, ErrBadMarket)
			}
			triplets = make([]Triplet[float64], 0, nnz)
			sized = true
			continue
		}
		if len(f) < 3 {
			return nil, storeErrorf(opReadMarket, ErrBadMarket)
		}
		i, err1 := strconv.Atoi(f[0])
		j, err2 := strconv.Atoi(f[1])
		v, err3 := strconv.ParseFloat(f[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, storeErrorf(opReadMarket, ErrBadMarket)
		}
		triplets = append(triplets, Triplet[float64]{Row: i - 1, Col: j - 1, Val: v})
	}
	if err := sc.Err(); err != nil {
		return nil, storeErrorf(opReadMarket, err)
	}

	if !sized {
		return New[float64](0, 0)
	}
	if len(triplets) != nnz {
		return nil, storeErrorf(opReadMarket, ErrBadMarket)
	}
	if nnz == 0 {
		return New[float64](rows, cols)
	}

	return FromTripletsRect(triplets, rows, cols)
}
