// SPDX-License-Identifier: MIT

package cholesky

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/cholup/sparse"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack/lapack64"
)

// workspace is per-goroutine scratch of the numeric factorization.
type workspace struct {
	relmap []int     // global row → local row of the current target supernode
	update []float64 // Schur update, maxBelow×maxBelow
}

func newWorkspace(l *layout) *workspace {
	return &workspace{
		relmap: make([]int, l.n),
		update: make([]float64, l.maxBelow*l.maxBelow),
	}
}

// mapRows points relmap at the local rows of supernode s.
func (w *workspace) mapRows(l *layout, s int) {
	for r, i := range l.rows[l.rowPtr[s]:l.rowPtr[s+1]] {
		w.relmap[i] = r
	}
}

// block returns the value block of supernode s.
func (l *layout) block(vals []float64, s int) []float64 {
	return vals[l.valPtr[s]:l.valPtr[s+1]]
}

// load copies the lower triangle of low into freshly zeroed supernode blocks.
func (l *layout) load(low *sparse.Store[float64], vals []float64, ws *workspace) {
	clear(vals)
	colPtr, rowIdx, v := low.ColPtr(), low.RowIdx(), low.Vals()
	for s := 0; s < l.numSupernodes(); s++ {
		ws.mapRows(l, s)
		_, nc := l.dims(s)
		blk := l.block(vals, s)
		for j := l.super[s]; j < l.super[s+1]; j++ {
			c := j - l.super[s]
			for k := colPtr[j]; k < colPtr[j+1]; k++ {
				if i := rowIdx[k]; i >= j {
					blk[ws.relmap[i]*nc+c] += v[k]
				}
			}
		}
	}
}

// factorSupernode factors supernode s in place and subtracts its Schur
// update from its ancestors. locks, when non-nil, guards every target block.
func (l *layout) factorSupernode(vals []float64, s int, ws *workspace, locks []sync.Mutex) error {
	nr, nc := l.dims(s)
	nb := nr - nc
	blk := l.block(vals, s)

	tri, ok := lapack64.Potrf(blas64.Symmetric{Uplo: blas.Lower, N: nc, Stride: nc, Data: blk[:nc*nc]})
	if !ok {
		return fmt.Errorf("supernode %d (columns %d..%d): %w",
			s, l.super[s], l.super[s+1]-1, ErrNotPositiveDefinite)
	}
	if nb == 0 {
		return nil
	}

	below := blas64.General{Rows: nb, Cols: nc, Stride: nc, Data: blk[nc*nc:]}
	blas64.Trsm(blas.Right, blas.Trans, 1, tri, below)

	upd := blas64.Symmetric{Uplo: blas.Lower, N: nb, Stride: nb, Data: ws.update[:nb*nb]}
	blas64.Syrk(blas.NoTrans, 1, below, 0, upd)

	brows := l.rows[l.rowPtr[s]+nc : l.rowPtr[s+1]]
	for q := 0; q < nb; {
		t := l.colSuper[brows[q]]
		end := q + 1
		for end < nb && l.colSuper[brows[end]] == t {
			end++
		}
		l.scatter(vals, t, brows, upd.Data, nb, q, end, ws, locks)
		q = end
	}

	return nil
}

// scatter subtracts update columns [q0, q1), all owned by supernode t, into
// t's block.
func (l *layout) scatter(vals []float64, t int, brows []int, upd []float64, nb, q0, q1 int, ws *workspace, locks []sync.Mutex) {
	ws.mapRows(l, t)
	_, nct := l.dims(t)
	dst := l.block(vals, t)
	if locks != nil {
		locks[t].Lock()
		defer locks[t].Unlock()
	}
	for q := q0; q < q1; q++ {
		c := brows[q] - l.super[t]
		for p := q; p < nb; p++ {
			dst[ws.relmap[brows[p]]*nct+c] -= upd[p*nb+q]
		}
	}
}

// factorSequential factors every supernode in supernodal postorder.
func (l *layout) factorSequential(vals []float64, ws *workspace) error {
	for _, s := range l.spost {
		if err := l.factorSupernode(vals, s, ws, nil); err != nil {
			return err
		}
	}

	return nil
}
