// SPDX-License-Identifier: MIT

package cholesky

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// factorParallel factors the supernodal tree with a fixed pool of workers.
// A supernode becomes ready once all of its children are done; the first
// failure cancels the remaining work.
func (l *layout) factorParallel(ctx context.Context, vals []float64, workers int) error {
	ns := l.numSupernodes()
	pending := make([]atomic.Int32, ns)
	for s := 0; s < ns; s++ {
		if p := l.sparent[s]; p >= 0 {
			pending[p].Add(1)
		}
	}

	ready := make(chan int, ns)
	for _, s := range l.spost {
		if pending[s].Load() == 0 {
			ready <- s
		}
	}

	locks := make([]sync.Mutex, ns)
	var remaining atomic.Int64
	remaining.Store(int64(ns))

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < min(workers, ns); w++ {
		g.Go(func() error {
			ws := newWorkspace(l)
			for {
				select {
				case <-gctx.Done():
					return gctx.Err()
				case s, ok := <-ready:
					if !ok {
						return nil
					}
					if err := l.factorSupernode(vals, s, ws, locks); err != nil {
						return err
					}
					if p := l.sparent[s]; p >= 0 && pending[p].Add(-1) == 0 {
						ready <- p
					}
					if remaining.Add(-1) == 0 {
						close(ready)
					}
				}
			}
		})
	}

	return g.Wait()
}
