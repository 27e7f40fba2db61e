// SPDX-License-Identifier: MIT

package cholesky

import (
	"math"

	"github.com/katalvlaran/cholup/ordering"
)

// Defaults.
const (
	// DefaultOrdering is the fill-reducing ordering used by Factorize.
	DefaultOrdering = ordering.MinimumDegree

	// DefaultWorkers runs the numeric factorization sequentially.
	DefaultWorkers = 1

	// DefaultDiagonalShift leaves the diagonal untouched.
	DefaultDiagonalShift = 0.0
)

const (
	panicWorkersInvalid = "cholesky: WithWorkers: n must be >= 1"
	panicShiftInvalid   = "cholesky: WithDiagonalShift: shift must be finite"
	panicMethodInvalid  = "cholesky: WithOrdering: unknown method"
)

// Option configures factorization.
type Option func(*Options)

// Options holds the effective configuration. Fields are unexported; use the
// WithX constructors.
type Options struct {
	method  ordering.Method
	workers int
	shift   float64
}

// WithOrdering selects the ordering applied by Factorize. It has no effect
// on FactorizePermuted and (*Symbolic).Factorize, whose input is already
// ordered.
func WithOrdering(m ordering.Method) Option {
	if !m.Valid() {
		panic(panicMethodInvalid)
	}

	return func(o *Options) { o.method = m }
}

// WithWorkers sets the number of goroutines of the numeric factorization.
// n == 1 is sequential. Panics when n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// WithDiagonalShift adds shift to every stored diagonal entry of the
// internal copy of A before numeric factorization (Tikhonov-style
// regularization). The caller's matrix is not modified. Panics on NaN/Inf.
func WithDiagonalShift(shift float64) Option {
	if math.IsNaN(shift) || math.IsInf(shift, 0) {
		panic(panicShiftInvalid)
	}

	return func(o *Options) { o.shift = shift }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		method:  DefaultOrdering,
		workers: DefaultWorkers,
		shift:   DefaultDiagonalShift,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
