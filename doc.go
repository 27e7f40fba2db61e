// SPDX-License-Identifier: MIT

// Package cholup is a supernodal sparse Cholesky toolkit for symmetric
// positive-definite systems, built for problems in which some unknowns are
// prescribed (Dirichlet boundaries, regions of interest) and the rest must
// be solved for many times.
//
// What is cholup?
//
//	A pure-Go library on top of gonum that brings together:
//		• Sparse storage: compressed sparse-column matrices, owned or borrowed
//		• Orderings: minimum degree, reverse Cuthill–McKee, natural
//		• Factorization: elimination tree, supernodes, blocked numeric LLᵀ
//		• Partial factors: the factor of A_FF derived from the full factor
//		• Solves: forward, backward and full, many right-hand sides at once
//
// Subpackages:
//
//	sparse/   : CSC Store, triplet assembly, matrix-market I/O, spy plots
//	ordering/ : Permutation, fill-reducing orderings, PᵀAP, permuted assembly
//	cholesky/ : Analyze, Factorize, Partial, Solver
//	mesh/     : grid Laplacians used as SPD test problems
//	examples/ : runnable Dirichlet problem on a plate
//
// Quick example:
//
//	f, _ := cholesky.Factorize(a)            // orders, analyzes, factors
//	pf, _ := f.Partial(interiorIDs)          // boundary ids become prescribed
//	x, _ := pf.Solve(b)                      // b holds x_B in boundary rows
//
//	go get github.com/katalvlaran/cholup
package cholup
