// SPDX-License-Identifier: MIT

// Package mesh generates structured-grid problems for the solver: graph
// Laplacians of rectangular grids and the ids of their outer ring, which
// are the typical Dirichlet boundary.
//
// What:
//
//   - Grid is a Width×Height lattice of vertices, numbered row-major
//     (id = y·Width + x), with Conn4 or Conn8 neighbours.
//   - Laplacian returns the triplets of L + shift·I, where L is the graph
//     Laplacian (degree on the diagonal, −1 per neighbour). With Conn4 this
//     is the 5-point stencil, with Conn8 the 9-point one.
//   - Boundary and Interior split the ids into the outer ring and the rest.
//
// Any shift > 0 makes the matrix SPD. With shift = 0 the matrix is singular
// (constants are in its kernel) but the interior block A_FF is SPD, which is
// exactly the Dirichlet setting.
//
// Complexity:
//
//   - Laplacian: O(W×H×d) time and memory (d = 4 or 8).
//   - Boundary, Interior: O(W×H).
//
// Errors:
//
//   - ErrEmptyGrid: width or height below 1.
package mesh
