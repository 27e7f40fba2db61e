// SPDX-License-Identifier: MIT

package mesh

import (
	"github.com/katalvlaran/cholup/sparse"
)

// Connectivity selects neighbour connectivity: orthogonal (Conn4) or
// including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

// Grid is a rectangular lattice of Width×Height vertices. It is immutable
// once built.
type Grid struct {
	Width, Height   int
	Conn            Connectivity
	neighborOffsets [][2]int
}

// NewGrid returns a width×height grid. Returns ErrEmptyGrid if either
// dimension is below 1.
func NewGrid(width, height int, conn Connectivity) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, ErrEmptyGrid
	}
	offsets := [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	if conn == Conn8 {
		offsets = [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
	}

	return &Grid{Width: width, Height: height, Conn: conn, neighborOffsets: offsets}, nil
}

// Len returns the number of vertices.
func (g *Grid) Len() int { return g.Width * g.Height }

// InBounds reports whether (x,y) lies within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Index maps (x,y) to its row-major id y·Width + x.
func (g *Grid) Index(x, y int) int { return y*g.Width + x }

// Coordinate converts a row-major id back to (x,y).
func (g *Grid) Coordinate(id int) (x, y int) { return id % g.Width, id / g.Width }

// NeighborOffsets returns the neighbour offsets of the connectivity.
func (g *Grid) NeighborOffsets() [][2]int { return g.neighborOffsets }

// OnBoundary reports whether (x,y) lies on the outer ring.
func (g *Grid) OnBoundary(x, y int) bool {
	return x == 0 || y == 0 || x == g.Width-1 || y == g.Height-1
}

// Boundary returns the ids of the outer ring in ascending order.
func (g *Grid) Boundary() []int { return g.split(true) }

// Interior returns the ids not on the outer ring in ascending order.
func (g *Grid) Interior() []int { return g.split(false) }

func (g *Grid) split(boundary bool) []int {
	var ids []int
	for id := 0; id < g.Len(); id++ {
		if x, y := g.Coordinate(id); g.OnBoundary(x, y) == boundary {
			ids = append(ids, id)
		}
	}

	return ids
}

// Laplacian returns the triplets of the graph Laplacian plus shift·I. Each
// off-diagonal pair appears in both triangles; the diagonal is the vertex
// degree plus shift.
func (g *Grid) Laplacian(shift float64) []sparse.Triplet[float64] {
	ts := make([]sparse.Triplet[float64], 0, g.Len()*(len(g.neighborOffsets)+1))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			u := g.Index(x, y)
			deg := 0
			for _, d := range g.neighborOffsets {
				nx, ny := x+d[0], y+d[1]
				if !g.InBounds(nx, ny) {
					continue
				}
				deg++
				ts = append(ts, sparse.Triplet[float64]{Row: g.Index(nx, ny), Col: u, Val: -1})
			}
			ts = append(ts, sparse.Triplet[float64]{Row: u, Col: u, Val: float64(deg) + shift})
		}
	}

	return ts
}

// Matrix assembles Laplacian(shift) into a Len()×Len() Store.
func (g *Grid) Matrix(shift float64) (*sparse.Store[float64], error) {
	return sparse.FromTriplets(g.Laplacian(shift), g.Len())
}
