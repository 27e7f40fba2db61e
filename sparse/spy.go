// SPDX-License-Identifier: MIT

package sparse

import (
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// spySide is the edge length of images produced by WriteSpy.
const spySide = 6 * vg.Inch

// SpyPlot returns a plot of the sparsity pattern of s: one square marker per
// stored entry, column on the X axis and row on the Y axis growing downwards
// so the picture reads like the matrix.
func SpyPlot[T Float](s *Store[T], title string) (*plot.Plot, error) {
	if s.NNZ() == 0 {
		return nil, storeErrorf(opSpy, ErrEmptyMatrix)
	}

	pts := make(plotter.XYs, 0, s.NNZ())
	for j := 0; j < s.cols; j++ {
		for k := s.colPtr[j]; k < s.colPtr[j+1]; k++ {
			pts = append(pts, plotter.XY{X: float64(j), Y: float64(s.rowIdx[k])})
		}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row"
	p.X.Min, p.X.Max = -0.5, float64(s.cols)-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(s.rows)-0.5
	p.Y.Scale = plot.InvertedScale{Normalizer: p.Y.Scale}

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, storeErrorf(opSpy, err)
	}
	sc.GlyphStyle.Shape = draw.BoxGlyph{}
	sc.GlyphStyle.Radius = vg.Points(max(0.5, 150/float64(max(s.rows, s.cols))))
	p.Add(sc)

	return p, nil
}

// WriteSpy renders the spy plot of s to w in the given image format
// ("png", "svg", "pdf", ...).
func WriteSpy[T Float](w io.Writer, s *Store[T], title, format string) error {
	p, err := SpyPlot(s, title)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(spySide, spySide, format)
	if err != nil {
		return storeErrorf(opSpy, err)
	}
	if _, err = wt.WriteTo(w); err != nil {
		return storeErrorf(opSpy, err)
	}

	return nil
}
