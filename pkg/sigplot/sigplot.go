// Package sigplot renders generated signals and decomposition results as
// image files. It is a pure consumer of final arrays.
package sigplot

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// signalGrid adapts a (nt, nx) signal matrix to the heatmap grid interface,
// with time on the horizontal axis and space on the vertical axis.
type signalGrid struct {
	signal *mat.Dense
	x, t   []float64
}

func (g signalGrid) Dims() (c, r int)   { return len(g.t), len(g.x) }
func (g signalGrid) X(c int) float64    { return g.t[c] }
func (g signalGrid) Y(r int) float64    { return g.x[r] }
func (g signalGrid) Z(c, r int) float64 { return g.signal.At(c, r) }

// Heatmap saves a space/time heatmap of a (nt, nx) signal, using a
// diverging blue-red palette.
func Heatmap(path, title string, signal *mat.Dense, x, t []float64) error {
	nt, nx := signal.Dims()
	if nt != len(t) || nx != len(x) {
		return fmt.Errorf("sigplot: signal is %dx%d but have %d time and %d space values", nt, nx, len(t), len(x))
	}

	h := plotter.NewHeatMap(signalGrid{signal: signal, x: x, t: t}, moreland.SmoothBlueRed().Palette(255))

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time"
	p.Y.Label.Text = "Space"
	p.Add(h)

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("sigplot: save heatmap: %w", err)
	}
	return nil
}

// Eigenvalues saves a complex-plane scatter of continuous eigenvalues.
func Eigenvalues(path string, eigs []complex128) error {
	pts := make(plotter.XYs, len(eigs))
	for i, e := range eigs {
		pts[i] = plotter.XY{X: real(e), Y: imag(e)}
	}

	p := plot.New()
	p.Title.Text = "Continuous eigenvalues"
	p.X.Label.Text = "Re"
	p.Y.Label.Text = "Im"
	p.Add(plotter.NewGrid())

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("sigplot: eigenvalue scatter: %w", err)
	}
	s.GlyphStyle.Radius = vg.Points(3)
	p.Add(s)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("sigplot: save eigenvalues: %w", err)
	}
	return nil
}

// Modes saves the real part of the selected spatial mode shapes over x.
// Mode matrices from a delay-embedded fit may have more rows than x; only
// the first len(x) rows are drawn.
func Modes(path string, modes *mat.CDense, x []float64, indices []int) error {
	rows, rank := modes.Dims()
	if len(x) > rows {
		return fmt.Errorf("sigplot: modes have %d rows but x has %d values", rows, len(x))
	}

	p := plot.New()
	p.Title.Text = "Mode shapes"
	p.X.Label.Text = "Space"
	p.Y.Label.Text = "Re(mode)"

	var args []interface{}
	for _, k := range indices {
		if k < 0 || k >= rank {
			return fmt.Errorf("sigplot: mode index %d out of range for rank %d", k, rank)
		}
		xy := make(plotter.XYs, len(x))
		for i := range x {
			xy[i] = plotter.XY{X: x[i], Y: real(modes.At(i, k))}
		}
		args = append(args, fmt.Sprintf("mode %d", k), xy)
	}
	if err := plotutil.AddLinePoints(p, args...); err != nil {
		return fmt.Errorf("sigplot: mode lines: %w", err)
	}

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("sigplot: save modes: %w", err)
	}
	return nil
}
