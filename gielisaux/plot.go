package gielisaux

import (
	"errors"
	"io"

	math "github.com/chewxy/math32"
	"github.com/soypat/gielis"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotRadius plots the superformula radius r(φ) over φ∈[0,2π) using samples
// points and writes it in the given format, which may be any format accepted by
// [plot.Plot.WriterTo] such as "png", "svg" or "pdf". Non-finite radii are left out.
func PlotRadius(w io.Writer, p gielis.Params, samples int, format string) error {
	if samples < 2 {
		return errors.New("need at least 2 samples to plot")
	}
	pts := make(plotter.XYs, 0, samples)
	for i := 0; i < samples; i++ {
		phi := 2 * math.Pi * float32(i) / float32(samples)
		r := p.Radius(phi)
		if math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(phi), Y: float64(r)})
	}
	if len(pts) < 2 {
		return errors.New("radius not finite at enough sample points")
	}
	pl := plot.New()
	pl.Title.Text = paramsString(p)
	pl.X.Label.Text = "phi [rad]"
	pl.Y.Label.Text = "r(phi)"
	pl.X.Min = 0
	pl.X.Max = 2 * float64(math.Pi)
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	pl.Add(plotter.NewGrid(), line)
	wt, err := pl.WriterTo(6*vg.Inch, 4*vg.Inch, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
