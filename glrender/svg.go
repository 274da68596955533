package glrender

import (
	"errors"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/gielis"
)

// SVGConfig controls the appearance of a curve outline written by [WriteSVG].
type SVGConfig struct {
	// Width and Height of the SVG canvas in pixels. Zero values default to 512.
	Width, Height int
	// Title is written as the SVG document title if not empty.
	Title string
	// Style of the outline polygon. Defaults to a filled gray polygon with black stroke.
	Style string
	// Spokes draws the fan triangulation edges from the origin to every outline point.
	Spokes bool
}

// WriteSVG writes the closed outline polygon as an SVG document. The
// drawing is scaled and centered so that the outline and the origin fit the canvas,
// with the y axis pointing up. Non-finite outline points are omitted.
func WriteSVG(w io.Writer, outline []ms2.Vec, cfg SVGConfig) error {
	if cfg.Width == 0 {
		cfg.Width = 512
	}
	if cfg.Height == 0 {
		cfg.Height = 512
	}
	if cfg.Width < 0 || cfg.Height < 0 {
		return errors.New("negative SVG dimensions")
	}
	if cfg.Style == "" {
		cfg.Style = "fill:rgb(200,200,200);stroke:black;stroke-width:1"
	}
	finite := make([]ms2.Vec, 0, len(outline))
	for _, v := range outline {
		if !math32.IsNaN(v.X) && !math32.IsNaN(v.Y) && !math32.IsInf(v.X, 0) && !math32.IsInf(v.Y, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) < 3 {
		return errors.New("outline needs at least 3 finite points")
	}
	bb, _ := gielis.BoundsOutline(finite)
	bb = bb.Union(ms2.Box{}) // Always include origin.
	sz := bb.Size()
	const margin = 0.9
	scale := margin * math32.Min(float32(cfg.Width)/sz.X, float32(cfg.Height)/sz.Y)
	if math32.IsInf(scale, 0) || math32.IsNaN(scale) {
		return errors.New("degenerate outline bounds")
	}
	center := ms2.Scale(0.5, ms2.Add(bb.Min, bb.Max))
	toCanvas := func(v ms2.Vec) (int, int) {
		x := float32(cfg.Width)/2 + (v.X-center.X)*scale
		y := float32(cfg.Height)/2 - (v.Y-center.Y)*scale
		return int(math32.Floor(x + 0.5)), int(math32.Floor(y + 0.5))
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(cfg.Width, cfg.Height)
	if cfg.Title != "" {
		canvas.Title(cfg.Title)
	}
	xs := make([]int, len(finite))
	ys := make([]int, len(finite))
	for i, v := range finite {
		xs[i], ys[i] = toCanvas(v)
	}
	canvas.Polygon(xs, ys, cfg.Style)
	if cfg.Spokes {
		ox, oy := toCanvas(ms2.Vec{})
		canvas.Gstyle("stroke:rgb(80,80,80);stroke-width:0.5")
		for i := range xs {
			canvas.Line(ox, oy, xs[i], ys[i])
		}
		canvas.Gend()
	}
	canvas.End()
	return ew.err
}

// errWriter keeps the first write error since svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(b []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(b)
	ew.err = err
	return n, err
}
