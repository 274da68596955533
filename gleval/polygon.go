package gleval

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/gielis"
)

// Polygon is the exact signed distance field of a closed polygon, typically
// the sampled outline of a superformula curve. The polygon can be self-intersecting.
type Polygon struct {
	vert  []ms2.Vec
	bb    ms2.Box
	evals uint64
}

// NewPolygonOutline samples resolution points of the curve and returns the polygon's distance field.
func NewPolygonOutline(p gielis.Params, resolution int) (*Polygon, error) {
	return NewPolygon(gielis.Outline(p, resolution))
}

// NewPolygon creates a polygon distance field from a copy of its vertices.
// Polygons with non-finite vertices or less than 3 distinct vertices are rejected.
// Consecutive repeated vertices are collapsed.
func NewPolygon(vertices []ms2.Vec) (*Polygon, error) {
	if len(vertices) > 1 && vertices[0] == vertices[len(vertices)-1] {
		vertices = vertices[:len(vertices)-1] // Polygon is closed automatically.
	}
	dedup := vertices[:0:0]
	for i, v := range vertices {
		if math32.IsNaN(v.X) || math32.IsNaN(v.Y) || math32.IsInf(v.X, 0) || math32.IsInf(v.Y, 0) {
			return nil, errors.New("non-finite value in polygon vertices")
		}
		if i > 0 && v == vertices[i-1] {
			continue
		}
		dedup = append(dedup, v)
	}
	if len(dedup) < 3 {
		return nil, errors.New("polygon needs at least 3 distinct vertices")
	}
	bb, _ := gielis.BoundsOutline(dedup)
	return &Polygon{vert: dedup, bb: bb}, nil
}

// Vertices returns the polygon vertices.
func (c *Polygon) Vertices() []ms2.Vec { return c.vert }

// Bounds returns the polygon's bounding box. Implements [SDF2].
func (c *Polygon) Bounds() ms2.Box { return c.bb }

// Evaluations returns total evaluations performed succesfully during the field's lifetime.
func (c *Polygon) Evaluations() uint64 { return c.evals }

// Evaluate implements [SDF2].
func (c *Polygon) Evaluate(pos []ms2.Vec, dist []float32, userData any) error {
	if len(pos) != len(dist) {
		return errMismatchBufferLength
	} else if len(pos) == 0 {
		return errEmptyBuffers
	}
	// https://www.shadertoy.com/view/wdBXRW
	verts := c.vert
	for i, p := range pos {
		d := ms2.Norm2(ms2.Sub(p, verts[0]))
		s := float32(1.0)
		jv := len(verts) - 1
		for iv, v1 := range verts {
			v2 := verts[jv]
			e := ms2.Sub(v2, v1)
			w := ms2.Sub(p, v1)
			b := ms2.Sub(w, ms2.Scale(clampf(ms2.Dot(w, e)/ms2.Norm2(e), 0, 1), e))
			d = math32.Min(d, ms2.Norm2(b))
			// winding number from http://geomalgorithms.com/a03-_inclusion.html
			b1 := p.Y >= v1.Y
			b2 := p.Y < v2.Y
			b3 := e.X*w.Y > e.Y*w.X
			if (b1 && b2 && b3) || ((!b1) && (!b2) && (!b3)) {
				s = -s
			}
			jv = iv
		}
		dist[i] = s * math32.Sqrt(d)
	}
	c.evals += uint64(len(pos))
	return nil
}

func clampf(v, Min, Max float32) float32 {
	if v < Min {
		return Min
	} else if v > Max {
		return Max
	}
	return v
}
