package gleval

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/gielis"
)

// SDF2 implements a 2D distance field in vectorized form.
type SDF2 interface {
	// Evaluate evaluates the distance field over pos positions.
	// dist and pos must be of same length.  Resulting distances are stored
	// in dist.
	//
	// userData facilitates getting data to the evaluators for use in processing.
	Evaluate(pos []ms2.Vec, dist []float32, userData any) error
	// Bounds returns the field's bounding box such that all of the shape is contained within.
	Bounds() ms2.Box
}

var (
	errEmptyBuffers         = errors.New("empty buffers")
	errMismatchBufferLength = errors.New("position and distance buffer length mismatch")
)

// Radial is the radial distance field of a superformula curve: the distance
// from a point to the origin minus the curve radius along the same direction.
// It is negative inside the curve and positive outside. It is not an exact
// euclidean distance to the curve but shares its sign and zero level set.
type Radial struct {
	p     gielis.Params
	bb    ms2.Box
	evals uint64
}

// NewRadial creates the radial distance field of p. The bounding box is
// calculated from samples points on the curve and contains the origin.
// An error is returned if no sample has a finite position.
func NewRadial(p gielis.Params, samples int) (*Radial, error) {
	if samples < 3 {
		return nil, errors.New("need at least 3 samples to bound curve")
	}
	outline := gielis.Outline(p, samples)
	bb, nfinite := gielis.BoundsOutline(outline)
	if nfinite == 0 {
		return nil, errors.New("curve has no finite points, check parameters")
	}
	bb = bb.Union(ms2.Box{})
	sz := bb.Size()
	pad := 0.05 * math32.Max(sz.X, sz.Y)
	if pad == 0 {
		pad = 1
	}
	bb.Min = ms2.Sub(bb.Min, ms2.Vec{X: pad, Y: pad})
	bb.Max = ms2.Add(bb.Max, ms2.Vec{X: pad, Y: pad})
	return &Radial{p: p, bb: bb}, nil
}

// Params returns the superformula parameters of the field.
func (r *Radial) Params() gielis.Params { return r.p }

// Bounds returns the field's bounding box. Implements [SDF2].
func (r *Radial) Bounds() ms2.Box { return r.bb }

// Evaluations returns total evaluations performed succesfully during the field's lifetime.
func (r *Radial) Evaluations() uint64 { return r.evals }

// Evaluate implements the [SDF2] interface. Angles are taken in [0, 2π) to
// match the domain the curve is sampled over.
func (r *Radial) Evaluate(pos []ms2.Vec, dist []float32, userData any) error {
	if len(pos) != len(dist) {
		return errMismatchBufferLength
	} else if len(pos) == 0 {
		return errEmptyBuffers
	}
	p := r.p
	for i, v := range pos {
		phi := math32.Atan2(v.Y, v.X)
		if phi < 0 {
			phi += 2 * math32.Pi
		}
		dist[i] = ms2.Norm(v) - p.Radius(phi)
	}
	r.evals += uint64(len(pos))
	return nil
}
