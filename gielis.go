package gielis

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

const (
	tau = 2 * math32.Pi
	// DefaultResolution is the amount of perimeter samples used when
	// the caller has no preference.
	DefaultResolution = 64
)

// Params are the six Gielis superformula coefficients. The zero value is
// not a useful shape: A, B and N1 must be non-zero for finite radii.
type Params struct {
	A  float32 `toml:"a"`
	B  float32 `toml:"b"`
	M  float32 `toml:"m"`
	N1 float32 `toml:"n1"`
	N2 float32 `toml:"n2"`
	N3 float32 `toml:"n3"`
}

// DefaultParams returns parameters with all coefficients set to 1.
func DefaultParams() Params {
	return Params{A: 1, B: 1, M: 1, N1: 1, N2: 1, N3: 1}
}

// NewCircle returns parameters whose curve is a circle of radius r centered at the origin.
func NewCircle(r float32) Params {
	return Params{A: r, B: r, M: 0, N1: 1, N2: 1, N3: 1}
}

// Radius evaluates the superformula at angle phi in radians:
//
//	r(φ) = (|cos(mφ/4)/a|^n2 + |sin(mφ/4)/b|^n3)^(-1/n1)
//
// Radius performs no validation. A zero a, b or n1 yields non-finite
// results which are returned as-is, as do zero power bases raised to a negative exponent.
func (p Params) Radius(phi float32) float32 {
	angle := p.M * phi / 4
	xp := math32.Pow(math32.Abs(math32.Cos(angle)/p.A), p.N2)
	yp := math32.Pow(math32.Abs(math32.Sin(angle)/p.B), p.N3)
	return math32.Pow(xp+yp, -1/p.N1)
}

// Validate reports coefficients which are known to produce non-finite radii.
// The evaluation functions in this package never call Validate, it is
// provided for callers that prefer rejecting such shapes.
func (p Params) Validate() error {
	var errs []error
	for _, c := range [...]struct {
		name string
		v    float32
	}{{"a", p.A}, {"b", p.B}, {"m", p.M}, {"n1", p.N1}, {"n2", p.N2}, {"n3", p.N3}} {
		if math32.IsNaN(c.v) || math32.IsInf(c.v, 0) {
			errs = append(errs, fmt.Errorf("non-finite coefficient %s=%v", c.name, c.v))
		}
	}
	if p.A == 0 {
		errs = append(errs, errors.New("zero a coefficient"))
	}
	if p.B == 0 {
		errs = append(errs, errors.New("zero b coefficient"))
	}
	if p.N1 == 0 {
		errs = append(errs, errors.New("zero n1 exponent"))
	}
	return errors.Join(errs...)
}

// XY converts the polar coordinate (r, phi) to Cartesian.
func XY(r, phi float32) ms2.Vec {
	return ms2.Vec{X: r * math32.Cos(phi), Y: r * math32.Sin(phi)}
}

// XYZ converts a pair of superformula radii to a point on a supershape surface.
// r1 is the radius evaluated at longitude theta and r2 the radius evaluated at latitude phi.
func XYZ(r1, r2, theta, phi float32) ms3.Vec {
	cphi := math32.Cos(phi)
	return ms3.Vec{
		X: r1 * math32.Cos(theta) * r2 * cphi,
		Y: r1 * math32.Sin(theta) * r2 * cphi,
		Z: r2 * math32.Sin(phi),
	}
}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
