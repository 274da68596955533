package gielis_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/gielis"
)

func TestRadiusCircle(t *testing.T) {
	for _, r := range []float32{0.5, 1, 2.5, 100} {
		p := gielis.NewCircle(r)
		for i := 0; i < 64; i++ {
			phi := float32(i) / 64 * 2 * math32.Pi
			got := p.Radius(phi)
			if math32.Abs(got-r) > 1e-5*r {
				t.Errorf("circle r=%g: got radius %g at phi=%g", r, got, phi)
			}
		}
	}
}

func TestRadiusDefaultParams(t *testing.T) {
	const tol = 1e-5
	p := gielis.DefaultParams()
	if got := p.Radius(0); got != 1 {
		t.Errorf("want radius 1 at phi=0, got %g", got)
	}
	// With m=1 the curve is not a circle, check against a float64 evaluation.
	for _, phi := range []float64{math.Pi / 2, math.Pi, 1, 3.5, -2} {
		c, s := math.Cos(phi/4), math.Sin(phi/4)
		want := 1 / (math.Abs(c) + math.Abs(s))
		got := p.Radius(float32(phi))
		if math.Abs(float64(got)-want) > tol {
			t.Errorf("phi=%g: want %g, got %g", phi, want, got)
		}
	}
}

func TestRadiusSquircle(t *testing.T) {
	const tol = 1e-5
	// m=4, n1=n2=n3=2 reduces to cos²+sin² which is the unit circle.
	p := gielis.Params{A: 1, B: 1, M: 4, N1: 2, N2: 2, N3: 2}
	for i := 0; i < 100; i++ {
		phi := float32(i) / 10
		got := p.Radius(phi)
		if math32.Abs(got-1) > tol {
			t.Errorf("phi=%g: want radius 1, got %g", phi, got)
		}
	}
}

func TestRadiusNonNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		p := randParams(rng, 0.1, 5)
		p.M = 12 * rng.Float32()
		phi := 20*rng.Float32() - 10
		r := p.Radius(phi)
		if math32.IsNaN(r) || math32.IsInf(r, 0) {
			continue
		}
		if r < 0 {
			t.Fatalf("negative radius %g for %+v at phi=%g", r, p, phi)
		}
	}
}

func TestRadiusPeriodic(t *testing.T) {
	const tol = 5e-3
	rng := rand.New(rand.NewSource(2))
	for _, m := range []float32{4, 8, 12, 20} {
		for i := 0; i < 1000; i++ {
			p := randParams(rng, 1, 3)
			p.A = 0.5 + 2*rng.Float32()
			p.B = 0.5 + 2*rng.Float32()
			p.M = m
			phi := 2 * math32.Pi * rng.Float32()
			r1 := p.Radius(phi)
			r2 := p.Radius(phi + 2*math32.Pi)
			if math32.Abs(r1-r2) > tol*math32.Max(1, math32.Abs(r1)) {
				t.Fatalf("m=%g: radius not periodic at phi=%g: %g != %g (%+v)", m, phi, r1, r2, p)
			}
		}
	}
}

func TestRadiusZeroN1(t *testing.T) {
	// Power base is always below 1 for a=b=2, so the -Inf exponent drives the radius to +Inf.
	p := gielis.Params{A: 2, B: 2, M: 4, N1: 0, N2: 1, N3: 1}
	for i := 0; i < 32; i++ {
		phi := float32(i) / 32 * 2 * math32.Pi
		r := p.Radius(phi)
		if !math32.IsInf(r, 1) {
			t.Errorf("phi=%g: want +Inf radius, got %g", phi, r)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := gielis.DefaultParams().Validate(); err != nil {
		t.Error("default params should be valid:", err)
	}
	if err := gielis.NewCircle(3).Validate(); err != nil {
		t.Error("circle params should be valid:", err)
	}
	err := gielis.Params{}.Validate()
	if err == nil {
		t.Fatal("expected error for zero params")
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("expected joined errors, got %T", err)
	}
	if n := len(joined.Unwrap()); n != 3 {
		t.Errorf("expected 3 errors for zero a, b and n1, got %d: %v", n, err)
	}
	nan := gielis.DefaultParams()
	nan.N2 = math32.NaN()
	if nan.Validate() == nil {
		t.Error("expected error for NaN coefficient")
	}
}

func TestXY(t *testing.T) {
	const tol = 1e-6
	for _, test := range []struct {
		r, phi float32
		x, y   float32
	}{
		{r: 1, phi: 0, x: 1, y: 0},
		{r: 1, phi: math32.Pi / 2, x: 0, y: 1},
		{r: 2, phi: math32.Pi, x: -2, y: 0},
		{r: 3, phi: 3 * math32.Pi / 2, x: 0, y: -3},
	} {
		got := gielis.XY(test.r, test.phi)
		if math32.Abs(got.X-test.x) > tol || math32.Abs(got.Y-test.y) > tol {
			t.Errorf("XY(%g,%g): want (%g,%g), got %v", test.r, test.phi, test.x, test.y, got)
		}
	}
}

func TestXYZSphere(t *testing.T) {
	const tol = 1e-5
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		theta := 2*math32.Pi*rng.Float32() - math32.Pi
		phi := math32.Pi*rng.Float32() - math32.Pi/2
		r := 0.1 + 10*rng.Float32()
		v := gielis.XYZ(1, r, theta, phi)
		norm := math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
		if math32.Abs(norm-r) > tol*r {
			t.Fatalf("XYZ(1,%g,%g,%g) not on sphere: |%v|=%g", r, theta, phi, v, norm)
		}
	}
}

func randParams(rng *rand.Rand, minExp, maxExp float32) gielis.Params {
	exp := func() float32 { return minExp + (maxExp-minExp)*rng.Float32() }
	return gielis.Params{
		A:  0.1 + 3*rng.Float32(),
		B:  0.1 + 3*rng.Float32(),
		M:  12 * rng.Float32(),
		N1: exp(),
		N2: exp(),
		N3: exp(),
	}
}
