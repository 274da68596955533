package glrender

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	stlHeaderSize   = 84
	stlTriangleSize = 50
)

// WriteBinarySTL writes model triangles to a writer in binary STL file format.
// Facet normals are calculated from the vertices with the right hand rule.
// Degenerate triangles are written with a zero normal.
func WriteBinarySTL(w io.Writer, model []ms3.Triangle) (int, error) {
	if len(model) == 0 {
		return 0, errors.New("empty triangle slice")
	} else if uint64(len(model)) > math.MaxUint32 {
		return 0, errors.New("too many triangles for STL format")
	}
	var header [stlHeaderSize]byte
	copy(header[:80], "gielis binary STL")
	binary.LittleEndian.PutUint32(header[80:], uint32(len(model)))
	n, err := w.Write(header[:])
	if err != nil {
		return n, err
	}
	const trianglesInBuffer = 1 << 8
	buf := make([]byte, 0, stlTriangleSize*trianglesInBuffer)
	for i, triangle := range model {
		var d stlTriangle
		d.Vertex1 = vecTo3F32(triangle[0])
		d.Vertex2 = vecTo3F32(triangle[1])
		d.Vertex3 = vecTo3F32(triangle[2])
		if n, ok := d.normalFromVertices(); ok {
			d.Normal = [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
		}
		buf = buf[:len(buf)+stlTriangleSize]
		d.put(buf[len(buf)-stlTriangleSize:])
		if len(buf) == cap(buf) || i == len(model)-1 {
			ngot, err := w.Write(buf)
			n += ngot
			if err != nil {
				return n, err
			}
			buf = buf[:0]
		}
	}
	return n, nil
}

// ReadBinarySTL reads a binary STL file and returns its triangles. Facet normals
// are discarded after validation. Triangles with non-finite values are rejected.
func ReadBinarySTL(r io.Reader) (output []ms3.Triangle, readErr error) {
	var header [stlHeaderSize]byte
	_, err := io.ReadFull(r, header[:])
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, errors.New("encountered EOF while reading STL header")
		}
		return nil, fmt.Errorf("STL header read failed: %w", err)
	}
	count := binary.LittleEndian.Uint32(header[80:])
	if count == 0 {
		return nil, errors.New("STL header indicates 0 triangles present")
	}
	var (
		buf [stlTriangleSize]byte
		d   stlTriangle
		i   int
	)
	output = make([]ms3.Triangle, 0, min(int(count), 1<<20))
	for i = 0; i < int(count); i++ {
		_, err = io.ReadFull(r, buf[:])
		if err != nil {
			return nil, fmt.Errorf("%d/%d STL triangles read: %w", i, count, err)
		}
		d.get(buf[:])
		if err := d.validate(); err != nil {
			return nil, fmt.Errorf("STL triangle %d: %w", i, err)
		}
		output = append(output, d.toTriangle())
	}
	return output, nil
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
}

func (t stlTriangle) put(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to marshal stlTriangle")
	}
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0) // Attribute byte count.
}

func (t *stlTriangle) get(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to unmarshal stlTriangle")
	}
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

var errNormalMismatch = errors.New("facet normal not approximately equal to normal calculated from vertices")

func (t stlTriangle) validate() error {
	const normTol = 5e-2
	if bad3F32(t.Normal) {
		return errors.New("inf/NaN STL triangle normal")
	}
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	if t.Normal == ([3]float32{}) {
		return nil // Normal left for reader to calculate.
	}
	calc, ok := t.normalFromVertices()
	if !ok {
		return nil // Degenerate triangle, normal is meaningless.
	}
	given := r3From3F32(t.Normal)
	if r3.Norm(r3.Sub(calc, given)) > normTol {
		return errNormalMismatch
	}
	return nil
}

func r3From3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}

// normalFromVertices calculates the unit normal in double precision. Triangles
// whose area is negligible relative to their longest edge report false.
func (t stlTriangle) normalFromVertices() (r3.Vec, bool) {
	const relDegenerate = 1e-6
	v1 := r3From3F32(t.Vertex1)
	e1 := r3.Sub(r3From3F32(t.Vertex2), v1)
	e2 := r3.Sub(r3From3F32(t.Vertex3), v1)
	e3 := r3.Sub(e2, e1)
	n := r3.Cross(e1, e2)
	maxEdge2 := max(r3.Norm2(e1), r3.Norm2(e2), r3.Norm2(e3))
	norm := r3.Norm(n)
	if !(norm > relDegenerate*maxEdge2) || math.IsInf(norm, 0) {
		return r3.Vec{}, false
	}
	return r3.Scale(1/norm, n), true
}

func (t stlTriangle) toTriangle() ms3.Triangle {
	return ms3.Triangle{vecFrom3F32(t.Vertex1), vecFrom3F32(t.Vertex2), vecFrom3F32(t.Vertex3)}
}

func vecTo3F32(v ms3.Vec) [3]float32 { return [3]float32{v.X, v.Y, v.Z} }

func vecFrom3F32(f [3]float32) ms3.Vec { return ms3.Vec{X: f[0], Y: f[1], Z: f[2]} }
