package gielis

import (
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// Mesh is an indexed triangle mesh. Each element of Triangles holds three
// indices into Vertices with consistent winding order.
type Mesh struct {
	Vertices  []ms3.Vec
	Triangles [][3]uint32
}

// FanMesh samples the superformula at resolution evenly spaced angles in [0, 2π)
// and fan-triangulates the resulting polygon around the origin on the z=0 plane.
//
// Vertex 0 is the origin, vertices 1..resolution are the perimeter samples in
// increasing angle order. The returned mesh has resolution+1 vertices and resolution
// triangles. A resolution of 0 (or negative) returns only the origin and no triangles.
// A resolution of 1 or 2 returns a degenerate but in-bounds triangle set.
// Non-finite radii are propagated to the vertex coordinates.
func FanMesh(p Params, resolution int) Mesh {
	resolution = max(resolution, 0)
	m := Mesh{
		Vertices:  make([]ms3.Vec, 1, resolution+1),
		Triangles: make([][3]uint32, 0, resolution),
	}
	res := float32(resolution)
	for i := 0; i < resolution; i++ {
		phi := float32(i) / res * tau
		v := XY(p.Radius(phi), phi)
		m.Vertices = append(m.Vertices, ms3.Vec{X: v.X, Y: v.Y})
	}
	for i := 1; i < resolution; i++ {
		m.Triangles = append(m.Triangles, [3]uint32{0, uint32(i), uint32(i + 1)})
	}
	if resolution > 0 {
		// Close the fan joining the last perimeter vertex with the first.
		m.Triangles = append(m.Triangles, [3]uint32{1, 0, uint32(resolution)})
	}
	return m
}

// Outline returns resolution perimeter points of the superformula curve in increasing angle order.
func Outline(p Params, resolution int) []ms2.Vec {
	return AppendOutline(nil, p, resolution)
}

// AppendOutline appends resolution perimeter points of the curve to dst and returns the result.
func AppendOutline(dst []ms2.Vec, p Params, resolution int) []ms2.Vec {
	res := float32(resolution)
	for i := 0; i < resolution; i++ {
		phi := float32(i) / res * tau
		dst = append(dst, XY(p.Radius(phi), phi))
	}
	return dst
}

// Indices returns the flattened triangle index buffer, three indices per triangle.
func (m Mesh) Indices() []uint32 {
	indices := make([]uint32, 0, 3*len(m.Triangles))
	for _, t := range m.Triangles {
		indices = append(indices, t[0], t[1], t[2])
	}
	return indices
}

// AppendTriangles resolves the mesh indices to vertex positions and appends them to dst.
// It panics if an index is out of range of Vertices.
func (m Mesh) AppendTriangles(dst []ms3.Triangle) []ms3.Triangle {
	for _, t := range m.Triangles {
		dst = append(dst, ms3.Triangle{m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]})
	}
	return dst
}

// Normals calculates per-vertex normals by accumulating the area weighted face normals
// of every triangle sharing the vertex. Vertices with no usable adjacent face
// get the zero vector.
func (m Mesh) Normals() []ms3.Vec {
	normals := make([]ms3.Vec, len(m.Vertices))
	for _, t := range m.Triangles {
		a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
		n := ms3.Cross(ms3.Sub(b, a), ms3.Sub(c, a))
		if !finite3(n) {
			continue
		}
		normals[t[0]] = ms3.Add(normals[t[0]], n)
		normals[t[1]] = ms3.Add(normals[t[1]], n)
		normals[t[2]] = ms3.Add(normals[t[2]], n)
	}
	for i, n := range normals {
		norm := ms3.Norm(n)
		if norm == 0 {
			continue
		}
		normals[i] = ms3.Scale(1/norm, n)
	}
	return normals
}

// Bounds returns the bounding box of all finite vertices. Returns the zero box
// if the mesh has no finite vertex.
func (m Mesh) Bounds() ms3.Box {
	var bb ms3.Box
	first := true
	for _, v := range m.Vertices {
		if !finite3(v) {
			continue
		}
		if first {
			bb = ms3.Box{Min: v, Max: v}
			first = false
			continue
		}
		bb.Min = ms3.MinElem(bb.Min, v)
		bb.Max = ms3.MaxElem(bb.Max, v)
	}
	return bb
}

func finite3(v ms3.Vec) bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func finite2(v ms2.Vec) bool {
	return isFinite(v.X) && isFinite(v.Y)
}

// BoundsOutline returns the bounding box of the finite points of an outline and
// the amount of finite points found.
func BoundsOutline(outline []ms2.Vec) (bb ms2.Box, nfinite int) {
	for _, v := range outline {
		if !finite2(v) {
			continue
		}
		if nfinite == 0 {
			bb = ms2.Box{Min: v, Max: v}
		} else {
			bb.Min = ms2.MinElem(bb.Min, v)
			bb.Max = ms2.MaxElem(bb.Max, v)
		}
		nfinite++
	}
	return bb, nfinite
}
