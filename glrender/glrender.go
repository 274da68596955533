package glrender

import (
	"io"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gielis"
)

// Renderer streams triangles into dst and returns the amount written.
// It returns io.EOF once all triangles have been read.
type Renderer interface {
	ReadTriangles(dst []ms3.Triangle, userData any) (n int, err error)
}

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.RenderAll implementation.
func RenderAll(r Renderer, userData any) ([]ms3.Triangle, error) {
	const startSize = 4096
	var err error
	var nt int
	result := make([]ms3.Triangle, 0, startSize)
	buf := make([]ms3.Triangle, startSize)
	for {
		nt, err = r.ReadTriangles(buf, userData)
		if err == nil || err == io.EOF {
			result = append(result, buf[:nt]...)
		}
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

// MeshRenderer resolves the indexed triangles of a [gielis.Mesh] into vertex triangles.
type MeshRenderer struct {
	mesh gielis.Mesh
	next int
}

// NewMeshRenderer returns a Renderer over the triangles of m.
func NewMeshRenderer(m gielis.Mesh) *MeshRenderer {
	return &MeshRenderer{mesh: m}
}

// Reset switches the underlying mesh and starts reading from its first triangle.
func (mr *MeshRenderer) Reset(m gielis.Mesh) {
	*mr = MeshRenderer{mesh: m}
}

// ReadTriangles implements [Renderer]. Triangles with out of range indices are
// a programming error and cause a panic.
func (mr *MeshRenderer) ReadTriangles(dst []ms3.Triangle, userData any) (n int, err error) {
	tris := mr.mesh.Triangles[mr.next:]
	verts := mr.mesh.Vertices
	n = min(len(dst), len(tris))
	for i, t := range tris[:n] {
		dst[i] = ms3.Triangle{verts[t[0]], verts[t[1]], verts[t[2]]}
	}
	mr.next += n
	if mr.next == len(mr.mesh.Triangles) {
		return n, io.EOF
	}
	return n, nil
}
