package gielisaux

import "github.com/soypat/gielis"

// Leaf is a superformula curve together with the perimeter resolution of its fan mesh.
type Leaf struct {
	gielis.Params
	Resolution int `toml:"resolution"`
}

// Mesh generates the fan mesh of the leaf.
func (l Leaf) Mesh() gielis.Mesh {
	return gielis.FanMesh(l.Params, l.Resolution)
}

// Regenerator rebuilds a leaf mesh only when its inputs change. It is meant for
// interactive programs that poll the current parameters every frame.
// The zero value is ready to use and generates a mesh on the first Update.
type Regenerator struct {
	last  Leaf
	mesh  gielis.Mesh
	valid bool
	count int
}

// Update returns the mesh for leaf and reports whether it was regenerated.
// Parameters containing NaN never compare equal and always regenerate.
func (r *Regenerator) Update(leaf Leaf) (gielis.Mesh, bool) {
	if r.valid && leaf == r.last {
		return r.mesh, false
	}
	r.mesh = leaf.Mesh()
	r.last = leaf
	r.valid = true
	r.count++
	return r.mesh, true
}

// Mesh returns the last generated mesh. It is empty before the first Update.
func (r *Regenerator) Mesh() gielis.Mesh { return r.mesh }

// Generations returns how many times a mesh was generated.
func (r *Regenerator) Generations() int { return r.count }

// Invalidate forces the next Update to regenerate the mesh.
func (r *Regenerator) Invalidate() { r.valid = false }
