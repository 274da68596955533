package gielis

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// SupershapeMesh generates a closed supershape surface from two superformula curves.
// lon is evaluated over the longitude theta in [-π, π) with resLon samples that wrap around,
// lat is evaluated over the latitude phi in [-π/2, π/2] with resLat+1 samples including both poles.
//
// The returned mesh has resLon*(resLat+1) vertices laid out latitude-major and
// 2*resLon*resLat triangles wound so that normals point away from the origin
// for sphere-like shapes. If resLon < 3 or resLat < 1 no triangles are generated.
func SupershapeMesh(lon, lat Params, resLon, resLat int) Mesh {
	resLon = max(resLon, 0)
	resLat = max(resLat, 0)
	var m Mesh
	m.Vertices = make([]ms3.Vec, 0, resLon*(resLat+1))
	r1s := make([]float32, resLon)
	for j := range r1s {
		r1s[j] = lon.Radius(longitude(j, resLon))
	}
	for i := 0; i <= resLat; i++ {
		phi := latitude(i, resLat)
		r2 := lat.Radius(phi)
		for j, r1 := range r1s {
			m.Vertices = append(m.Vertices, XYZ(r1, r2, longitude(j, resLon), phi))
		}
	}
	if resLon < 3 || resLat < 1 {
		return m
	}
	m.Triangles = make([][3]uint32, 0, 2*resLon*resLat)
	for i := 0; i < resLat; i++ {
		row := uint32(i * resLon)
		next := row + uint32(resLon)
		for j := 0; j < resLon; j++ {
			j0 := uint32(j)
			j1 := uint32((j + 1) % resLon)
			a, b, c, d := row+j0, row+j1, next+j1, next+j0
			m.Triangles = append(m.Triangles, [3]uint32{a, b, c}, [3]uint32{a, c, d})
		}
	}
	return m
}

func longitude(j, resLon int) float32 {
	return -math32.Pi + float32(j)/float32(resLon)*tau
}

func latitude(i, resLat int) float32 {
	if resLat == 0 {
		return 0
	}
	return -math32.Pi/2 + float32(i)/float32(resLat)*math32.Pi
}
