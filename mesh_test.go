package gielis_test

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gielis"
)

var approx = cmpopts.EquateApprox(0, 1e-6)

func TestFanMeshCounts(t *testing.T) {
	p := gielis.Params{A: 1, B: 0.8, M: 6, N1: 0.5, N2: 1.7, N3: 1.7}
	for res := 1; res <= 200; res++ {
		m := gielis.FanMesh(p, res)
		if len(m.Vertices) != res+1 {
			t.Fatalf("res=%d: want %d vertices, got %d", res, res+1, len(m.Vertices))
		}
		if len(m.Triangles) != res {
			t.Fatalf("res=%d: want %d triangles, got %d", res, res, len(m.Triangles))
		}
		for i, tri := range m.Triangles {
			for _, idx := range tri {
				if int(idx) >= len(m.Vertices) {
					t.Fatalf("res=%d: triangle %d index %d out of bounds", res, i, idx)
				}
			}
		}
		if m.Vertices[0] != (ms3.Vec{}) {
			t.Fatalf("res=%d: first vertex should be the origin, got %v", res, m.Vertices[0])
		}
	}
}

func TestFanMeshEmpty(t *testing.T) {
	for _, res := range []int{0, -1, -100} {
		m := gielis.FanMesh(gielis.DefaultParams(), res)
		want := gielis.Mesh{Vertices: []ms3.Vec{{}}, Triangles: [][3]uint32{}}
		if diff := cmp.Diff(want, m); diff != "" {
			t.Errorf("res=%d: mesh mismatch (-want +got):\n%s", res, diff)
		}
	}
}

func TestFanMeshSquare(t *testing.T) {
	m := gielis.FanMesh(gielis.NewCircle(1), 4)
	want := gielis.Mesh{
		Vertices: []ms3.Vec{
			{},
			{X: 1},
			{Y: 1},
			{X: -1},
			{Y: -1},
		},
		Triangles: [][3]uint32{
			{0, 1, 2},
			{0, 2, 3},
			{0, 3, 4},
			{1, 0, 4},
		},
	}
	if diff := cmp.Diff(want, m, approx); diff != "" {
		t.Errorf("mesh mismatch (-want +got):\n%s", diff)
	}
}

func TestFanMeshWinding(t *testing.T) {
	for _, res := range []int{3, 4, 17, 64} {
		m := gielis.FanMesh(gielis.NewCircle(2), res)
		for i, tri := range m.Triangles {
			a, b, c := m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
			n := ms3.Cross(ms3.Sub(b, a), ms3.Sub(c, a))
			if n.Z <= 0 {
				t.Errorf("res=%d: triangle %d %v has inconsistent winding, normal %v", res, i, tri, n)
			}
		}
	}
}

func TestFanMeshZeroN1(t *testing.T) {
	const res = 16
	p := gielis.Params{A: 2, B: 2, M: 4, N1: 0, N2: 1, N3: 1}
	m := gielis.FanMesh(p, res)
	if len(m.Vertices) != res+1 || len(m.Triangles) != res {
		t.Fatalf("want %d vertices and %d triangles, got %d and %d", res+1, res, len(m.Vertices), len(m.Triangles))
	}
	for i, v := range m.Vertices[1:] {
		if finite(v.X) && finite(v.Y) {
			t.Errorf("perimeter vertex %d should be non-finite, got %v", i+1, v)
		}
	}
	bb := m.Bounds()
	if bb != (ms3.Box{}) {
		t.Errorf("bounds should only contain the origin, got %v", bb)
	}
}

func TestFanMeshIndependent(t *testing.T) {
	p := gielis.DefaultParams()
	m1 := gielis.FanMesh(p, 32)
	m2 := gielis.FanMesh(p, 32)
	if diff := cmp.Diff(m1, m2); diff != "" {
		t.Fatalf("regenerated meshes differ:\n%s", diff)
	}
	m1.Vertices[1].X = 1000
	m1.Triangles[0][0] = 7
	if m2.Vertices[1].X == 1000 || m2.Triangles[0][0] == 7 {
		t.Error("meshes share memory")
	}
}

func TestOutlineMatchesFanMesh(t *testing.T) {
	p := gielis.Params{A: 1, B: 1, M: 5, N1: 0.3, N2: 0.3, N3: 0.3}
	const res = 50
	outline := gielis.Outline(p, res)
	m := gielis.FanMesh(p, res)
	var got []ms2.Vec
	for _, v := range m.Vertices[1:] {
		got = append(got, ms2.Vec{X: v.X, Y: v.Y})
	}
	if diff := cmp.Diff(outline, got); diff != "" {
		t.Errorf("outline mismatch (-outline +mesh):\n%s", diff)
	}
}

func TestMeshIndicesAndTriangles(t *testing.T) {
	m := gielis.FanMesh(gielis.NewCircle(1), 4)
	want := []uint32{0, 1, 2, 0, 2, 3, 0, 3, 4, 1, 0, 4}
	if diff := cmp.Diff(want, m.Indices()); diff != "" {
		t.Errorf("indices mismatch (-want +got):\n%s", diff)
	}
	tris := m.AppendTriangles(nil)
	if len(tris) != 4 {
		t.Fatalf("want 4 triangles, got %d", len(tris))
	}
	if tris[3][0] != m.Vertices[1] || tris[3][1] != m.Vertices[0] || tris[3][2] != m.Vertices[4] {
		t.Errorf("closing triangle resolved incorrectly: %v", tris[3])
	}
}

func TestMeshNormals(t *testing.T) {
	m := gielis.FanMesh(gielis.NewCircle(1), 12)
	normals := m.Normals()
	if len(normals) != len(m.Vertices) {
		t.Fatalf("want %d normals, got %d", len(m.Vertices), len(normals))
	}
	for i, n := range normals {
		if diff := cmp.Diff(ms3.Vec{Z: 1}, n, approx); diff != "" {
			t.Errorf("normal %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestMeshBounds(t *testing.T) {
	m := gielis.FanMesh(gielis.NewCircle(1), 4)
	want := ms3.Box{Min: ms3.Vec{X: -1, Y: -1}, Max: ms3.Vec{X: 1, Y: 1}}
	if diff := cmp.Diff(want, m.Bounds(), approx); diff != "" {
		t.Errorf("bounds mismatch (-want +got):\n%s", diff)
	}
}

func TestSupershapeSphere(t *testing.T) {
	const resLon, resLat = 24, 12
	circle := gielis.NewCircle(1)
	m := gielis.SupershapeMesh(circle, circle, resLon, resLat)
	if len(m.Vertices) != resLon*(resLat+1) {
		t.Fatalf("want %d vertices, got %d", resLon*(resLat+1), len(m.Vertices))
	}
	if len(m.Triangles) != 2*resLon*resLat {
		t.Fatalf("want %d triangles, got %d", 2*resLon*resLat, len(m.Triangles))
	}
	for i, v := range m.Vertices {
		if r := ms3.Norm(v); math32.Abs(r-1) > 1e-5 {
			t.Fatalf("vertex %d not on unit sphere: %v (|v|=%g)", i, v, r)
		}
	}
	for i, tri := range m.Triangles {
		a, b, c := m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
		n := ms3.Cross(ms3.Sub(b, a), ms3.Sub(c, a))
		centroid := ms3.Scale(1./3, ms3.Add(a, ms3.Add(b, c)))
		if ms3.Dot(n, centroid) < -1e-6 {
			t.Fatalf("triangle %d %v points inwards", i, tri)
		}
	}
}

func TestSupershapeDegenerate(t *testing.T) {
	p := gielis.DefaultParams()
	for _, test := range []struct {
		resLon, resLat int
		wantVerts      int
	}{
		{resLon: 2, resLat: 8, wantVerts: 18},
		{resLon: 8, resLat: 0, wantVerts: 8},
		{resLon: 0, resLat: 0, wantVerts: 0},
		{resLon: -3, resLat: 5, wantVerts: 0},
	} {
		m := gielis.SupershapeMesh(p, p, test.resLon, test.resLat)
		if len(m.Triangles) != 0 {
			t.Errorf("lon=%d lat=%d: want no triangles, got %d", test.resLon, test.resLat, len(m.Triangles))
		}
		if len(m.Vertices) != test.wantVerts {
			t.Errorf("lon=%d lat=%d: want %d vertices, got %d", test.resLon, test.resLat, test.wantVerts, len(m.Vertices))
		}
	}
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
