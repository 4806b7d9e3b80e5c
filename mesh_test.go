package cad

import "testing"

func TestAddTriangleNormal(t *testing.T) {
	var m TriangleMesh
	m.AddTriangle(V3(0, 0, 0), V3(1, 0, 0), V3(0, 1, 0))

	if m.TriangleCount() != 1 {
		t.Fatalf("TriangleCount = %d, want 1", m.TriangleCount())
	}
	for _, n := range m.Normals {
		if !n.Approx(Vec3Z(), 1e-12) {
			t.Fatalf("normal = %v, want +Z for counter-clockwise winding", n)
		}
	}
}

func TestAddQuad(t *testing.T) {
	var m TriangleMesh
	m.AddQuad(V3(0, 0, 0), V3(1, 0, 0), V3(1, 1, 0), V3(0, 1, 0))
	if m.TriangleCount() != 2 {
		t.Fatalf("TriangleCount = %d, want 2", m.TriangleCount())
	}
}

func TestBounds(t *testing.T) {
	var m TriangleMesh
	if min, max := m.Bounds(); min != (Vec3{}) || max != (Vec3{}) {
		t.Fatalf("empty bounds = %v %v", min, max)
	}

	m.AddTriangle(V3(-1, 2, 0), V3(3, -4, 5), V3(0, 0, -2))
	min, max := m.Bounds()
	if !min.Approx(V3(-1, -4, -2), 1e-12) || !max.Approx(V3(3, 2, 5), 1e-12) {
		t.Fatalf("bounds = %v %v", min, max)
	}
}

func TestCloneIndependence(t *testing.T) {
	var m TriangleMesh
	m.AddTriangle(V3(0, 0, 0), V3(1, 0, 0), V3(0, 1, 0))
	c := m.Clone()
	c.Vertices[0] = V3(9, 9, 9)
	if m.Vertices[0] == c.Vertices[0] {
		t.Fatal("Clone shares vertex storage")
	}
}

func TestAppendRebasesIndices(t *testing.T) {
	var a, b TriangleMesh
	a.AddTriangle(V3(0, 0, 0), V3(1, 0, 0), V3(0, 1, 0))
	b.AddTriangle(V3(0, 0, 1), V3(1, 0, 1), V3(0, 1, 1))

	a.Append(&b)
	if a.TriangleCount() != 2 {
		t.Fatalf("TriangleCount = %d, want 2", a.TriangleCount())
	}
	for _, i := range a.Indices[3:] {
		if i < 3 || i > 5 {
			t.Fatalf("appended index %d references wrong vertex range", i)
		}
	}
	if a.IsEmpty() {
		t.Fatal("IsEmpty after append")
	}
}
