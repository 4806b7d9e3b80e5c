package cad

// TriangleMesh is a tessellated solid: flat vertex positions, matching
// per-vertex normals, and a triangle index list. It is the only form
// in which geometry crosses to the rendering and export collaborators.
type TriangleMesh struct {
	Vertices []Vec3
	Normals  []Vec3
	Indices  []uint32
}

// IsEmpty reports whether the mesh has no geometry.
func (m *TriangleMesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// TriangleCount returns the number of triangles.
func (m *TriangleMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Clone returns a deep copy. Collaborators receive copies so that the
// kernel-owned mesh is never aliased.
func (m *TriangleMesh) Clone() *TriangleMesh {
	c := &TriangleMesh{
		Vertices: make([]Vec3, len(m.Vertices)),
		Normals:  make([]Vec3, len(m.Normals)),
		Indices:  make([]uint32, len(m.Indices)),
	}
	copy(c.Vertices, m.Vertices)
	copy(c.Normals, m.Normals)
	copy(c.Indices, m.Indices)
	return c
}

// Bounds returns the axis-aligned bounding box of the mesh.
// Returns zero vectors for an empty mesh.
func (m *TriangleMesh) Bounds() (min, max Vec3) {
	if len(m.Vertices) == 0 {
		return Vec3{}, Vec3{}
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		if v.X < min.X {
			min.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.Z < min.Z {
			min.Z = v.Z
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
		if v.Z > max.Z {
			max.Z = v.Z
		}
	}
	return min, max
}

// AddTriangle appends a triangle with a flat normal computed from its
// winding. Vertices are not deduplicated.
func (m *TriangleMesh) AddTriangle(a, b, c Vec3) {
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, a, b, c)
	m.Normals = append(m.Normals, n, n, n)
	m.Indices = append(m.Indices, base, base+1, base+2)
}

// AddQuad appends two triangles spanning the quad a-b-c-d.
func (m *TriangleMesh) AddQuad(a, b, c, d Vec3) {
	m.AddTriangle(a, b, c)
	m.AddTriangle(a, c, d)
}

// Append merges another mesh into this one.
func (m *TriangleMesh) Append(o *TriangleMesh) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, o.Vertices...)
	m.Normals = append(m.Normals, o.Normals...)
	for _, i := range o.Indices {
		m.Indices = append(m.Indices, base+i)
	}
}
