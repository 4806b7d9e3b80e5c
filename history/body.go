package history

import (
	"github.com/google/uuid"

	cad "github.com/NOPLAB/urdf-editor-sub001"
	"github.com/NOPLAB/urdf-editor-sub001/kernel"
)

// Body is a solid produced by a feature, together with a cached
// tessellation for display.
type Body struct {
	ID   uuid.UUID
	Name string

	// Solid is the kernel handle for the body's geometry.
	Solid cad.Solid

	// SourceFeature is the feature that created the body.
	SourceFeature uuid.UUID

	mesh *cad.TriangleMesh
}

// Mesh returns the body's tessellation, computing and caching it on
// first use. The cache lives until InvalidateMesh is called.
func (b *Body) Mesh(k kernel.Kernel, tolerance float64) (*cad.TriangleMesh, error) {
	if b.mesh != nil {
		return b.mesh, nil
	}
	m, err := k.Tessellate(b.Solid, tolerance)
	if err != nil {
		return nil, err
	}
	b.mesh = m
	return m, nil
}

// InvalidateMesh drops the cached tessellation.
func (b *Body) InvalidateMesh() { b.mesh = nil }

// HasMesh reports whether a tessellation is cached.
func (b *Body) HasMesh() bool { return b.mesh != nil }
