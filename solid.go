package cad

import "github.com/google/uuid"

// Solid is an opaque handle to a B-Rep body owned by a geometry
// kernel. Callers never see the backend's internal geometry; they hold
// the id and the name of the kernel that owns it. A Solid must only be
// passed back to the kernel that created it.
type Solid struct {
	// ID identifies the body within its owning kernel's storage.
	ID uuid.UUID
	// Kernel is the name of the owning backend.
	Kernel string
}

// NewSolid creates a handle owned by the named kernel.
func NewSolid(id uuid.UUID, kernel string) Solid {
	return Solid{ID: id, Kernel: kernel}
}

// IsZero reports whether the handle refers to nothing.
func (s Solid) IsZero() bool {
	return s.ID == uuid.Nil
}

// OwnedBy reports whether the handle belongs to the named kernel.
func (s Solid) OwnedBy(kernel string) bool {
	return s.Kernel == kernel
}

// EdgeID identifies an edge within a solid.
type EdgeID struct {
	SolidID uuid.UUID
	Index   int
}

// FaceID identifies a face within a solid.
type FaceID struct {
	SolidID uuid.UUID
	Index   int
}

// EdgeInfo is the geometric summary of an edge, for selection UIs.
type EdgeInfo struct {
	ID       EdgeID
	Start    Vec3
	End      Vec3
	Midpoint Vec3
	Length   float64
}

// NewEdgeInfo derives midpoint and length from the endpoints.
func NewEdgeInfo(id EdgeID, start, end Vec3) EdgeInfo {
	return EdgeInfo{
		ID:       id,
		Start:    start,
		End:      end,
		Midpoint: start.Add(end).Mul(0.5),
		Length:   end.Sub(start).Length(),
	}
}

// FaceInfo is the geometric summary of a face, for selection UIs.
type FaceInfo struct {
	ID     FaceID
	Center Vec3
	Normal Vec3
	Area   float64
}

// NewFaceInfo normalizes the given normal.
func NewFaceInfo(id FaceID, center, normal Vec3, area float64) FaceInfo {
	return FaceInfo{ID: id, Center: center, Normal: normal.Normalize(), Area: area}
}
