// Package kernel defines the capability-based interface every geometry
// backend must implement, a registry for selecting among backends, and
// a pure-software polyhedral reference backend.
//
// The interface is intentionally capability-sparse: a backend may
// support only a subset of the operations and return
// [ErrOperationFailed] (or the more specific taxonomy errors) for the
// rest. Callers must treat every operation as fallible and must not
// assume feature parity across backends. A [cad.Solid] handle obtained
// from one backend must never be passed to a different backend
// instance.
package kernel

import (
	cad "github.com/NOPLAB/urdf-editor-sub001"
)

// BooleanOp selects the boolean operation performed by Kernel.Boolean.
type BooleanOp int

const (
	// BooleanUnion merges two bodies.
	BooleanUnion BooleanOp = iota
	// BooleanSubtract removes the second body from the first.
	BooleanSubtract
	// BooleanIntersect keeps only the overlap.
	BooleanIntersect
)

// String returns the operation name.
func (op BooleanOp) String() string {
	switch op {
	case BooleanUnion:
		return "union"
	case BooleanSubtract:
		return "subtract"
	case BooleanIntersect:
		return "intersect"
	default:
		return "unknown"
	}
}

// LoftProfile pairs a closed profile with its 3D placement.
type LoftProfile struct {
	Profile cad.Wire
	Plane   cad.Plane
}

// StepImportOptions controls STEP file import.
type StepImportOptions struct {
	// Tolerance is the tessellation tolerance used when converting
	// imported shapes to meshes. Zero selects the backend default.
	Tolerance float64
	// AsSolids imports bodies as kernel-owned solids rather than
	// tessellating them immediately.
	AsSolids bool
}

// StepExportOptions controls STEP file export headers.
type StepExportOptions struct {
	Author       string
	Organization string
}

// StepImportResult holds the bodies read from a STEP file.
type StepImportResult struct {
	// Solids is populated when AsSolids was requested.
	Solids []cad.Solid
	// Meshes is populated when bodies were tessellated on import.
	Meshes []*cad.TriangleMesh
	// Names holds per-body names extracted from STEP entities; an
	// empty string means the entity carried no name.
	Names []string
}

// Kernel is the contract every geometry backend implements.
//
// Implementations own the solids they create; callers hold only opaque
// handles. A backend must serialize access to its private storage if
// it is shared across goroutines, but the interface itself makes no
// concurrency guarantee.
type Kernel interface {
	// Name returns the backend identifier (e.g. "mesh", "occt").
	Name() string

	// IsAvailable reports whether the backend can actually run. A
	// backend may be compiled in but missing an optional native
	// dependency at runtime.
	IsAvailable() bool

	// Extrude sweeps a closed profile linearly. The profile lives on
	// plane; direction is a world-space unit vector and distance the
	// sweep length.
	Extrude(profile cad.Wire, plane cad.Plane, direction cad.Vec3, distance float64) (cad.Solid, error)

	// Revolve sweeps a closed profile around axis by angle radians.
	Revolve(profile cad.Wire, plane cad.Plane, axis cad.Axis, angle float64) (cad.Solid, error)

	// Sweep extrudes a profile along a path wire.
	Sweep(profile cad.Wire, profilePlane cad.Plane, path cad.Wire, pathPlane cad.Plane) (cad.Solid, error)

	// Loft skins a surface through the ordered profiles. With solid
	// set the ends are capped; ruled requests straight-line
	// interpolation between sections.
	Loft(profiles []LoftProfile, solid, ruled bool) (cad.Solid, error)

	// Boolean combines two bodies owned by this kernel.
	Boolean(a, b cad.Solid, op BooleanOp) (cad.Solid, error)

	// Fillet rounds the given edges with radius.
	Fillet(solid cad.Solid, edges []cad.EdgeID, radius float64) (cad.Solid, error)

	// Chamfer bevels the given edges with distance.
	Chamfer(solid cad.Solid, edges []cad.EdgeID, distance float64) (cad.Solid, error)

	// Shell hollows the solid to the given wall thickness, removing
	// the listed faces to create openings.
	Shell(solid cad.Solid, thickness float64, remove []cad.FaceID) (cad.Solid, error)

	// CreateBox creates an axis-aligned box primitive.
	CreateBox(center, size cad.Vec3) (cad.Solid, error)

	// CreateCylinder creates a cylinder primitive along axis.
	CreateCylinder(center cad.Vec3, radius, height float64, axis cad.Vec3) (cad.Solid, error)

	// CreateSphere creates a sphere primitive.
	CreateSphere(center cad.Vec3, radius float64) (cad.Solid, error)

	// Edges enumerates the solid's edges with geometric summaries.
	Edges(solid cad.Solid) ([]cad.EdgeInfo, error)

	// Faces enumerates the solid's faces with geometric summaries.
	Faces(solid cad.Solid) ([]cad.FaceInfo, error)

	// Tessellate converts a solid to a triangle mesh for display or
	// export. Lower tolerance means more triangles; backends that are
	// already polyhedral may ignore it.
	Tessellate(solid cad.Solid, tolerance float64) (*cad.TriangleMesh, error)

	// ImportSTEP reads bodies from a STEP file.
	ImportSTEP(path string, opts StepImportOptions) (*StepImportResult, error)

	// ExportSTEP writes one or more solids to a STEP file.
	ExportSTEP(solids []cad.Solid, path string, opts StepExportOptions) error
}
