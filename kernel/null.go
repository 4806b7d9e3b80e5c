package kernel

import (
	"fmt"

	cad "github.com/NOPLAB/urdf-editor-sub001"
)

// NullKernel is the backend used when no real kernel is available. It
// reports itself unavailable and fails every operation with
// [ErrNotAvailable].
type NullKernel struct{}

var _ Kernel = NullKernel{}

// Name returns "null".
func (NullKernel) Name() string { return KernelNull }

// IsAvailable always reports false.
func (NullKernel) IsAvailable() bool { return false }

func (NullKernel) err(op string) error {
	return fmt.Errorf("%w: no geometry kernel for %s", ErrNotAvailable, op)
}

func (k NullKernel) Extrude(cad.Wire, cad.Plane, cad.Vec3, float64) (cad.Solid, error) {
	return cad.Solid{}, k.err("extrude")
}

func (k NullKernel) Revolve(cad.Wire, cad.Plane, cad.Axis, float64) (cad.Solid, error) {
	return cad.Solid{}, k.err("revolve")
}

func (k NullKernel) Sweep(cad.Wire, cad.Plane, cad.Wire, cad.Plane) (cad.Solid, error) {
	return cad.Solid{}, k.err("sweep")
}

func (k NullKernel) Loft([]LoftProfile, bool, bool) (cad.Solid, error) {
	return cad.Solid{}, k.err("loft")
}

func (k NullKernel) Boolean(cad.Solid, cad.Solid, BooleanOp) (cad.Solid, error) {
	return cad.Solid{}, k.err("boolean")
}

func (k NullKernel) Fillet(cad.Solid, []cad.EdgeID, float64) (cad.Solid, error) {
	return cad.Solid{}, k.err("fillet")
}

func (k NullKernel) Chamfer(cad.Solid, []cad.EdgeID, float64) (cad.Solid, error) {
	return cad.Solid{}, k.err("chamfer")
}

func (k NullKernel) Shell(cad.Solid, float64, []cad.FaceID) (cad.Solid, error) {
	return cad.Solid{}, k.err("shell")
}

func (k NullKernel) CreateBox(cad.Vec3, cad.Vec3) (cad.Solid, error) {
	return cad.Solid{}, k.err("box")
}

func (k NullKernel) CreateCylinder(cad.Vec3, float64, float64, cad.Vec3) (cad.Solid, error) {
	return cad.Solid{}, k.err("cylinder")
}

func (k NullKernel) CreateSphere(cad.Vec3, float64) (cad.Solid, error) {
	return cad.Solid{}, k.err("sphere")
}

func (k NullKernel) Edges(cad.Solid) ([]cad.EdgeInfo, error) {
	return nil, k.err("edge query")
}

func (k NullKernel) Faces(cad.Solid) ([]cad.FaceInfo, error) {
	return nil, k.err("face query")
}

func (k NullKernel) Tessellate(cad.Solid, float64) (*cad.TriangleMesh, error) {
	return nil, k.err("tessellate")
}

func (k NullKernel) ImportSTEP(string, StepImportOptions) (*StepImportResult, error) {
	return nil, k.err("STEP import")
}

func (k NullKernel) ExportSTEP([]cad.Solid, string, StepExportOptions) error {
	return k.err("STEP export")
}
