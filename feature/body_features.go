package feature

import (
	"fmt"

	"github.com/google/uuid"

	cad "github.com/NOPLAB/urdf-editor-sub001"
	"github.com/NOPLAB/urdf-editor-sub001/kernel"
	"github.com/NOPLAB/urdf-editor-sub001/sketch"
)

// Boolean combines two existing bodies.
type Boolean struct {
	base
	TargetBody uuid.UUID
	ToolBody   uuid.UUID
	Op         BooleanOp
}

// NewBoolean creates a boolean feature combining target and tool.
func NewBoolean(name string, target, tool uuid.UUID, op BooleanOp) *Boolean {
	return &Boolean{base: newBase(name), TargetBody: target, ToolBody: tool, Op: op}
}

func (f *Boolean) TypeName() string { return "Boolean" }

// Execute implements Feature.
func (f *Boolean) Execute(k kernel.Kernel, _ map[uuid.UUID]*sketch.Sketch, bodies map[uuid.UUID]cad.Solid) (cad.Solid, error) {
	if err := f.checkSuppressed(); err != nil {
		return cad.Solid{}, err
	}
	target, ok := bodies[f.TargetBody]
	if !ok {
		return cad.Solid{}, fmt.Errorf("%w: target %s", ErrBodyNotFound, f.TargetBody)
	}
	tool, ok := bodies[f.ToolBody]
	if !ok {
		return cad.Solid{}, fmt.Errorf("%w: tool %s", ErrBodyNotFound, f.ToolBody)
	}
	kop, ok := f.Op.kernelOp()
	if !ok {
		return cad.Solid{}, fmt.Errorf("%w: boolean feature cannot use op %v", ErrInvalidFeature, f.Op)
	}
	return k.Boolean(target, tool, kop)
}

// Fillet rounds the named edges of a body.
type Fillet struct {
	base
	BodyID uuid.UUID
	Radius float64
	Edges  []cad.EdgeID
}

// NewFillet creates a fillet feature.
func NewFillet(name string, bodyID uuid.UUID, edges []cad.EdgeID, radius float64) *Fillet {
	return &Fillet{base: newBase(name), BodyID: bodyID, Radius: radius, Edges: edges}
}

func (f *Fillet) TypeName() string { return "Fillet" }

// Execute implements Feature.
func (f *Fillet) Execute(k kernel.Kernel, _ map[uuid.UUID]*sketch.Sketch, bodies map[uuid.UUID]cad.Solid) (cad.Solid, error) {
	if err := f.checkSuppressed(); err != nil {
		return cad.Solid{}, err
	}
	body, ok := bodies[f.BodyID]
	if !ok {
		return cad.Solid{}, fmt.Errorf("%w: %s", ErrBodyNotFound, f.BodyID)
	}
	return k.Fillet(body, f.Edges, f.Radius)
}

// Chamfer bevels the named edges of a body.
type Chamfer struct {
	base
	BodyID   uuid.UUID
	Distance float64
	Edges    []cad.EdgeID
}

// NewChamfer creates a chamfer feature.
func NewChamfer(name string, bodyID uuid.UUID, edges []cad.EdgeID, distance float64) *Chamfer {
	return &Chamfer{base: newBase(name), BodyID: bodyID, Distance: distance, Edges: edges}
}

func (f *Chamfer) TypeName() string { return "Chamfer" }

// Execute implements Feature.
func (f *Chamfer) Execute(k kernel.Kernel, _ map[uuid.UUID]*sketch.Sketch, bodies map[uuid.UUID]cad.Solid) (cad.Solid, error) {
	if err := f.checkSuppressed(); err != nil {
		return cad.Solid{}, err
	}
	body, ok := bodies[f.BodyID]
	if !ok {
		return cad.Solid{}, fmt.Errorf("%w: %s", ErrBodyNotFound, f.BodyID)
	}
	return k.Chamfer(body, f.Edges, f.Distance)
}

// Shell hollows a body to a constant wall thickness, optionally
// opening the named faces.
type Shell struct {
	base
	BodyID      uuid.UUID
	Thickness   float64
	RemoveFaces []cad.FaceID
}

// NewShell creates a shell feature.
func NewShell(name string, bodyID uuid.UUID, thickness float64, removeFaces []cad.FaceID) *Shell {
	return &Shell{base: newBase(name), BodyID: bodyID, Thickness: thickness, RemoveFaces: removeFaces}
}

func (f *Shell) TypeName() string { return "Shell" }

// Execute implements Feature.
func (f *Shell) Execute(k kernel.Kernel, _ map[uuid.UUID]*sketch.Sketch, bodies map[uuid.UUID]cad.Solid) (cad.Solid, error) {
	if err := f.checkSuppressed(); err != nil {
		return cad.Solid{}, err
	}
	body, ok := bodies[f.BodyID]
	if !ok {
		return cad.Solid{}, fmt.Errorf("%w: %s", ErrBodyNotFound, f.BodyID)
	}
	return k.Shell(body, f.Thickness, f.RemoveFaces)
}
