package feature

import (
	"fmt"

	"github.com/google/uuid"

	cad "github.com/NOPLAB/urdf-editor-sub001"
	"github.com/NOPLAB/urdf-editor-sub001/kernel"
	"github.com/NOPLAB/urdf-editor-sub001/sketch"
)

// Extrude grows a sketch profile into a prism.
type Extrude struct {
	base
	SketchID  uuid.UUID
	Distance  float64
	Direction Direction

	// Op and TargetBody combine the result with an existing body.
	// OpNew (or a nil target) creates an independent body.
	Op         BooleanOp
	TargetBody uuid.UUID

	// DraftAngle is the taper in radians. Kernels without draft
	// support ignore it.
	DraftAngle float64
}

// NewExtrude creates an extrude feature producing a new body.
func NewExtrude(name string, sketchID uuid.UUID, distance float64, dir Direction) *Extrude {
	return &Extrude{base: newBase(name), SketchID: sketchID, Distance: distance, Direction: dir}
}

func (f *Extrude) TypeName() string { return "Extrude" }

// Execute implements Feature.
func (f *Extrude) Execute(k kernel.Kernel, sketches map[uuid.UUID]*sketch.Sketch, bodies map[uuid.UUID]cad.Solid) (cad.Solid, error) {
	if err := f.checkSuppressed(); err != nil {
		return cad.Solid{}, err
	}
	profile, plane, err := firstProfile(sketches, f.SketchID)
	if err != nil {
		return cad.Solid{}, err
	}

	dir, dist := plane.Normal, f.Distance
	switch f.Direction {
	case DirNegative:
		dir = dir.Neg()
	case DirSymmetric:
		dist = f.Distance / 2
	}

	solid, err := k.Extrude(profile, plane, dir, dist)
	if err != nil {
		return cad.Solid{}, err
	}
	if f.Direction == DirSymmetric {
		back, err := k.Extrude(profile, plane, dir.Neg(), dist)
		if err != nil {
			return cad.Solid{}, err
		}
		solid, err = k.Boolean(solid, back, kernel.BooleanUnion)
		if err != nil {
			return cad.Solid{}, err
		}
	}
	return applyTarget(k, solid, f.Op, f.TargetBody, bodies)
}

// Revolve spins a sketch profile around an axis.
type Revolve struct {
	base
	SketchID uuid.UUID
	Axis     cad.Axis

	// Angle is the sweep in radians; 2*pi gives a full revolution.
	Angle float64

	Op         BooleanOp
	TargetBody uuid.UUID
}

// NewRevolve creates a revolve feature producing a new body.
func NewRevolve(name string, sketchID uuid.UUID, axis cad.Axis, angle float64) *Revolve {
	return &Revolve{base: newBase(name), SketchID: sketchID, Axis: axis, Angle: angle}
}

func (f *Revolve) TypeName() string { return "Revolve" }

// Execute implements Feature.
func (f *Revolve) Execute(k kernel.Kernel, sketches map[uuid.UUID]*sketch.Sketch, bodies map[uuid.UUID]cad.Solid) (cad.Solid, error) {
	if err := f.checkSuppressed(); err != nil {
		return cad.Solid{}, err
	}
	profile, plane, err := firstProfile(sketches, f.SketchID)
	if err != nil {
		return cad.Solid{}, err
	}
	solid, err := k.Revolve(profile, plane, f.Axis, f.Angle)
	if err != nil {
		return cad.Solid{}, err
	}
	return applyTarget(k, solid, f.Op, f.TargetBody, bodies)
}

// Sweep drives a profile along a path drawn in a second sketch.
type Sweep struct {
	base
	ProfileSketchID uuid.UUID
	PathSketchID    uuid.UUID

	Op         BooleanOp
	TargetBody uuid.UUID
}

// NewSweep creates a sweep feature producing a new body.
func NewSweep(name string, profileSketchID, pathSketchID uuid.UUID) *Sweep {
	return &Sweep{base: newBase(name), ProfileSketchID: profileSketchID, PathSketchID: pathSketchID}
}

func (f *Sweep) TypeName() string { return "Sweep" }

// Execute implements Feature.
func (f *Sweep) Execute(k kernel.Kernel, sketches map[uuid.UUID]*sketch.Sketch, bodies map[uuid.UUID]cad.Solid) (cad.Solid, error) {
	if err := f.checkSuppressed(); err != nil {
		return cad.Solid{}, err
	}
	profile, profilePlane, err := firstProfile(sketches, f.ProfileSketchID)
	if err != nil {
		return cad.Solid{}, err
	}
	path, pathPlane, err := firstProfile(sketches, f.PathSketchID)
	if err != nil {
		return cad.Solid{}, err
	}
	solid, err := k.Sweep(profile, profilePlane, path, pathPlane)
	if err != nil {
		return cad.Solid{}, err
	}
	return applyTarget(k, solid, f.Op, f.TargetBody, bodies)
}

// Loft blends between profiles drawn in two or more sketches, in
// order.
type Loft struct {
	base
	SketchIDs []uuid.UUID

	// Solid closes the loft with end caps; false leaves an open
	// shell surface.
	Solid bool

	// Ruled connects profiles with straight sections instead of a
	// smooth blend.
	Ruled bool

	Op         BooleanOp
	TargetBody uuid.UUID
}

// NewLoft creates a loft feature over the given sketches.
func NewLoft(name string, sketchIDs []uuid.UUID, solid, ruled bool) *Loft {
	return &Loft{base: newBase(name), SketchIDs: sketchIDs, Solid: solid, Ruled: ruled}
}

func (f *Loft) TypeName() string { return "Loft" }

// Execute implements Feature.
func (f *Loft) Execute(k kernel.Kernel, sketches map[uuid.UUID]*sketch.Sketch, bodies map[uuid.UUID]cad.Solid) (cad.Solid, error) {
	if err := f.checkSuppressed(); err != nil {
		return cad.Solid{}, err
	}
	if len(f.SketchIDs) < 2 {
		return cad.Solid{}, fmt.Errorf("%w: loft needs at least 2 profiles, got %d", ErrInvalidFeature, len(f.SketchIDs))
	}
	profiles := make([]kernel.LoftProfile, 0, len(f.SketchIDs))
	for _, id := range f.SketchIDs {
		profile, plane, err := firstProfile(sketches, id)
		if err != nil {
			return cad.Solid{}, err
		}
		profiles = append(profiles, kernel.LoftProfile{Profile: profile, Plane: plane})
	}
	solid, err := k.Loft(profiles, f.Solid, f.Ruled)
	if err != nil {
		return cad.Solid{}, err
	}
	return applyTarget(k, solid, f.Op, f.TargetBody, bodies)
}
