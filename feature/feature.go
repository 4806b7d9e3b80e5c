// Package feature implements parametric modeling operations. A feature
// references sketches and bodies by id and produces a solid when
// executed against a geometry kernel; the history package replays
// ordered lists of features to rebuild a model.
package feature

import (
	"fmt"

	"github.com/google/uuid"

	cad "github.com/NOPLAB/urdf-editor-sub001"
	"github.com/NOPLAB/urdf-editor-sub001/kernel"
	"github.com/NOPLAB/urdf-editor-sub001/sketch"
)

// BooleanOp selects how a feature's result combines with an existing
// body.
type BooleanOp int

const (
	// OpNew creates a new independent body.
	OpNew BooleanOp = iota
	// OpJoin unions the result with the target body.
	OpJoin
	// OpCut subtracts the result from the target body.
	OpCut
	// OpIntersect keeps the overlap with the target body.
	OpIntersect
)

// String implements fmt.Stringer.
func (op BooleanOp) String() string {
	switch op {
	case OpNew:
		return "new"
	case OpJoin:
		return "join"
	case OpCut:
		return "cut"
	case OpIntersect:
		return "intersect"
	default:
		return fmt.Sprintf("BooleanOp(%d)", int(op))
	}
}

// kernelOp maps a feature-level operation to the kernel's boolean
// type. OpNew has no kernel counterpart.
func (op BooleanOp) kernelOp() (kernel.BooleanOp, bool) {
	switch op {
	case OpJoin:
		return kernel.BooleanUnion, true
	case OpCut:
		return kernel.BooleanSubtract, true
	case OpIntersect:
		return kernel.BooleanIntersect, true
	default:
		return 0, false
	}
}

// Direction selects which way an extrusion grows from its sketch
// plane.
type Direction int

const (
	// DirPositive extrudes along the plane normal.
	DirPositive Direction = iota
	// DirNegative extrudes against the plane normal.
	DirNegative
	// DirSymmetric extrudes half the distance both ways.
	DirSymmetric
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case DirPositive:
		return "positive"
	case DirNegative:
		return "negative"
	case DirSymmetric:
		return "symmetric"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Feature is a single parametric modeling step. The set of feature
// types is closed; each executes against a kernel given the model's
// sketches and the bodies produced by earlier features.
type Feature interface {
	// ID returns the feature's unique identifier.
	ID() uuid.UUID

	// Name returns the user-facing feature name.
	Name() string

	// TypeName returns a human-readable type tag.
	TypeName() string

	// Suppressed reports whether the feature is skipped during
	// rebuilds.
	Suppressed() bool

	// SetSuppressed toggles suppression.
	SetSuppressed(v bool)

	// Execute runs the feature and returns the resulting solid.
	// sketches and bodies are the model state visible to the feature;
	// Execute must not mutate either map.
	Execute(k kernel.Kernel, sketches map[uuid.UUID]*sketch.Sketch, bodies map[uuid.UUID]cad.Solid) (cad.Solid, error)

	sealedFeature()
}

type base struct {
	id         uuid.UUID
	name       string
	suppressed bool
}

func newBase(name string) base { return base{id: uuid.New(), name: name} }

func (b *base) ID() uuid.UUID        { return b.id }
func (b *base) Name() string         { return b.name }
func (b *base) Rename(name string)   { b.name = name }
func (b *base) Suppressed() bool     { return b.suppressed }
func (b *base) SetSuppressed(v bool) { b.suppressed = v }
func (b *base) sealedFeature()       {}

func (b *base) checkSuppressed() error {
	if b.suppressed {
		return fmt.Errorf("%w: %s is suppressed", ErrInvalidFeature, b.name)
	}
	return nil
}

// RestoreFeatureID sets the feature id. Only for use by persistence
// code reconstructing a saved model.
func RestoreFeatureID(f Feature, id uuid.UUID) {
	switch v := f.(type) {
	case *Extrude:
		v.id = id
	case *Revolve:
		v.id = id
	case *Boolean:
		v.id = id
	case *Fillet:
		v.id = id
	case *Chamfer:
		v.id = id
	case *Shell:
		v.id = id
	case *Sweep:
		v.id = id
	case *Loft:
		v.id = id
	}
}

// firstProfile returns the first closed profile of a sketch.
func firstProfile(sketches map[uuid.UUID]*sketch.Sketch, id uuid.UUID) (cad.Wire, cad.Plane, error) {
	sk, ok := sketches[id]
	if !ok {
		return cad.Wire{}, cad.Plane{}, fmt.Errorf("%w: %s", ErrSketchNotFound, id)
	}
	profiles := sk.Profiles(0)
	if len(profiles) == 0 {
		return cad.Wire{}, cad.Plane{}, fmt.Errorf("%w: sketch %q has no closed profiles", ErrInvalidFeature, sk.Name)
	}
	return profiles[0], sk.Plane, nil
}

// applyTarget combines a freshly built solid with the target body when
// the feature requests a boolean operation. A missing target id or an
// OpNew operation leaves the solid as is.
func applyTarget(k kernel.Kernel, solid cad.Solid, op BooleanOp, target uuid.UUID, bodies map[uuid.UUID]cad.Solid) (cad.Solid, error) {
	kop, ok := op.kernelOp()
	if !ok || target == uuid.Nil {
		return solid, nil
	}
	tgt, found := bodies[target]
	if !found {
		return solid, nil
	}
	return k.Boolean(tgt, solid, kop)
}
