package sketch

import (
	"math"

	"github.com/google/uuid"
)

// Constraint is a typed relation over one or more entities. The set is
// closed and enumerable; each type contributes its own residual
// equations to the solver.
type Constraint interface {
	// ID returns the constraint's unique identifier.
	ID() uuid.UUID

	// TypeName returns a human-readable type tag.
	TypeName() string

	// References returns the ids of all entities this constraint
	// relates. Every referenced entity must exist in the same sketch.
	References() []uuid.UUID

	// EquationCount returns the number of scalar equations the
	// constraint contributes to the system. Fixed constraints
	// contribute zero: they pin parameters out of the unknown vector
	// instead.
	EquationCount() int

	// residuals appends the constraint's residual values for the
	// current evaluator state.
	residuals(ev *evaluator, dst []float64) []float64

	sealedConstraint()
}

// Dimensional is implemented by constraints that carry a user-editable
// target value (Distance, Angle, Radius, ...).
type Dimensional interface {
	Constraint
	Value() float64
	SetValue(v float64)
}

type baseConstraint struct {
	id uuid.UUID
}

func (b baseConstraint) ID() uuid.UUID     { return b.id }
func (baseConstraint) sealedConstraint() {}

// RestoreConstraintID sets the constraint id. Only for use by
// persistence code reconstructing a saved sketch.
func RestoreConstraintID(c Constraint, id uuid.UUID) {
	switch v := c.(type) {
	case *Coincident:
		v.id = id
	case *Horizontal:
		v.id = id
	case *Vertical:
		v.id = id
	case *Parallel:
		v.id = id
	case *Perpendicular:
		v.id = id
	case *Tangent:
		v.id = id
	case *EqualLength:
		v.id = id
	case *EqualRadius:
		v.id = id
	case *PointOnCurve:
		v.id = id
	case *Midpoint:
		v.id = id
	case *Symmetric:
		v.id = id
	case *Fixed:
		v.id = id
	case *Distance:
		v.id = id
	case *HorizontalDistance:
		v.id = id
	case *VerticalDistance:
		v.id = id
	case *Angle:
		v.id = id
	case *Radius:
		v.id = id
	case *Diameter:
		v.id = id
	case *Length:
		v.id = id
	}
}

// Coincident places two points at the same location.
type Coincident struct {
	baseConstraint
	P1, P2 uuid.UUID
}

// NewCoincident creates a coincident constraint between two points.
func NewCoincident(p1, p2 uuid.UUID) *Coincident {
	return &Coincident{baseConstraint{uuid.New()}, p1, p2}
}

func (c *Coincident) TypeName() string        { return "Coincident" }
func (c *Coincident) References() []uuid.UUID { return []uuid.UUID{c.P1, c.P2} }
func (c *Coincident) EquationCount() int      { return 2 }

func (c *Coincident) residuals(ev *evaluator, dst []float64) []float64 {
	p1, p2 := ev.pos(c.P1), ev.pos(c.P2)
	return append(dst, p1.X-p2.X, p1.Y-p2.Y)
}

// Horizontal keeps a line parallel to the sketch X axis.
type Horizontal struct {
	baseConstraint
	Line uuid.UUID
}

// NewHorizontal creates a horizontal constraint on a line.
func NewHorizontal(line uuid.UUID) *Horizontal {
	return &Horizontal{baseConstraint{uuid.New()}, line}
}

func (c *Horizontal) TypeName() string        { return "Horizontal" }
func (c *Horizontal) References() []uuid.UUID { return []uuid.UUID{c.Line} }
func (c *Horizontal) EquationCount() int      { return 1 }

func (c *Horizontal) residuals(ev *evaluator, dst []float64) []float64 {
	s, e, ok := ev.lineEndpoints(c.Line)
	if !ok {
		return dst
	}
	return append(dst, ev.pos(s).Y-ev.pos(e).Y)
}

// Vertical keeps a line parallel to the sketch Y axis.
type Vertical struct {
	baseConstraint
	Line uuid.UUID
}

// NewVertical creates a vertical constraint on a line.
func NewVertical(line uuid.UUID) *Vertical {
	return &Vertical{baseConstraint{uuid.New()}, line}
}

func (c *Vertical) TypeName() string        { return "Vertical" }
func (c *Vertical) References() []uuid.UUID { return []uuid.UUID{c.Line} }
func (c *Vertical) EquationCount() int      { return 1 }

func (c *Vertical) residuals(ev *evaluator, dst []float64) []float64 {
	s, e, ok := ev.lineEndpoints(c.Line)
	if !ok {
		return dst
	}
	return append(dst, ev.pos(s).X-ev.pos(e).X)
}

// Parallel keeps two lines parallel.
type Parallel struct {
	baseConstraint
	L1, L2 uuid.UUID
}

// NewParallel creates a parallel constraint between two lines.
func NewParallel(l1, l2 uuid.UUID) *Parallel {
	return &Parallel{baseConstraint{uuid.New()}, l1, l2}
}

func (c *Parallel) TypeName() string        { return "Parallel" }
func (c *Parallel) References() []uuid.UUID { return []uuid.UUID{c.L1, c.L2} }
func (c *Parallel) EquationCount() int      { return 1 }

func (c *Parallel) residuals(ev *evaluator, dst []float64) []float64 {
	d1, ok1 := ev.lineDir(c.L1)
	d2, ok2 := ev.lineDir(c.L2)
	if !ok1 || !ok2 {
		return dst
	}
	return append(dst, d1.Cross(d2))
}

// Perpendicular keeps two lines perpendicular.
type Perpendicular struct {
	baseConstraint
	L1, L2 uuid.UUID
}

// NewPerpendicular creates a perpendicular constraint between two lines.
func NewPerpendicular(l1, l2 uuid.UUID) *Perpendicular {
	return &Perpendicular{baseConstraint{uuid.New()}, l1, l2}
}

func (c *Perpendicular) TypeName() string        { return "Perpendicular" }
func (c *Perpendicular) References() []uuid.UUID { return []uuid.UUID{c.L1, c.L2} }
func (c *Perpendicular) EquationCount() int      { return 1 }

func (c *Perpendicular) residuals(ev *evaluator, dst []float64) []float64 {
	d1, ok1 := ev.lineDir(c.L1)
	d2, ok2 := ev.lineDir(c.L2)
	if !ok1 || !ok2 {
		return dst
	}
	return append(dst, d1.Dot(d2))
}

// Tangent keeps two curves tangent. Supported pairs: line-circle,
// line-arc and circle-circle (external tangency).
type Tangent struct {
	baseConstraint
	C1, C2 uuid.UUID
}

// NewTangent creates a tangency constraint between two curves.
func NewTangent(c1, c2 uuid.UUID) *Tangent {
	return &Tangent{baseConstraint{uuid.New()}, c1, c2}
}

func (c *Tangent) TypeName() string        { return "Tangent" }
func (c *Tangent) References() []uuid.UUID { return []uuid.UUID{c.C1, c.C2} }
func (c *Tangent) EquationCount() int      { return 1 }

func (c *Tangent) residuals(ev *evaluator, dst []float64) []float64 {
	if r := ev.lineCurveTangency(c.C1, c.C2); r != nil {
		return append(dst, *r)
	}
	// Circle-circle external tangency: center distance equals the sum
	// of radii.
	r1, ok1 := ev.curveRadius(c.C1)
	r2, ok2 := ev.curveRadius(c.C2)
	ctr1, okc1 := ev.curveCenter(c.C1)
	ctr2, okc2 := ev.curveCenter(c.C2)
	if !ok1 || !ok2 || !okc1 || !okc2 {
		return dst
	}
	dist := ev.pos(ctr2).Sub(ev.pos(ctr1)).Length()
	return append(dst, dist-(r1+r2))
}

// EqualLength keeps two lines at equal length.
type EqualLength struct {
	baseConstraint
	L1, L2 uuid.UUID
}

// NewEqualLength creates an equal-length constraint between two lines.
func NewEqualLength(l1, l2 uuid.UUID) *EqualLength {
	return &EqualLength{baseConstraint{uuid.New()}, l1, l2}
}

func (c *EqualLength) TypeName() string        { return "EqualLength" }
func (c *EqualLength) References() []uuid.UUID { return []uuid.UUID{c.L1, c.L2} }
func (c *EqualLength) EquationCount() int      { return 1 }

func (c *EqualLength) residuals(ev *evaluator, dst []float64) []float64 {
	d1, ok1 := ev.lineDir(c.L1)
	d2, ok2 := ev.lineDir(c.L2)
	if !ok1 || !ok2 {
		return dst
	}
	return append(dst, d1.Length()-d2.Length())
}

// EqualRadius keeps two circles or arcs at equal radius.
type EqualRadius struct {
	baseConstraint
	C1, C2 uuid.UUID
}

// NewEqualRadius creates an equal-radius constraint.
func NewEqualRadius(c1, c2 uuid.UUID) *EqualRadius {
	return &EqualRadius{baseConstraint{uuid.New()}, c1, c2}
}

func (c *EqualRadius) TypeName() string        { return "EqualRadius" }
func (c *EqualRadius) References() []uuid.UUID { return []uuid.UUID{c.C1, c.C2} }
func (c *EqualRadius) EquationCount() int      { return 1 }

func (c *EqualRadius) residuals(ev *evaluator, dst []float64) []float64 {
	r1, ok1 := ev.curveRadius(c.C1)
	r2, ok2 := ev.curveRadius(c.C2)
	if !ok1 || !ok2 {
		return dst
	}
	return append(dst, r1-r2)
}

// PointOnCurve keeps a point on a line (collinear) or on the rim of a
// circle or arc.
type PointOnCurve struct {
	baseConstraint
	Point uuid.UUID
	Curve uuid.UUID
}

// NewPointOnCurve creates a point-on-curve constraint.
func NewPointOnCurve(point, curve uuid.UUID) *PointOnCurve {
	return &PointOnCurve{baseConstraint{uuid.New()}, point, curve}
}

func (c *PointOnCurve) TypeName() string        { return "PointOnCurve" }
func (c *PointOnCurve) References() []uuid.UUID { return []uuid.UUID{c.Point, c.Curve} }
func (c *PointOnCurve) EquationCount() int      { return 1 }

func (c *PointOnCurve) residuals(ev *evaluator, dst []float64) []float64 {
	p := ev.pos(c.Point)
	if s, e, ok := ev.lineEndpoints(c.Curve); ok {
		sp, ep := ev.pos(s), ev.pos(e)
		return append(dst, p.Sub(sp).Cross(ep.Sub(sp)))
	}
	r, ok := ev.curveRadius(c.Curve)
	ctr, okc := ev.curveCenter(c.Curve)
	if !ok || !okc {
		return dst
	}
	return append(dst, p.Sub(ev.pos(ctr)).Length()-r)
}

// Midpoint keeps a point at the midpoint of a line.
type Midpoint struct {
	baseConstraint
	Point uuid.UUID
	Line  uuid.UUID
}

// NewMidpoint creates a midpoint constraint.
func NewMidpoint(point, line uuid.UUID) *Midpoint {
	return &Midpoint{baseConstraint{uuid.New()}, point, line}
}

func (c *Midpoint) TypeName() string        { return "Midpoint" }
func (c *Midpoint) References() []uuid.UUID { return []uuid.UUID{c.Point, c.Line} }
func (c *Midpoint) EquationCount() int      { return 2 }

func (c *Midpoint) residuals(ev *evaluator, dst []float64) []float64 {
	s, e, ok := ev.lineEndpoints(c.Line)
	if !ok {
		return dst
	}
	p := ev.pos(c.Point)
	mid := ev.pos(s).Add(ev.pos(e)).Mul(0.5)
	return append(dst, p.X-mid.X, p.Y-mid.Y)
}

// Symmetric keeps two points mirror-symmetric about an axis line.
type Symmetric struct {
	baseConstraint
	P1, P2 uuid.UUID
	Axis   uuid.UUID
}

// NewSymmetric creates a symmetry constraint about a line axis.
func NewSymmetric(p1, p2, axis uuid.UUID) *Symmetric {
	return &Symmetric{baseConstraint{uuid.New()}, p1, p2, axis}
}

func (c *Symmetric) TypeName() string        { return "Symmetric" }
func (c *Symmetric) References() []uuid.UUID { return []uuid.UUID{c.P1, c.P2, c.Axis} }
func (c *Symmetric) EquationCount() int      { return 2 }

func (c *Symmetric) residuals(ev *evaluator, dst []float64) []float64 {
	s, e, ok := ev.lineEndpoints(c.Axis)
	if !ok {
		return dst
	}
	as, ae := ev.pos(s), ev.pos(e)
	dir := ae.Sub(as)
	l := dir.Length()
	if l < 1e-9 {
		return dst
	}
	unit := dir.Mul(1 / l)

	p1, p2 := ev.pos(c.P1), ev.pos(c.P2)
	// The midpoint lies on the axis, and p1-p2 is perpendicular to it.
	mid := p1.Add(p2).Mul(0.5)
	return append(dst, mid.Sub(as).Cross(unit), p2.Sub(p1).Dot(unit))
}

// Fixed pins a point to a constant position. It contributes no
// residual equations; the solver removes the point's coordinates from
// the unknown vector instead, which is numerically sturdier than a
// penalty equation.
type Fixed struct {
	baseConstraint
	Point uuid.UUID
	X, Y  float64
}

// NewFixed creates a fixed constraint pinning a point at (x, y).
func NewFixed(point uuid.UUID, x, y float64) *Fixed {
	return &Fixed{baseConstraint{uuid.New()}, point, x, y}
}

func (c *Fixed) TypeName() string        { return "Fixed" }
func (c *Fixed) References() []uuid.UUID { return []uuid.UUID{c.Point} }
func (c *Fixed) EquationCount() int      { return 0 }

func (c *Fixed) residuals(_ *evaluator, dst []float64) []float64 { return dst }

// Distance holds two points at a target distance.
type Distance struct {
	baseConstraint
	P1, P2 uuid.UUID
	Target float64
}

// NewDistance creates a distance constraint between two points.
func NewDistance(p1, p2 uuid.UUID, target float64) *Distance {
	return &Distance{baseConstraint{uuid.New()}, p1, p2, target}
}

func (c *Distance) TypeName() string        { return "Distance" }
func (c *Distance) References() []uuid.UUID { return []uuid.UUID{c.P1, c.P2} }
func (c *Distance) EquationCount() int      { return 1 }
func (c *Distance) Value() float64          { return c.Target }
func (c *Distance) SetValue(v float64)      { c.Target = v }

func (c *Distance) residuals(ev *evaluator, dst []float64) []float64 {
	d := ev.pos(c.P2).Sub(ev.pos(c.P1)).Length()
	return append(dst, d-c.Target)
}

// HorizontalDistance holds the signed X offset between two points.
type HorizontalDistance struct {
	baseConstraint
	P1, P2 uuid.UUID
	Target float64
}

// NewHorizontalDistance creates a horizontal distance constraint.
func NewHorizontalDistance(p1, p2 uuid.UUID, target float64) *HorizontalDistance {
	return &HorizontalDistance{baseConstraint{uuid.New()}, p1, p2, target}
}

func (c *HorizontalDistance) TypeName() string        { return "HorizontalDistance" }
func (c *HorizontalDistance) References() []uuid.UUID { return []uuid.UUID{c.P1, c.P2} }
func (c *HorizontalDistance) EquationCount() int      { return 1 }
func (c *HorizontalDistance) Value() float64          { return c.Target }
func (c *HorizontalDistance) SetValue(v float64)      { c.Target = v }

func (c *HorizontalDistance) residuals(ev *evaluator, dst []float64) []float64 {
	return append(dst, (ev.pos(c.P2).X-ev.pos(c.P1).X)-c.Target)
}

// VerticalDistance holds the signed Y offset between two points.
type VerticalDistance struct {
	baseConstraint
	P1, P2 uuid.UUID
	Target float64
}

// NewVerticalDistance creates a vertical distance constraint.
func NewVerticalDistance(p1, p2 uuid.UUID, target float64) *VerticalDistance {
	return &VerticalDistance{baseConstraint{uuid.New()}, p1, p2, target}
}

func (c *VerticalDistance) TypeName() string        { return "VerticalDistance" }
func (c *VerticalDistance) References() []uuid.UUID { return []uuid.UUID{c.P1, c.P2} }
func (c *VerticalDistance) EquationCount() int      { return 1 }
func (c *VerticalDistance) Value() float64          { return c.Target }
func (c *VerticalDistance) SetValue(v float64)      { c.Target = v }

func (c *VerticalDistance) residuals(ev *evaluator, dst []float64) []float64 {
	return append(dst, (ev.pos(c.P2).Y-ev.pos(c.P1).Y)-c.Target)
}

// Angle holds the angle between two lines at a target value (radians).
type Angle struct {
	baseConstraint
	L1, L2 uuid.UUID
	Target float64
}

// NewAngle creates an angle constraint between two lines.
func NewAngle(l1, l2 uuid.UUID, target float64) *Angle {
	return &Angle{baseConstraint{uuid.New()}, l1, l2, target}
}

func (c *Angle) TypeName() string        { return "Angle" }
func (c *Angle) References() []uuid.UUID { return []uuid.UUID{c.L1, c.L2} }
func (c *Angle) EquationCount() int      { return 1 }
func (c *Angle) Value() float64          { return c.Target }
func (c *Angle) SetValue(v float64)      { c.Target = v }

func (c *Angle) residuals(ev *evaluator, dst []float64) []float64 {
	d1, ok1 := ev.lineDir(c.L1)
	d2, ok2 := ev.lineDir(c.L2)
	if !ok1 || !ok2 {
		return dst
	}
	a := math.Atan2(d1.Y, d1.X) - math.Atan2(d2.Y, d2.X)
	// Wrap into (-pi, pi] so the residual is continuous near the target.
	for a-c.Target > math.Pi {
		a -= 2 * math.Pi
	}
	for a-c.Target < -math.Pi {
		a += 2 * math.Pi
	}
	return append(dst, a-c.Target)
}

// Radius holds a circle or arc at a target radius.
type Radius struct {
	baseConstraint
	Circle uuid.UUID
	Target float64
}

// NewRadius creates a radius constraint on a circle or arc.
func NewRadius(circle uuid.UUID, target float64) *Radius {
	return &Radius{baseConstraint{uuid.New()}, circle, target}
}

func (c *Radius) TypeName() string        { return "Radius" }
func (c *Radius) References() []uuid.UUID { return []uuid.UUID{c.Circle} }
func (c *Radius) EquationCount() int      { return 1 }
func (c *Radius) Value() float64          { return c.Target }
func (c *Radius) SetValue(v float64)      { c.Target = v }

func (c *Radius) residuals(ev *evaluator, dst []float64) []float64 {
	r, ok := ev.curveRadius(c.Circle)
	if !ok {
		return dst
	}
	return append(dst, r-c.Target)
}

// Diameter holds a circle at a target diameter.
type Diameter struct {
	baseConstraint
	Circle uuid.UUID
	Target float64
}

// NewDiameter creates a diameter constraint on a circle.
func NewDiameter(circle uuid.UUID, target float64) *Diameter {
	return &Diameter{baseConstraint{uuid.New()}, circle, target}
}

func (c *Diameter) TypeName() string        { return "Diameter" }
func (c *Diameter) References() []uuid.UUID { return []uuid.UUID{c.Circle} }
func (c *Diameter) EquationCount() int      { return 1 }
func (c *Diameter) Value() float64          { return c.Target }
func (c *Diameter) SetValue(v float64)      { c.Target = v }

func (c *Diameter) residuals(ev *evaluator, dst []float64) []float64 {
	r, ok := ev.curveRadius(c.Circle)
	if !ok {
		return dst
	}
	return append(dst, 2*r-c.Target)
}

// Length holds a line at a target length.
type Length struct {
	baseConstraint
	Line   uuid.UUID
	Target float64
}

// NewLength creates a length constraint on a line.
func NewLength(line uuid.UUID, target float64) *Length {
	return &Length{baseConstraint{uuid.New()}, line, target}
}

func (c *Length) TypeName() string        { return "Length" }
func (c *Length) References() []uuid.UUID { return []uuid.UUID{c.Line} }
func (c *Length) EquationCount() int      { return 1 }
func (c *Length) Value() float64          { return c.Target }
func (c *Length) SetValue(v float64)      { c.Target = v }

func (c *Length) residuals(ev *evaluator, dst []float64) []float64 {
	d, ok := ev.lineDir(c.Line)
	if !ok {
		return dst
	}
	return append(dst, d.Length()-c.Target)
}

var (
	_ Dimensional = (*Distance)(nil)
	_ Dimensional = (*HorizontalDistance)(nil)
	_ Dimensional = (*VerticalDistance)(nil)
	_ Dimensional = (*Angle)(nil)
	_ Dimensional = (*Radius)(nil)
	_ Dimensional = (*Diameter)(nil)
	_ Dimensional = (*Length)(nil)
)
