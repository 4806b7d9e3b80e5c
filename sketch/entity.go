// Package sketch implements 2D parametric sketches: entities living on
// a reference plane, constraints between them, and a Newton-Raphson
// solver that adjusts free parameters until every constraint residual
// vanishes.
package sketch

import (
	"github.com/google/uuid"

	cad "github.com/NOPLAB/urdf-editor-sub001"
)

// Entity is one sketch element. The set is closed: Point, Line,
// Circle and Arc. Entities carry only the minimal free parameters
// needed to reconstruct their geometry; those parameters are the
// unknowns of the constraint system.
type Entity interface {
	// ID returns the entity's unique identifier within its sketch.
	ID() uuid.UUID

	// TypeName returns a human-readable type tag.
	TypeName() string

	// References returns ids of other entities this one depends on
	// (a line's endpoints, a circle's center).
	References() []uuid.UUID

	sealedEntity()
}

// Point is a free 2D point.
type Point struct {
	id  uuid.UUID
	Pos cad.Vec2
}

// NewPoint creates a point at the given position.
func NewPoint(pos cad.Vec2) *Point {
	return &Point{id: uuid.New(), Pos: pos}
}

func (p *Point) ID() uuid.UUID           { return p.id }
func (p *Point) TypeName() string        { return "Point" }
func (p *Point) References() []uuid.UUID { return nil }
func (p *Point) sealedEntity()           {}

// Line connects two point entities.
type Line struct {
	id    uuid.UUID
	Start uuid.UUID
	End   uuid.UUID
}

// NewLine creates a line between two existing points.
func NewLine(start, end uuid.UUID) *Line {
	return &Line{id: uuid.New(), Start: start, End: end}
}

func (l *Line) ID() uuid.UUID           { return l.id }
func (l *Line) TypeName() string        { return "Line" }
func (l *Line) References() []uuid.UUID { return []uuid.UUID{l.Start, l.End} }
func (l *Line) sealedEntity()           {}

// Circle is a full circle around a center point entity.
type Circle struct {
	id     uuid.UUID
	Center uuid.UUID
	Radius float64
}

// NewCircle creates a circle around an existing center point.
func NewCircle(center uuid.UUID, radius float64) *Circle {
	return &Circle{id: uuid.New(), Center: center, Radius: radius}
}

func (c *Circle) ID() uuid.UUID           { return c.id }
func (c *Circle) TypeName() string        { return "Circle" }
func (c *Circle) References() []uuid.UUID { return []uuid.UUID{c.Center} }
func (c *Circle) sealedEntity()           {}

// Arc is a circular arc around a center point entity, spanning from
// StartAngle to EndAngle counter-clockwise (radians).
type Arc struct {
	id         uuid.UUID
	Center     uuid.UUID
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

// NewArc creates an arc around an existing center point.
func NewArc(center uuid.UUID, radius, startAngle, endAngle float64) *Arc {
	return &Arc{id: uuid.New(), Center: center, Radius: radius, StartAngle: startAngle, EndAngle: endAngle}
}

func (a *Arc) ID() uuid.UUID           { return a.id }
func (a *Arc) TypeName() string        { return "Arc" }
func (a *Arc) References() []uuid.UUID { return []uuid.UUID{a.Center} }
func (a *Arc) sealedEntity()           {}

// RestoreEntityID sets the entity id. Only for use by persistence code
// reconstructing a saved sketch.
func RestoreEntityID(e Entity, id uuid.UUID) {
	switch v := e.(type) {
	case *Point:
		v.id = id
	case *Line:
		v.id = id
	case *Circle:
		v.id = id
	case *Arc:
		v.id = id
	}
}
