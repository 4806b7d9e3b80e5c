package sketch

import (
	"fmt"

	"github.com/google/uuid"

	cad "github.com/NOPLAB/urdf-editor-sub001"
)

// Sketch is a 2D drawing on a plane: a set of geometric entities plus
// the constraints relating them. Entities and constraints keep their
// insertion order, which makes solves and profile extraction
// deterministic across runs.
type Sketch struct {
	id   uuid.UUID
	Name string

	// Plane positions the sketch in 3D. Entity coordinates are
	// expressed in the plane's local XY frame.
	Plane cad.Plane

	entities    []Entity
	constraints []Constraint
	byID        map[uuid.UUID]Entity

	// lastResult caches the outcome of the most recent Solve.
	lastResult *SolveResult
}

// New creates an empty sketch on the given plane.
func New(name string, plane cad.Plane) *Sketch {
	return &Sketch{
		id:    uuid.New(),
		Name:  name,
		Plane: plane,
		byID:  make(map[uuid.UUID]Entity),
	}
}

// ID returns the sketch's unique identifier.
func (s *Sketch) ID() uuid.UUID { return s.id }

// RestoreID sets the sketch id. Only for use by persistence code.
func (s *Sketch) RestoreID(id uuid.UUID) { s.id = id }

// AddPoint adds a free point at (x, y) and returns it.
func (s *Sketch) AddPoint(x, y float64) *Point {
	p := NewPoint(cad.V2(x, y))
	s.addEntity(p)
	return p
}

// AddLine adds a line between two existing points.
func (s *Sketch) AddLine(start, end uuid.UUID) (*Line, error) {
	if err := s.requireEntities(start, end); err != nil {
		return nil, err
	}
	l := NewLine(start, end)
	s.addEntity(l)
	return l, nil
}

// AddCircle adds a circle centered on an existing point.
func (s *Sketch) AddCircle(center uuid.UUID, radius float64) (*Circle, error) {
	if err := s.requireEntities(center); err != nil {
		return nil, err
	}
	c := NewCircle(center, radius)
	s.addEntity(c)
	return c, nil
}

// AddArc adds a circular arc centered on an existing point. Angles are
// in radians, counterclockwise from the sketch X axis.
func (s *Sketch) AddArc(center uuid.UUID, radius, startAngle, endAngle float64) (*Arc, error) {
	if err := s.requireEntities(center); err != nil {
		return nil, err
	}
	a := NewArc(center, radius, startAngle, endAngle)
	s.addEntity(a)
	return a, nil
}

// AddEntity inserts an already-constructed entity. References must
// resolve to entities already in the sketch. Used by persistence code;
// the typed Add helpers are preferred for interactive use.
func (s *Sketch) AddEntity(e Entity) error {
	if err := s.requireEntities(e.References()...); err != nil {
		return err
	}
	if _, dup := s.byID[e.ID()]; dup {
		return fmt.Errorf("sketch: duplicate entity id %s", e.ID())
	}
	s.addEntity(e)
	return nil
}

func (s *Sketch) addEntity(e Entity) {
	s.entities = append(s.entities, e)
	s.byID[e.ID()] = e
	s.lastResult = nil
}

// Entity returns the entity with the given id.
func (s *Sketch) Entity(id uuid.UUID) (Entity, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// Entities returns all entities in insertion order. The slice is
// shared; callers must not mutate it.
func (s *Sketch) Entities() []Entity { return s.entities }

// RemoveEntity deletes an entity together with every entity and
// constraint that references it, directly or transitively.
func (s *Sketch) RemoveEntity(id uuid.UUID) error {
	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("%w: %s", ErrEntityNotFound, id)
	}

	doomed := map[uuid.UUID]bool{id: true}
	// Dependents can chain (a line on a removed point, a constraint on
	// that line), so sweep until the set stops growing.
	for {
		grew := false
		for _, e := range s.entities {
			if doomed[e.ID()] {
				continue
			}
			for _, ref := range e.References() {
				if doomed[ref] {
					doomed[e.ID()] = true
					grew = true
					break
				}
			}
		}
		if !grew {
			break
		}
	}

	kept := s.entities[:0]
	for _, e := range s.entities {
		if doomed[e.ID()] {
			delete(s.byID, e.ID())
			continue
		}
		kept = append(kept, e)
	}
	s.entities = kept

	keptC := s.constraints[:0]
	for _, c := range s.constraints {
		dead := false
		for _, ref := range c.References() {
			if doomed[ref] {
				dead = true
				break
			}
		}
		if !dead {
			keptC = append(keptC, c)
		}
	}
	s.constraints = keptC
	s.lastResult = nil
	return nil
}

// AddConstraint validates the constraint's references and adds it.
func (s *Sketch) AddConstraint(c Constraint) error {
	if err := s.requireEntities(c.References()...); err != nil {
		return err
	}
	s.constraints = append(s.constraints, c)
	s.lastResult = nil
	return nil
}

// RemoveConstraint deletes a constraint by id.
func (s *Sketch) RemoveConstraint(id uuid.UUID) error {
	for i, c := range s.constraints {
		if c.ID() == id {
			s.constraints = append(s.constraints[:i], s.constraints[i+1:]...)
			s.lastResult = nil
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrConstraintNotFound, id)
}

// Constraint returns the constraint with the given id.
func (s *Sketch) Constraint(id uuid.UUID) (Constraint, bool) {
	for _, c := range s.constraints {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

// Constraints returns all constraints in insertion order. The slice is
// shared; callers must not mutate it.
func (s *Sketch) Constraints() []Constraint { return s.constraints }

// LastResult returns the cached result of the most recent Solve, or
// nil if the sketch changed since.
func (s *Sketch) LastResult() *SolveResult { return s.lastResult }

// DOF returns the remaining degrees of freedom: free parameters minus
// constraint equations. Negative values indicate an overconstrained
// sketch.
func (s *Sketch) DOF() int {
	params := 0
	fixed := make(map[uuid.UUID]bool)
	for _, c := range s.constraints {
		if f, ok := c.(*Fixed); ok {
			fixed[f.Point] = true
		}
	}
	for _, e := range s.entities {
		switch e.(type) {
		case *Point:
			if !fixed[e.ID()] {
				params += 2
			}
		case *Circle, *Arc:
			params++ // radius
		}
	}
	eqs := 0
	for _, c := range s.constraints {
		eqs += c.EquationCount()
	}
	return params - eqs
}

func (s *Sketch) requireEntities(ids ...uuid.UUID) error {
	for _, id := range ids {
		if _, ok := s.byID[id]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownReference, id)
		}
	}
	return nil
}
