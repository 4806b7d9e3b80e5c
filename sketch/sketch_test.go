package sketch

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	cad "github.com/NOPLAB/urdf-editor-sub001"
)

func TestAddLineUnknownPoint(t *testing.T) {
	s := New("test", cad.PlaneXY())
	p := s.AddPoint(0, 0)

	if _, err := s.AddLine(p.ID(), uuid.New()); !errors.Is(err, ErrUnknownReference) {
		t.Fatalf("AddLine with unknown point: got %v, want ErrUnknownReference", err)
	}
	if _, err := s.AddLine(p.ID(), p.ID()); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
}

func TestAddConstraintValidatesReferences(t *testing.T) {
	s := New("test", cad.PlaneXY())
	p1 := s.AddPoint(0, 0)
	p2 := s.AddPoint(1, 0)

	if err := s.AddConstraint(NewCoincident(p1.ID(), p2.ID())); err != nil {
		t.Fatalf("AddConstraint: %v", err)
	}
	err := s.AddConstraint(NewCoincident(p1.ID(), uuid.New()))
	if !errors.Is(err, ErrUnknownReference) {
		t.Fatalf("AddConstraint with unknown entity: got %v, want ErrUnknownReference", err)
	}
	if got := len(s.Constraints()); got != 1 {
		t.Fatalf("constraint count = %d, want 1", got)
	}
}

func TestRemoveEntityCascades(t *testing.T) {
	s := New("test", cad.PlaneXY())
	p1 := s.AddPoint(0, 0)
	p2 := s.AddPoint(1, 0)
	p3 := s.AddPoint(1, 1)
	l1, _ := s.AddLine(p1.ID(), p2.ID())
	l2, _ := s.AddLine(p2.ID(), p3.ID())
	if err := s.AddConstraint(NewPerpendicular(l1.ID(), l2.ID())); err != nil {
		t.Fatalf("AddConstraint: %v", err)
	}
	if err := s.AddConstraint(NewDistance(p1.ID(), p3.ID(), 2)); err != nil {
		t.Fatalf("AddConstraint: %v", err)
	}

	// Removing p2 takes both lines with it, which in turn takes the
	// perpendicular constraint. The distance constraint survives.
	if err := s.RemoveEntity(p2.ID()); err != nil {
		t.Fatalf("RemoveEntity: %v", err)
	}
	if got := len(s.Entities()); got != 2 {
		t.Fatalf("entity count = %d, want 2", got)
	}
	if _, ok := s.Entity(l1.ID()); ok {
		t.Fatal("line referencing removed point should be gone")
	}
	if got := len(s.Constraints()); got != 1 {
		t.Fatalf("constraint count = %d, want 1", got)
	}
	if _, ok := s.Constraints()[0].(*Distance); !ok {
		t.Fatalf("surviving constraint is %T, want *Distance", s.Constraints()[0])
	}

	if err := s.RemoveEntity(p2.ID()); !errors.Is(err, ErrEntityNotFound) {
		t.Fatalf("double remove: got %v, want ErrEntityNotFound", err)
	}
}

func TestDOF(t *testing.T) {
	t.Run("free points", func(t *testing.T) {
		s := New("test", cad.PlaneXY())
		s.AddPoint(0, 0)
		s.AddPoint(1, 0)
		if got := s.DOF(); got != 4 {
			t.Fatalf("DOF = %d, want 4", got)
		}
	})

	t.Run("fixed removes parameters", func(t *testing.T) {
		s := New("test", cad.PlaneXY())
		p := s.AddPoint(0, 0)
		s.AddPoint(1, 0)
		if err := s.AddConstraint(NewFixed(p.ID(), 0, 0)); err != nil {
			t.Fatalf("AddConstraint: %v", err)
		}
		if got := s.DOF(); got != 2 {
			t.Fatalf("DOF = %d, want 2", got)
		}
	})

	t.Run("circle radius counts", func(t *testing.T) {
		s := New("test", cad.PlaneXY())
		c := s.AddPoint(0, 0)
		if _, err := s.AddCircle(c.ID(), 5); err != nil {
			t.Fatalf("AddCircle: %v", err)
		}
		if got := s.DOF(); got != 3 {
			t.Fatalf("DOF = %d, want 3", got)
		}
	})
}

func TestRestoreIDs(t *testing.T) {
	p := NewPoint(cad.V2(0, 0))

	id := uuid.New()
	RestoreEntityID(p, id)
	if p.ID() != id {
		t.Fatalf("entity id = %s, want %s", p.ID(), id)
	}

	c := NewFixed(id, 1, 2)
	cid := uuid.New()
	RestoreConstraintID(c, cid)
	if c.ID() != cid {
		t.Fatalf("constraint id = %s, want %s", c.ID(), cid)
	}
}
