package sketch

import (
	"errors"
	"math"
	"testing"

	cad "github.com/NOPLAB/urdf-editor-sub001"
)

func solveOK(t *testing.T, s *Sketch, opts ...SolverOption) *SolveResult {
	t.Helper()
	res, err := s.Solve(opts...)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	return res
}

func TestSolveRightTriangle(t *testing.T) {
	// A 3-4-5 right triangle pinned at the origin: fix one vertex,
	// make the base horizontal with length 4, the left side vertical
	// with length 3, and the hypotenuse falls out at 5.
	s := New("triangle", cad.PlaneXY())
	a := s.AddPoint(0, 0)
	b := s.AddPoint(3.5, 0.5)
	c := s.AddPoint(0.5, 2.5)
	base, _ := s.AddLine(a.ID(), b.ID())
	left, _ := s.AddLine(a.ID(), c.ID())
	hyp, _ := s.AddLine(b.ID(), c.ID())
	_ = hyp

	for _, cn := range []Constraint{
		NewFixed(a.ID(), 0, 0),
		NewHorizontal(base.ID()),
		NewLength(base.ID(), 4),
		NewVertical(left.ID()),
		NewLength(left.ID(), 3),
	} {
		if err := s.AddConstraint(cn); err != nil {
			t.Fatalf("AddConstraint(%s): %v", cn.TypeName(), err)
		}
	}

	res := solveOK(t, s)
	if res.Status != StatusFullyConstrained {
		t.Fatalf("status = %v, want fully constrained", res.Status)
	}
	if res.DOF != 0 {
		t.Fatalf("DOF = %d, want 0", res.DOF)
	}

	if !a.Pos.Approx(cad.V2(0, 0), 1e-6) {
		t.Errorf("a = %v, want origin", a.Pos)
	}
	if !b.Pos.Approx(cad.V2(4, 0), 1e-6) {
		t.Errorf("b = %v, want (4, 0)", b.Pos)
	}
	if !c.Pos.Approx(cad.V2(0, 3), 1e-6) {
		t.Errorf("c = %v, want (0, 3)", c.Pos)
	}
	if got := c.Pos.Sub(b.Pos).Length(); math.Abs(got-5) > 1e-6 {
		t.Errorf("hypotenuse = %g, want 5", got)
	}
}

func TestSolveUnderConstrained(t *testing.T) {
	// Two points, one fixed, held at distance 2: the free point keeps
	// two degrees of freedom minus one equation.
	s := New("under", cad.PlaneXY())
	a := s.AddPoint(0, 0)
	b := s.AddPoint(1.5, 0.5)
	if err := s.AddConstraint(NewFixed(a.ID(), 0, 0)); err != nil {
		t.Fatalf("AddConstraint: %v", err)
	}
	if err := s.AddConstraint(NewDistance(a.ID(), b.ID(), 2)); err != nil {
		t.Fatalf("AddConstraint: %v", err)
	}

	res := solveOK(t, s)
	if res.Status != StatusUnderConstrained {
		t.Fatalf("status = %v, want under constrained", res.Status)
	}
	if res.DOF != 1 {
		t.Fatalf("DOF = %d, want 1", res.DOF)
	}
	if got := b.Pos.Sub(a.Pos).Length(); math.Abs(got-2) > 1e-6 {
		t.Errorf("distance = %g, want 2", got)
	}
}

func TestSolveFreePointDOF(t *testing.T) {
	s := New("free", cad.PlaneXY())
	s.AddPoint(1, 1)

	res := solveOK(t, s)
	if res.Status != StatusUnderConstrained {
		t.Fatalf("status = %v, want under constrained", res.Status)
	}
	if res.DOF != 2 {
		t.Fatalf("DOF = %d, want 2", res.DOF)
	}
}

func TestSolveOverConstrainedConsistent(t *testing.T) {
	// Redundant but consistent: two distance constraints demanding the
	// same thing. The solve converges, so the sketch counts as fully
	// constrained even though the equations outnumber the unknowns.
	s := New("over", cad.PlaneXY())
	a := s.AddPoint(0, 0)
	b := s.AddPoint(2.2, 0)
	base, _ := s.AddLine(a.ID(), b.ID())

	for _, cn := range []Constraint{
		NewFixed(a.ID(), 0, 0),
		NewHorizontal(base.ID()),
		NewDistance(a.ID(), b.ID(), 2),
		NewHorizontalDistance(a.ID(), b.ID(), 2),
	} {
		if err := s.AddConstraint(cn); err != nil {
			t.Fatalf("AddConstraint(%s): %v", cn.TypeName(), err)
		}
	}

	res := solveOK(t, s)
	if res.Status != StatusFullyConstrained {
		t.Fatalf("status = %v, want fully constrained", res.Status)
	}
	if res.DOF >= 0 {
		t.Fatalf("DOF = %d, want negative", res.DOF)
	}
	if !b.Pos.Approx(cad.V2(2, 0), 1e-6) {
		t.Errorf("b = %v, want (2, 0)", b.Pos)
	}
}

func TestSolveContradiction(t *testing.T) {
	t.Run("pinned endpoints", func(t *testing.T) {
		// Both points pinned, distance demands otherwise: more
		// equations than unknowns with no consistent solution.
		s := New("conflict", cad.PlaneXY())
		a := s.AddPoint(0, 0)
		b := s.AddPoint(1, 0)
		for _, cn := range []Constraint{
			NewFixed(a.ID(), 0, 0),
			NewFixed(b.ID(), 1, 0),
			NewDistance(a.ID(), b.ID(), 5),
		} {
			if err := s.AddConstraint(cn); err != nil {
				t.Fatalf("AddConstraint(%s): %v", cn.TypeName(), err)
			}
		}

		res, err := s.Solve(WithMaxIterations(50))
		if !errors.Is(err, ErrNotConverged) {
			t.Fatalf("Solve: got %v, want ErrNotConverged", err)
		}
		if res.Status != StatusOverConstrained {
			t.Fatalf("status = %v, want over constrained", res.Status)
		}
	})

	t.Run("inconsistent dimensions", func(t *testing.T) {
		// Equation count matches the unknowns but the dimensions
		// disagree, so the solve simply fails to converge.
		s := New("conflict", cad.PlaneXY())
		a := s.AddPoint(0, 0)
		b := s.AddPoint(1, 0)
		for _, cn := range []Constraint{
			NewFixed(a.ID(), 0, 0),
			NewDistance(a.ID(), b.ID(), 1),
			NewHorizontalDistance(a.ID(), b.ID(), 5),
		} {
			if err := s.AddConstraint(cn); err != nil {
				t.Fatalf("AddConstraint(%s): %v", cn.TypeName(), err)
			}
		}

		res, err := s.Solve(WithMaxIterations(50))
		if !errors.Is(err, ErrNotConverged) {
			t.Fatalf("Solve: got %v, want ErrNotConverged", err)
		}
		if res.Status != StatusNotConverged {
			t.Fatalf("status = %v, want not converged", res.Status)
		}
	})
}

func TestSolveSkipsMismatchedReferences(t *testing.T) {
	// Horizontal applies to lines; pointing it at a point passes the
	// existence check but yields no equations. The solve must size the
	// system from the residuals it actually gets and still satisfy the
	// remaining constraints.
	s := New("mismatch", cad.PlaneXY())
	a := s.AddPoint(0, 0)
	b := s.AddPoint(1.5, 0.5)
	for _, cn := range []Constraint{
		NewHorizontal(a.ID()),
		NewDistance(a.ID(), b.ID(), 2),
	} {
		if err := s.AddConstraint(cn); err != nil {
			t.Fatalf("AddConstraint(%s): %v", cn.TypeName(), err)
		}
	}

	res, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if res.Status != StatusUnderConstrained {
		t.Fatalf("status = %v, want under constrained", res.Status)
	}
	if got := b.Pos.Sub(a.Pos).Length(); math.Abs(got-2) > 1e-6 {
		t.Errorf("distance = %g, want 2", got)
	}
}

func TestSolveRadiusConstraint(t *testing.T) {
	s := New("radius", cad.PlaneXY())
	ctr := s.AddPoint(0, 0)
	circ, err := s.AddCircle(ctr.ID(), 1)
	if err != nil {
		t.Fatalf("AddCircle: %v", err)
	}
	if err := s.AddConstraint(NewFixed(ctr.ID(), 0, 0)); err != nil {
		t.Fatalf("AddConstraint: %v", err)
	}
	if err := s.AddConstraint(NewDiameter(circ.ID(), 7)); err != nil {
		t.Fatalf("AddConstraint: %v", err)
	}

	res := solveOK(t, s)
	if res.Status != StatusFullyConstrained {
		t.Fatalf("status = %v, want fully constrained", res.Status)
	}
	if math.Abs(circ.Radius-3.5) > 1e-6 {
		t.Errorf("radius = %g, want 3.5", circ.Radius)
	}
}

func TestSolveTangentLineCircle(t *testing.T) {
	s := New("tangent", cad.PlaneXY())
	a := s.AddPoint(-2, 1.2)
	b := s.AddPoint(2, 1.2)
	line, _ := s.AddLine(a.ID(), b.ID())
	ctr := s.AddPoint(0, 0)
	circ, err := s.AddCircle(ctr.ID(), 1)
	if err != nil {
		t.Fatalf("AddCircle: %v", err)
	}

	for _, cn := range []Constraint{
		NewFixed(a.ID(), -2, 1.2),
		NewFixed(b.ID(), 2, 1.2),
		NewFixed(ctr.ID(), 0, 0),
		NewTangent(line.ID(), circ.ID()),
	} {
		if err := s.AddConstraint(cn); err != nil {
			t.Fatalf("AddConstraint(%s): %v", cn.TypeName(), err)
		}
	}

	// Only the radius is free; tangency forces it to the line's
	// distance from the center.
	res := solveOK(t, s)
	if res.Status != StatusFullyConstrained {
		t.Fatalf("status = %v, want fully constrained", res.Status)
	}
	if math.Abs(circ.Radius-1.2) > 1e-6 {
		t.Errorf("radius = %g, want 1.2", circ.Radius)
	}
}

func TestSolveCachesResult(t *testing.T) {
	s := New("cache", cad.PlaneXY())
	s.AddPoint(0, 0)
	if s.LastResult() != nil {
		t.Fatal("LastResult before solve should be nil")
	}
	res := solveOK(t, s)
	if s.LastResult() != res {
		t.Fatal("LastResult should return the solve result")
	}
	s.AddPoint(1, 1)
	if s.LastResult() != nil {
		t.Fatal("LastResult should reset when the sketch changes")
	}
}

func TestSolveSymmetric(t *testing.T) {
	s := New("symmetric", cad.PlaneXY())
	// Vertical axis through the origin.
	axA := s.AddPoint(0, -1)
	axB := s.AddPoint(0, 1)
	axis, _ := s.AddLine(axA.ID(), axB.ID())
	p1 := s.AddPoint(-1.5, 0.5)
	p2 := s.AddPoint(1.1, 0.4)

	for _, cn := range []Constraint{
		NewFixed(axA.ID(), 0, -1),
		NewFixed(axB.ID(), 0, 1),
		NewFixed(p1.ID(), -1.5, 0.5),
		NewSymmetric(p1.ID(), p2.ID(), axis.ID()),
	} {
		if err := s.AddConstraint(cn); err != nil {
			t.Fatalf("AddConstraint(%s): %v", cn.TypeName(), err)
		}
	}

	solveOK(t, s)
	if !p2.Pos.Approx(cad.V2(1.5, 0.5), 1e-6) {
		t.Errorf("p2 = %v, want (1.5, 0.5)", p2.Pos)
	}
}
