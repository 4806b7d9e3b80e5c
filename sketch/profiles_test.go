package sketch

import (
	"math"
	"testing"

	cad "github.com/NOPLAB/urdf-editor-sub001"
)

func TestProfilesRectangleLoop(t *testing.T) {
	s := New("rect", cad.PlaneXY())
	p1 := s.AddPoint(0, 0)
	p2 := s.AddPoint(4, 0)
	p3 := s.AddPoint(4, 3)
	p4 := s.AddPoint(0, 3)
	for _, pair := range [][2]*Point{{p1, p2}, {p2, p3}, {p3, p4}, {p4, p1}} {
		if _, err := s.AddLine(pair[0].ID(), pair[1].ID()); err != nil {
			t.Fatalf("AddLine: %v", err)
		}
	}

	wires := s.Profiles(0)
	if len(wires) != 1 {
		t.Fatalf("profile count = %d, want 1", len(wires))
	}
	w := wires[0]
	if !w.Closed || len(w.Points) != 4 {
		t.Fatalf("wire closed=%v points=%d, want closed 4-gon", w.Closed, len(w.Points))
	}
	if got := math.Abs(w.Area()); math.Abs(got-12) > 1e-9 {
		t.Errorf("area = %g, want 12", got)
	}
}

func TestProfilesOpenChainSkipped(t *testing.T) {
	s := New("open", cad.PlaneXY())
	p1 := s.AddPoint(0, 0)
	p2 := s.AddPoint(1, 0)
	p3 := s.AddPoint(2, 1)
	if _, err := s.AddLine(p1.ID(), p2.ID()); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if _, err := s.AddLine(p2.ID(), p3.ID()); err != nil {
		t.Fatalf("AddLine: %v", err)
	}

	if wires := s.Profiles(0); len(wires) != 0 {
		t.Fatalf("profile count = %d, want 0 for open chain", len(wires))
	}
}

func TestProfilesCircle(t *testing.T) {
	s := New("circle", cad.PlaneXY())
	ctr := s.AddPoint(1, 2)
	if _, err := s.AddCircle(ctr.ID(), 3); err != nil {
		t.Fatalf("AddCircle: %v", err)
	}

	wires := s.Profiles(48)
	if len(wires) != 1 {
		t.Fatalf("profile count = %d, want 1", len(wires))
	}
	w := wires[0]
	if len(w.Points) != 48 {
		t.Fatalf("segment count = %d, want 48", len(w.Points))
	}
	// Polygon area approaches pi*r^2 from below.
	want := math.Pi * 9
	if got := math.Abs(w.Area()); got > want || got < want*0.98 {
		t.Errorf("area = %g, want just under %g", got, want)
	}
}

func TestProfilesTwoLoops(t *testing.T) {
	s := New("two", cad.PlaneXY())
	addTriangle := func(ox, oy float64) {
		a := s.AddPoint(ox, oy)
		b := s.AddPoint(ox+1, oy)
		c := s.AddPoint(ox, oy+1)
		for _, pair := range [][2]*Point{{a, b}, {b, c}, {c, a}} {
			if _, err := s.AddLine(pair[0].ID(), pair[1].ID()); err != nil {
				t.Fatalf("AddLine: %v", err)
			}
		}
	}
	addTriangle(0, 0)
	addTriangle(5, 5)

	if wires := s.Profiles(0); len(wires) != 2 {
		t.Fatalf("profile count = %d, want 2", len(wires))
	}
}
