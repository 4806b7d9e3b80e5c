package document

import (
	"bytes"
	"errors"
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"

	cad "github.com/NOPLAB/urdf-editor-sub001"
	"github.com/NOPLAB/urdf-editor-sub001/feature"
	"github.com/NOPLAB/urdf-editor-sub001/history"
	"github.com/NOPLAB/urdf-editor-sub001/kernel"
	"github.com/NOPLAB/urdf-editor-sub001/sketch"
)

// buildModel assembles a model with a constrained sketch and a few
// features, the shape a round-trip needs to preserve.
func buildModel(t *testing.T) *history.History {
	t.Helper()
	h := history.New()

	s := sketch.New("base", cad.PlaneXY())
	p1 := s.AddPoint(0, 0)
	p2 := s.AddPoint(4, 0)
	p3 := s.AddPoint(4, 3)
	p4 := s.AddPoint(0, 3)
	var lines []*sketch.Line
	for _, pair := range [][2]uuid.UUID{
		{p1.ID(), p2.ID()}, {p2.ID(), p3.ID()}, {p3.ID(), p4.ID()}, {p4.ID(), p1.ID()},
	} {
		l, err := s.AddLine(pair[0], pair[1])
		if err != nil {
			t.Fatalf("AddLine: %v", err)
		}
		lines = append(lines, l)
	}
	ctr := s.AddPoint(2, 1.5)
	if _, err := s.AddCircle(ctr.ID(), 0.5); err != nil {
		t.Fatalf("AddCircle: %v", err)
	}
	if _, err := s.AddArc(ctr.ID(), 1, 0, math.Pi); err != nil {
		t.Fatalf("AddArc: %v", err)
	}

	for _, c := range []sketch.Constraint{
		sketch.NewFixed(p1.ID(), 0, 0),
		sketch.NewHorizontal(lines[0].ID()),
		sketch.NewLength(lines[0].ID(), 4),
		sketch.NewDistance(p1.ID(), p3.ID(), 5),
	} {
		if err := s.AddConstraint(c); err != nil {
			t.Fatalf("AddConstraint: %v", err)
		}
	}
	h.AddSketch(s)

	pad := feature.NewExtrude("pad", s.ID(), 3, feature.DirSymmetric)
	pad.DraftAngle = 0.1
	h.AddFeature(pad)

	rev := feature.NewRevolve("rev", s.ID(), cad.AxisZ(), math.Pi)
	rev.Op = feature.OpJoin
	rev.TargetBody = uuid.New()
	h.AddFeature(rev)

	fil := feature.NewFillet("round", uuid.New(), []cad.EdgeID{{SolidID: uuid.New(), Index: 2}}, 0.25)
	fil.SetSuppressed(true)
	h.AddFeature(fil)

	h.AddFeature(feature.NewLoft("blend", []uuid.UUID{s.ID(), s.ID()}, true, false))
	return h
}

func TestRoundTrip(t *testing.T) {
	h := buildModel(t)

	var buf bytes.Buffer
	if err := Save(&buf, h); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.Len() != h.Len() {
		t.Fatalf("feature count = %d, want %d", loaded.Len(), h.Len())
	}
	for i, want := range h.Features() {
		got, _ := loaded.Feature(i)
		if got.ID() != want.ID() || got.TypeName() != want.TypeName() || got.Name() != want.Name() {
			t.Errorf("feature %d: got %s %q %s, want %s %q %s",
				i, got.TypeName(), got.Name(), got.ID(), want.TypeName(), want.Name(), want.ID())
		}
		if got.Suppressed() != want.Suppressed() {
			t.Errorf("feature %d: suppressed = %v, want %v", i, got.Suppressed(), want.Suppressed())
		}
	}

	pad, _ := loaded.Feature(0)
	ext, ok := pad.(*feature.Extrude)
	if !ok {
		t.Fatalf("feature 0 is %T, want *feature.Extrude", pad)
	}
	if ext.Distance != 3 || ext.Direction != feature.DirSymmetric || ext.DraftAngle != 0.1 {
		t.Errorf("extrude fields: %+v", ext)
	}

	r, _ := loaded.Feature(1)
	rev, ok := r.(*feature.Revolve)
	if !ok {
		t.Fatalf("feature 1 is %T, want *feature.Revolve", r)
	}
	if rev.Op != feature.OpJoin || rev.TargetBody == uuid.Nil {
		t.Errorf("revolve boolean fields: op=%v target=%s", rev.Op, rev.TargetBody)
	}

	if len(loaded.Sketches()) != 1 {
		t.Fatalf("sketch count = %d, want 1", len(loaded.Sketches()))
	}
	for id, want := range h.Sketches() {
		got, ok := loaded.Sketch(id)
		if !ok {
			t.Fatalf("sketch %s missing after round trip", id)
		}
		if len(got.Entities()) != len(want.Entities()) {
			t.Errorf("entity count = %d, want %d", len(got.Entities()), len(want.Entities()))
		}
		if len(got.Constraints()) != len(want.Constraints()) {
			t.Errorf("constraint count = %d, want %d", len(got.Constraints()), len(want.Constraints()))
		}
		for i, we := range want.Entities() {
			ge := got.Entities()[i]
			if ge.ID() != we.ID() || ge.TypeName() != we.TypeName() {
				t.Errorf("entity %d: %s %s, want %s %s", i, ge.TypeName(), ge.ID(), we.TypeName(), we.ID())
			}
		}
	}
}

func TestRoundTripRebuildEquivalence(t *testing.T) {
	k := kernel.NewMeshKernel()
	h := history.New()
	s := sketch.New("base", cad.PlaneXY())
	p1 := s.AddPoint(0, 0)
	p2 := s.AddPoint(2, 0)
	p3 := s.AddPoint(2, 2)
	p4 := s.AddPoint(0, 2)
	for _, pair := range [][2]uuid.UUID{
		{p1.ID(), p2.ID()}, {p2.ID(), p3.ID()}, {p3.ID(), p4.ID()}, {p4.ID(), p1.ID()},
	} {
		if _, err := s.AddLine(pair[0], pair[1]); err != nil {
			t.Fatalf("AddLine: %v", err)
		}
	}
	h.AddSketch(s)
	h.AddFeature(feature.NewExtrude("pad", s.ID(), 1, feature.DirPositive))

	var buf bytes.Buffer
	if err := Save(&buf, h); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	h.Rebuild(k)
	loaded.Rebuild(k)

	ids := func(h *history.History) []string {
		var out []string
		for id := range h.Bodies() {
			out = append(out, id.String())
		}
		sort.Strings(out)
		return out
	}
	a, b := ids(h), ids(loaded)
	if len(a) != 1 || len(b) != 1 || a[0] != b[0] {
		t.Fatalf("rebuilt body ids differ: %v vs %v", a, b)
	}
}

func TestRoundTripRollback(t *testing.T) {
	h := buildModel(t)
	features := h.Features()
	if err := h.RollbackTo(features[1].ID()); err != nil {
		t.Fatalf("RollbackTo: %v", err)
	}

	var buf bytes.Buffer
	if err := Save(&buf, h); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	pos, ok := loaded.RollbackPosition()
	if !ok || pos != 2 {
		t.Fatalf("rollback position = %d, %v, want 2", pos, ok)
	}
}

func TestLoadRejectsBadVersion(t *testing.T) {
	_, err := Load(strings.NewReader("version: 99\n"))
	if !errors.Is(err, ErrVersion) {
		t.Fatalf("got %v, want ErrVersion", err)
	}
}

func TestLoadRejectsUnknownTypes(t *testing.T) {
	doc := `version: 1
features:
  - id: 6ba7b810-9dad-11d1-80b4-00c04fd430c8
    type: Brownian
    name: nope
`
	if _, err := Load(strings.NewReader(doc)); err == nil {
		t.Fatal("unknown feature type should fail to load")
	}
}

func TestSaveLoadFile(t *testing.T) {
	h := buildModel(t)
	path := t.TempDir() + "/model.yaml"
	if err := SaveFile(path, h); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Len() != h.Len() {
		t.Fatalf("feature count = %d, want %d", loaded.Len(), h.Len())
	}

	if err := SaveFile(t.TempDir()+"/missing/model.yaml", h); err == nil {
		t.Fatal("SaveFile into a missing directory should fail")
	}
}
