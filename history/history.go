// Package history manages the ordered feature list that defines a
// parametric model. It supports rollback to an earlier point in the
// timeline, full rebuilds, and incremental rebuilds starting from an
// edited feature.
package history

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/google/uuid"

	cad "github.com/NOPLAB/urdf-editor-sub001"
	"github.com/NOPLAB/urdf-editor-sub001/feature"
	"github.com/NOPLAB/urdf-editor-sub001/kernel"
	"github.com/NOPLAB/urdf-editor-sub001/sketch"
)

// Entry pairs a feature with the body bookkeeping from its last
// execution. The id sets record what the feature saw and did, so a
// partial rebuild can be audited after the fact.
type Entry struct {
	Feature feature.Feature

	// PriorBodies lists the bodies that existed when the feature last
	// executed, in sorted id order.
	PriorBodies []uuid.UUID

	// CreatedBodies lists bodies produced by the feature's last
	// successful execution. Empty when the feature failed or has not
	// run.
	CreatedBodies []uuid.UUID

	// ModifiedBodies lists existing bodies the feature combined into
	// or reshaped.
	ModifiedBodies []uuid.UUID

	// DeletedBodies lists bodies the feature removed from the model.
	DeletedBodies []uuid.UUID
}

// clearRun resets the bookkeeping from a previous execution.
func (e *Entry) clearRun() {
	e.PriorBodies = nil
	e.CreatedBodies = nil
	e.ModifiedBodies = nil
	e.DeletedBodies = nil
}

// History is the ordered list of features plus the sketches they
// reference and the bodies they produced.
type History struct {
	entries []*Entry

	// rollback is the effective end of the timeline, or -1 when the
	// full history is active. Features at or past the cursor are
	// hidden from rebuilds.
	rollback int

	sketches map[uuid.UUID]*sketch.Sketch
	bodies   map[uuid.UUID]*Body
}

// New creates an empty history.
func New() *History {
	return &History{
		rollback: -1,
		sketches: make(map[uuid.UUID]*sketch.Sketch),
		bodies:   make(map[uuid.UUID]*Body),
	}
}

// Len returns the total number of features, ignoring rollback.
func (h *History) Len() int { return len(h.entries) }

// Feature returns the feature at the given index.
func (h *History) Feature(i int) (feature.Feature, bool) {
	if i < 0 || i >= len(h.entries) {
		return nil, false
	}
	return h.entries[i].Feature, true
}

// FeatureByID returns the feature with the given id.
func (h *History) FeatureByID(id uuid.UUID) (feature.Feature, bool) {
	for _, e := range h.entries {
		if e.Feature.ID() == id {
			return e.Feature, true
		}
	}
	return nil, false
}

// IndexOf returns the position of a feature in the timeline, or -1.
func (h *History) IndexOf(id uuid.UUID) int {
	for i, e := range h.entries {
		if e.Feature.ID() == id {
			return i
		}
	}
	return -1
}

// AddFeature appends a feature to the timeline. If the history is
// rolled back, the hidden features are discarded first: adding while
// rolled back rewrites the future.
func (h *History) AddFeature(f feature.Feature) {
	if h.rollback >= 0 {
		for _, e := range h.entries[h.rollback:] {
			for _, id := range e.CreatedBodies {
				delete(h.bodies, id)
			}
		}
		h.entries = h.entries[:h.rollback]
		h.rollback = -1
	}
	h.entries = append(h.entries, &Entry{Feature: f})
}

// RemoveFeature deletes a feature from the timeline and returns it.
func (h *History) RemoveFeature(id uuid.UUID) (feature.Feature, error) {
	i := h.IndexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", feature.ErrFeatureNotFound, id)
	}
	e := h.entries[i]
	for _, bid := range e.CreatedBodies {
		delete(h.bodies, bid)
	}
	h.entries = append(h.entries[:i], h.entries[i+1:]...)
	if h.rollback > len(h.entries) {
		h.rollback = len(h.entries)
	}
	return e.Feature, nil
}

// MoveFeature repositions a feature in the timeline.
func (h *History) MoveFeature(id uuid.UUID, newIndex int) error {
	old := h.IndexOf(id)
	if old < 0 {
		return fmt.Errorf("%w: %s", feature.ErrFeatureNotFound, id)
	}
	if newIndex < 0 || newIndex >= len(h.entries) {
		return fmt.Errorf("%w: index %d out of range", feature.ErrInvalidFeature, newIndex)
	}
	e := h.entries[old]
	h.entries = append(h.entries[:old], h.entries[old+1:]...)
	h.entries = append(h.entries[:newIndex], append([]*Entry{e}, h.entries[newIndex:]...)...)
	return nil
}

// Features returns all features in timeline order, ignoring rollback.
func (h *History) Features() []feature.Feature {
	out := make([]feature.Feature, len(h.entries))
	for i, e := range h.entries {
		out[i] = e.Feature
	}
	return out
}

// Entries returns the timeline entries. The slice is shared; callers
// must not mutate it.
func (h *History) Entries() []*Entry { return h.entries }

// AddSketch registers a sketch with the model and returns its id.
func (h *History) AddSketch(s *sketch.Sketch) uuid.UUID {
	h.sketches[s.ID()] = s
	return s.ID()
}

// Sketch returns a registered sketch by id.
func (h *History) Sketch(id uuid.UUID) (*sketch.Sketch, bool) {
	s, ok := h.sketches[id]
	return s, ok
}

// RemoveSketch unregisters a sketch.
func (h *History) RemoveSketch(id uuid.UUID) {
	delete(h.sketches, id)
}

// Sketches returns the sketch table. The map is shared; callers must
// not mutate it.
func (h *History) Sketches() map[uuid.UUID]*sketch.Sketch { return h.sketches }

// Body returns a body produced by the last rebuild.
func (h *History) Body(id uuid.UUID) (*Body, bool) {
	b, ok := h.bodies[id]
	return b, ok
}

// Bodies returns the body table. The map is shared; callers must not
// mutate it.
func (h *History) Bodies() map[uuid.UUID]*Body { return h.bodies }

// RollbackTo hides every feature after the one named, so rebuilds
// stop there. The hidden features stay in the timeline until a new
// feature is added.
func (h *History) RollbackTo(id uuid.UUID) error {
	i := h.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", feature.ErrFeatureNotFound, id)
	}
	h.rollback = i + 1
	return nil
}

// RollbackToEnd reactivates the full timeline.
func (h *History) RollbackToEnd() { h.rollback = -1 }

// RollbackPosition returns the rollback cursor. ok is false when the
// full timeline is active.
func (h *History) RollbackPosition() (int, bool) {
	if h.rollback < 0 {
		return 0, false
	}
	return h.rollback, true
}

// EffectiveLen returns the number of features visible to rebuilds.
func (h *History) EffectiveLen() int {
	if h.rollback >= 0 {
		return h.rollback
	}
	return len(h.entries)
}

// Rebuild replays the visible timeline from scratch. Bodies from the
// previous rebuild are discarded. A feature that fails to execute is
// logged and skipped; later features still run against the bodies
// built so far, so one broken feature does not take down the model.
func (h *History) Rebuild(k kernel.Kernel) {
	h.bodies = make(map[uuid.UUID]*Body)
	h.replay(k, 0, make(map[uuid.UUID]cad.Solid))
}

// RebuildFrom replays the timeline starting at the named feature,
// keeping the bodies built by everything before it. Editing a feature
// in the middle of a long history only pays for the tail.
func (h *History) RebuildFrom(id uuid.UUID, k kernel.Kernel) error {
	start := h.IndexOf(id)
	if start < 0 {
		return fmt.Errorf("%w: %s", feature.ErrFeatureNotFound, id)
	}
	if start == 0 {
		h.Rebuild(k)
		return nil
	}

	end := h.EffectiveLen()
	if start >= end {
		return nil
	}

	// Drop bodies produced by the tail; everything else carries over
	// as the starting state.
	for _, e := range h.entries[start:end] {
		for _, bid := range e.CreatedBodies {
			delete(h.bodies, bid)
		}
		e.clearRun()
	}
	solids := make(map[uuid.UUID]cad.Solid, len(h.bodies))
	for bid, b := range h.bodies {
		solids[bid] = b.Solid
	}
	h.replay(k, start, solids)
	return nil
}

// replay executes entries[start:effective end] against the given
// starting solids.
func (h *History) replay(k kernel.Kernel, start int, solids map[uuid.UUID]cad.Solid) {
	end := h.EffectiveLen()
	for _, e := range h.entries[start:end] {
		e.clearRun()
		if e.Feature.Suppressed() {
			continue
		}
		prior := sortedSolidIDs(solids)
		modified := targetBodies(e.Feature, solids)
		solid, err := e.Feature.Execute(k, h.sketches, solids)
		if err != nil {
			cad.Logger().Warn("feature failed, skipping",
				"feature", e.Feature.Name(),
				"type", e.Feature.TypeName(),
				"error", err)
			continue
		}

		body := &Body{
			ID:            bodyID(e.Feature.ID()),
			Name:          e.Feature.Name(),
			Solid:         solid,
			SourceFeature: e.Feature.ID(),
		}
		solids[body.ID] = solid
		h.bodies[body.ID] = body
		e.PriorBodies = prior
		e.CreatedBodies = []uuid.UUID{body.ID}
		e.ModifiedBodies = modified
	}
}

// bodyID derives a stable body id from the owning feature, so
// replaying the same timeline yields the same body ids.
func bodyID(featureID uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(featureID, []byte("body/0"))
}

// sortedSolidIDs snapshots the body ids currently in play, sorted so
// the bookkeeping is deterministic across rebuilds.
func sortedSolidIDs(solids map[uuid.UUID]cad.Solid) []uuid.UUID {
	if len(solids) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(solids))
	for id := range solids {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})
	return ids
}

// targetBodies lists the existing bodies a feature reshapes: the
// boolean target of a sketch feature, or the input body of a dress-up
// feature. Ids that do not resolve to a live body are dropped.
func targetBodies(f feature.Feature, solids map[uuid.UUID]cad.Solid) []uuid.UUID {
	var ids []uuid.UUID
	add := func(id uuid.UUID) {
		if id == uuid.Nil {
			return
		}
		if _, ok := solids[id]; ok {
			ids = append(ids, id)
		}
	}
	switch v := f.(type) {
	case *feature.Extrude:
		if v.Op != feature.OpNew {
			add(v.TargetBody)
		}
	case *feature.Revolve:
		if v.Op != feature.OpNew {
			add(v.TargetBody)
		}
	case *feature.Sweep:
		if v.Op != feature.OpNew {
			add(v.TargetBody)
		}
	case *feature.Loft:
		if v.Op != feature.OpNew {
			add(v.TargetBody)
		}
	case *feature.Boolean:
		add(v.TargetBody)
	case *feature.Fillet:
		add(v.BodyID)
	case *feature.Chamfer:
		add(v.BodyID)
	case *feature.Shell:
		add(v.BodyID)
	}
	return ids
}
