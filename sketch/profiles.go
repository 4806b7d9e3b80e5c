package sketch

import (
	"github.com/google/uuid"

	cad "github.com/NOPLAB/urdf-editor-sub001"
)

// defaultCircleSegments is the polygon resolution used when a circle
// entity becomes a profile wire.
const defaultCircleSegments = 32

// Profiles extracts the closed regions of the sketch as wires in the
// sketch plane's local frame. Line entities that chain end to end
// through shared points form polygonal loops; circle entities become
// polygonal approximations with the given segment count (a default is
// used when segments is not positive). Open chains and degenerate
// loops are skipped.
func (s *Sketch) Profiles(segments int) []cad.Wire {
	if segments <= 0 {
		segments = defaultCircleSegments
	}

	var wires []cad.Wire

	// Adjacency over line endpoints, keyed by point id.
	adj := make(map[uuid.UUID][]lineEdge)
	var lines []*Line
	for _, e := range s.entities {
		if l, ok := e.(*Line); ok {
			lines = append(lines, l)
			adj[l.Start] = append(adj[l.Start], lineEdge{l, l.End})
			adj[l.End] = append(adj[l.End], lineEdge{l, l.Start})
		}
	}

	used := make(map[uuid.UUID]bool)
	for _, start := range lines {
		if used[start.ID()] {
			continue
		}
		loop := s.walkLoop(start, adj, used)
		if loop == nil {
			continue
		}
		w := cad.NewWire(loop, true)
		if w.IsValidProfile() {
			wires = append(wires, w)
		}
	}

	for _, e := range s.entities {
		c, ok := e.(*Circle)
		if !ok {
			continue
		}
		center, found := s.byID[c.Center]
		if !found {
			continue
		}
		cp, isPoint := center.(*Point)
		if !isPoint || c.Radius <= 0 {
			continue
		}
		wires = append(wires, cad.CircleWire(cp.Pos, c.Radius, segments))
	}

	return wires
}

type lineEdge struct {
	line  *Line
	other uuid.UUID
}

// walkLoop follows lines endpoint to endpoint starting from l. It
// returns the loop's point positions when the walk closes back on the
// starting point, or nil for an open or branching chain. Visited lines
// are marked used either way.
func (s *Sketch) walkLoop(l *Line, adj map[uuid.UUID][]lineEdge, used map[uuid.UUID]bool) []cad.Vec2 {
	start := l.Start
	var pts []cad.Vec2

	cur := l
	at := l.Start
	for {
		p, ok := s.pointPos(at)
		if !ok {
			return nil
		}
		pts = append(pts, p)
		used[cur.ID()] = true

		next := cur.End
		if at == cur.End {
			next = cur.Start
		}
		if next == start {
			if len(pts) < 3 {
				return nil
			}
			return pts
		}

		var follow *Line
		for _, e := range adj[next] {
			if !used[e.line.ID()] {
				if follow != nil {
					// Branching junction; not a simple loop.
					return nil
				}
				follow = e.line
			}
		}
		if follow == nil {
			return nil
		}
		cur = follow
		at = next
	}
}

func (s *Sketch) pointPos(id uuid.UUID) (cad.Vec2, bool) {
	e, ok := s.byID[id]
	if !ok {
		return cad.Vec2{}, false
	}
	p, isPoint := e.(*Point)
	if !isPoint {
		return cad.Vec2{}, false
	}
	return p.Pos, true
}
