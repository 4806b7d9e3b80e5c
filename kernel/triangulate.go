package kernel

import cad "github.com/NOPLAB/urdf-editor-sub001"

// triangulate performs ear-clipping triangulation of a simple polygon.
// Returns index triples into pts with counter-clockwise winding, or
// nil if the polygon is degenerate. Works on either winding; the input
// is normalized to CCW internally.
func triangulate(pts []cad.Vec2) [][3]int {
	n := len(pts)
	if n < 3 {
		return nil
	}

	// Index ring, reversed when the polygon winds clockwise.
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if signedArea(pts) < 0 {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			idx[i], idx[j] = idx[j], idx[i]
		}
	}

	tris := make([][3]int, 0, n-2)
	// Guard against non-simple input: bail out once no ear can be
	// clipped in a full pass.
	guard := 2 * n
	for len(idx) > 3 && guard > 0 {
		guard--
		clipped := false
		for i := 0; i < len(idx); i++ {
			prev := idx[(i+len(idx)-1)%len(idx)]
			cur := idx[i]
			next := idx[(i+1)%len(idx)]
			if !isEar(pts, idx, prev, cur, next) {
				continue
			}
			tris = append(tris, [3]int{prev, cur, next})
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return nil
		}
	}
	if len(idx) == 3 {
		tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	}
	return tris
}

func signedArea(pts []cad.Vec2) float64 {
	var sum float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		sum += p.Cross(q)
	}
	return sum / 2
}

// isEar reports whether the triangle (prev, cur, next) is convex and
// contains no other ring vertex.
func isEar(pts []cad.Vec2, ring []int, prev, cur, next int) bool {
	a, b, c := pts[prev], pts[cur], pts[next]
	if b.Sub(a).Cross(c.Sub(b)) <= 1e-12 {
		return false // reflex or collinear
	}
	for _, j := range ring {
		if j == prev || j == cur || j == next {
			continue
		}
		if pointInTriangle(pts[j], a, b, c) {
			return false
		}
	}
	return true
}

func pointInTriangle(p, a, b, c cad.Vec2) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
