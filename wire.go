package cad

import "math"

// Wire is an ordered 2D polyline in sketch-plane coordinates. Closed
// wires are the profile input to sweep operations; open wires serve as
// sweep paths.
type Wire struct {
	Points []Vec2
	Closed bool
}

// NewWire creates a wire from points.
func NewWire(points []Vec2, closed bool) Wire {
	return Wire{Points: points, Closed: closed}
}

// Rectangle creates a closed rectangular wire centered at center.
func Rectangle(center Vec2, width, height float64) Wire {
	hw, hh := width/2, height/2
	return Wire{
		Points: []Vec2{
			center.Add(V2(-hw, -hh)),
			center.Add(V2(hw, -hh)),
			center.Add(V2(hw, hh)),
			center.Add(V2(-hw, hh)),
		},
		Closed: true,
	}
}

// CircleWire creates a closed wire approximating a circle with the
// given number of segments. Fewer than 3 segments are clamped to 3.
func CircleWire(center Vec2, radius float64, segments int) Wire {
	if segments < 3 {
		segments = 3
	}
	pts := make([]Vec2, segments)
	for i := range pts {
		a := float64(i) / float64(segments) * 2 * math.Pi
		pts[i] = center.Add(V2(math.Cos(a)*radius, math.Sin(a)*radius))
	}
	return Wire{Points: pts, Closed: true}
}

// IsValidProfile reports whether the wire can serve as a sweep
// profile: closed, at least 3 points, and not degenerate (nonzero
// area).
func (w Wire) IsValidProfile() bool {
	return w.Closed && len(w.Points) >= 3 && math.Abs(w.Area()) > 1e-12
}

// Area returns the signed area of the wire treated as a closed
// polygon. Positive for counter-clockwise winding.
func (w Wire) Area() float64 {
	n := len(w.Points)
	if n < 3 {
		return 0
	}
	var sum float64
	for i, p := range w.Points {
		q := w.Points[(i+1)%n]
		sum += p.Cross(q)
	}
	return sum / 2
}

// Reverse returns a copy of the wire with reversed winding.
func (w Wire) Reverse() Wire {
	pts := make([]Vec2, len(w.Points))
	for i, p := range w.Points {
		pts[len(pts)-1-i] = p
	}
	return Wire{Points: pts, Closed: w.Closed}
}
