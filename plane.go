package cad

// Plane is the 3D placement of a 2D sketch: an origin, a normal, and
// the in-plane X/Y basis. The basis vectors are what map sketch
// coordinates into model space; the normal is kept alongside them so
// sweep directions do not need to be re-derived.
type Plane struct {
	Origin Vec3
	Normal Vec3
	XAxis  Vec3
	YAxis  Vec3
}

// PlaneXY returns the default XY plane (normal +Z).
func PlaneXY() Plane {
	return Plane{Normal: Vec3Z(), XAxis: Vec3X(), YAxis: Vec3Y()}
}

// PlaneXZ returns the default XZ plane (normal +Y).
func PlaneXZ() Plane {
	return Plane{Normal: Vec3Y(), XAxis: Vec3X(), YAxis: Vec3Z()}
}

// PlaneYZ returns the default YZ plane (normal +X).
func PlaneYZ() Plane {
	return Plane{Normal: Vec3X(), XAxis: Vec3Y(), YAxis: Vec3Z()}
}

// NewPlane constructs a plane from an origin and a normal, deriving an
// arbitrary but stable in-plane basis. The normal need not be
// normalized.
func NewPlane(origin, normal Vec3) Plane {
	n := normal.Normalize()
	// Pick the world axis least aligned with the normal as the up hint.
	up := Vec3Z()
	if n.Z > 0.9 || n.Z < -0.9 {
		up = Vec3X()
	}
	x := up.Cross(n).Normalize()
	y := n.Cross(x)
	return Plane{Origin: origin, Normal: n, XAxis: x, YAxis: y}
}

// Offset returns a copy of the plane translated along its normal.
func (p Plane) Offset(d float64) Plane {
	p.Origin = p.Origin.Add(p.Normal.Mul(d))
	return p
}

// ToWorld maps a 2D sketch-plane point into model space.
func (p Plane) ToWorld(pt Vec2) Vec3 {
	return p.Origin.Add(p.XAxis.Mul(pt.X)).Add(p.YAxis.Mul(pt.Y))
}

// Axis is a 3D rotation axis: an origin and a normalized direction.
type Axis struct {
	Origin    Vec3
	Direction Vec3
}

// NewAxis creates an axis from origin and direction. The direction is
// normalized.
func NewAxis(origin, direction Vec3) Axis {
	return Axis{Origin: origin, Direction: direction.Normalize()}
}

// AxisX is the world X axis through the origin.
func AxisX() Axis { return Axis{Direction: Vec3X()} }

// AxisY is the world Y axis through the origin.
func AxisY() Axis { return Axis{Direction: Vec3Y()} }

// AxisZ is the world Z axis through the origin.
func AxisZ() Axis { return Axis{Direction: Vec3Z()} }
