package kernel

import (
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"

	cad "github.com/NOPLAB/urdf-editor-sub001"
)

// MeshKernel is the pure-software reference backend. It approximates
// every body as a closed triangle mesh built directly from the input
// profiles, so sweeps and primitives are cheap and deterministic, but
// it has no real B-Rep topology: booleans, fillet/chamfer, shell,
// sweep-along-path and STEP I/O all report ErrOperationFailed.
//
// Solids are owned by the kernel instance and held in private storage
// guarded by a mutex, so a single instance may be shared across
// goroutines.
type MeshKernel struct {
	mu     sync.Mutex
	solids map[uuid.UUID]*meshSolid

	revolveSegments int
}

type meshSolid struct {
	mesh  *cad.TriangleMesh
	edges []cad.EdgeInfo
	faces []cad.FaceInfo
}

// MeshOption configures a MeshKernel.
type MeshOption func(*MeshKernel)

// WithRevolveSegments sets the number of segments used for a full
// revolution (default 32). Values below 3 are clamped.
func WithRevolveSegments(n int) MeshOption {
	return func(k *MeshKernel) {
		if n < 3 {
			n = 3
		}
		k.revolveSegments = n
	}
}

// NewMeshKernel creates a mesh kernel with empty storage.
func NewMeshKernel(opts ...MeshOption) *MeshKernel {
	k := &MeshKernel{
		solids:          make(map[uuid.UUID]*meshSolid),
		revolveSegments: 32,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

var _ Kernel = (*MeshKernel)(nil)

// Name returns "mesh".
func (k *MeshKernel) Name() string { return KernelMesh }

// IsAvailable always reports true; the backend has no native
// dependencies.
func (k *MeshKernel) IsAvailable() bool { return true }

// Clear drops all stored solids. Handles previously returned by this
// instance become stale.
func (k *MeshKernel) Clear() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.solids = make(map[uuid.UUID]*meshSolid)
}

// SolidCount returns the number of bodies in storage.
func (k *MeshKernel) SolidCount() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.solids)
}

func (k *MeshKernel) store(s *meshSolid) cad.Solid {
	id := uuid.New()
	k.mu.Lock()
	k.solids[id] = s
	k.mu.Unlock()
	cad.Logger().Debug("mesh kernel stored solid",
		"id", id, "triangles", s.mesh.TriangleCount())
	return cad.NewSolid(id, KernelMesh)
}

func (k *MeshKernel) lookup(s cad.Solid) (*meshSolid, error) {
	if !s.OwnedBy(KernelMesh) {
		return nil, fmt.Errorf("%w: solid %s owned by %q", ErrUnknownSolid, s.ID, s.Kernel)
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	ms, ok := k.solids[s.ID]
	if !ok {
		return nil, fmt.Errorf("%w: solid %s", ErrUnknownSolid, s.ID)
	}
	return ms, nil
}

func validateProfile(profile cad.Wire) error {
	if !profile.Closed {
		return fmt.Errorf("%w: profile is not closed", ErrInvalidProfile)
	}
	if len(profile.Points) < 3 {
		return fmt.Errorf("%w: profile has %d points, need at least 3",
			ErrInvalidProfile, len(profile.Points))
	}
	if math.Abs(profile.Area()) < 1e-12 {
		return fmt.Errorf("%w: profile is degenerate", ErrInvalidProfile)
	}
	return nil
}

// ccwProfile returns the profile points with counter-clockwise
// winding, so wall orientation is predictable.
func ccwProfile(profile cad.Wire) []cad.Vec2 {
	if profile.Area() < 0 {
		return profile.Reverse().Points
	}
	pts := make([]cad.Vec2, len(profile.Points))
	copy(pts, profile.Points)
	return pts
}

// Extrude builds a prism: triangulated caps plus wall quads.
func (k *MeshKernel) Extrude(profile cad.Wire, plane cad.Plane, direction cad.Vec3, distance float64) (cad.Solid, error) {
	if err := validateProfile(profile); err != nil {
		return cad.Solid{}, err
	}
	if distance == 0 {
		return cad.Solid{}, fmt.Errorf("%w: zero extrusion distance", ErrInvalidProfile)
	}

	pts := ccwProfile(profile)
	tris := triangulate(pts)
	if tris == nil {
		return cad.Solid{}, fmt.Errorf("%w: profile is not a simple polygon", ErrInvalidProfile)
	}

	offset := direction.Normalize().Mul(distance)
	n := len(pts)
	base := make([]cad.Vec3, n)
	top := make([]cad.Vec3, n)
	for i, p := range pts {
		base[i] = plane.ToWorld(p)
		top[i] = base[i].Add(offset)
	}

	// With a CCW profile, walls face outward when extruding along the
	// plane normal; flip the winding when extruding against it.
	along := offset.Dot(plane.Normal) >= 0

	mesh := &cad.TriangleMesh{}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if along {
			mesh.AddQuad(base[i], base[j], top[j], top[i])
		} else {
			mesh.AddQuad(base[j], base[i], top[i], top[j])
		}
	}
	for _, t := range tris {
		a, b, c := base[t[0]], base[t[1]], base[t[2]]
		ta, tb, tc := top[t[0]], top[t[1]], top[t[2]]
		if along {
			mesh.AddTriangle(c, b, a) // base cap faces away from the sweep
			mesh.AddTriangle(ta, tb, tc)
		} else {
			mesh.AddTriangle(a, b, c)
			mesh.AddTriangle(tc, tb, ta)
		}
	}

	return k.store(&meshSolid{
		mesh:  mesh,
		edges: prismEdges(base, top),
		faces: prismFaces(pts, base, top, plane, offset, along),
	}), nil
}

// prismEdges records the base ring, top ring and lateral edges of an
// extrusion for selection queries.
func prismEdges(base, top []cad.Vec3) []cad.EdgeInfo {
	n := len(base)
	edges := make([]cad.EdgeInfo, 0, 3*n)
	idx := 0
	add := func(a, b cad.Vec3) {
		edges = append(edges, cad.NewEdgeInfo(cad.EdgeID{Index: idx}, a, b))
		idx++
	}
	for i := 0; i < n; i++ {
		add(base[i], base[(i+1)%n])
	}
	for i := 0; i < n; i++ {
		add(top[i], top[(i+1)%n])
	}
	for i := 0; i < n; i++ {
		add(base[i], top[i])
	}
	return edges
}

func prismFaces(pts []cad.Vec2, base, top []cad.Vec3, plane cad.Plane, offset cad.Vec3, along bool) []cad.FaceInfo {
	n := len(base)
	faces := make([]cad.FaceInfo, 0, n+2)
	height := offset.Length()
	idx := 0
	add := func(center, normal cad.Vec3, area float64) {
		faces = append(faces, cad.NewFaceInfo(cad.FaceID{Index: idx}, center, normal, area))
		idx++
	}

	dir := offset.Normalize()
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		center := base[i].Add(base[j]).Add(top[j]).Add(top[i]).Mul(0.25)
		tangent := base[j].Sub(base[i])
		outward := tangent.Cross(plane.Normal)
		if !along {
			outward = outward.Neg()
		}
		add(center, outward, tangent.Length()*height)
	}

	var centroid cad.Vec2
	for _, p := range pts {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Mul(1 / float64(n))
	area := math.Abs(cad.NewWire(pts, true).Area())
	baseCenter := plane.ToWorld(centroid)
	add(baseCenter, dir.Neg(), area)
	add(baseCenter.Add(offset), dir, area)
	return faces
}

// Revolve builds a lathe surface by rotating the profile rings around
// the axis. Partial revolutions receive triangulated end caps.
func (k *MeshKernel) Revolve(profile cad.Wire, plane cad.Plane, axis cad.Axis, angle float64) (cad.Solid, error) {
	if err := validateProfile(profile); err != nil {
		return cad.Solid{}, err
	}
	if angle == 0 {
		return cad.Solid{}, fmt.Errorf("%w: zero revolve angle", ErrInvalidProfile)
	}

	full := math.Abs(angle) >= 2*math.Pi-1e-9
	if full {
		angle = math.Copysign(2*math.Pi, angle)
	}

	pts := ccwProfile(profile)
	world := make([]cad.Vec3, len(pts))
	for i, p := range pts {
		world[i] = plane.ToWorld(p)
	}

	segments := int(math.Ceil(math.Abs(angle) / (2 * math.Pi) * float64(k.revolveSegments)))
	if segments < 3 {
		segments = 3
	}

	rings := make([][]cad.Vec3, segments+1)
	for s := 0; s <= segments; s++ {
		a := angle * float64(s) / float64(segments)
		ring := make([]cad.Vec3, len(world))
		for i, p := range world {
			ring[i] = rotateAround(p, axis, a)
		}
		rings[s] = ring
	}

	mesh := &cad.TriangleMesh{}
	n := len(pts)
	for s := 0; s < segments; s++ {
		r0, r1 := rings[s], rings[s+1]
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			mesh.AddQuad(r0[i], r0[j], r1[j], r1[i])
		}
	}

	if !full {
		tris := triangulate(pts)
		if tris == nil {
			return cad.Solid{}, fmt.Errorf("%w: profile is not a simple polygon", ErrInvalidProfile)
		}
		first, last := rings[0], rings[segments]
		for _, t := range tris {
			mesh.AddTriangle(first[t[2]], first[t[1]], first[t[0]])
			mesh.AddTriangle(last[t[0]], last[t[1]], last[t[2]])
		}
	}

	return k.store(&meshSolid{mesh: mesh}), nil
}

// rotateAround rotates p around the axis by angle radians (Rodrigues).
func rotateAround(p cad.Vec3, axis cad.Axis, angle float64) cad.Vec3 {
	u := axis.Direction
	v := p.Sub(axis.Origin)
	cos, sin := math.Cos(angle), math.Sin(angle)
	rot := v.Mul(cos).
		Add(u.Cross(v).Mul(sin)).
		Add(u.Mul(u.Dot(v) * (1 - cos)))
	return axis.Origin.Add(rot)
}

// Sweep along an arbitrary path is not supported by the polyhedral
// backend.
func (k *MeshKernel) Sweep(cad.Wire, cad.Plane, cad.Wire, cad.Plane) (cad.Solid, error) {
	return cad.Solid{}, fmt.Errorf("%w: sweep is not supported by the mesh kernel", ErrOperationFailed)
}

// Loft skins ruled walls between consecutive sections. All profiles
// must carry the same point count; non-ruled lofts fall back to ruled
// interpolation.
func (k *MeshKernel) Loft(profiles []LoftProfile, solid, ruled bool) (cad.Solid, error) {
	_ = ruled // only ruled interpolation is available
	if len(profiles) < 2 {
		return cad.Solid{}, fmt.Errorf("%w: loft requires at least 2 profiles", ErrInvalidProfile)
	}

	rings := make([][]cad.Vec3, len(profiles))
	var sections [][]cad.Vec2
	for i, lp := range profiles {
		if err := validateProfile(lp.Profile); err != nil {
			return cad.Solid{}, err
		}
		pts := ccwProfile(lp.Profile)
		if i > 0 && len(pts) != len(sections[0]) {
			return cad.Solid{}, fmt.Errorf(
				"%w: loft profiles must have matching point counts (%d vs %d)",
				ErrOperationFailed, len(pts), len(sections[0]))
		}
		sections = append(sections, pts)
		ring := make([]cad.Vec3, len(pts))
		for j, p := range pts {
			ring[j] = lp.Plane.ToWorld(p)
		}
		rings[i] = ring
	}

	mesh := &cad.TriangleMesh{}
	n := len(rings[0])
	for s := 0; s < len(rings)-1; s++ {
		r0, r1 := rings[s], rings[s+1]
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			mesh.AddQuad(r0[i], r0[j], r1[j], r1[i])
		}
	}

	if solid {
		first := triangulate(sections[0])
		last := triangulate(sections[len(sections)-1])
		if first == nil || last == nil {
			return cad.Solid{}, fmt.Errorf("%w: loft profile is not a simple polygon", ErrInvalidProfile)
		}
		r0 := rings[0]
		rn := rings[len(rings)-1]
		for _, t := range first {
			mesh.AddTriangle(r0[t[2]], r0[t[1]], r0[t[0]])
		}
		for _, t := range last {
			mesh.AddTriangle(rn[t[0]], rn[t[1]], rn[t[2]])
		}
	}

	return k.store(&meshSolid{mesh: mesh}), nil
}

// Boolean is not supported: the backend has no B-Rep topology to
// intersect.
func (k *MeshKernel) Boolean(a, b cad.Solid, op BooleanOp) (cad.Solid, error) {
	return cad.Solid{}, fmt.Errorf("%w: boolean %s is not supported by the mesh kernel",
		ErrOperationFailed, op)
}

func (k *MeshKernel) Fillet(cad.Solid, []cad.EdgeID, float64) (cad.Solid, error) {
	return cad.Solid{}, fmt.Errorf("%w: fillet is not supported by the mesh kernel", ErrOperationFailed)
}

func (k *MeshKernel) Chamfer(cad.Solid, []cad.EdgeID, float64) (cad.Solid, error) {
	return cad.Solid{}, fmt.Errorf("%w: chamfer is not supported by the mesh kernel", ErrOperationFailed)
}

func (k *MeshKernel) Shell(cad.Solid, float64, []cad.FaceID) (cad.Solid, error) {
	return cad.Solid{}, fmt.Errorf("%w: shell is not supported by the mesh kernel", ErrOperationFailed)
}

// CreateBox builds an axis-aligned box with full edge/face records.
func (k *MeshKernel) CreateBox(center, size cad.Vec3) (cad.Solid, error) {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return cad.Solid{}, fmt.Errorf("%w: box size must be positive", ErrInvalidProfile)
	}
	profile := cad.Rectangle(cad.V2(0, 0), size.X, size.Y)
	plane := cad.PlaneXY()
	plane.Origin = center.Sub(cad.V3(0, 0, size.Z/2))
	return k.Extrude(profile, plane, cad.Vec3Z(), size.Z)
}

// CreateCylinder extrudes a polygonal circle along the axis.
func (k *MeshKernel) CreateCylinder(center cad.Vec3, radius, height float64, axis cad.Vec3) (cad.Solid, error) {
	if radius <= 0 || height <= 0 {
		return cad.Solid{}, fmt.Errorf("%w: cylinder dimensions must be positive", ErrInvalidProfile)
	}
	dir := axis.Normalize()
	if dir.Length() == 0 {
		return cad.Solid{}, fmt.Errorf("%w: zero cylinder axis", ErrInvalidProfile)
	}
	base := center.Sub(dir.Mul(height / 2))
	plane := cad.NewPlane(base, dir)
	profile := cad.CircleWire(cad.V2(0, 0), radius, k.revolveSegments)
	return k.Extrude(profile, plane, dir, height)
}

// CreateSphere builds a UV sphere.
func (k *MeshKernel) CreateSphere(center cad.Vec3, radius float64) (cad.Solid, error) {
	if radius <= 0 {
		return cad.Solid{}, fmt.Errorf("%w: sphere radius must be positive", ErrInvalidProfile)
	}

	stacks := k.revolveSegments / 2
	if stacks < 3 {
		stacks = 3
	}
	slices := k.revolveSegments

	at := func(stack, slice int) cad.Vec3 {
		phi := math.Pi * float64(stack) / float64(stacks)
		theta := 2 * math.Pi * float64(slice) / float64(slices)
		return center.Add(cad.V3(
			radius*math.Sin(phi)*math.Cos(theta),
			radius*math.Sin(phi)*math.Sin(theta),
			radius*math.Cos(phi),
		))
	}

	mesh := &cad.TriangleMesh{}
	for st := 0; st < stacks; st++ {
		for sl := 0; sl < slices; sl++ {
			a := at(st, sl)
			b := at(st+1, sl)
			c := at(st+1, sl+1)
			d := at(st, sl+1)
			if st > 0 {
				mesh.AddTriangle(a, b, d)
			}
			if st < stacks-1 {
				mesh.AddTriangle(b, c, d)
			}
		}
	}

	return k.store(&meshSolid{mesh: mesh}), nil
}

// Edges returns recorded edge summaries. Only solids built by
// operations that record topology (extrude and the extrude-based
// primitives) have edges.
func (k *MeshKernel) Edges(solid cad.Solid) ([]cad.EdgeInfo, error) {
	ms, err := k.lookup(solid)
	if err != nil {
		return nil, err
	}
	if len(ms.edges) == 0 {
		return nil, fmt.Errorf("%w: no edge topology recorded for solid %s", ErrOperationFailed, solid.ID)
	}
	edges := make([]cad.EdgeInfo, len(ms.edges))
	copy(edges, ms.edges)
	for i := range edges {
		edges[i].ID.SolidID = solid.ID
	}
	return edges, nil
}

// Faces returns recorded face summaries; see Edges for availability.
func (k *MeshKernel) Faces(solid cad.Solid) ([]cad.FaceInfo, error) {
	ms, err := k.lookup(solid)
	if err != nil {
		return nil, err
	}
	if len(ms.faces) == 0 {
		return nil, fmt.Errorf("%w: no face topology recorded for solid %s", ErrOperationFailed, solid.ID)
	}
	faces := make([]cad.FaceInfo, len(ms.faces))
	copy(faces, ms.faces)
	for i := range faces {
		faces[i].ID.SolidID = solid.ID
	}
	return faces, nil
}

// Tessellate returns a copy of the stored mesh. The tolerance is
// ignored: bodies are already polyhedral.
func (k *MeshKernel) Tessellate(solid cad.Solid, tolerance float64) (*cad.TriangleMesh, error) {
	ms, err := k.lookup(solid)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTessellationFailed, err)
	}
	_ = tolerance
	return ms.mesh.Clone(), nil
}

func (k *MeshKernel) ImportSTEP(string, StepImportOptions) (*StepImportResult, error) {
	return nil, fmt.Errorf("%w: STEP import is not supported by the mesh kernel", ErrStepImport)
}

func (k *MeshKernel) ExportSTEP([]cad.Solid, string, StepExportOptions) error {
	return fmt.Errorf("%w: STEP export is not supported by the mesh kernel", ErrStepExport)
}
