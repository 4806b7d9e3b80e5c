package sketch

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	cad "github.com/NOPLAB/urdf-editor-sub001"
)

// SolveStatus classifies the outcome of a constraint solve.
type SolveStatus int

const (
	// StatusFullyConstrained means the solve converged and no degrees
	// of freedom remain.
	StatusFullyConstrained SolveStatus = iota
	// StatusUnderConstrained means the solve converged but free
	// parameters remain.
	StatusUnderConstrained
	// StatusOverConstrained means there are more equations than free
	// parameters and the solve could not satisfy them all. A redundant
	// but mutually consistent system converges and reports fully
	// constrained instead.
	StatusOverConstrained
	// StatusNotConverged means the iteration limit was reached with
	// the residual still above tolerance.
	StatusNotConverged
)

// String implements fmt.Stringer.
func (s SolveStatus) String() string {
	switch s {
	case StatusFullyConstrained:
		return "fully constrained"
	case StatusUnderConstrained:
		return "under constrained"
	case StatusOverConstrained:
		return "over constrained"
	case StatusNotConverged:
		return "not converged"
	default:
		return fmt.Sprintf("SolveStatus(%d)", int(s))
	}
}

// SolveResult reports the outcome of a constraint solve.
type SolveResult struct {
	Status     SolveStatus
	DOF        int
	Residual   float64
	Iterations int
}

const (
	defaultTolerance     = 1e-8
	defaultMaxIterations = 200
	defaultDamping       = 0.8

	// jacobianStep is the forward-difference step for the numeric
	// Jacobian.
	jacobianStep = 1e-7

	// regularization keeps the normal equations solvable when the
	// Jacobian is rank deficient, which is the common case for
	// under-constrained sketches.
	regularization = 1e-10
)

// SolverOption configures a Solve call.
type SolverOption func(*solverConfig)

type solverConfig struct {
	tolerance float64
	maxIter   int
	damping   float64
}

// WithTolerance sets the residual norm below which the solve is
// considered converged.
func WithTolerance(tol float64) SolverOption {
	return func(c *solverConfig) {
		if tol > 0 {
			c.tolerance = tol
		}
	}
}

// WithMaxIterations sets the iteration limit.
func WithMaxIterations(n int) SolverOption {
	return func(c *solverConfig) {
		if n > 0 {
			c.maxIter = n
		}
	}
}

// WithDamping sets the Newton step scale factor in (0, 1].
func WithDamping(d float64) SolverOption {
	return func(c *solverConfig) {
		if d > 0 && d <= 1 {
			c.damping = d
		}
	}
}

// Solve runs the constraint solver and writes the converged positions
// and radii back into the sketch entities. The unknowns are the
// coordinates of every non-fixed point plus the radius of every circle
// and arc; Fixed constraints pin their point's coordinates out of the
// system entirely.
//
// Solve returns ErrNotConverged (wrapped) when the iteration limit is
// hit; the entities keep their best-effort values in that case so the
// caller can inspect how far the solve got.
func (s *Sketch) Solve(opts ...SolverOption) (*SolveResult, error) {
	cfg := solverConfig{
		tolerance: defaultTolerance,
		maxIter:   defaultMaxIterations,
		damping:   defaultDamping,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	ev := newEvaluator(s)
	res := &SolveResult{DOF: s.DOF()}

	n := len(ev.x)

	// Size the system from an actual evaluation rather than the
	// declared equation counts: a constraint whose reference is not
	// the entity kind it applies to contributes no equations.
	r := ev.residuals(nil)
	m := len(r)

	if m == 0 {
		// Nothing to solve; pinned positions still apply.
		ev.writeBack()
		res.Status = convergedStatus(res.DOF)
		s.lastResult = res
		return res, nil
	}

	converged := false
	for iter := 0; iter < cfg.maxIter; iter++ {
		res.Iterations = iter
		r = ev.residuals(r[:0])
		res.Residual = norm(r)
		if res.Residual < cfg.tolerance {
			converged = true
			break
		}
		if n == 0 {
			break
		}

		jac := ev.jacobian(r, m, n)

		// Solve the damped normal equations (JᵗJ + λI) d = Jᵗr.
		var a mat.Dense
		a.Mul(jac.T(), jac)
		for i := 0; i < n; i++ {
			a.Set(i, i, a.At(i, i)+regularization)
		}
		var b mat.VecDense
		b.MulVec(jac.T(), mat.NewVecDense(m, r))

		var d mat.VecDense
		if err := d.SolveVec(&a, &b); err != nil {
			break
		}
		for i := 0; i < n; i++ {
			ev.x[i] -= cfg.damping * d.AtVec(i)
		}
	}

	ev.writeBack()
	if !converged {
		res.Status = StatusNotConverged
		if res.DOF < 0 {
			// Structural excess that failed to converge: the
			// constraint set is contradictory.
			res.Status = StatusOverConstrained
		}
		s.lastResult = res
		return res, fmt.Errorf("%w after %d iterations (residual %.3g)",
			ErrNotConverged, res.Iterations+1, res.Residual)
	}
	res.Status = convergedStatus(res.DOF)
	s.lastResult = res
	cad.Logger().Debug("sketch solved",
		"sketch", s.Name,
		"status", res.Status.String(),
		"dof", res.DOF,
		"iterations", res.Iterations,
		"residual", res.Residual)
	return res, nil
}

// convergedStatus classifies a solve that met tolerance. A redundant
// system that converged is consistent, so it counts as fully
// constrained; the DOF stays on the result for callers that care.
func convergedStatus(dof int) SolveStatus {
	if dof > 0 {
		return StatusUnderConstrained
	}
	return StatusFullyConstrained
}

func norm(v []float64) float64 {
	sum := 0.0
	for _, r := range v {
		sum += r * r
	}
	return math.Sqrt(sum)
}

// evaluator maps sketch parameters into a flat unknown vector and
// evaluates entity geometry against it.
type evaluator struct {
	sk *Sketch

	// x holds the unknowns: two slots per free point, one per circle
	// or arc radius, in entity insertion order.
	x []float64

	points map[uuid.UUID]int // index of the X slot; Y is at +1
	radii  map[uuid.UUID]int
	pinned map[uuid.UUID]cad.Vec2
}

func newEvaluator(s *Sketch) *evaluator {
	ev := &evaluator{
		sk:     s,
		points: make(map[uuid.UUID]int),
		radii:  make(map[uuid.UUID]int),
		pinned: make(map[uuid.UUID]cad.Vec2),
	}
	for _, c := range s.constraints {
		if f, ok := c.(*Fixed); ok {
			ev.pinned[f.Point] = cad.V2(f.X, f.Y)
		}
	}
	for _, e := range s.entities {
		switch v := e.(type) {
		case *Point:
			if _, fixed := ev.pinned[v.ID()]; fixed {
				continue
			}
			ev.points[v.ID()] = len(ev.x)
			ev.x = append(ev.x, v.Pos.X, v.Pos.Y)
		case *Circle:
			ev.radii[v.ID()] = len(ev.x)
			ev.x = append(ev.x, v.Radius)
		case *Arc:
			ev.radii[v.ID()] = len(ev.x)
			ev.x = append(ev.x, v.Radius)
		}
	}
	return ev
}

func (ev *evaluator) residuals(dst []float64) []float64 {
	for _, c := range ev.sk.constraints {
		dst = c.residuals(ev, dst)
	}
	return dst
}

// jacobian computes the m by n Jacobian by forward differences around
// the current unknowns. r0 is the residual at the current point.
func (ev *evaluator) jacobian(r0 []float64, m, n int) *mat.Dense {
	jac := mat.NewDense(m, n, nil)
	perturbed := make([]float64, 0, m)
	for j := 0; j < n; j++ {
		saved := ev.x[j]
		ev.x[j] = saved + jacobianStep
		perturbed = ev.residuals(perturbed[:0])
		ev.x[j] = saved
		for i := 0; i < len(perturbed) && i < m; i++ {
			jac.Set(i, j, (perturbed[i]-r0[i])/jacobianStep)
		}
	}
	return jac
}

// writeBack copies the solved unknowns and pinned positions into the
// sketch entities.
func (ev *evaluator) writeBack() {
	for _, e := range ev.sk.entities {
		switch v := e.(type) {
		case *Point:
			if p, ok := ev.pinned[v.ID()]; ok {
				v.Pos = p
			} else if i, ok := ev.points[v.ID()]; ok {
				v.Pos = cad.V2(ev.x[i], ev.x[i+1])
			}
		case *Circle:
			if i, ok := ev.radii[v.ID()]; ok {
				v.Radius = ev.x[i]
			}
		case *Arc:
			if i, ok := ev.radii[v.ID()]; ok {
				v.Radius = ev.x[i]
			}
		}
	}
}

// pos returns the current position of a point, honoring pinned
// coordinates and the unknown vector.
func (ev *evaluator) pos(id uuid.UUID) cad.Vec2 {
	if p, ok := ev.pinned[id]; ok {
		return p
	}
	if i, ok := ev.points[id]; ok {
		return cad.V2(ev.x[i], ev.x[i+1])
	}
	if e, ok := ev.sk.byID[id]; ok {
		if p, ok := e.(*Point); ok {
			return p.Pos
		}
	}
	return cad.Vec2{}
}

func (ev *evaluator) lineEndpoints(id uuid.UUID) (start, end uuid.UUID, ok bool) {
	e, found := ev.sk.byID[id]
	if !found {
		return uuid.Nil, uuid.Nil, false
	}
	l, isLine := e.(*Line)
	if !isLine {
		return uuid.Nil, uuid.Nil, false
	}
	return l.Start, l.End, true
}

// lineDir returns the unnormalized direction vector of a line.
func (ev *evaluator) lineDir(id uuid.UUID) (cad.Vec2, bool) {
	s, e, ok := ev.lineEndpoints(id)
	if !ok {
		return cad.Vec2{}, false
	}
	return ev.pos(e).Sub(ev.pos(s)), true
}

// curveRadius returns the current radius of a circle or arc.
func (ev *evaluator) curveRadius(id uuid.UUID) (float64, bool) {
	if i, ok := ev.radii[id]; ok {
		return ev.x[i], true
	}
	switch c := ev.sk.byID[id].(type) {
	case *Circle:
		return c.Radius, true
	case *Arc:
		return c.Radius, true
	}
	return 0, false
}

// curveCenter returns the center point id of a circle or arc.
func (ev *evaluator) curveCenter(id uuid.UUID) (uuid.UUID, bool) {
	switch c := ev.sk.byID[id].(type) {
	case *Circle:
		return c.Center, true
	case *Arc:
		return c.Center, true
	}
	return uuid.Nil, false
}

// lineCurveTangency returns the tangency residual for a line paired
// with a circle or arc, in either argument order, or nil if neither
// entity is a line. The residual is the distance from the curve center
// to the segment minus the radius.
func (ev *evaluator) lineCurveTangency(a, b uuid.UUID) *float64 {
	lineID, curveID := a, b
	if _, _, ok := ev.lineEndpoints(lineID); !ok {
		lineID, curveID = b, a
		if _, _, ok := ev.lineEndpoints(lineID); !ok {
			return nil
		}
	}
	r, ok := ev.curveRadius(curveID)
	if !ok {
		return nil
	}
	ctrID, ok := ev.curveCenter(curveID)
	if !ok {
		return nil
	}
	s, e, _ := ev.lineEndpoints(lineID)
	res := segmentDistance(ev.pos(ctrID), ev.pos(s), ev.pos(e)) - r
	return &res
}

// segmentDistance returns the distance from p to the segment ab.
func segmentDistance(p, a, b cad.Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.LengthSq()
	if l2 < 1e-18 {
		return p.Sub(a).Length()
	}
	t := p.Sub(a).Dot(ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Sub(a.Add(ab.Mul(t))).Length()
}
