package document

import (
	"fmt"

	"github.com/google/uuid"

	cad "github.com/NOPLAB/urdf-editor-sub001"
	"github.com/NOPLAB/urdf-editor-sub001/sketch"
)

func encodeSketch(s *sketch.Sketch) sketchDTO {
	dto := sketchDTO{
		ID:   s.ID().String(),
		Name: s.Name,
		Plane: planeDTO{
			Origin: toVec3DTO(s.Plane.Origin),
			Normal: toVec3DTO(s.Plane.Normal),
			XAxis:  toVec3DTO(s.Plane.XAxis),
			YAxis:  toVec3DTO(s.Plane.YAxis),
		},
	}
	for _, e := range s.Entities() {
		dto.Entities = append(dto.Entities, encodeEntity(e))
	}
	for _, c := range s.Constraints() {
		dto.Constraints = append(dto.Constraints, encodeConstraint(c))
	}
	return dto
}

func encodeEntity(e sketch.Entity) entityDTO {
	dto := entityDTO{ID: e.ID().String(), Type: e.TypeName()}
	switch v := e.(type) {
	case *sketch.Point:
		dto.X, dto.Y = v.Pos.X, v.Pos.Y
	case *sketch.Line:
		dto.Start, dto.End = v.Start.String(), v.End.String()
	case *sketch.Circle:
		dto.Center, dto.Radius = v.Center.String(), v.Radius
	case *sketch.Arc:
		dto.Center, dto.Radius = v.Center.String(), v.Radius
		dto.StartAngle, dto.EndAngle = v.StartAngle, v.EndAngle
	}
	return dto
}

func encodeConstraint(c sketch.Constraint) constraintDTO {
	dto := constraintDTO{ID: c.ID().String(), Type: c.TypeName()}
	for _, ref := range c.References() {
		dto.Refs = append(dto.Refs, ref.String())
	}
	if d, ok := c.(sketch.Dimensional); ok {
		dto.Value = d.Value()
	}
	if f, ok := c.(*sketch.Fixed); ok {
		dto.X, dto.Y = f.X, f.Y
	}
	return dto
}

func decodeSketch(dto sketchDTO) (*sketch.Sketch, error) {
	id, err := parseID(dto.ID, "sketch")
	if err != nil {
		return nil, err
	}
	plane := cad.Plane{
		Origin: dto.Plane.Origin.toVec3(),
		Normal: dto.Plane.Normal.toVec3(),
		XAxis:  dto.Plane.XAxis.toVec3(),
		YAxis:  dto.Plane.YAxis.toVec3(),
	}
	s := sketch.New(dto.Name, plane)
	s.RestoreID(id)

	for _, ed := range dto.Entities {
		e, err := decodeEntity(ed)
		if err != nil {
			return nil, err
		}
		if err := s.AddEntity(e); err != nil {
			return nil, fmt.Errorf("document: sketch %q: %w", dto.Name, err)
		}
	}
	for _, cd := range dto.Constraints {
		c, err := decodeConstraint(cd)
		if err != nil {
			return nil, err
		}
		if err := s.AddConstraint(c); err != nil {
			return nil, fmt.Errorf("document: sketch %q: %w", dto.Name, err)
		}
	}
	return s, nil
}

func decodeEntity(dto entityDTO) (sketch.Entity, error) {
	id, err := parseID(dto.ID, "entity")
	if err != nil {
		return nil, err
	}

	var e sketch.Entity
	switch dto.Type {
	case "Point":
		e = sketch.NewPoint(cad.V2(dto.X, dto.Y))
	case "Line":
		start, err := parseID(dto.Start, "line start")
		if err != nil {
			return nil, err
		}
		end, err := parseID(dto.End, "line end")
		if err != nil {
			return nil, err
		}
		e = sketch.NewLine(start, end)
	case "Circle":
		center, err := parseID(dto.Center, "circle center")
		if err != nil {
			return nil, err
		}
		e = sketch.NewCircle(center, dto.Radius)
	case "Arc":
		center, err := parseID(dto.Center, "arc center")
		if err != nil {
			return nil, err
		}
		e = sketch.NewArc(center, dto.Radius, dto.StartAngle, dto.EndAngle)
	default:
		return nil, fmt.Errorf("document: unknown entity type %q", dto.Type)
	}
	sketch.RestoreEntityID(e, id)
	return e, nil
}

func decodeConstraint(dto constraintDTO) (sketch.Constraint, error) {
	id, err := parseID(dto.ID, "constraint")
	if err != nil {
		return nil, err
	}
	refs := make([]uuid.UUID, len(dto.Refs))
	for i, r := range dto.Refs {
		refs[i], err = parseID(r, "constraint ref")
		if err != nil {
			return nil, err
		}
	}
	need := func(n int) error {
		if len(refs) != n {
			return fmt.Errorf("document: constraint %s needs %d refs, got %d", dto.Type, n, len(refs))
		}
		return nil
	}

	var c sketch.Constraint
	switch dto.Type {
	case "Coincident":
		if err := need(2); err != nil {
			return nil, err
		}
		c = sketch.NewCoincident(refs[0], refs[1])
	case "Horizontal":
		if err := need(1); err != nil {
			return nil, err
		}
		c = sketch.NewHorizontal(refs[0])
	case "Vertical":
		if err := need(1); err != nil {
			return nil, err
		}
		c = sketch.NewVertical(refs[0])
	case "Parallel":
		if err := need(2); err != nil {
			return nil, err
		}
		c = sketch.NewParallel(refs[0], refs[1])
	case "Perpendicular":
		if err := need(2); err != nil {
			return nil, err
		}
		c = sketch.NewPerpendicular(refs[0], refs[1])
	case "Tangent":
		if err := need(2); err != nil {
			return nil, err
		}
		c = sketch.NewTangent(refs[0], refs[1])
	case "EqualLength":
		if err := need(2); err != nil {
			return nil, err
		}
		c = sketch.NewEqualLength(refs[0], refs[1])
	case "EqualRadius":
		if err := need(2); err != nil {
			return nil, err
		}
		c = sketch.NewEqualRadius(refs[0], refs[1])
	case "PointOnCurve":
		if err := need(2); err != nil {
			return nil, err
		}
		c = sketch.NewPointOnCurve(refs[0], refs[1])
	case "Midpoint":
		if err := need(2); err != nil {
			return nil, err
		}
		c = sketch.NewMidpoint(refs[0], refs[1])
	case "Symmetric":
		if err := need(3); err != nil {
			return nil, err
		}
		c = sketch.NewSymmetric(refs[0], refs[1], refs[2])
	case "Fixed":
		if err := need(1); err != nil {
			return nil, err
		}
		c = sketch.NewFixed(refs[0], dto.X, dto.Y)
	case "Distance":
		if err := need(2); err != nil {
			return nil, err
		}
		c = sketch.NewDistance(refs[0], refs[1], dto.Value)
	case "HorizontalDistance":
		if err := need(2); err != nil {
			return nil, err
		}
		c = sketch.NewHorizontalDistance(refs[0], refs[1], dto.Value)
	case "VerticalDistance":
		if err := need(2); err != nil {
			return nil, err
		}
		c = sketch.NewVerticalDistance(refs[0], refs[1], dto.Value)
	case "Angle":
		if err := need(2); err != nil {
			return nil, err
		}
		c = sketch.NewAngle(refs[0], refs[1], dto.Value)
	case "Radius":
		if err := need(1); err != nil {
			return nil, err
		}
		c = sketch.NewRadius(refs[0], dto.Value)
	case "Diameter":
		if err := need(1); err != nil {
			return nil, err
		}
		c = sketch.NewDiameter(refs[0], dto.Value)
	case "Length":
		if err := need(1); err != nil {
			return nil, err
		}
		c = sketch.NewLength(refs[0], dto.Value)
	default:
		return nil, fmt.Errorf("document: unknown constraint type %q", dto.Type)
	}
	sketch.RestoreConstraintID(c, id)
	return c, nil
}
