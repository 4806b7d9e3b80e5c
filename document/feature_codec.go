package document

import (
	"fmt"

	"github.com/google/uuid"

	cad "github.com/NOPLAB/urdf-editor-sub001"
	"github.com/NOPLAB/urdf-editor-sub001/feature"
)

func encodeDirection(d feature.Direction) string { return d.String() }

func decodeDirection(s string) (feature.Direction, error) {
	switch s {
	case "", "positive":
		return feature.DirPositive, nil
	case "negative":
		return feature.DirNegative, nil
	case "symmetric":
		return feature.DirSymmetric, nil
	default:
		return 0, fmt.Errorf("document: unknown direction %q", s)
	}
}

func encodeOp(op feature.BooleanOp) string {
	if op == feature.OpNew {
		return "" // omitted in YAML
	}
	return op.String()
}

func decodeOp(s string) (feature.BooleanOp, error) {
	switch s {
	case "", "new":
		return feature.OpNew, nil
	case "join":
		return feature.OpJoin, nil
	case "cut":
		return feature.OpCut, nil
	case "intersect":
		return feature.OpIntersect, nil
	default:
		return 0, fmt.Errorf("document: unknown boolean op %q", s)
	}
}

func encodeEdges(edges []cad.EdgeID) []edgeDTO {
	out := make([]edgeDTO, len(edges))
	for i, e := range edges {
		out[i] = edgeDTO{Solid: e.SolidID.String(), Index: e.Index}
	}
	return out
}

func decodeEdges(dtos []edgeDTO) ([]cad.EdgeID, error) {
	out := make([]cad.EdgeID, len(dtos))
	for i, d := range dtos {
		id, err := parseID(d.Solid, "edge solid")
		if err != nil {
			return nil, err
		}
		out[i] = cad.EdgeID{SolidID: id, Index: d.Index}
	}
	return out, nil
}

func encodeFaces(faces []cad.FaceID) []faceDTO {
	out := make([]faceDTO, len(faces))
	for i, f := range faces {
		out[i] = faceDTO{Solid: f.SolidID.String(), Index: f.Index}
	}
	return out
}

func decodeFaces(dtos []faceDTO) ([]cad.FaceID, error) {
	out := make([]cad.FaceID, len(dtos))
	for i, d := range dtos {
		id, err := parseID(d.Solid, "face solid")
		if err != nil {
			return nil, err
		}
		out[i] = cad.FaceID{SolidID: id, Index: d.Index}
	}
	return out, nil
}

func idOrEmpty(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

func encodeFeature(f feature.Feature) (featureDTO, error) {
	dto := featureDTO{
		ID:         f.ID().String(),
		Type:       f.TypeName(),
		Name:       f.Name(),
		Suppressed: f.Suppressed(),
	}
	switch v := f.(type) {
	case *feature.Extrude:
		dto.Sketch = v.SketchID.String()
		dto.Distance = v.Distance
		dto.Direction = encodeDirection(v.Direction)
		dto.Op = encodeOp(v.Op)
		dto.Target = idOrEmpty(v.TargetBody)
		dto.Draft = v.DraftAngle
	case *feature.Revolve:
		dto.Sketch = v.SketchID.String()
		dto.Axis = &axisDTO{
			Origin:    toVec3DTO(v.Axis.Origin),
			Direction: toVec3DTO(v.Axis.Direction),
		}
		dto.Angle = v.Angle
		dto.Op = encodeOp(v.Op)
		dto.Target = idOrEmpty(v.TargetBody)
	case *feature.Boolean:
		dto.Target = v.TargetBody.String()
		dto.Tool = v.ToolBody.String()
		dto.Op = v.Op.String()
	case *feature.Fillet:
		dto.Body = v.BodyID.String()
		dto.Radius = v.Radius
		dto.Edges = encodeEdges(v.Edges)
	case *feature.Chamfer:
		dto.Body = v.BodyID.String()
		dto.Distance = v.Distance
		dto.Edges = encodeEdges(v.Edges)
	case *feature.Shell:
		dto.Body = v.BodyID.String()
		dto.Thickness = v.Thickness
		dto.Faces = encodeFaces(v.RemoveFaces)
	case *feature.Sweep:
		dto.ProfileSketch = v.ProfileSketchID.String()
		dto.PathSketch = v.PathSketchID.String()
		dto.Op = encodeOp(v.Op)
		dto.Target = idOrEmpty(v.TargetBody)
	case *feature.Loft:
		for _, id := range v.SketchIDs {
			dto.Sketches = append(dto.Sketches, id.String())
		}
		dto.Solid = v.Solid
		dto.Ruled = v.Ruled
		dto.Op = encodeOp(v.Op)
		dto.Target = idOrEmpty(v.TargetBody)
	default:
		return featureDTO{}, fmt.Errorf("document: unknown feature type %T", f)
	}
	return dto, nil
}

func decodeFeature(dto featureDTO) (feature.Feature, error) {
	id, err := parseID(dto.ID, "feature")
	if err != nil {
		return nil, err
	}
	op, err := decodeOp(dto.Op)
	if err != nil {
		return nil, err
	}
	target, err := parseOptionalID(dto.Target, "target body")
	if err != nil {
		return nil, err
	}

	var f feature.Feature
	switch dto.Type {
	case "Extrude":
		sketchID, err := parseID(dto.Sketch, "sketch")
		if err != nil {
			return nil, err
		}
		dir, err := decodeDirection(dto.Direction)
		if err != nil {
			return nil, err
		}
		e := feature.NewExtrude(dto.Name, sketchID, dto.Distance, dir)
		e.Op = op
		e.TargetBody = target
		e.DraftAngle = dto.Draft
		f = e
	case "Revolve":
		sketchID, err := parseID(dto.Sketch, "sketch")
		if err != nil {
			return nil, err
		}
		if dto.Axis == nil {
			return nil, fmt.Errorf("document: revolve %q missing axis", dto.Name)
		}
		axis := cad.NewAxis(dto.Axis.Origin.toVec3(), dto.Axis.Direction.toVec3())
		r := feature.NewRevolve(dto.Name, sketchID, axis, dto.Angle)
		r.Op = op
		r.TargetBody = target
		f = r
	case "Boolean":
		tool, err := parseID(dto.Tool, "tool body")
		if err != nil {
			return nil, err
		}
		if target == uuid.Nil {
			return nil, fmt.Errorf("document: boolean %q missing target", dto.Name)
		}
		f = feature.NewBoolean(dto.Name, target, tool, op)
	case "Fillet":
		body, err := parseID(dto.Body, "body")
		if err != nil {
			return nil, err
		}
		edges, err := decodeEdges(dto.Edges)
		if err != nil {
			return nil, err
		}
		f = feature.NewFillet(dto.Name, body, edges, dto.Radius)
	case "Chamfer":
		body, err := parseID(dto.Body, "body")
		if err != nil {
			return nil, err
		}
		edges, err := decodeEdges(dto.Edges)
		if err != nil {
			return nil, err
		}
		f = feature.NewChamfer(dto.Name, body, edges, dto.Distance)
	case "Shell":
		body, err := parseID(dto.Body, "body")
		if err != nil {
			return nil, err
		}
		faces, err := decodeFaces(dto.Faces)
		if err != nil {
			return nil, err
		}
		f = feature.NewShell(dto.Name, body, dto.Thickness, faces)
	case "Sweep":
		profile, err := parseID(dto.ProfileSketch, "profile sketch")
		if err != nil {
			return nil, err
		}
		path, err := parseID(dto.PathSketch, "path sketch")
		if err != nil {
			return nil, err
		}
		sw := feature.NewSweep(dto.Name, profile, path)
		sw.Op = op
		sw.TargetBody = target
		f = sw
	case "Loft":
		ids := make([]uuid.UUID, len(dto.Sketches))
		for i, s := range dto.Sketches {
			ids[i], err = parseID(s, "loft sketch")
			if err != nil {
				return nil, err
			}
		}
		l := feature.NewLoft(dto.Name, ids, dto.Solid, dto.Ruled)
		l.Op = op
		l.TargetBody = target
		f = l
	default:
		return nil, fmt.Errorf("document: unknown feature type %q", dto.Type)
	}
	feature.RestoreFeatureID(f, id)
	if dto.Suppressed {
		f.SetSuppressed(true)
	}
	return f, nil
}
