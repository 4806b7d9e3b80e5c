// Package document saves and loads models as YAML. Geometry is not
// persisted; a loaded model carries its sketches and feature timeline
// and is rebuilt against a kernel to recover its bodies.
package document

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	cad "github.com/NOPLAB/urdf-editor-sub001"
	"github.com/NOPLAB/urdf-editor-sub001/history"
	"github.com/NOPLAB/urdf-editor-sub001/sketch"
)

// Version is the document format version written by Save.
const Version = 1

// ErrVersion is returned when loading a document with an unsupported
// format version.
var ErrVersion = errors.New("document: unsupported format version")

type vec3DTO struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func toVec3DTO(v cad.Vec3) vec3DTO { return vec3DTO{v.X, v.Y, v.Z} }
func (d vec3DTO) toVec3() cad.Vec3 { return cad.V3(d.X, d.Y, d.Z) }

type planeDTO struct {
	Origin vec3DTO `yaml:"origin"`
	Normal vec3DTO `yaml:"normal"`
	XAxis  vec3DTO `yaml:"x_axis"`
	YAxis  vec3DTO `yaml:"y_axis"`
}

type entityDTO struct {
	ID   string `yaml:"id"`
	Type string `yaml:"type"`

	// Point.
	X float64 `yaml:"x,omitempty"`
	Y float64 `yaml:"y,omitempty"`

	// Line.
	Start string `yaml:"start,omitempty"`
	End   string `yaml:"end,omitempty"`

	// Circle and arc.
	Center     string  `yaml:"center,omitempty"`
	Radius     float64 `yaml:"radius,omitempty"`
	StartAngle float64 `yaml:"start_angle,omitempty"`
	EndAngle   float64 `yaml:"end_angle,omitempty"`
}

type constraintDTO struct {
	ID   string `yaml:"id"`
	Type string `yaml:"type"`

	// Refs lists the referenced entity ids in the constraint's
	// natural argument order.
	Refs []string `yaml:"refs,omitempty"`

	// Value holds the target of dimensional constraints.
	Value float64 `yaml:"value,omitempty"`

	// X and Y hold the pinned position of fixed constraints.
	X float64 `yaml:"x,omitempty"`
	Y float64 `yaml:"y,omitempty"`
}

type sketchDTO struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Plane       planeDTO        `yaml:"plane"`
	Entities    []entityDTO     `yaml:"entities,omitempty"`
	Constraints []constraintDTO `yaml:"constraints,omitempty"`
}

type edgeDTO struct {
	Solid string `yaml:"solid"`
	Index int    `yaml:"index"`
}

type faceDTO struct {
	Solid string `yaml:"solid"`
	Index int    `yaml:"index"`
}

type axisDTO struct {
	Origin    vec3DTO `yaml:"origin"`
	Direction vec3DTO `yaml:"direction"`
}

type featureDTO struct {
	ID         string `yaml:"id"`
	Type       string `yaml:"type"`
	Name       string `yaml:"name"`
	Suppressed bool   `yaml:"suppressed,omitempty"`

	Sketch   string   `yaml:"sketch,omitempty"`
	Sketches []string `yaml:"sketches,omitempty"`

	Distance  float64 `yaml:"distance,omitempty"`
	Direction string  `yaml:"direction,omitempty"`
	Draft     float64 `yaml:"draft,omitempty"`

	Axis  *axisDTO `yaml:"axis,omitempty"`
	Angle float64  `yaml:"angle,omitempty"`

	Op     string `yaml:"op,omitempty"`
	Target string `yaml:"target,omitempty"`
	Tool   string `yaml:"tool,omitempty"`
	Body   string `yaml:"body,omitempty"`

	Radius    float64   `yaml:"radius,omitempty"`
	Thickness float64   `yaml:"thickness,omitempty"`
	Edges     []edgeDTO `yaml:"edges,omitempty"`
	Faces     []faceDTO `yaml:"faces,omitempty"`

	ProfileSketch string `yaml:"profile_sketch,omitempty"`
	PathSketch    string `yaml:"path_sketch,omitempty"`
	Solid         bool   `yaml:"solid,omitempty"`
	Ruled         bool   `yaml:"ruled,omitempty"`
}

type documentDTO struct {
	Version  int          `yaml:"version"`
	Sketches []sketchDTO  `yaml:"sketches,omitempty"`
	Features []featureDTO `yaml:"features,omitempty"`

	// Rollback is the 1-based rollback cursor, 0 when the full
	// timeline is active.
	Rollback int `yaml:"rollback,omitempty"`
}

// Save writes the model to w as YAML.
func Save(w io.Writer, h *history.History) error {
	doc := documentDTO{Version: Version}

	sketches := make([]*sketch.Sketch, 0, len(h.Sketches()))
	for _, s := range h.Sketches() {
		sketches = append(sketches, s)
	}
	sort.Slice(sketches, func(i, j int) bool {
		return sketches[i].ID().String() < sketches[j].ID().String()
	})
	for _, s := range sketches {
		doc.Sketches = append(doc.Sketches, encodeSketch(s))
	}

	for _, f := range h.Features() {
		dto, err := encodeFeature(f)
		if err != nil {
			return err
		}
		doc.Features = append(doc.Features, dto)
	}
	if pos, ok := h.RollbackPosition(); ok {
		doc.Rollback = pos
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("document: encode: %w", err)
	}
	return enc.Close()
}

// SaveFile writes the model to the named file.
func SaveFile(path string, h *history.History) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("document: %w", err)
	}
	if err := Save(f, h); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a model from r. The returned history has no bodies;
// call Rebuild to reconstruct them.
func Load(r io.Reader) (*history.History, error) {
	var doc documentDTO
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("document: decode: %w", err)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, doc.Version)
	}

	h := history.New()
	for _, sd := range doc.Sketches {
		s, err := decodeSketch(sd)
		if err != nil {
			return nil, err
		}
		h.AddSketch(s)
	}
	for _, fd := range doc.Features {
		f, err := decodeFeature(fd)
		if err != nil {
			return nil, err
		}
		h.AddFeature(f)
	}
	if doc.Rollback > 0 {
		if doc.Rollback > h.Len() {
			return nil, fmt.Errorf("document: rollback position %d past end", doc.Rollback)
		}
		if f, ok := h.Feature(doc.Rollback - 1); ok {
			if err := h.RollbackTo(f.ID()); err != nil {
				return nil, err
			}
		}
	}
	return h, nil
}

// LoadFile reads a model from the named file.
func LoadFile(path string) (*history.History, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func parseID(s, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("document: bad %s id %q: %w", what, s, err)
	}
	return id, nil
}

func parseOptionalID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	return parseID(s, what)
}
