// Package preview renders sketches to raster images for thumbnails
// and quick visual checks.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/google/uuid"
	"golang.org/x/image/vector"

	cad "github.com/NOPLAB/urdf-editor-sub001"
	"github.com/NOPLAB/urdf-editor-sub001/sketch"
)

const (
	defaultSize        = 512
	defaultPadding     = 24.0
	defaultStrokeWidth = 1.5
	// markerRadius is the point marker size in pixels.
	markerRadius = 3.0
	// circleSegments is the polyline resolution for circles and arcs.
	circleSegments = 64
)

type config struct {
	width, height int
	padding       float64
	strokeWidth   float64
	background    color.Color
	stroke        color.Color
	marker        color.Color
}

// Option configures a Render call.
type Option func(*config)

// WithSize sets the output image size in pixels.
func WithSize(width, height int) Option {
	return func(c *config) {
		if width > 0 && height > 0 {
			c.width, c.height = width, height
		}
	}
}

// WithPadding sets the blank border around the sketch in pixels.
func WithPadding(px float64) Option {
	return func(c *config) {
		if px >= 0 {
			c.padding = px
		}
	}
}

// WithStrokeWidth sets the line width in pixels.
func WithStrokeWidth(px float64) Option {
	return func(c *config) {
		if px > 0 {
			c.strokeWidth = px
		}
	}
}

// WithColors sets the background, stroke and point marker colors.
func WithColors(background, stroke, marker color.Color) Option {
	return func(c *config) {
		c.background, c.stroke, c.marker = background, stroke, marker
	}
}

// Render draws the sketch's entities in its local plane coordinates
// and returns the image. The sketch is scaled to fit with the
// configured padding; Y points up.
func Render(s *sketch.Sketch, opts ...Option) *image.RGBA {
	cfg := config{
		width:       defaultSize,
		height:      defaultSize,
		padding:     defaultPadding,
		strokeWidth: defaultStrokeWidth,
		background:  color.White,
		stroke:      color.Black,
		marker:      color.RGBA{R: 0xd0, G: 0x40, B: 0x30, A: 0xff},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	img := image.NewRGBA(image.Rect(0, 0, cfg.width, cfg.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(cfg.background), image.Point{}, draw.Src)

	tr, ok := fitTransform(s, cfg)
	if !ok {
		return img
	}

	strokes := vector.NewRasterizer(cfg.width, cfg.height)
	markers := vector.NewRasterizer(cfg.width, cfg.height)

	for _, e := range s.Entities() {
		switch v := e.(type) {
		case *sketch.Point:
			x, y := tr.apply(v.Pos)
			fillCircle(markers, x, y, markerRadius)
		case *sketch.Line:
			sp, ok1 := pointPos(s, v.Start)
			ep, ok2 := pointPos(s, v.End)
			if !ok1 || !ok2 {
				continue
			}
			x1, y1 := tr.apply(sp)
			x2, y2 := tr.apply(ep)
			strokeSegment(strokes, x1, y1, x2, y2, cfg.strokeWidth)
		case *sketch.Circle:
			ctr, ok := pointPos(s, v.Center)
			if !ok {
				continue
			}
			strokeArc(strokes, tr, ctr, v.Radius, 0, 2*math.Pi, cfg.strokeWidth)
		case *sketch.Arc:
			ctr, ok := pointPos(s, v.Center)
			if !ok {
				continue
			}
			strokeArc(strokes, tr, ctr, v.Radius, v.StartAngle, v.EndAngle, cfg.strokeWidth)
		}
	}

	strokes.Draw(img, img.Bounds(), image.NewUniform(cfg.stroke), image.Point{})
	markers.Draw(img, img.Bounds(), image.NewUniform(cfg.marker), image.Point{})
	return img
}

// SavePNG renders the sketch and writes it to the named file.
func SavePNG(path string, s *sketch.Sketch, opts ...Option) error {
	img := Render(s, opts...)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("preview: encode: %w", err)
	}
	return f.Close()
}

// transform maps sketch coordinates to pixel coordinates with Y
// flipped.
type transform struct {
	scale  float64
	ox, oy float64 // sketch-space origin of the viewport
	px, py float64 // pixel-space offset
}

func (t transform) apply(p cad.Vec2) (float32, float32) {
	return float32(t.px + (p.X-t.ox)*t.scale), float32(t.py - (p.Y-t.oy)*t.scale)
}

func fitTransform(s *sketch.Sketch, cfg config) (transform, bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	for _, e := range s.Entities() {
		switch v := e.(type) {
		case *sketch.Point:
			grow(v.Pos.X, v.Pos.Y)
		case *sketch.Circle:
			if ctr, ok := pointPos(s, v.Center); ok {
				grow(ctr.X-v.Radius, ctr.Y-v.Radius)
				grow(ctr.X+v.Radius, ctr.Y+v.Radius)
			}
		case *sketch.Arc:
			if ctr, ok := pointPos(s, v.Center); ok {
				grow(ctr.X-v.Radius, ctr.Y-v.Radius)
				grow(ctr.X+v.Radius, ctr.Y+v.Radius)
			}
		}
	}
	if math.IsInf(minX, 1) {
		return transform{}, false
	}

	dx, dy := maxX-minX, maxY-minY
	if dx < 1e-9 {
		dx = 1
	}
	if dy < 1e-9 {
		dy = 1
	}
	availW := float64(cfg.width) - 2*cfg.padding
	availH := float64(cfg.height) - 2*cfg.padding
	if availW <= 0 || availH <= 0 {
		return transform{}, false
	}
	scale := math.Min(availW/dx, availH/dy)

	return transform{
		scale: scale,
		ox:    minX,
		oy:    minY,
		px:    (float64(cfg.width) - dx*scale) / 2,
		py:    float64(cfg.height) - (float64(cfg.height)-dy*scale)/2,
	}, true
}

func pointPos(s *sketch.Sketch, id uuid.UUID) (cad.Vec2, bool) {
	e, ok := s.Entity(id)
	if !ok {
		return cad.Vec2{}, false
	}
	p, isPoint := e.(*sketch.Point)
	if !isPoint {
		return cad.Vec2{}, false
	}
	return p.Pos, true
}

// strokeSegment appends a filled quad covering the segment with the
// given width.
func strokeSegment(r *vector.Rasterizer, x1, y1, x2, y2 float32, width float64) {
	dx, dy := float64(x2-x1), float64(y2-y1)
	l := math.Hypot(dx, dy)
	if l < 1e-6 {
		return
	}
	// Unit normal scaled to half width.
	nx := float32(-dy / l * width / 2)
	ny := float32(dx / l * width / 2)

	r.MoveTo(x1+nx, y1+ny)
	r.LineTo(x2+nx, y2+ny)
	r.LineTo(x2-nx, y2-ny)
	r.LineTo(x1-nx, y1-ny)
	r.ClosePath()
}

func strokeArc(r *vector.Rasterizer, tr transform, center cad.Vec2, radius, start, end float64, width float64) {
	if end < start {
		end += 2 * math.Pi
	}
	prevX, prevY := tr.apply(arcPoint(center, radius, start))
	for i := 1; i <= circleSegments; i++ {
		a := start + (end-start)*float64(i)/circleSegments
		x, y := tr.apply(arcPoint(center, radius, a))
		strokeSegment(r, prevX, prevY, x, y, width)
		prevX, prevY = x, y
	}
}

func arcPoint(center cad.Vec2, radius, angle float64) cad.Vec2 {
	return cad.V2(center.X+radius*math.Cos(angle), center.Y+radius*math.Sin(angle))
}

func fillCircle(r *vector.Rasterizer, cx, cy float32, radius float64) {
	const steps = 16
	r.MoveTo(cx+float32(radius), cy)
	for i := 1; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / steps
		r.LineTo(cx+float32(radius*math.Cos(a)), cy+float32(radius*math.Sin(a)))
	}
	r.ClosePath()
}
