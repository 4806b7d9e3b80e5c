package preview

import (
	"image/color"
	"os"
	"testing"

	"github.com/google/uuid"

	cad "github.com/NOPLAB/urdf-editor-sub001"
	"github.com/NOPLAB/urdf-editor-sub001/sketch"
)

func squareSketch(t *testing.T) *sketch.Sketch {
	t.Helper()
	s := sketch.New("square", cad.PlaneXY())
	p1 := s.AddPoint(0, 0)
	p2 := s.AddPoint(10, 0)
	p3 := s.AddPoint(10, 10)
	p4 := s.AddPoint(0, 10)
	for _, pair := range [][2]uuid.UUID{
		{p1.ID(), p2.ID()}, {p2.ID(), p3.ID()}, {p3.ID(), p4.ID()}, {p4.ID(), p1.ID()},
	} {
		if _, err := s.AddLine(pair[0], pair[1]); err != nil {
			t.Fatalf("AddLine: %v", err)
		}
	}
	return s
}

func TestRenderSquare(t *testing.T) {
	img := Render(squareSketch(t), WithSize(200, 200))
	if got := img.Bounds().Dx(); got != 200 {
		t.Fatalf("width = %d, want 200", got)
	}

	// The corner stays background; somewhere in the frame the square's
	// stroke must have landed.
	bg := img.RGBAAt(1, 1)
	if bg.R != 0xff || bg.G != 0xff || bg.B != 0xff {
		t.Fatalf("corner pixel = %v, want white background", bg)
	}
	inked := 0
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			c := img.RGBAAt(x, y)
			if c.R < 0x80 && c.G < 0x80 && c.B < 0x80 {
				inked++
			}
		}
	}
	if inked < 100 {
		t.Fatalf("stroke pixels = %d, want at least 100", inked)
	}
}

func TestRenderEmptySketch(t *testing.T) {
	s := sketch.New("empty", cad.PlaneXY())
	img := Render(s, WithSize(64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			c := img.RGBAAt(x, y)
			if c.R != 0xff || c.G != 0xff || c.B != 0xff {
				t.Fatalf("pixel (%d,%d) = %v, want all background", x, y, c)
			}
		}
	}
}

func TestRenderCircle(t *testing.T) {
	s := sketch.New("circle", cad.PlaneXY())
	ctr := s.AddPoint(0, 0)
	if _, err := s.AddCircle(ctr.ID(), 5); err != nil {
		t.Fatalf("AddCircle: %v", err)
	}

	img := Render(s, WithSize(100, 100), WithColors(color.Black, color.White, color.White))
	// Inverted colors: background black, stroke white.
	if c := img.RGBAAt(1, 1); c.R != 0 || c.G != 0 || c.B != 0 {
		t.Fatalf("corner pixel = %v, want black background", c)
	}
	lit := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if c := img.RGBAAt(x, y); c.R > 0x80 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("circle stroke left no pixels")
	}
}

func TestSavePNG(t *testing.T) {
	path := t.TempDir() + "/sketch.png"
	if err := SavePNG(path, squareSketch(t)); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("wrote empty PNG")
	}
}
