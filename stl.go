package cad

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// WriteSTL writes the mesh to w in binary STL format. The header is
// padded with the given name (truncated to 80 bytes).
func WriteSTL(w io.Writer, m *TriangleMesh, name string) error {
	var header [80]byte
	copy(header[:], name)
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("stl: write header: %w", err)
	}

	count := uint32(m.TriangleCount())
	if err := binary.Write(w, binary.LittleEndian, count); err != nil {
		return fmt.Errorf("stl: write count: %w", err)
	}

	// 12 floats (normal + 3 vertices) plus the attribute byte count.
	var tri [50]byte
	for t := 0; t < int(count); t++ {
		i0 := m.Indices[3*t]
		i1 := m.Indices[3*t+1]
		i2 := m.Indices[3*t+2]
		a, b, c := m.Vertices[i0], m.Vertices[i1], m.Vertices[i2]
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()

		putVec3(tri[0:], n)
		putVec3(tri[12:], a)
		putVec3(tri[24:], b)
		putVec3(tri[36:], c)
		tri[48], tri[49] = 0, 0

		if _, err := w.Write(tri[:]); err != nil {
			return fmt.Errorf("stl: write triangle %d: %w", t, err)
		}
	}
	return nil
}

// SaveSTL writes the mesh to a binary STL file.
func SaveSTL(path string, m *TriangleMesh, name string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("stl: %w", err)
	}
	if err := WriteSTL(f, m, name); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func putVec3(dst []byte, v Vec3) {
	binary.LittleEndian.PutUint32(dst[0:], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(dst[4:], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(dst[8:], math.Float32bits(float32(v.Z)))
}
