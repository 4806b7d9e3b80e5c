package cad

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"testing"
)

func TestWriteSTLLayout(t *testing.T) {
	var m TriangleMesh
	m.AddTriangle(V3(0, 0, 0), V3(1, 0, 0), V3(0, 1, 0))
	m.AddTriangle(V3(0, 0, 1), V3(1, 0, 1), V3(0, 1, 1))

	var buf bytes.Buffer
	if err := WriteSTL(&buf, &m, "part"); err != nil {
		t.Fatalf("WriteSTL: %v", err)
	}

	data := buf.Bytes()
	wantLen := 80 + 4 + 50*m.TriangleCount()
	if len(data) != wantLen {
		t.Fatalf("length = %d, want %d", len(data), wantLen)
	}
	if string(data[:4]) != "part" {
		t.Errorf("header = %q, want name prefix", data[:8])
	}
	if count := binary.LittleEndian.Uint32(data[80:84]); count != 2 {
		t.Errorf("triangle count = %d, want 2", count)
	}

	// First triangle's normal is +Z.
	nz := math.Float32frombits(binary.LittleEndian.Uint32(data[84+8 : 84+12]))
	if math.Abs(float64(nz)-1) > 1e-6 {
		t.Errorf("normal z = %g, want 1", nz)
	}
	// Attribute byte count is zero.
	if data[84+48] != 0 || data[84+49] != 0 {
		t.Error("attribute bytes should be zero")
	}
}

func TestSaveSTL(t *testing.T) {
	var m TriangleMesh
	m.AddTriangle(V3(0, 0, 0), V3(1, 0, 0), V3(0, 1, 0))

	path := t.TempDir() + "/tri.stl"
	if err := SaveSTL(path, &m, "tri"); err != nil {
		t.Fatalf("SaveSTL: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() != 80+4+50 {
		t.Fatalf("file size = %d, want %d", info.Size(), 80+4+50)
	}
}
