// Command cadtool loads model documents, rebuilds their geometry and
// exports the results as STL meshes or sketch preview images.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sort"

	cad "github.com/NOPLAB/urdf-editor-sub001"
	"github.com/NOPLAB/urdf-editor-sub001/document"
	"github.com/NOPLAB/urdf-editor-sub001/history"
	"github.com/NOPLAB/urdf-editor-sub001/kernel"
	"github.com/NOPLAB/urdf-editor-sub001/preview"
	"github.com/NOPLAB/urdf-editor-sub001/sketch"
)

func main() {
	var (
		input       = flag.String("in", "", "model document to load (YAML)")
		kernelName  = flag.String("kernel", "", "geometry kernel to use (default: best available)")
		info        = flag.Bool("info", false, "print the model's sketches, features and bodies")
		stlOut      = flag.String("stl", "", "export rebuilt bodies to an STL file")
		previewOut  = flag.String("preview", "", "render the model's sketches to a PNG file")
		previewSize = flag.Int("preview-size", 512, "preview image size in pixels")
		tolerance   = flag.Float64("tolerance", 0.1, "tessellation tolerance")
		verbose     = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		cad.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	h, err := document.LoadFile(*input)
	if err != nil {
		log.Fatalf("load %s: %v", *input, err)
	}

	k := pickKernel(*kernelName)
	h.Rebuild(k)

	if *info {
		printInfo(h, k)
	}
	if *stlOut != "" {
		if err := exportSTL(h, *stlOut, *tolerance, k); err != nil {
			log.Fatalf("export STL: %v", err)
		}
		log.Printf("wrote %s", *stlOut)
	}
	if *previewOut != "" {
		if err := exportPreview(h, *previewOut, *previewSize); err != nil {
			log.Fatalf("export preview: %v", err)
		}
		log.Printf("wrote %s", *previewOut)
	}
}

func pickKernel(name string) kernel.Kernel {
	if name == "" {
		return kernel.Default()
	}
	k := kernel.Get(name)
	if k == nil {
		log.Fatalf("unknown kernel %q (registered: %v)", name, kernel.Available())
	}
	return k
}

func printInfo(h *history.History, k kernel.Kernel) {
	fmt.Printf("kernel: %s\n", k.Name())

	fmt.Printf("sketches: %d\n", len(h.Sketches()))
	for _, s := range sortedSketches(h) {
		fmt.Printf("  %-20s entities=%d constraints=%d dof=%d\n",
			s.Name, len(s.Entities()), len(s.Constraints()), s.DOF())
	}

	fmt.Printf("features: %d (effective %d)\n", h.Len(), h.EffectiveLen())
	for i, f := range h.Features() {
		marker := " "
		if i >= h.EffectiveLen() {
			marker = "x" // hidden by rollback
		} else if f.Suppressed() {
			marker = "s"
		}
		fmt.Printf("  %s %-10s %s\n", marker, f.TypeName(), f.Name())
	}

	fmt.Printf("bodies: %d\n", len(h.Bodies()))
	for _, b := range sortedBodies(h) {
		fmt.Printf("  %-20s %s\n", b.Name, b.ID)
	}
}

func sortedSketches(h *history.History) []*sketch.Sketch {
	out := make([]*sketch.Sketch, 0, len(h.Sketches()))
	for _, s := range h.Sketches() {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func exportSTL(h *history.History, path string, tolerance float64, k kernel.Kernel) error {
	var merged cad.TriangleMesh
	for _, b := range sortedBodies(h) {
		mesh, err := b.Mesh(k, tolerance)
		if err != nil {
			log.Printf("skipping body %s: %v", b.Name, err)
			continue
		}
		merged.Append(mesh)
	}
	if merged.IsEmpty() {
		return fmt.Errorf("no tessellatable bodies")
	}
	return cad.SaveSTL(path, &merged, "cadtool")
}

func exportPreview(h *history.History, path string, size int) error {
	sketches := sortedSketches(h)
	if len(sketches) == 0 {
		return fmt.Errorf("model has no sketches")
	}
	return preview.SavePNG(path, sketches[0], preview.WithSize(size, size))
}

func sortedBodies(h *history.History) []*history.Body {
	out := make([]*history.Body, 0, len(h.Bodies()))
	for _, b := range h.Bodies() {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}
