// Package cad provides the parametric modeling core of the editor.
//
// # Overview
//
// cad holds the shared value types of the modeling subsystem: 2D and 3D
// vectors, sketch planes, closed profile wires, opaque solid handles and
// triangle meshes. The heavier machinery lives in subpackages:
//
//   - kernel: the capability-based geometry backend interface, the
//     backend registry, and a pure-software polyhedral reference backend
//   - sketch: 2D parametric sketches with a Newton-Raphson constraint
//     solver
//   - feature: parametric features (extrude, revolve, boolean, ...)
//   - history: the ordered feature history with rollback and
//     incremental rebuild
//   - document: durable YAML persistence of sketches and features
//   - preview: sketch thumbnail rasterization
//
// # Quick Start
//
//	k := kernel.MustDefault()
//
//	sk := sketch.New("base", cad.PlaneXY())
//	// ... add entities and constraints, then solve
//	res, err := sk.Solve()
//
//	h := history.New()
//	h.AddSketch(sk)
//	h.AddFeature(feature.NewExtrude("pad", sk.ID(), 10, feature.DirPositive))
//	h.Rebuild(k)
//
// All operations are synchronous call-and-return; the package performs
// no background work. See SetLogger for enabling diagnostics.
package cad
