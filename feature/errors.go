package feature

import "errors"

var (
	// ErrInvalidFeature is returned when a feature's parameters or
	// state make it unexecutable.
	ErrInvalidFeature = errors.New("feature: invalid feature")

	// ErrFeatureNotFound is returned when a feature id does not exist.
	ErrFeatureNotFound = errors.New("feature: feature not found")

	// ErrSketchNotFound is returned when a feature references a sketch
	// the model does not contain.
	ErrSketchNotFound = errors.New("feature: sketch not found")

	// ErrBodyNotFound is returned when a feature references a body the
	// model does not contain.
	ErrBodyNotFound = errors.New("feature: body not found")
)
