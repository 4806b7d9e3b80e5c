package sketch

import "errors"

var (
	// ErrEntityNotFound is returned when an entity id does not exist
	// in the sketch.
	ErrEntityNotFound = errors.New("sketch: entity not found")

	// ErrConstraintNotFound is returned when a constraint id does not
	// exist in the sketch.
	ErrConstraintNotFound = errors.New("sketch: constraint not found")

	// ErrUnknownReference is returned when adding a constraint that
	// references an entity the sketch does not contain.
	ErrUnknownReference = errors.New("sketch: constraint references unknown entity")

	// ErrNotConverged is returned by Solve when the iteration limit is
	// reached without meeting the residual tolerance.
	ErrNotConverged = errors.New("sketch: solver did not converge")
)
