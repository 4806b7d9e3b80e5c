package kernel

import "errors"

// Error taxonomy shared by all backends. Backends wrap these with
// context via fmt.Errorf("%w: ...") so callers can classify failures
// with errors.Is.
var (
	// ErrInvalidProfile indicates a degenerate or open profile was
	// passed to a sweep operation. Caller-correctable.
	ErrInvalidProfile = errors.New("kernel: invalid profile")

	// ErrOperationFailed indicates a backend-specific construction
	// failure, or an operation the backend does not implement. For
	// capability-sparse backends this is an expected outcome, not a
	// bug.
	ErrOperationFailed = errors.New("kernel: operation failed")

	// ErrTessellationFailed indicates the solid could not be converted
	// to a triangle mesh.
	ErrTessellationFailed = errors.New("kernel: tessellation failed")

	// ErrNotAvailable indicates the backend cannot run at all, e.g. a
	// missing native dependency.
	ErrNotAvailable = errors.New("kernel: not available")

	// ErrStepImport indicates a STEP file could not be read.
	ErrStepImport = errors.New("kernel: STEP import failed")

	// ErrStepExport indicates a STEP file could not be written.
	ErrStepExport = errors.New("kernel: STEP export failed")

	// ErrUnknownSolid indicates a handle that does not refer to a body
	// in this backend's storage, either stale or owned by a different
	// backend.
	ErrUnknownSolid = errors.New("kernel: unknown solid")
)
