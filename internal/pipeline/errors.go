package pipeline

import (
	"errors"

	"github.com/Swayam-a/agrovision-backend/internal/compute"
)

// Sentinel errors for pipeline stage failures. Stage errors wrap one of
// these with %w; compute failures are carried as *compute.ExecError.
var (
	// ErrResource is returned when the workspace cannot be created or removed.
	ErrResource = errors.New("workspace resource failure")

	// ErrNotFound is returned when an expected local fixture file is missing.
	ErrNotFound = errors.New("input not found")

	// ErrTransfer is returned when a storage download or upload fails.
	ErrTransfer = errors.New("storage transfer failed")
)

// Kind buckets job failures for logging, metrics, and HTTP status mapping.
type Kind string

const (
	KindResource   Kind = "resource"
	KindNotFound   Kind = "not_found"
	KindTransfer   Kind = "transfer"
	KindCompute    Kind = "compute"
	KindUnexpected Kind = "unexpected"
)

// Classify maps a pipeline error to its failure kind. Unknown errors are
// KindUnexpected.
func Classify(err error) Kind {
	var execErr *compute.ExecError
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrTransfer):
		return KindTransfer
	case errors.Is(err, ErrResource):
		return KindResource
	case errors.As(err, &execErr):
		return KindCompute
	default:
		return KindUnexpected
	}
}
