package graph

import (
	"fmt"

	motionrig "github.com/riglab/motionrig"
)

// taggedErr mirrors motionrig's TaggedError: it wraps one of the shared
// taxonomy sentinels (spec §7 is one taxonomy for both cores) with
// structured fields a host can recover via errors.As, without re-exporting
// the root package's unexported constructor.
type taggedErrT struct {
	tag    error
	fields map[string]any
	msg    string
}

func (e *taggedErrT) Error() string { return e.msg }
func (e *taggedErrT) Unwrap() error { return e.tag }

// Fields exposes the structured detail map (path/node/port/etc.), matching
// the root package's TaggedError.Fields contract for hosts inspecting both
// cores' errors uniformly.
func (e *taggedErrT) Fields() map[string]any { return e.fields }

func taggedErr(tag error, fields map[string]any, format string, args ...any) error {
	return &taggedErrT{tag: tag, fields: fields, msg: fmt.Sprintf("%v: %s", tag, fmt.Sprintf(format, args...))}
}

// Re-exported sentinels so callers outside this package compare against the
// same taxonomy without importing the root package directly for errors.Is.
var (
	ErrNotFound      = motionrig.ErrNotFound
	ErrInvalidArg    = motionrig.ErrInvalidArg
	ErrCycleDetected = motionrig.ErrCycleDetected
	ErrShapeMismatch = motionrig.ErrShapeMismatch
	ErrSolverFailed  = motionrig.ErrSolverFailed
)
