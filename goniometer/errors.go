package goniometer

import "errors"

var (
	// ErrConflictingAxisSpec indicates mutually exclusive axis parameters were both set.
	ErrConflictingAxisSpec = errors.New("goniometer: conflicting axis parameters")
	// ErrDimensionMismatch indicates a sequence does not match the expected axis count.
	ErrDimensionMismatch = errors.New("goniometer: dimension mismatch")
	// ErrImmutableScanAxis indicates an attempt to override the scan axis of an existing goniometer.
	ErrImmutableScanAxis = errors.New("goniometer: scan axis cannot be overridden")
	// ErrInvalidDirection indicates an unrecognized kappa axis direction.
	ErrInvalidDirection = errors.New("goniometer: invalid kappa direction")
	// ErrHeaderInconsistency indicates the axis and scan-axis header tables disagree.
	ErrHeaderInconsistency = errors.New("goniometer: inconsistent header tables")
	// ErrAmbiguousScanAxis indicates more than one header axis has a nonzero angle increment.
	ErrAmbiguousScanAxis = errors.New("goniometer: more than one scan axis is defined")
	// ErrMalformedAxisGraph indicates the axis dependency data is cyclic or disconnected.
	ErrMalformedAxisGraph = errors.New("goniometer: malformed axis dependency graph")
)
