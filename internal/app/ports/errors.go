package ports

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	// ErrHostCorrupted is the fatal tier: the host handed out state that can
	// never become valid again. The engine latches off.
	ErrHostCorrupted = errors.New("host state corrupted")

	// ErrStaleReference is the transient tier: a handle went stale between
	// refresh and use. The tick is abandoned, the next one starts clean.
	ErrStaleReference = errors.New("stale host reference")

	ErrEngineDisabled = errors.New("engine disabled")
)
