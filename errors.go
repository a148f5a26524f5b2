package squash

import "errors"

// Status is the result code threaded through every layer of the splice
// engine, mirroring the tri-state (OK / end-of-stream / failure) return
// convention of the C squash library's callbacks and codec entry points.
type Status int

const (
	StatusOK Status = iota
	// StatusProcessing means the codec has more output to emit from the
	// input already given it; the caller must re-invoke Process without
	// advancing its own input cursor further than Process already did.
	StatusProcessing
	// StatusEndOfStream means no further input is available (read side)
	// or no further output can be accepted (write side, budget hit).
	StatusEndOfStream
	// StatusBufferFull is resolved internally by the mmap and accumulator
	// paths via buffer doubling; it never escapes to a caller.
	StatusBufferFull
	StatusBadParam
	StatusMemory
	StatusIO
	StatusInvalidBuffer
	StatusFailed
	StatusUnableToLoad
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusProcessing:
		return "processing"
	case StatusEndOfStream:
		return "end of stream"
	case StatusBufferFull:
		return "buffer full"
	case StatusBadParam:
		return "bad parameter"
	case StatusMemory:
		return "memory allocation failed"
	case StatusIO:
		return "i/o error"
	case StatusInvalidBuffer:
		return "invalid buffer"
	case StatusFailed:
		return "failed"
	case StatusUnableToLoad:
		return "unable to load codec"
	default:
		return "unknown status"
	}
}

// terminal reports whether s ends a splice call's processing loop
// successfully (as opposed to signalling more work or a hard failure).
func (s Status) terminal() bool {
	return s == StatusOK || s == StatusEndOfStream
}

// StatusError adapts a Status to the error interface so the engine can
// return plain Go errors while still letting callers recover the
// underlying code with errors.As.
type StatusError struct {
	Status Status
}

func (e *StatusError) Error() string { return "squash: " + e.Status.String() }

func (e *StatusError) Is(target error) bool {
	se, ok := target.(*StatusError)
	return ok && se.Status == e.Status
}

func statusToError(s Status) error {
	if s.terminal() {
		return nil
	}
	return &StatusError{Status: s}
}

// Sentinel errors for the common failure kinds, so callers can write
// errors.Is(err, squash.ErrInvalidBuffer) instead of type-switching on
// Status directly.
var (
	ErrBadParam      = &StatusError{StatusBadParam}
	ErrMemory        = &StatusError{StatusMemory}
	ErrIO            = &StatusError{StatusIO}
	ErrInvalidBuffer = &StatusError{StatusInvalidBuffer}
	ErrFailed        = &StatusError{StatusFailed}
	ErrUnableToLoad  = &StatusError{StatusUnableToLoad}

	// ErrUnknownCodec is returned by the name-based entry points when no
	// codec is registered under the requested name.
	ErrUnknownCodec = errors.New("squash: unknown codec")
	// ErrNoCapability is returned when a codec descriptor exposes none of
	// the three capability tiers the dispatcher knows how to drive.
	ErrNoCapability = errors.New("squash: codec exposes no usable capability")
	// ErrDuplicateCodec is returned by Register when the name is already taken.
	ErrDuplicateCodec = errors.New("squash: codec already registered under that name")
)
