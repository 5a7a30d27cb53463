package rcbor

import (
	"errors"
	"fmt"
)

// Reader errors. Each Reader method reports its own sentinel on
// failure (SizeNone, nil, MaxUint, or SimpleNone per spec.md §6/§7) and
// leaves the cursor parked at the offending byte; these values carry
// the same information for callers that want an `error` instead, via
// the ReadUnsignedChecked/ReadDataChecked/ReadTextChecked/
// ReadArrayChecked/ReadMapChecked helpers.
var (
	// ErrUnexpectedEndOfData is returned when input ends inside a
	// header (its initial byte or its argument bytes). A string payload
	// that runs past the end of input is reported as ErrOversizeArgument.
	ErrUnexpectedEndOfData = errors.New("rcbor: unexpected end of data")

	// ErrInvalidMajorType is returned when the next item's major type
	// does not match what the caller requested.
	ErrInvalidMajorType = errors.New("rcbor: unexpected major type")

	// ErrMalformedHeader is returned when the additional-info field is
	// one of the reserved values 28, 29, or 30, or the indefinite-length
	// marker 31.
	ErrMalformedHeader = errors.New("rcbor: malformed initial byte")

	// ErrOversizeArgument is returned when a length argument exceeds
	// the remaining input or the platform's size representation.
	ErrOversizeArgument = errors.New("rcbor: oversize length argument")
)

// Writer errors, returned by Writer.Stop: the poisoning causes (wrapped
// in a ContainerError) once the writer has poisoned, or
// ErrUnfinishedContainer when containers are still open on an
// unpoisoned writer. Writer itself never returns an error from the
// Prepend/Open/Wrap calls — per spec.md §4.2/§7 those calls are
// latched no-ops after the first failure, and the failure is only
// reported when Stop is called.
var (
	// ErrBufferExhausted is the poisoning cause when an item's header
	// or payload would not fit in the remaining free space.
	ErrBufferExhausted = errors.New("rcbor: buffer exhausted")

	// ErrNestingOverflow is the poisoning cause when OpenArray/OpenMap
	// is called with no stack slots left.
	ErrNestingOverflow = errors.New("rcbor: nesting depth exceeded")

	// ErrNestingUnderflow is the poisoning cause when WrapArray/WrapMap
	// is called with no matching Open.
	ErrNestingUnderflow = errors.New("rcbor: wrap without matching open")

	// ErrMapParity is the poisoning cause when WrapMap is called with
	// an odd number of items since the matching OpenMap.
	ErrMapParity = errors.New("rcbor: map has an odd number of items")

	// ErrUnfinishedContainer is returned by Stop when one or more
	// containers are still open.
	ErrUnfinishedContainer = errors.New("rcbor: container left open")
)

// ContainerError reports which poisoning cause latched a Writer, along
// with the nesting depth at the time of failure. Writer.Err returns
// one of these (wrapping the specific Err* sentinel above) once
// poisoned.
type ContainerError struct {
	Err   error
	Depth int
}

// Error implements the error interface.
func (e *ContainerError) Error() string {
	return fmt.Sprintf("rcbor: %v (nesting depth %d)", e.Err, e.Depth)
}

// Unwrap returns the underlying sentinel error.
func (e *ContainerError) Unwrap() error {
	return e.Err
}
