package packet

import (
	"errors"
	"fmt"
)

var (
	ErrFieldEmpty       = errors.New("packet: field empty")
	ErrFieldTooLong     = errors.New("packet: field too long")
	ErrInvalidCharacter = errors.New("packet: invalid character")
	ErrMalformedPacket  = errors.New("packet: malformed packet")
)

// FieldError reports which field failed validation and why.
// Err is one of the kind sentinels above, so callers can match with errors.Is.
type FieldError struct {
	Field Field
	Err   error
	Len   int
	Max   int
}

func (e *FieldError) Error() string {
	switch {
	case errors.Is(e.Err, ErrFieldTooLong):
		return fmt.Sprintf("%v: %s (field %d): %d bytes exceeds %d", e.Err, e.Field, e.Field.Index(), e.Len, e.Max)
	case errors.Is(e.Err, ErrInvalidCharacter):
		return fmt.Sprintf("%v: %s (field %d) contains %q", e.Err, e.Field, e.Field.Index(), Div)
	default:
		return fmt.Sprintf("%v: %s (field %d)", e.Err, e.Field, e.Field.Index())
	}
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// MalformedError reports a decode input that does not split into the
// expected number of delimiter separated parts.
type MalformedError struct {
	Parts    int
	Trailing int // bytes after the final delimiter
}

func (e *MalformedError) Error() string {
	if e.Parts == wireParts {
		return fmt.Sprintf("%v: %d bytes after final delimiter", ErrMalformedPacket, e.Trailing)
	}
	return fmt.Sprintf("%v: got %d parts, want %d", ErrMalformedPacket, e.Parts, wireParts)
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformedPacket
}
