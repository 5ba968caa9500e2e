package arcstr

import "go.trai.ch/zerr"

var (
	// ErrInvalidUTF8 is returned when constructor or decoder input is not valid UTF-8.
	ErrInvalidUTF8 = zerr.New("invalid UTF-8")

	// ErrInvalidRange is returned when a slice has a negative offset or start > end.
	ErrInvalidRange = zerr.New("invalid range")

	// ErrOutOfBounds is returned when a slice ends past the end of the string.
	ErrOutOfBounds = zerr.New("range out of bounds")

	// ErrNotCharBoundary is returned when a slice offset splits a multi-byte character.
	ErrNotCharBoundary = zerr.New("offset is not a character boundary")

	// ErrIndexOverflow is returned when an offset does not fit in the Substr index type.
	ErrIndexOverflow = zerr.New("index too large for substr")

	// ErrNotSubstring is returned by SubstrFrom when the argument does not point into the string.
	ErrNotSubstring = zerr.New("not a substring")

	// ErrUnexpectedNode is returned when a YAML node other than a scalar is decoded into a string.
	ErrUnexpectedNode = zerr.New("unexpected yaml node")
)
