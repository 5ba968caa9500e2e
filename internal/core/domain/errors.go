package domain

import "go.trai.ch/zerr"

var (
	// ErrStressMismatch is returned when a stress run ends with a count other than one
	// or leaves a block allocated.
	ErrStressMismatch = zerr.New("stress run left inconsistent reference counts")

	// ErrLeakedReference is returned when the source string still has extra references
	// after every token has been released.
	ErrLeakedReference = zerr.New("source string has leaked references")

	// ErrUnterminatedString is returned when a quoted string runs to end of line or input.
	ErrUnterminatedString = zerr.New("unterminated string literal")

	// ErrUnknownFormat is returned when an output format is not one of text, json, yaml or cbor.
	ErrUnknownFormat = zerr.New("unknown output format")

	// ErrInvalidConfig is returned when arcstr.yaml holds values that cannot be used.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrMissingSource is returned when lex is called without a file.
	ErrMissingSource = zerr.New("no source file specified")
)
