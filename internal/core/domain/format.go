package domain

import "go.trai.ch/zerr"

// Format selects how reports are written.
type Format string

// Supported output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// ParseFormat validates s as an output format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML, FormatCBOR:
		return f, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnknownFormat, "expected text, json, yaml or cbor"), "format", s)
	}
}
