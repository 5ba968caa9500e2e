package arcstr

import (
	"encoding"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var (
	_ encoding.TextMarshaler   = ArcStr{}
	_ encoding.TextUnmarshaler = (*ArcStr)(nil)
	_ yaml.Marshaler           = ArcStr{}
	_ yaml.Unmarshaler         = (*ArcStr)(nil)
	_ cbor.Marshaler           = ArcStr{}
	_ cbor.Unmarshaler         = (*ArcStr)(nil)

	_ encoding.TextMarshaler   = Substr{}
	_ encoding.TextUnmarshaler = (*Substr)(nil)
	_ yaml.Marshaler           = Substr{}
	_ yaml.Unmarshaler         = (*Substr)(nil)
	_ cbor.Marshaler           = Substr{}
	_ cbor.Unmarshaler         = (*Substr)(nil)
)

// cborDecMode accepts text strings with invalid UTF-8 so that decoding reports
// ErrInvalidUTF8 like every other constructor.
var cborDecMode cbor.DecMode

func init() {
	var err error
	cborDecMode, err = cbor.DecOptions{
		UTF8: cbor.UTF8DecodeInvalid,
	}.DecMode()
	if err != nil {
		panic("arcstr: CBOR decoder initialization failed: " + err.Error())
	}
}

// MarshalText implements encoding.TextMarshaler. Static and dynamic strings encode
// identically.
func (s ArcStr) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The previous value of s is
// released and replaced by a new dynamic string.
func (s *ArcStr) UnmarshalText(text []byte) error {
	return s.replace(FromBytes(text))
}

// MarshalYAML implements yaml.Marshaler.
func (s ArcStr) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Only scalar nodes are accepted.
func (s *ArcStr) UnmarshalYAML(value *yaml.Node) error {
	str, err := yamlScalar(value)
	if err != nil {
		return err
	}
	return s.replace(New(str))
}

// MarshalCBOR implements cbor.Marshaler, encoding s as a CBOR text string.
func (s ArcStr) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(s.String())
}

// UnmarshalCBOR implements cbor.Unmarshaler. Text and byte strings are accepted; both
// must hold valid UTF-8.
func (s *ArcStr) UnmarshalCBOR(data []byte) error {
	str, err := cborString(data)
	if err != nil {
		return err
	}
	return s.replace(New(str))
}

func (s *ArcStr) replace(a ArcStr, err error) error {
	if err != nil {
		return err
	}
	s.Release()
	*s = a
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Substr) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The result covers a new dynamic base.
func (s *Substr) UnmarshalText(text []byte) error {
	var a ArcStr
	if err := a.UnmarshalText(text); err != nil {
		return err
	}
	return s.replace(full(a))
}

// MarshalYAML implements yaml.Marshaler.
func (s Substr) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Substr) UnmarshalYAML(value *yaml.Node) error {
	var a ArcStr
	if err := a.UnmarshalYAML(value); err != nil {
		return err
	}
	return s.replace(full(a))
}

// MarshalCBOR implements cbor.Marshaler.
func (s Substr) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(s.String())
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (s *Substr) UnmarshalCBOR(data []byte) error {
	var a ArcStr
	if err := a.UnmarshalCBOR(data); err != nil {
		return err
	}
	return s.replace(full(a))
}

func (s *Substr) replace(sub Substr, err error) error {
	if err != nil {
		return err
	}
	s.Release()
	*s = sub
	return nil
}

func yamlScalar(value *yaml.Node) (string, error) {
	if value.Kind != yaml.ScalarNode {
		return "", zerr.With(zerr.Wrap(ErrUnexpectedNode, "expected a scalar"), "line", value.Line)
	}
	return value.Value, nil
}

func cborString(data []byte) (string, error) {
	var v any
	if err := cborDecMode.Unmarshal(data, &v); err != nil {
		return "", zerr.Wrap(err, "failed to decode cbor string")
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	default:
		return "", zerr.With(zerr.New("expected a cbor text or byte string"), "type", fmt.Sprintf("%T", v))
	}
}
