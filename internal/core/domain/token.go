package domain

import (
	"github.com/fxamacker/cbor/v2"
	"go.trai.ch/arcstr"
	"go.trai.ch/zerr"
)

// TokenKind classifies a lexed token.
type TokenKind uint8

// Token kinds produced by the lexer.
const (
	KindIdent TokenKind = iota
	KindNumber
	KindString
	KindComment
	KindPunct
	KindSpace
	numKinds
)

var kindNames = [numKinds]arcstr.ArcStr{
	KindIdent:   arcstr.Literal("ident"),
	KindNumber:  arcstr.Literal("number"),
	KindString:  arcstr.Literal("string"),
	KindComment: arcstr.Literal("comment"),
	KindPunct:   arcstr.Literal("punct"),
	KindSpace:   arcstr.Literal("space"),
}

// String returns the name of the kind.
func (k TokenKind) String() string {
	if k >= numKinds {
		return "unknown"
	}
	return kindNames[k].String()
}

// MarshalText implements encoding.TextMarshaler.
func (k TokenKind) MarshalText() ([]byte, error) {
	if k >= numKinds {
		return nil, zerr.With(zerr.New("invalid token kind"), "kind", int(k))
	}
	return []byte(k.String()), nil
}

// MarshalCBOR encodes the kind by name.
func (k TokenKind) MarshalCBOR() ([]byte, error) {
	text, err := k.MarshalText()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(string(text))
}

// Token is a zero-copy slice of the source. It holds a reference to the source string
// until released.
type Token struct {
	Kind   TokenKind     `json:"kind" yaml:"kind" cbor:"kind"`
	Offset int           `json:"offset" yaml:"offset" cbor:"offset"`
	Text   arcstr.Substr `json:"text" yaml:"text" cbor:"text"`
}

// Release drops the token's reference to the source.
func (t *Token) Release() {
	t.Text.Release()
}

// ReleaseTokens releases every token in tokens.
func ReleaseTokens(tokens []Token) {
	for i := range tokens {
		tokens[i].Release()
	}
}
