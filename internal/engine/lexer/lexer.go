// Package lexer splits source text into tokens that share the source string.
package lexer

import (
	"unicode"
	"unicode/utf8"

	"go.trai.ch/arcstr"
	"go.trai.ch/arcstr/internal/core/domain"
	"go.trai.ch/zerr"
)

// Lexer produces zero-copy tokens. It holds no state between calls.
type Lexer struct{}

// New creates a new Lexer.
func New() *Lexer {
	return &Lexer{}
}

// Lex tokenizes src. Every returned token holds a reference to src; release them with
// domain.ReleaseTokens. Whitespace tokens are dropped unless keepWhitespace is set.
// On error no references are retained.
func (l *Lexer) Lex(src arcstr.ArcStr, keepWhitespace bool) ([]domain.Token, error) {
	text := src.String()
	var tokens []domain.Token

	for pos := 0; pos < len(text); {
		kind, end, err := scan(text, pos)
		if err != nil {
			domain.ReleaseTokens(tokens)
			return nil, err
		}
		if kind != domain.KindSpace || keepWhitespace {
			sub, err := src.Slice(pos, end)
			if err != nil {
				domain.ReleaseTokens(tokens)
				return nil, zerr.With(zerr.Wrap(err, "failed to slice token"), "offset", pos)
			}
			tokens = append(tokens, domain.Token{Kind: kind, Offset: pos, Text: sub})
		}
		pos = end
	}
	return tokens, nil
}

// scan returns the kind and end offset of the token starting at pos.
func scan(s string, pos int) (domain.TokenKind, int, error) {
	r, size := utf8.DecodeRuneInString(s[pos:])
	switch {
	case unicode.IsSpace(r):
		return domain.KindSpace, skip(s, pos, unicode.IsSpace), nil
	case r == '_' || unicode.IsLetter(r):
		return domain.KindIdent, skip(s, pos, isIdentRune), nil
	case unicode.IsDigit(r):
		return domain.KindNumber, skip(s, pos, isNumberRune), nil
	case r == '"' || r == '\'' || r == '`':
		end, err := scanString(s, pos, r)
		return domain.KindString, end, err
	case r == '#' || (r == '/' && pos+1 < len(s) && s[pos+1] == '/'):
		return domain.KindComment, skip(s, pos, func(r rune) bool { return r != '\n' }), nil
	default:
		return domain.KindPunct, pos + size, nil
	}
}

func skip(s string, pos int, keep func(rune) bool) int {
	for pos < len(s) {
		r, size := utf8.DecodeRuneInString(s[pos:])
		if !keep(r) {
			break
		}
		pos += size
	}
	return pos
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isNumberRune(r rune) bool {
	return r == '.' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// scanString returns the offset just past the closing quote. Backquoted strings may span
// lines and have no escapes.
func scanString(s string, pos int, quote rune) (int, error) {
	raw := quote == '`'
	for i := pos + 1; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == quote:
			return i + size, nil
		case r == '\\' && !raw:
			i += size
			if i < len(s) {
				_, size = utf8.DecodeRuneInString(s[i:])
			} else {
				size = 0
			}
		case r == '\n' && !raw:
			return 0, zerr.With(zerr.Wrap(domain.ErrUnterminatedString, "newline in string"), "offset", pos)
		}
		i += size
	}
	return 0, zerr.With(zerr.Wrap(domain.ErrUnterminatedString, "end of input in string"), "offset", pos)
}
