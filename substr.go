package arcstr

import (
	"strings"
	"unicode/utf8"
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// Substr is a byte range [start, end) of an ArcStr. It holds its own reference to the
// base block, so slicing never copies bytes. Both bounds always sit on UTF-8
// character boundaries. The zero value is the empty string.
type Substr struct {
	base       ArcStr
	start, end idx
}

// NewSubstr copies s into a new ArcStr and returns a Substr covering all of it.
func NewSubstr(s string) (Substr, error) {
	a, err := New(s)
	if err != nil {
		return Substr{}, err
	}
	return full(a)
}

// LiteralSubstr returns a Substr covering Literal(s). Like Literal it takes no reference
// and does not allocate after the first call for a given content.
//
// s must be valid UTF-8 and fit the Substr index type; otherwise LiteralSubstr panics.
func LiteralSubstr(s string) Substr {
	sub, err := full(Literal(s))
	if err != nil {
		panic("arcstr: LiteralSubstr: " + err.Error())
	}
	return sub
}

// full wraps a, taking over its reference. On failure the reference is released.
func full(a ArcStr) (Substr, error) {
	end, err := toIdx(a.Len())
	if err != nil {
		a.Release()
		return Substr{}, err
	}
	return Substr{base: a, end: end}, nil
}

func slice(base ArcStr, start, end int) (Substr, error) {
	if err := checkRange(base.String(), start, end); err != nil {
		return Substr{}, err
	}
	if start == end {
		return Substr{}, nil
	}
	s, err := toIdx(start)
	if err != nil {
		return Substr{}, err
	}
	e, err := toIdx(end)
	if err != nil {
		return Substr{}, err
	}
	return Substr{base: base.Clone(), start: s, end: e}, nil
}

func checkRange(s string, start, end int) error {
	switch {
	case start < 0 || start > end:
		return zerr.With(zerr.With(zerr.Wrap(ErrInvalidRange, "start must be <= end"), "start", start), "end", end)
	case end > len(s):
		return zerr.With(zerr.With(zerr.Wrap(ErrOutOfBounds, "end past string length"), "end", end), "len", len(s))
	case !isCharBoundary(s, start):
		return zerr.With(zerr.Wrap(ErrNotCharBoundary, "bad start offset"), "offset", start)
	case !isCharBoundary(s, end):
		return zerr.With(zerr.Wrap(ErrNotCharBoundary, "bad end offset"), "offset", end)
	}
	return nil
}

func isCharBoundary(s string, i int) bool {
	if i == 0 || i == len(s) {
		return true
	}
	return i > 0 && i < len(s) && utf8.RuneStart(s[i])
}

// substrFrom locates sub inside base[lo:hi] by address.
func substrFrom(base ArcStr, lo, hi int, sub string) (Substr, error) {
	if sub == "" {
		return Substr{}, nil
	}
	content := base.String()
	origin := uintptr(unsafe.Pointer(unsafe.StringData(content)))
	at := uintptr(unsafe.Pointer(unsafe.StringData(sub)))
	if at < origin+uintptr(lo) || at+uintptr(len(sub)) > origin+uintptr(hi) {
		return Substr{}, zerr.With(zerr.Wrap(ErrNotSubstring, "string does not point into the base"), "len", len(sub))
	}
	start := int(at - origin)
	return slice(base, start, start+len(sub))
}

// String returns the content of the range. The result shares memory with the base
// block and remains valid while s is live.
func (s Substr) String() string {
	return s.base.String()[s.start:s.end]
}

// Len returns the length of the range in bytes.
func (s Substr) Len() int {
	return int(s.end - s.start)
}

// IsEmpty reports whether the range is empty.
func (s Substr) IsEmpty() bool {
	return s.start == s.end
}

// Slice returns a Substr over [start, end) relative to s. The result shares the same
// base block.
func (s Substr) Slice(start, end int) (Substr, error) {
	if err := checkRange(s.String(), start, end); err != nil {
		return Substr{}, err
	}
	return slice(s.base, int(s.start)+start, int(s.start)+end)
}

// SubstrFrom returns the Substr whose bytes are exactly sub, which must point into s.
func (s Substr) SubstrFrom(sub string) (Substr, error) {
	return substrFrom(s.base, int(s.start), int(s.end), sub)
}

// SubstrUsing applies fn to the content of s and returns the result as a Substr.
func (s Substr) SubstrUsing(fn func(string) string) (Substr, error) {
	return s.SubstrFrom(fn(s.String()))
}

// Clone returns a new Substr over the same range, adding a reference to the base.
func (s Substr) Clone() Substr {
	return Substr{base: s.base.Clone(), start: s.start, end: s.end}
}

// Release drops the reference to the base and resets s to the empty string.
func (s *Substr) Release() {
	s.base.Release()
	s.start, s.end = 0, 0
}

// Parent returns the base string without taking a reference. Clone it to keep it
// beyond the lifetime of s.
func (s Substr) Parent() ArcStr {
	return s.base
}

// Range returns the byte offsets of s within its parent.
func (s Substr) Range() (start, end int) {
	return int(s.start), int(s.end)
}

// ToArcStr returns the content as a standalone ArcStr. When s covers its whole parent
// the parent is shared with a new reference. Partial ranges allocate: the bytes are
// copied into a new block, since an ArcStr cannot address the middle of another block.
func (s Substr) ToArcStr() ArcStr {
	if s.start == 0 && int(s.end) == s.base.Len() {
		return s.base.Clone()
	}
	return newUnchecked(s.String())
}

// ShallowEqual reports whether s and o share a base block and range.
func (s Substr) ShallowEqual(o Substr) bool {
	return s.base.PtrEq(o.base) && s.start == o.start && s.end == o.end
}

// Equal reports whether s and o have the same content.
func (s Substr) Equal(o Substr) bool {
	return s.ShallowEqual(o) || s.String() == o.String()
}

// EqualArcStr reports whether s has the same content as a.
func (s Substr) EqualArcStr(a ArcStr) bool {
	if s.base.PtrEq(a) && s.start == 0 && int(s.end) == a.Len() {
		return true
	}
	return s.String() == a.String()
}

// EqualString reports whether the content of s is str.
func (s Substr) EqualString(str string) bool {
	return s.String() == str
}

// Compare orders s and o by their bytes, returning -1, 0 or +1.
func (s Substr) Compare(o Substr) int {
	if s.ShallowEqual(o) {
		return 0
	}
	return strings.Compare(s.String(), o.String())
}

// Hash returns the xxhash of the content, matching ArcStr.Hash for equal content.
func (s Substr) Hash() uint64 {
	return xxhash.Sum64String(s.String())
}
