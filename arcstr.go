// Package arcstr provides ArcStr, an immutable reference-counted string that fits in a
// single machine word, and Substr, a zero-copy view into one.
//
// An ArcStr points either at a static block, built once per distinct literal and never
// freed, or at a dynamic block holding an atomic count and the string bytes inline.
// Clone adds a reference and Release drops one; the last Release frees the block.
// Static strings skip the count entirely, so cloning and releasing them costs nothing.
//
// ArcStr values must be released exactly once per Clone or constructor call. A handle
// is safe to share between goroutines; the content never changes.
package arcstr

import (
	"strings"
	"unicode/utf8"
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/arcstr/internal/refcount"
	"go.trai.ch/zerr"
)

// ArcStr is an immutable, atomically reference-counted string handle.
// The zero value is the empty string.
type ArcStr struct {
	p *inner
}

// New copies s into a new ArcStr. It fails with ErrInvalidUTF8 if s is not valid UTF-8.
// The empty string yields the static empty ArcStr without allocating.
func New(s string) (ArcStr, error) {
	if i := invalidUTF8Offset(s); i >= 0 {
		return ArcStr{}, zerr.With(zerr.Wrap(ErrInvalidUTF8, "cannot build string"), "offset", i)
	}
	return newUnchecked(s), nil
}

// FromBytes copies b into a new ArcStr. It fails with ErrInvalidUTF8 if b is not valid UTF-8.
func FromBytes(b []byte) (ArcStr, error) {
	// The conversion is only read by New, which copies before returning.
	return New(unsafe.String(unsafe.SliceData(b), len(b)))
}

// FromRaw rebuilds an ArcStr from a pointer returned by IntoRaw. The reference
// carried by the pointer is transferred to the result.
func FromRaw(p unsafe.Pointer) ArcStr {
	return ArcStr{p: (*inner)(p)}
}

func newUnchecked(s string) ArcStr {
	if s == "" {
		return Empty()
	}
	return ArcStr{p: allocate(s)}
}

func (s ArcStr) block() *inner {
	if s.p == nil {
		return &emptyBlock
	}
	return s.p
}

// String returns the content. The result shares memory with the block and remains
// valid while s is live.
func (s ArcStr) String() string {
	return s.block().str()
}

// Len returns the length in bytes.
func (s ArcStr) Len() int {
	return int(s.block().n)
}

// IsEmpty reports whether s has no content.
func (s ArcStr) IsEmpty() bool {
	return s.Len() == 0
}

// Clone returns a new handle to the same block. Dynamic blocks gain a reference;
// static blocks are copied as-is.
func (s ArcStr) Clone() ArcStr {
	p := s.block()
	if !p.strong.IsStatic() {
		p.strong.Increment()
	}
	return ArcStr{p: p}
}

// Release drops the reference held by s and resets s to the empty string. The block is
// freed when its last reference is released. Releasing a static or empty ArcStr is a no-op.
func (s *ArcStr) Release() {
	p := s.p
	s.p = nil
	if p == nil || p.strong.IsStatic() {
		return
	}
	if p.strong.Decrement() {
		p.destroy()
	}
}

// IsStatic reports whether s is backed by a static block.
func (s ArcStr) IsStatic() bool {
	return s.block().strong.IsStatic()
}

// AsStatic returns the content with an unbounded lifetime if s is static.
func (s ArcStr) AsStatic() (string, bool) {
	p := s.block()
	if !p.strong.IsStatic() {
		return "", false
	}
	return p.str(), true
}

// StrongCount returns the number of live handles to the block, or false for static
// strings. Other goroutines may change the count at any time.
func (s ArcStr) StrongCount() (uint, bool) {
	n := s.block().strong.Load()
	if n == refcount.Sentinel {
		return 0, false
	}
	return uint(n), true
}

// PtrEq reports whether s and o share the same block.
func (s ArcStr) PtrEq(o ArcStr) bool {
	return s.block() == o.block()
}

// Equal reports whether s and o have the same content. Handles sharing a block are
// equal without comparing bytes.
func (s ArcStr) Equal(o ArcStr) bool {
	return s.PtrEq(o) || s.String() == o.String()
}

// EqualString reports whether the content of s is str.
func (s ArcStr) EqualString(str string) bool {
	return s.String() == str
}

// Compare orders s and o by their bytes, returning -1, 0 or +1.
func (s ArcStr) Compare(o ArcStr) int {
	if s.PtrEq(o) {
		return 0
	}
	return strings.Compare(s.String(), o.String())
}

// Hash returns the xxhash of the content. Equal content gives equal hashes, for ArcStr
// and Substr alike.
func (s ArcStr) Hash() uint64 {
	return xxhash.Sum64String(s.String())
}

// IntoRaw returns the block pointer, transferring the reference held by s to the
// caller. Pass it to FromRaw to get the handle back.
func (s ArcStr) IntoRaw() unsafe.Pointer {
	return unsafe.Pointer(s.block())
}

// Slice returns a Substr over the bytes [start, end) of s, sharing its block.
// Both offsets must lie on UTF-8 character boundaries within the string.
func (s ArcStr) Slice(start, end int) (Substr, error) {
	return slice(s, start, end)
}

// Full returns a Substr covering all of s, taking a new reference. It fails with
// ErrIndexOverflow only when s is longer than the Substr index type allows.
func (s ArcStr) Full() (Substr, error) {
	return full(s.Clone())
}

// SubstrFrom returns the Substr of s whose bytes are exactly sub. sub must point into
// the memory of s, as the results of strings.TrimSpace or strings.Fields on s.String()
// do; equal content elsewhere is rejected with ErrNotSubstring.
func (s ArcStr) SubstrFrom(sub string) (Substr, error) {
	return substrFrom(s, 0, s.Len(), sub)
}

// SubstrUsing applies fn to the content of s and returns the result as a Substr.
func (s ArcStr) SubstrUsing(fn func(string) string) (Substr, error) {
	return s.SubstrFrom(fn(s.String()))
}

// invalidUTF8Offset returns the offset of the first invalid sequence in s, or -1.
func invalidUTF8Offset(s string) int {
	if utf8.ValidString(s) {
		return -1
	}
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(s)
}
