// Package refcount implements the atomic strong count embedded in every dynamic
// string block.
//
// A Counter holding Sentinel marks a static block. Static counters are never
// modified, so callers check IsStatic before touching the count.
package refcount

import (
	"sync/atomic"

	"go.trai.ch/arcstr/internal/abort"
	"go.trai.ch/zerr"
)

const (
	// Sentinel is the count stored in static blocks. Increment aborts long before a
	// dynamic count could reach it, and Decrement aborts on the 0 -> Sentinel wrap.
	Sentinel = ^uintptr(0)

	// MaxCount is the highest count an Increment may start from. Everything above it
	// is headroom that legitimate handles never occupy.
	MaxCount = Sentinel >> 1
)

var (
	// ErrOverflow is reported to the abort guard when a count reaches MaxCount.
	ErrOverflow = zerr.New("refcount overflow")

	// ErrUnderflow is reported to the abort guard when a freed block is released again.
	ErrUnderflow = zerr.New("refcount underflow")
)

// Counter is an atomic strong count. The zero value is not meaningful; use New or Static.
type Counter struct {
	n uintptr
}

// New returns the count of a freshly allocated block, owned by one handle.
func New() Counter {
	return Counter{n: 1}
}

// Static returns the immortal count stored in static blocks.
func Static() Counter {
	return Counter{n: Sentinel}
}

// IsStatic reports whether c belongs to a static block.
func (c *Counter) IsStatic() bool {
	return atomic.LoadUintptr(&c.n) == Sentinel
}

// Load returns the current count. Other goroutines may change it at any time.
func (c *Counter) Load() uintptr {
	return atomic.LoadUintptr(&c.n)
}

// Increment adds one reference. The payload is immutable, so nothing besides the count
// itself needs to be published to the goroutine receiving the clone.
func (c *Counter) Increment() {
	for {
		old := atomic.LoadUintptr(&c.n)
		if old >= MaxCount {
			abort.Now(zerr.With(zerr.Wrap(ErrOverflow, "too many live handles"), "count", uint64(old)))
			return
		}
		if atomic.CompareAndSwapUintptr(&c.n, old, old+1) {
			return
		}
	}
}

// Decrement drops one reference and reports whether it was the last one. The caller
// that sees true owns the block exclusively and must free it; Go atomics are
// sequentially consistent, so every earlier Decrement happens before that free.
func (c *Counter) Decrement() bool {
	n := atomic.AddUintptr(&c.n, ^uintptr(0))
	if n == Sentinel {
		abort.Now(zerr.Wrap(ErrUnderflow, "release of a freed block"))
		return false
	}
	return n == 0
}
