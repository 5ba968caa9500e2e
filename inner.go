package arcstr

import (
	"unsafe"

	"go.trai.ch/arcstr/internal/abort"
	"go.trai.ch/arcstr/internal/heap"
	"go.trai.ch/arcstr/internal/refcount"
	"go.trai.ch/zerr"
)

// inner is the header shared by static and dynamic blocks. The string bytes follow it
// directly in the same allocation, at offsetData.
type inner struct {
	strong refcount.Counter
	n      uintptr
}

const offsetData = unsafe.Sizeof(inner{})

// emptyBlock backs Empty and the zero ArcStr. It carries no payload.
var emptyBlock = inner{strong: refcount.Static()}

func blockSize(n int) int {
	return int(offsetData) + n
}

// allocate copies s into a new dynamic block with a count of one. s must be valid
// UTF-8 and non-empty.
func allocate(s string) *inner {
	if len(s) > heap.MaxSize-int(offsetData) {
		abort.Now(zerr.With(zerr.Wrap(heap.ErrAllocOverflow, "string too long"), "len", len(s)))
	}
	p := (*inner)(heap.Alloc(blockSize(len(s))))
	p.strong = refcount.New()
	p.n = uintptr(len(s))
	copy(unsafe.Slice(p.data(), len(s)), s)
	return p
}

// allocateStatic builds an immortal block for s. Its count is the static sentinel.
func allocateStatic(s string) *inner {
	p := (*inner)(heap.AllocStatic(blockSize(len(s))))
	p.strong = refcount.Static()
	p.n = uintptr(len(s))
	if len(s) > 0 {
		copy(unsafe.Slice(p.data(), len(s)), s)
	}
	return p
}

// destroy runs once, on the goroutine whose Decrement observed the last reference.
// The length is cleared so a stale handle reads an empty string instead of freed bytes.
func (p *inner) destroy() {
	size := blockSize(int(p.n))
	p.n = 0
	heap.Free(unsafe.Pointer(p), size)
}

func (p *inner) data() *byte {
	return (*byte)(unsafe.Add(unsafe.Pointer(p), offsetData))
}

func (p *inner) str() string {
	if p.n == 0 {
		return ""
	}
	return unsafe.String(p.data(), int(p.n))
}
