// Package heap is the single allocation strategy for string blocks.
//
// Blocks are word-aligned and pointer-free, so the collector never scans string
// payloads. Every allocation and free is counted; the counters back arcstr.Stats and
// the leak checks in tests.
package heap

import (
	"math"
	"sync/atomic"
	"unsafe"

	"go.trai.ch/arcstr/internal/abort"
	"go.trai.ch/zerr"
)

const wordSize = unsafe.Sizeof(uint64(0))

// MaxSize is the largest block Alloc accepts.
const MaxSize = math.MaxInt - int(wordSize)

// ErrAllocOverflow is reported to the abort guard when a block size cannot be represented.
var ErrAllocOverflow = zerr.New("allocation size overflow")

// Stats is a snapshot of the allocation counters.
type Stats struct {
	Allocs       uint64
	Frees        uint64
	LiveBlocks   int64
	LiveBytes    int64
	StaticBlocks uint64
	StaticBytes  uint64
}

var (
	allocs      atomic.Uint64
	frees       atomic.Uint64
	liveBlocks  atomic.Int64
	liveBytes   atomic.Int64
	staticCount atomic.Uint64
	staticBytes atomic.Uint64
)

// Alloc returns a zeroed block of at least size bytes, aligned to 8 bytes.
// The caller must pass the same size to Free exactly once.
func Alloc(size int) unsafe.Pointer {
	p := alloc(size)
	allocs.Add(1)
	liveBlocks.Add(1)
	liveBytes.Add(int64(size))
	return p
}

// AllocStatic returns a block that is never freed.
func AllocStatic(size int) unsafe.Pointer {
	p := alloc(size)
	staticCount.Add(1)
	staticBytes.Add(uint64(size))
	return p
}

// Free records that the block at p is dead. The memory is reclaimed by the collector
// once no stale handle refers to it.
func Free(p unsafe.Pointer, size int) {
	if p == nil {
		return
	}
	frees.Add(1)
	liveBlocks.Add(-1)
	liveBytes.Add(-int64(size))
}

// Snapshot returns the current counters.
func Snapshot() Stats {
	return Stats{
		Allocs:       allocs.Load(),
		Frees:        frees.Load(),
		LiveBlocks:   liveBlocks.Load(),
		LiveBytes:    liveBytes.Load(),
		StaticBlocks: staticCount.Load(),
		StaticBytes:  staticBytes.Load(),
	}
}

func alloc(size int) unsafe.Pointer {
	if size < 0 || size > MaxSize {
		abort.Now(zerr.With(zerr.Wrap(ErrAllocOverflow, "invalid block size"), "size", size))
		return nil
	}
	words := (uintptr(size) + wordSize - 1) / wordSize
	if words == 0 {
		words = 1
	}
	block := make([]uint64, words)
	return unsafe.Pointer(unsafe.SliceData(block))
}
