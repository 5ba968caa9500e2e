package arcstr

import (
	"log/slog"

	"go.trai.ch/arcstr/internal/abort"
	"go.trai.ch/arcstr/internal/heap"
)

// AllocStats reports the block allocations made by this package.
type AllocStats struct {
	// Allocs and Frees count dynamic blocks over the life of the process.
	Allocs uint64
	Frees  uint64
	// LiveBlocks and LiveBytes cover dynamic blocks that still have references.
	LiveBlocks int64
	LiveBytes  int64
	// StaticBlocks and StaticBytes cover the immortal blocks built by Literal.
	StaticBlocks uint64
	StaticBytes  uint64
}

// Stats returns the current allocation counters.
func Stats() AllocStats {
	s := heap.Snapshot()
	return AllocStats{
		Allocs:       s.Allocs,
		Frees:        s.Frees,
		LiveBlocks:   s.LiveBlocks,
		LiveBytes:    s.LiveBytes,
		StaticBlocks: s.StaticBlocks,
		StaticBytes:  s.StaticBytes,
	}
}

// SetFatalLogger sets the logger that reports refcount overflow and impossible
// allocations before the process is terminated. Nil restores slog.Default.
func SetFatalLogger(l *slog.Logger) {
	abort.SetLogger(l)
}
