package arcstr

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

const staticShards = 16

type staticShard struct {
	mu     sync.RWMutex
	blocks map[string]*inner
}

// staticTable holds one immortal block per distinct literal. Keys are the block's own
// bytes, so the table never pins the caller's memory.
var staticTable [staticShards]staticShard

// Literal returns a static ArcStr with the content of s.
//
// The first call for a given content builds an immortal block; every later call
// returns that same block. Clone and Release on the result never touch the count
// and never allocate. Intended for package-level variables and string constants:
//
//	var keywordFunc = arcstr.Literal("func")
//
// s must be valid UTF-8. Invalid content is a programming error and panics.
func Literal(s string) ArcStr {
	if s == "" {
		return Empty()
	}

	shard := &staticTable[xxhash.Sum64String(s)%staticShards]

	shard.mu.RLock()
	p, ok := shard.blocks[s]
	shard.mu.RUnlock()
	if ok {
		return ArcStr{p: p}
	}

	if !utf8.ValidString(s) {
		panic("arcstr: Literal called with invalid UTF-8: " + strconv.Quote(s))
	}

	shard.mu.Lock()
	defer shard.mu.Unlock()
	if p, ok := shard.blocks[s]; ok {
		return ArcStr{p: p}
	}
	if shard.blocks == nil {
		shard.blocks = make(map[string]*inner)
	}
	p = allocateStatic(s)
	shard.blocks[p.str()] = p
	return ArcStr{p: p}
}

// Empty returns the canonical empty string. It never allocates and equals the zero ArcStr.
func Empty() ArcStr {
	return ArcStr{p: &emptyBlock}
}

// Format returns a dynamic ArcStr holding fmt.Sprintf(format, args...). Without args
// and verbs the format string is returned as a Literal, so it must be valid UTF-8.
// Invalid UTF-8 produced by the arguments is replaced with U+FFFD.
func Format(format string, args ...any) ArcStr {
	if len(args) == 0 && !strings.Contains(format, "%") {
		return Literal(format)
	}
	return newUnchecked(strings.ToValidUTF8(fmt.Sprintf(format, args...), string(utf8.RuneError)))
}
