package domain

// LexSummary describes a lexed file.
type LexSummary struct {
	Path   string         `json:"path" yaml:"path" cbor:"path"`
	Bytes  int            `json:"bytes" yaml:"bytes" cbor:"bytes"`
	Tokens int            `json:"tokens" yaml:"tokens" cbor:"tokens"`
	Kinds  map[string]int `json:"kinds" yaml:"kinds" cbor:"kinds"`
	Digest string         `json:"digest" yaml:"digest" cbor:"digest"`
	// BaseRefs is the strong count of the source while all tokens are alive.
	BaseRefs uint `json:"base_refs" yaml:"base_refs" cbor:"base_refs"`
}

// LexReport is written by the lex command.
type LexReport struct {
	Summary LexSummary `json:"summary" yaml:"summary" cbor:"summary"`
	Tokens  []Token    `json:"tokens" yaml:"tokens" cbor:"tokens"`
}

// StressReport is written by the stress command.
type StressReport struct {
	Goroutines   int    `json:"goroutines" yaml:"goroutines" cbor:"goroutines"`
	Iterations   int    `json:"iterations" yaml:"iterations" cbor:"iterations"`
	PayloadBytes int    `json:"payload_bytes" yaml:"payload_bytes" cbor:"payload_bytes"`
	PeakCount    uint   `json:"peak_count" yaml:"peak_count" cbor:"peak_count"`
	FinalCount   uint   `json:"final_count" yaml:"final_count" cbor:"final_count"`
	Allocs       uint64 `json:"allocs" yaml:"allocs" cbor:"allocs"`
	Frees        uint64 `json:"frees" yaml:"frees" cbor:"frees"`
	LiveBlocks   int64  `json:"live_blocks" yaml:"live_blocks" cbor:"live_blocks"`
}
