package lexer

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the lexer Graft node.
const NodeID graft.ID = "engine.lexer"

func init() {
	graft.Register(graft.Node[*Lexer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Lexer, error) {
			return New(), nil
		},
	})
}
