package app

import (
	"context"
	"log/slog"

	"github.com/grindlemire/graft"
	"go.trai.ch/arcstr"
	"go.trai.ch/arcstr/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/arcstr/internal/adapters/fs"     //nolint:depguard // Wired in app layer
	"go.trai.ch/arcstr/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/arcstr/internal/core/ports"
	"go.trai.ch/arcstr/internal/engine/lexer"
	"go.trai.ch/arcstr/internal/engine/stress"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.ReaderNodeID,
			lexer.NodeID,
			stress.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	reader, err := graft.Dep[ports.SourceReader](ctx)
	if err != nil {
		return nil, err
	}

	lex, err := graft.Dep[*lexer.Lexer](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[*stress.Runner](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, reader, lex, runner, log), nil
}

// slogProvider is implemented by loggers that expose their slog.Logger.
type slogProvider interface {
	Slog() *slog.Logger
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	// Fatal refcount errors go to the same destination as the rest of the output.
	if p, ok := log.(slogProvider); ok {
		arcstr.SetFatalLogger(p.Slog())
	}

	return NewComponents(app, log), nil
}
