// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/arcstr/internal/adapters/config"
	_ "go.trai.ch/arcstr/internal/adapters/fs"
	_ "go.trai.ch/arcstr/internal/adapters/logger"
	// Register app and engine nodes.
	_ "go.trai.ch/arcstr/internal/app"
	_ "go.trai.ch/arcstr/internal/engine/lexer"
	_ "go.trai.ch/arcstr/internal/engine/stress"
)
