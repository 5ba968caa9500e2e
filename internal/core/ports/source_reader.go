package ports

import "go.trai.ch/arcstr"

// SourceReader loads files as reference-counted strings.
//
//go:generate mockgen -source=source_reader.go -destination=mocks/mock_source_reader.go -package=mocks
type SourceReader interface {
	// Read returns the content of path. The caller owns the returned reference.
	Read(path string) (arcstr.ArcStr, error)
}
