// Package fs provides filesystem adapters.
package fs

import (
	"os"

	"go.trai.ch/arcstr"
	"go.trai.ch/arcstr/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceReader = (*Reader)(nil)

// Reader loads files into reference-counted strings.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read returns the content of path as a dynamic ArcStr. Files that are not valid UTF-8
// are rejected with arcstr.ErrInvalidUTF8.
func (r *Reader) Read(path string) (arcstr.ArcStr, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return arcstr.ArcStr{}, zerr.With(zerr.Wrap(err, "failed to read source"), "path", path)
	}

	s, err := arcstr.FromBytes(data)
	if err != nil {
		return arcstr.ArcStr{}, zerr.With(err, "path", path)
	}
	return s, nil
}
