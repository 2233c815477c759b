package glyph

import (
	"bytes"
	"io"
	"os"
)

// Source yields the encoded bytes of an image
type Source interface {
	// Name identifies the source in errors and logs
	Name() string
	Open() (io.ReadCloser, error)
}

// FileSource reads an image from a filesystem path
type FileSource string

func (f FileSource) Name() string { return string(f) }

func (f FileSource) Open() (io.ReadCloser, error) {
	return os.Open(string(f))
}

// BytesSource serves an already-loaded image
type BytesSource struct {
	Label string
	Data  []byte
}

func (b BytesSource) Name() string {
	if b.Label == "" {
		return "<bytes>"
	}
	return b.Label
}

func (b BytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.Data)), nil
}
