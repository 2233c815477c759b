package glyph

import (
	"errors"
	"fmt"
)

// ErrEmptyImage is wrapped by LoadError when an image decodes to zero pixels
var ErrEmptyImage = errors.New("image has no pixels")

// LoadError reports an image that could not be opened or decoded
// No grid is produced alongside a LoadError
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load image %q: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
