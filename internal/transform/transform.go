// Package transform holds the per-entry rewrites applied while building a CBZ.
package transform

import (
	"github.com/sunr3d/tocbz/internal/archive"
)

const DefaultMaxHeight = 2560

// Identity leaves every entry untouched.
func Identity(data []byte, name string) ([]byte, string, error) {
	return data, name, nil
}

// Select returns the resizing transform when resize is set, Identity otherwise.
func Select(resize bool, maxHeight int) archive.TransformFunc {
	if !resize {
		return Identity
	}
	return NewResizer(maxHeight).Transform
}
