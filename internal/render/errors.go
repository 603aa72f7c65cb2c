package render

import "errors"

// Domain errors for frame rendering.
var (
	// ErrDimension indicates a rendering dimensionality other than 2 or 3.
	ErrDimension = errors.New("render: dimensionality must be 2 or 3")

	// ErrBoxLength indicates a non-positive box edge length.
	ErrBoxLength = errors.New("render: box length must be positive")

	// ErrShapeMismatch indicates particle coordinates whose arity does not
	// match the renderer's dimensionality.
	ErrShapeMismatch = errors.New("render: position shape does not match dimensionality")
)
