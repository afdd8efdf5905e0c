package tensor

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned when two values cannot be combined elementwise.
var ErrShapeMismatch = errors.New("shape mismatch")

// Shape represents the dimensions of a value. The empty shape is a scalar.
type Shape []int

// NumElements returns the total number of elements.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// BroadcastShapes returns the shape of an elementwise combination of a and b.
//
// Only the degenerate case of broadcasting is supported: shapes must be
// equal, or one side must hold a single element (a scalar or a shape such
// as {1}), in which case it is repeated across the other side.
//
// Returns the resulting shape, a flag indicating if broadcasting is needed,
// and an error wrapping ErrShapeMismatch if the shapes are incompatible.
//
// Examples:
//
//	() + (5)    → (5), true, nil
//	(1) + (3,2) → (3,2), true, nil
//	(5) + (5)   → (5), false, nil
//	(4) + (5)   → nil, false, error
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	switch {
	case a.Equal(b):
		return a.Clone(), false, nil
	case b.NumElements() == 1 && (a.NumElements() > 1 || len(a) >= len(b)):
		return a.Clone(), true, nil
	case a.NumElements() == 1:
		return b.Clone(), true, nil
	default:
		return nil, false, fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, a, b)
	}
}
