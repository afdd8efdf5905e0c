// Package tensor provides the value type flowing through expression graphs:
// a float64 scalar or a flat elementwise array with a shape.
//
// Values are immutable once constructed; every operation returns a new
// Value. Elementwise operations combine values of equal shape, or a
// single-element value with any other value.
package tensor

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a scalar or an elementwise array of float64.
//
// The zero Value is an empty, invalid value; use Scalar, Vector, Full or
// FromSlice to construct one.
type Value struct {
	shape Shape
	data  []float64
}

// Scalar creates a scalar value.
func Scalar(v float64) Value {
	return Value{shape: Shape{}, data: []float64{v}}
}

// Vector creates a one-dimensional value holding a copy of data.
func Vector(data ...float64) Value {
	d := make([]float64, len(data))
	copy(d, data)
	return Value{shape: Shape{len(d)}, data: d}
}

// Full creates a value of the given shape with every element set to v.
func Full(shape Shape, v float64) Value {
	d := make([]float64, shape.NumElements())
	for i := range d {
		d[i] = v
	}
	return Value{shape: shape.Clone(), data: d}
}

// OnesLike returns a value with the shape of v filled with ones.
func OnesLike(v Value) Value {
	return Full(v.shape, 1)
}

// FromSlice creates a value of the given shape from a copy of data.
func FromSlice(data []float64, shape Shape) (Value, error) {
	if err := shape.Validate(); err != nil {
		return Value{}, fmt.Errorf("invalid shape: %w", err)
	}
	if len(data) != shape.NumElements() {
		return Value{}, fmt.Errorf("%w: %d elements for shape %v", ErrShapeMismatch, len(data), shape)
	}
	d := make([]float64, len(data))
	copy(d, data)
	return Value{shape: shape.Clone(), data: d}, nil
}

// Shape returns the shape of the value.
func (v Value) Shape() Shape {
	return v.shape.Clone()
}

// Len returns the number of elements.
func (v Value) Len() int {
	return len(v.data)
}

// IsValid reports whether v was built by one of the constructors.
func (v Value) IsValid() bool {
	return len(v.data) > 0
}

// IsScalar reports whether v holds exactly one element.
func (v Value) IsScalar() bool {
	return len(v.data) == 1
}

// At returns element i. A single-element value returns its element for any i.
func (v Value) At(i int) float64 {
	if len(v.data) == 1 {
		return v.data[0]
	}
	return v.data[i]
}

// Item returns the first element. It is the natural accessor for scalars.
func (v Value) Item() float64 {
	return v.data[0]
}

// Data returns a copy of the elements.
func (v Value) Data() []float64 {
	d := make([]float64, len(v.data))
	copy(d, v.data)
	return d
}

// String formats a scalar as a number and an array as "[a b c]".
func (v Value) String() string {
	if len(v.shape) == 0 && len(v.data) == 1 {
		return strconv.FormatFloat(v.data[0], 'g', -1, 64)
	}
	parts := make([]string, len(v.data))
	for i, x := range v.data {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
