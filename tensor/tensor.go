// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the values flowing through
// expression graphs.
//
// A Value is either a float64 scalar or a flat elementwise array with a
// Shape. Operations combine values of equal shape, or a single-element value
// with any other value (scalar broadcast).
//
// Example:
//
//	x := tensor.Vector(1, 2, 3)
//	y := tensor.Scalar(2)
//	fmt.Println(x, y) // [1 2 3] 2
package tensor

import (
	"github.com/born-ml/cgraph/internal/tensor"
)

// Value is a scalar or an elementwise array of float64.
type Value = tensor.Value

// Shape represents the dimensions of a value.
// Example: Shape{2, 3} holds 6 elements; Shape{} is a scalar.
type Shape = tensor.Shape

// ErrShapeMismatch is returned when two values cannot be combined.
var ErrShapeMismatch = tensor.ErrShapeMismatch

// Scalar creates a scalar value.
func Scalar(v float64) Value {
	return tensor.Scalar(v)
}

// Vector creates a one-dimensional value holding a copy of data.
func Vector(data ...float64) Value {
	return tensor.Vector(data...)
}

// Full creates a value of the given shape with every element set to v.
func Full(shape Shape, v float64) Value {
	return tensor.Full(shape, v)
}

// FromSlice creates a value from row-major data.
// Returns an error if len(data) does not match the shape.
func FromSlice(data []float64, shape Shape) (Value, error) {
	return tensor.FromSlice(data, shape)
}

// AllClose reports whether a and b have compatible shapes and every pair of
// elements satisfies |a-b| <= atol + rtol*|b|. NaNs compare equal.
func AllClose(a, b Value, rtol, atol float64) bool {
	return tensor.AllClose(a, b, rtol, atol)
}
