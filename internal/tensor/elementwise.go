package tensor

import (
	"fmt"
	"math"
)

// Map applies f to every element of a.
func Map(a Value, f func(float64) float64) Value {
	out := make([]float64, len(a.data))
	for i, x := range a.data {
		out[i] = f(x)
	}
	return Value{shape: a.shape.Clone(), data: out}
}

// Zip combines a and b elementwise with f. A single-element side is
// repeated across the other side.
//
// Panics if the shapes are incompatible; callers check with BroadcastShapes
// or Compatible first.
func Zip(a, b Value, f func(x, y float64) float64) Value {
	shape, _, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		panic(fmt.Sprintf("tensor.Zip: %v", err))
	}
	n := shape.NumElements()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = f(a.At(i), b.At(i))
	}
	return Value{shape: shape, data: out}
}

// Compatible returns the common elementwise shape of values, or an error
// wrapping ErrShapeMismatch.
func Compatible(values ...Value) (Shape, error) {
	if len(values) == 0 {
		return Shape{}, nil
	}
	shape := values[0].shape
	for _, v := range values[1:] {
		s, _, err := BroadcastShapes(shape, v.shape)
		if err != nil {
			return nil, err
		}
		shape = s
	}
	return shape.Clone(), nil
}

// Add returns a + b.
func Add(a, b Value) Value {
	return Zip(a, b, func(x, y float64) float64 { return x + y })
}

// Sub returns a - b.
func Sub(a, b Value) Value {
	return Zip(a, b, func(x, y float64) float64 { return x - y })
}

// Mul returns a * b.
func Mul(a, b Value) Value {
	return Zip(a, b, func(x, y float64) float64 { return x * y })
}

// Div returns a / b with the NonZero guard on b.
func Div(a, b Value) Value {
	return Zip(a, b, func(x, y float64) float64 { return x / NonZero(y) })
}

// Neg returns -a.
func Neg(a Value) Value {
	return Map(a, func(x float64) float64 { return -x })
}

// Scale returns a * k.
func Scale(a Value, k float64) Value {
	return Map(a, func(x float64) float64 { return x * k })
}

// Sum adds all values elementwise. Panics on an empty argument list.
func Sum(values ...Value) Value {
	acc := values[0]
	for _, v := range values[1:] {
		acc = Add(acc, v)
	}
	return acc
}

// AllClose reports whether a and b have compatible shapes and every pair of
// elements differs by at most atol + rtol*|b|. NaN equals NaN.
func AllClose(a, b Value, rtol, atol float64) bool {
	shape, err := Compatible(a, b)
	if err != nil {
		return false
	}
	for i := 0; i < shape.NumElements(); i++ {
		x, y := a.At(i), b.At(i)
		if math.IsNaN(x) && math.IsNaN(y) {
			continue
		}
		if !(math.Abs(x-y) <= atol+rtol*math.Abs(y)) {
			return false
		}
	}
	return true
}
