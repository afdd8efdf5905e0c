package tensor

import "math"

// Domain guards turn an invalid operand into NaN instead of failing, so a
// single bad sample does not abort evaluation of a whole batch.

// NonZero returns x, or NaN if x is exactly zero.
func NonZero(x float64) float64 {
	if x == 0 {
		return math.NaN()
	}
	return x
}

// NonNegative returns x, or NaN if x is negative.
func NonNegative(x float64) float64 {
	if x < 0 {
		return math.NaN()
	}
	return x
}

// Positive returns x, or NaN if x is zero or negative.
func Positive(x float64) float64 {
	if x > 0 {
		return x
	}
	return math.NaN()
}

// SafeLog returns ln(x), or NaN for x <= 0.
func SafeLog(x float64) float64 {
	return math.Log(Positive(x))
}
