package ops

import (
	"math"

	"github.com/born-ml/cgraph/internal/graph"
	"github.com/born-ml/cgraph/internal/tensor"
)

// SqrtOp represents the square root: output = sqrt(x).
//
// Gradient: d(sqrt(x))/dx = 1 / (2 * sqrt(x)), NaN at x = 0.
// Negative inputs are NaN through math.Sqrt.
type SqrtOp struct{ unary }

// Name returns "sqrt".
func (SqrtOp) Name() string { return "sqrt" }

// Forward computes sqrt(x).
func (SqrtOp) Forward(in []tensor.Value) tensor.Value {
	return tensor.Map(in[0], math.Sqrt)
}

// Gradient returns [1 / (2*out)].
func (SqrtOp) Gradient(_ []tensor.Value, out tensor.Value) []tensor.Value {
	return []tensor.Value{tensor.Map(out, func(v float64) float64 {
		return 1 / tensor.NonZero(2*v)
	})}
}

// SymbolicGradient returns [1 / (2*self)].
func (SqrtOp) SymbolicGradient(b Builder, _ []graph.NodeID, self graph.NodeID) []graph.NodeID {
	return []graph.NodeID{sDiv(b, b.Constant(1), sMul(b, b.Constant(2), self))}
}

// Format renders "sqrt(x)".
func (SqrtOp) Format(s []string) string {
	return "sqrt(" + s[0] + ")"
}
