package ops

import (
	"math"

	"github.com/born-ml/cgraph/internal/graph"
	"github.com/born-ml/cgraph/internal/tensor"
)

// AbsOp represents the absolute value: output = |x|.
//
// Gradient: d|x|/dx = x/|x|, which is NaN at x = 0.
type AbsOp struct{ unary }

// Name returns "abs".
func (AbsOp) Name() string { return "abs" }

// Forward computes |x|.
func (AbsOp) Forward(in []tensor.Value) tensor.Value {
	return tensor.Map(in[0], math.Abs)
}

// Gradient returns [x/|x|].
func (AbsOp) Gradient(in []tensor.Value, _ tensor.Value) []tensor.Value {
	return []tensor.Value{tensor.Map(in[0], func(x float64) float64 {
		return x / tensor.NonZero(math.Abs(x))
	})}
}

// SymbolicGradient returns [x/abs(x)].
func (AbsOp) SymbolicGradient(b Builder, in []graph.NodeID, self graph.NodeID) []graph.NodeID {
	return []graph.NodeID{sDiv(b, in[0], self)}
}

// Format renders "abs(x)".
func (AbsOp) Format(s []string) string {
	return "abs(" + s[0] + ")"
}
