package ops

import (
	"github.com/born-ml/cgraph/internal/graph"
	"github.com/born-ml/cgraph/internal/tensor"
)

// LogOp represents the natural logarithm: output = ln(x).
//
// Forward is NaN for x <= 0. Gradient: d(ln x)/dx = 1/x, NaN at x = 0.
type LogOp struct{ unary }

// Name returns "log".
func (LogOp) Name() string { return "log" }

// Forward computes ln(x).
func (LogOp) Forward(in []tensor.Value) tensor.Value {
	return tensor.Map(in[0], tensor.SafeLog)
}

// Gradient returns [1/x].
func (LogOp) Gradient(in []tensor.Value, _ tensor.Value) []tensor.Value {
	return []tensor.Value{tensor.Map(in[0], func(x float64) float64 {
		return 1 / tensor.NonZero(x)
	})}
}

// SymbolicGradient returns [1/x].
func (LogOp) SymbolicGradient(b Builder, in []graph.NodeID, _ graph.NodeID) []graph.NodeID {
	return []graph.NodeID{sDiv(b, b.Constant(1), in[0])}
}

// Format renders "log(x)".
func (LogOp) Format(s []string) string {
	return "log(" + s[0] + ")"
}
