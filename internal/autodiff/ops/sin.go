package ops

import (
	"math"

	"github.com/born-ml/cgraph/internal/graph"
	"github.com/born-ml/cgraph/internal/tensor"
)

// SinOp represents the sine: output = sin(x), with d(sin x)/dx = cos(x).
type SinOp struct{ unary }

// Name returns "sin".
func (SinOp) Name() string { return "sin" }

// Forward computes sin(x).
func (SinOp) Forward(in []tensor.Value) tensor.Value {
	return tensor.Map(in[0], math.Sin)
}

// Gradient returns [cos(x)].
func (SinOp) Gradient(in []tensor.Value, _ tensor.Value) []tensor.Value {
	return []tensor.Value{tensor.Map(in[0], math.Cos)}
}

// SymbolicGradient returns [cos(x)].
func (SinOp) SymbolicGradient(b Builder, in []graph.NodeID, _ graph.NodeID) []graph.NodeID {
	return []graph.NodeID{b.Apply(Cos, in[0])}
}

// Format renders "sin(x)".
func (SinOp) Format(s []string) string {
	return "sin(" + s[0] + ")"
}
