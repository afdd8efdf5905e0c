package ops

import (
	"math"

	"github.com/born-ml/cgraph/internal/graph"
	"github.com/born-ml/cgraph/internal/tensor"
)

// CosOp represents the cosine: output = cos(x), with d(cos x)/dx = -sin(x).
type CosOp struct{ unary }

// Name returns "cos".
func (CosOp) Name() string { return "cos" }

// Forward computes cos(x).
func (CosOp) Forward(in []tensor.Value) tensor.Value {
	return tensor.Map(in[0], math.Cos)
}

// Gradient returns [-sin(x)].
func (CosOp) Gradient(in []tensor.Value, _ tensor.Value) []tensor.Value {
	return []tensor.Value{tensor.Map(in[0], func(x float64) float64 { return -math.Sin(x) })}
}

// SymbolicGradient returns [-sin(x)].
func (CosOp) SymbolicGradient(b Builder, in []graph.NodeID, _ graph.NodeID) []graph.NodeID {
	return []graph.NodeID{sNeg(b, b.Apply(Sin, in[0]))}
}

// Format renders "cos(x)".
func (CosOp) Format(s []string) string {
	return "cos(" + s[0] + ")"
}
