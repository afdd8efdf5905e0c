package ops

import (
	"math"

	"github.com/born-ml/cgraph/internal/graph"
	"github.com/born-ml/cgraph/internal/tensor"
)

// ExpOp represents the exponential: output = exp(x).
//
// Gradient: d(exp(x))/dx = exp(x), which is the output itself, so the
// symbolic gradient is the node of the operation.
type ExpOp struct{ unary }

// Name returns "exp".
func (ExpOp) Name() string { return "exp" }

// Forward computes exp(x).
func (ExpOp) Forward(in []tensor.Value) tensor.Value {
	return tensor.Map(in[0], math.Exp)
}

// Gradient returns [out].
func (ExpOp) Gradient(_ []tensor.Value, out tensor.Value) []tensor.Value {
	return []tensor.Value{out}
}

// SymbolicGradient returns [self].
func (ExpOp) SymbolicGradient(_ Builder, _ []graph.NodeID, self graph.NodeID) []graph.NodeID {
	return []graph.NodeID{self}
}

// Format renders "exp(x)".
func (ExpOp) Format(s []string) string {
	return "exp(" + s[0] + ")"
}
