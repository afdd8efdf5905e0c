package ops

import (
	"github.com/born-ml/cgraph/internal/graph"
	"github.com/born-ml/cgraph/internal/tensor"
)

// NegOp represents negation: output = -x, with d(-x)/dx = -1.
type NegOp struct{ unary }

// Name returns "neg".
func (NegOp) Name() string { return "neg" }

// Forward computes -x.
func (NegOp) Forward(in []tensor.Value) tensor.Value {
	return tensor.Neg(in[0])
}

// Gradient returns [-1].
func (NegOp) Gradient(_ []tensor.Value, out tensor.Value) []tensor.Value {
	return []tensor.Value{tensor.Full(out.Shape(), -1)}
}

// SymbolicGradient returns [-1].
func (NegOp) SymbolicGradient(b Builder, _ []graph.NodeID, _ graph.NodeID) []graph.NodeID {
	return []graph.NodeID{b.Constant(-1)}
}

// Format renders "-x".
func (NegOp) Format(s []string) string {
	return "-" + s[0]
}
