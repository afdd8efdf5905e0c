package ops

import (
	"fmt"

	"github.com/born-ml/cgraph/internal/graph"
	"github.com/born-ml/cgraph/internal/tensor"
)

// MulOp represents multiplication: output = a * b.
//
// Gradient:
//   - d(a*b)/da = b
//   - d(a*b)/db = a
//
// For x*x both positions report x, and the two edges from x each carry
// their own copy, which sums to 2x.
type MulOp struct{ binary }

// Name returns "mul".
func (MulOp) Name() string { return "mul" }

// Forward computes a * b.
func (MulOp) Forward(in []tensor.Value) tensor.Value {
	return tensor.Mul(in[0], in[1])
}

// Gradient returns [b, a].
func (MulOp) Gradient(in []tensor.Value, _ tensor.Value) []tensor.Value {
	return []tensor.Value{in[1], in[0]}
}

// SymbolicGradient returns [b, a].
func (MulOp) SymbolicGradient(_ Builder, in []graph.NodeID, _ graph.NodeID) []graph.NodeID {
	return []graph.NodeID{in[1], in[0]}
}

// Format renders "(a*b)".
func (MulOp) Format(s []string) string {
	return fmt.Sprintf("(%s*%s)", s[0], s[1])
}
