package ops

import (
	"fmt"

	"github.com/born-ml/cgraph/internal/graph"
	"github.com/born-ml/cgraph/internal/tensor"
)

// SubOp represents subtraction: output = a - b.
//
// Gradient:
//   - d(a-b)/da = 1
//   - d(a-b)/db = -1
type SubOp struct{ binary }

// Name returns "sub".
func (SubOp) Name() string { return "sub" }

// Forward computes a - b.
func (SubOp) Forward(in []tensor.Value) tensor.Value {
	return tensor.Sub(in[0], in[1])
}

// Gradient returns [1, -1].
func (SubOp) Gradient(_ []tensor.Value, out tensor.Value) []tensor.Value {
	return []tensor.Value{ones(out), tensor.Full(out.Shape(), -1)}
}

// SymbolicGradient returns [1, -1].
func (SubOp) SymbolicGradient(b Builder, _ []graph.NodeID, _ graph.NodeID) []graph.NodeID {
	return []graph.NodeID{b.Constant(1), b.Constant(-1)}
}

// Format renders "(a - b)".
func (SubOp) Format(s []string) string {
	return fmt.Sprintf("(%s - %s)", s[0], s[1])
}
