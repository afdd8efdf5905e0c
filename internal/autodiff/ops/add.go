package ops

import (
	"fmt"

	"github.com/born-ml/cgraph/internal/graph"
	"github.com/born-ml/cgraph/internal/tensor"
)

// AddOp represents addition: output = a + b.
//
// Gradient:
//   - d(a+b)/da = 1
//   - d(a+b)/db = 1
type AddOp struct{ binary }

// Name returns "add".
func (AddOp) Name() string { return "add" }

// Forward computes a + b.
func (AddOp) Forward(in []tensor.Value) tensor.Value {
	return tensor.Add(in[0], in[1])
}

// Gradient returns [1, 1].
func (AddOp) Gradient(_ []tensor.Value, out tensor.Value) []tensor.Value {
	return []tensor.Value{ones(out), ones(out)}
}

// SymbolicGradient returns [1, 1].
func (AddOp) SymbolicGradient(b Builder, _ []graph.NodeID, _ graph.NodeID) []graph.NodeID {
	return []graph.NodeID{b.Constant(1), b.Constant(1)}
}

// Format renders "(a + b)".
func (AddOp) Format(s []string) string {
	return fmt.Sprintf("(%s + %s)", s[0], s[1])
}
