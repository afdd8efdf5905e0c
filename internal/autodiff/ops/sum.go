package ops

import (
	"strings"

	"github.com/born-ml/cgraph/internal/graph"
	"github.com/born-ml/cgraph/internal/tensor"
)

// SumOp represents n-ary addition: output = x1 + x2 + ... + xn.
//
// A single SumOp node replaces a deep chain of binary AddOp nodes when many
// terms are summed. Every partial is 1.
type SumOp struct{}

// Name returns "sum".
func (SumOp) Name() string { return "sum" }

// Arity returns Variadic.
func (SumOp) Arity() int { return Variadic }

func (SumOp) sealed() {}

// Forward computes the elementwise sum of all operands.
func (SumOp) Forward(in []tensor.Value) tensor.Value {
	return tensor.Sum(in...)
}

// Gradient returns 1 for every operand.
func (SumOp) Gradient(in []tensor.Value, out tensor.Value) []tensor.Value {
	grads := make([]tensor.Value, len(in))
	for i := range grads {
		grads[i] = ones(out)
	}
	return grads
}

// SymbolicGradient returns a constant 1 for every operand.
func (SumOp) SymbolicGradient(b Builder, in []graph.NodeID, _ graph.NodeID) []graph.NodeID {
	grads := make([]graph.NodeID, len(in))
	for i := range grads {
		grads[i] = b.Constant(1)
	}
	return grads
}

// Format renders "(a + b + c)".
func (SumOp) Format(s []string) string {
	return "(" + strings.Join(s, " + ") + ")"
}
